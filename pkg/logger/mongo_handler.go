package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoHandler mirrors log records into a MongoDB collection without ever
// blocking the request path. Records are queued and a background writer
// batches them into InsertMany calls; when the queue is full the record is
// dropped rather than stalling a handler. Close flushes what is queued.
type MongoHandler struct {
	sink  *mongoSink
	attrs []slog.Attr
}

// mongoSink owns the connection and the background writer. Shared by every
// WithAttrs clone of the handler.
type mongoSink struct {
	client  *mongo.Client
	col     *mongo.Collection
	queue   chan logEntry
	closing chan struct{}
}

type logEntry struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

const (
	logQueueDepth    = 4096
	logBatchMax      = 50
	logFlushInterval = 2 * time.Second
)

// NewMongoHandler connects to uri and returns a handler writing into
// db/collection. The caller must Close it on shutdown.
func NewMongoHandler(uri, db, collection string) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	s := &mongoSink{
		client:  client,
		col:     col,
		queue:   make(chan logEntry, logQueueDepth),
		closing: make(chan struct{}),
	}
	go s.writer()

	return &MongoHandler{sink: s}, nil
}

func (h *MongoHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	entry := logEntry{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	absorb := func(a slog.Attr) {
		if a.Key == "request_id" {
			entry.RequestID = a.Value.String()
			return
		}
		entry.Attrs[a.Key] = a.Value.Any()
	}
	for _, a := range h.attrs {
		absorb(a)
	}
	r.Attrs(func(a slog.Attr) bool { absorb(a); return true })

	select {
	case h.sink.queue <- entry:
	default: // queue full, drop
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &MongoHandler{sink: h.sink, attrs: merged}
}

func (h *MongoHandler) WithGroup(string) slog.Handler { return h }

// Close drains the queue and disconnects. Safe to call more than once.
func (h *MongoHandler) Close() {
	select {
	case <-h.sink.closing:
	default:
		close(h.sink.closing)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = h.sink.client.Disconnect(ctx)
}

func (s *mongoSink) writer() {
	tick := time.NewTicker(logFlushInterval)
	defer tick.Stop()

	pending := make([]interface{}, 0, logBatchMax)

	for {
		select {
		case e := <-s.queue:
			pending = append(pending, e)
			if len(pending) >= logBatchMax {
				pending = s.flush(pending)
			}
		case <-tick.C:
			pending = s.flush(pending)
		case <-s.closing:
			for len(s.queue) > 0 {
				pending = append(pending, <-s.queue)
			}
			s.flush(pending)
			return
		}
	}
}

// flush writes pending entries and returns the reset slice. Insert errors
// are dropped: logging must not fail the application.
func (s *mongoSink) flush(pending []interface{}) []interface{} {
	if len(pending) == 0 {
		return pending
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_, _ = s.col.InsertMany(ctx, pending)
	cancel()
	return pending[:0]
}

// MultiHandler fans one record out to several handlers, used to keep stdout
// logging alongside the MongoDB mirror.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}
