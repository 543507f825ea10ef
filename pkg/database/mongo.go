// Package database owns the process-scoped MongoDB connection.
//
// The client is acquired once at startup and shared by every in-flight
// request; the driver's connection pool makes it safe for concurrent use.
// It is never re-opened per request.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bistro/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection.
// Returns an error instead of calling log.Fatal so the caller can
// shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stable API v1, strict mode, matching the cluster configuration.
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true)

	clientOpts := options.Client().
		ApplyURI(config.MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(2 * time.Minute)

	var err error
	client, err = mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	db = client.Database(config.MongoDB())
	return nil
}

// Collection returns a handle to a named collection of the configured database.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// DB returns the configured database handle.
func DB() *mongo.Database {
	return db
}

// Disconnect closes the client. Called on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
