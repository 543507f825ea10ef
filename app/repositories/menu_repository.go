package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	menuCacheKey = "menu:all"
	menuCacheTTL = 60 * time.Second
)

// MenuRepository handles the menu collection. The public listing is served
// from Redis when available; admin writes invalidate the key.
type MenuRepository struct {
	name string
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{name: "menu"}
}

// Collection handles are resolved per call so constructing repositories
// never requires a live connection.
func (r *MenuRepository) col() *mongo.Collection { return database.Collection(r.name) }

// All returns the full menu, cache-first.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if cache.Get(menuCacheKey, &items) {
		return items, nil
	}

	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	_ = cache.Set(menuCacheKey, items, menuCacheTTL)
	return items, nil
}

// FindByID returns a single menu item.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (models.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.MenuItem{}, ErrNotFound
	}
	var item models.MenuItem
	err = r.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MenuItem{}, ErrNotFound
	}
	return item, err
}

// Insert adds a menu item and returns its generated id.
func (r *MenuRepository) Insert(ctx context.Context, item models.MenuItem) (primitive.ObjectID, error) {
	res, err := r.col().InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, err
	}
	_ = cache.Del(menuCacheKey)
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Update overwrites the editable fields of a menu item.
func (r *MenuRepository) Update(ctx context.Context, id string, item models.MenuItem) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        item.Name,
			"category":    item.Category,
			"price":       item.Price,
			"description": item.Description,
			"image":       item.Image,
		}},
	)
	if err != nil {
		return 0, err
	}
	_ = cache.Del(menuCacheKey)
	return res.ModifiedCount, nil
}

// Delete removes a menu item by id.
func (r *MenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	_ = cache.Del(menuCacheKey)
	return res.DeletedCount, nil
}

// Count returns the approximate number of menu items.
func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.col().EstimatedDocumentCount(ctx)
}
