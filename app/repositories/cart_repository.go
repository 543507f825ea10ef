package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository handles the carts collection. Every read and delete filter
// includes the owner email, so one user's operations can never touch
// another's entries.
type CartRepository struct {
	name string
}

func NewCartRepository() *CartRepository {
	return &CartRepository{name: "carts"}
}

func (r *CartRepository) col() *mongo.Collection { return database.Collection(r.name) }

// ByEmail returns all cart entries owned by email.
func (r *CartRepository) ByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	cur, err := r.col().Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	var entries []models.CartEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert adds a cart entry and returns its generated id.
func (r *CartRepository) Insert(ctx context.Context, entry models.CartEntry) (primitive.ObjectID, error) {
	res, err := r.col().InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Delete removes one entry by id, scoped to its owner.
func (r *CartRepository) Delete(ctx context.Context, email, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid, "email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteSettled removes the entries a completed payment settled. The filter
// is both id-set and owner email, so a payment can only ever clear its own
// owner's entries.
func (r *CartRepository) DeleteSettled(ctx context.Context, email string, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // skip malformed ids rather than failing the settlement
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.col().DeleteMany(ctx, bson.M{
		"_id":   bson.M{"$in": oids},
		"email": email,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
