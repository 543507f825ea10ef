package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ContactRepository handles the contacts collection.
type ContactRepository struct {
	name string
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{name: "contacts"}
}

func (r *ContactRepository) col() *mongo.Collection { return database.Collection(r.name) }

// Insert stores a contact message and returns its generated id.
func (r *ContactRepository) Insert(ctx context.Context, msg models.ContactMessage) (primitive.ObjectID, error) {
	res, err := r.col().InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// All returns every contact message. Admin-only.
func (r *ContactRepository) All(ctx context.Context) ([]models.ContactMessage, error) {
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var msgs []models.ContactMessage
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Delete removes a contact message by id. Admin-only.
func (r *ContactRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.col().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
