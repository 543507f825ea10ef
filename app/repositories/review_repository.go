package repositories

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository handles the reviews collection.
type ReviewRepository struct {
	name string
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{name: "reviews"}
}

func (r *ReviewRepository) col() *mongo.Collection { return database.Collection(r.name) }

// All returns every review.
func (r *ReviewRepository) All(ctx context.Context) ([]models.Review, error) {
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Insert adds a review and returns its generated id.
func (r *ReviewRepository) Insert(ctx context.Context, review models.Review) (primitive.ObjectID, error) {
	res, err := r.col().InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// CountByEmail returns how many reviews an author has written.
func (r *ReviewRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.col().CountDocuments(ctx, bson.M{"email": email})
}
