package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("repositories: not found")

// UserRepository handles the users collection.
type UserRepository struct {
	name string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{name: "users"}
}

func (r *UserRepository) col() *mongo.Collection { return database.Collection(r.name) }

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// RoleByEmail returns the stored role for an email. Implements
// middleware.RoleStore: the role is read per request so revocations apply
// immediately.
func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Insert persists a new user record and returns its generated id.
func (r *UserRepository) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if user.Role == "" {
		user.Role = models.RoleRegular
	}
	res, err := r.col().InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// All returns every user. Admin-only listing; the collection is small.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	cur, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateRole sets the stored role of a user by id.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, err
	}
	res, err := r.col().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a user by id.
func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
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

// Count returns the approximate number of users (collection metadata, not a
// full scan).
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col().EstimatedDocumentCount(ctx)
}
