package seeders

import (
	"context"

	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers creates the initial admin account if no admin exists yet.
func SeedUsers(db *mongo.Database) error {
	ctx := context.Background()
	col := db.Collection("users")

	n, err := col.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	_, err = col.InsertOne(ctx, models.User{
		Name:  "Bistro Admin",
		Email: "admin@bistro.local",
		Role:  models.RoleAdmin,
	})
	return err
}
