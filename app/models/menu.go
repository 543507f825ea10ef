package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a dish on the menu. Written only by admins, read publicly.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name"        json:"name"`
	Category    string             `bson:"category"    json:"category"`
	Price       float64            `bson:"price"       json:"price"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image"       json:"image"`
}

// Review is customer feedback. Read publicly.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name"    json:"name"`
	Email   string             `bson:"email"   json:"email"`
	Rating  float64            `bson:"rating"  json:"rating"`
	Details string             `bson:"details" json:"details"`
}
