package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartEntry is one menu item in a user's shopping cart.
// Visible only to its owner; price is snapshotted at add time so a later
// menu edit does not change what the customer saw.
type CartEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email"      json:"email"`
	MenuItemID string             `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name"       json:"name"`
	Image      string             `bson:"image"      json:"image"`
	Quantity   int                `bson:"quantity"   json:"quantity"`
	Price      float64            `bson:"price"      json:"price"`
}

// ContactMessage is a message sent through the contact form.
// The sender email must match the authenticated caller; only admins read it.
type ContactMessage struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email   string             `bson:"email"   json:"email"`
	Name    string             `bson:"name"    json:"name"`
	Message string             `bson:"message" json:"message"`
}
