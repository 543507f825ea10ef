package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed checkout. Created once per settlement and
// immutable afterward. CartIDs lists the cart entries the payment settled;
// MenuItemIDs lists the purchased items for category aggregation.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email"         json:"email"`
	Price         float64            `bson:"price"         json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	CartIDs       []string           `bson:"cartIds"       json:"cartIds"`
	MenuItemIDs   []string           `bson:"menuItemIds"   json:"menuItemIds"`
	Status        string             `bson:"status"        json:"status"`
	Date          time.Time          `bson:"date"          json:"date"`
}

// RevenueSummary is the single-bucket roll-up over all payments.
// Zero-valued when no payments exist.
type RevenueSummary struct {
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int64   `bson:"orders"  json:"orders"`
}

// CategorySale is one row of the per-category sales breakdown: price summed
// and item occurrences counted per menu category.
type CategorySale struct {
	Category string  `bson:"category" json:"category"`
	Total    float64 `bson:"total"    json:"total"`
	Count    int64   `bson:"count"    json:"count"`
}

// AdminStats is the admin dashboard shape.
type AdminStats struct {
	Customers       int64          `json:"customers"`
	Products        int64          `json:"products"`
	Revenue         float64        `json:"revenue"`
	Orders          int64          `json:"orders"`
	CompletedOrders []CategorySale `json:"completedOrders"`
}

// UserStats is the per-user dashboard shape.
type UserStats struct {
	Review  int64 `json:"review"`
	Payment int64 `json:"payment"`
	Menu    int64 `json:"menu"`
}
