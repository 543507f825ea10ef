package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles stored on a user document. Every user is regular until an admin
// promotes them.
const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

// User is a registered account, created idempotently on first sign-in.
// Email is the unique identity key; every owner-scoped document references it.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name"           json:"name"`
	Email string             `bson:"email"          json:"email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  string             `bson:"role"           json:"role"`
}

// IsAdmin reports whether the stored role passes the admin gate.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
