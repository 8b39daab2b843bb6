package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Telephone string             `bson:"telephone" json:"telephone"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // Hide from JSON responses
	Role      string             `bson:"role" json:"role"`  // "user" or "admin"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Identity is the resolved {id, role} pair attached to an authenticated
// request by the auth middleware.
type Identity struct {
	ID   primitive.ObjectID
	Role string
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Telephone string `json:"telephone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
