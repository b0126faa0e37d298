package models

import (
	"time"
)

// User is the subset of the host application's user document this module
// touches. Profile CRUD lives elsewhere.
type User struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name,omitempty"`
	Email         string    `json:"email" bson:"email,omitempty"`
	Role          string    `json:"role" bson:"role,omitempty"`
	Phone         string    `json:"phone" bson:"phone,omitempty"`
	PhoneVerified bool      `json:"phone_verified" bson:"phone_verified"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

const RoleAdmin = "admin"
