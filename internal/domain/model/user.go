// Package model defines owner-auth domain entities.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner is the single shop-owner account that can access the order
// dashboard. Credentials come from deployment configuration; there is no
// user registration.
type Owner struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	// PasswordHash is the bcrypt hash of the owner password. Never serialized.
	PasswordHash string `json:"-"`
}

// Token is a persisted refresh token or blacklisted access token.
type Token struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
	Token string             `bson:"token" json:"token"`
	// Type is "refresh" or "blacklist".
	Type      string    `bson:"type" json:"type"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
