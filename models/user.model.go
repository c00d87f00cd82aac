package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"` // "user" or "admin"
}

// PublicUser is the profile shape returned to clients (no password hash)
type PublicUser struct {
	ID       primitive.ObjectID `json:"_id"`
	Username string             `json:"username"`
	Role     string             `json:"role"`
}

// Public strips the credential fields from a user record
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
