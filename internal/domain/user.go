package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is either a password account or a federated one (PasswordHash empty).
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	PasswordHash    string             `bson:"password_hash,omitempty"`
	Image           string             `bson:"image,omitempty"`
	EmailVerifiedAt *time.Time         `bson:"email_verified_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (u *User) Federated() bool {
	return u.PasswordHash == ""
}

// PublicUser is the only user shape returned over the API.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
