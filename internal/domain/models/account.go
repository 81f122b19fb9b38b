// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is an authentication identity. It is deliberately separate from
// the User profile record: the access gate may delete an account without a
// profile ever having existed (all-or-nothing rejection), and a profile is
// only provisioned after the gate accepts the account's email domain.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod   string             `bson:"auth_method" json:"auth_method"` // password | google
	AuthReturnID *string            `bson:"auth_return_id,omitempty" json:"-"` // Google subject id
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
