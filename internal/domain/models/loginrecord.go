// internal/domain/models/loginrecord.go
package models

import "time"

// LoginRecord is one append-only login-history entry.
type LoginRecord struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Provider  string    `bson:"provider" json:"provider"` // password | google
	IP        string    `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string    `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
