// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is one entry of the practice catalog shown on the questions
// page. Per-user completion is not stored here; it is derived from the
// user's solve history by title.
type Question struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Topic        string             `bson:"topic" json:"topic"`
	Subtopic     string             `bson:"subtopic,omitempty" json:"subtopic,omitempty"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"` // Easy | Medium | Hard
	ClassDate    string             `bson:"class_date,omitempty" json:"class_date,omitempty"`
	ExternalLink string             `bson:"external_link,omitempty" json:"external_link,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
