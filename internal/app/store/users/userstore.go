package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vedamschool/dsahub/internal/app/system/normalize"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a profile with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// GetByID loads a user profile by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a profile by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateDefault provisions the zero-progress profile for a freshly accepted
// account. The profile shares the account's ObjectID so there is exactly one
// profile per identity. When name is empty the local part of the email is
// used so the leaderboard never shows a blank row.
func (s *Store) CreateDefault(ctx context.Context, id primitive.ObjectID, email, name string) (models.User, error) {
	email = normalize.Email(email)
	name = normalize.Name(name)
	if name == "" {
		if at := strings.IndexByte(email, '@'); at > 0 {
			name = email[:at]
		} else {
			name = email
		}
	}

	now := time.Now()
	u := models.User{
		ID:         id,
		Email:      email,
		Name:       name,
		AvatarSeed: uuid.NewString(),
		CreatedAt:  now,
		LastLogin:  now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ApplySolve records one solved question as a single atomic update: the
// three counters increment together, the day's performance score gains a
// fixed 5 points, the history entry is appended, and last_solved_at is
// stamped server-side. No partial combination of these writes can ever be
// observed, and concurrent solves serialize through Mongo's per-document
// atomicity without losing increments.
//
// day must be a UTC YYYY-MM-DD key; callers use time.Now().UTC().
func (s *Store) ApplySolve(ctx context.Context, id primitive.ObjectID, title, topic string, day string) error {
	entry := models.SolvedQuestion{
		Title:    strings.TrimSpace(title),
		Topic:    normalize.Topic(topic),
		SolvedAt: time.Now(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{
			"solved_count":              1,
			"streak":                    1,
			"leet_solved":               1,
			"performance_history." + day: 5,
		},
		"$currentDate": bson.M{"last_solved_at": true},
		"$set":         bson.M{"last_active": time.Now()},
		"$push":        bson.M{"solved_history": entry},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SavePerformanceSeries persists a synthesized dashboard chart series so
// later reads return the same points.
func (s *Store) SavePerformanceSeries(ctx context.Context, id primitive.ObjectID, series []models.PerformancePoint) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"performance": series},
	})
	return err
}

// ProfileUpdate holds the self-service editable fields. Email and the
// progress counters are deliberately absent.
type ProfileUpdate struct {
	Name           string
	Batch          string
	DailyGoalTotal int
}

// UpdateProfile applies a self-service profile edit.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{
		"name":  normalize.Name(upd.Name),
		"batch": strings.TrimSpace(upd.Batch),
	}
	if upd.DailyGoalTotal > 0 {
		set["daily_goal_total"] = upd.DailyGoalTotal
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TouchLastLogin stamps last_login on a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$currentDate": bson.M{"last_login": true},
	})
	return err
}

// Delete removes a profile. Account removal is handled separately by the
// accounts store.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
