package leaderboardstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vedamschool/dsahub/internal/domain/models"
)

// DefaultLimit bounds a leaderboard read; cohorts are small so one page
// covers the whole class.
const DefaultLimit = 100

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Entry is one leaderboard row. Points are derived, not stored: a solved
// question is always worth ten points, so recomputing on read keeps the
// board consistent with the counters.
type Entry struct {
	UserID     primitive.ObjectID `json:"user_id"`
	Rank       int                `json:"rank"`
	Name       string             `json:"name"`
	Batch      string             `json:"batch,omitempty"`
	AvatarSeed string             `json:"avatar_seed,omitempty"`
	Solved     int                `json:"solved"`
	Points     int                `json:"points"`
}

// boardProjection limits board reads to the fields a row needs.
var boardProjection = bson.M{
	"_id":              1,
	"name":             1,
	"batch":            1,
	"avatar_seed":      1,
	"solved_count":     1,
	"leaderboard_rank": 1,
}

// Top returns the leaderboard ordered by ascending stored rank, tie-broken
// by insertion order. limit <= 0 falls back to DefaultLimit.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	find := options.Find().
		SetSort(bson.D{{Key: "leaderboard_rank", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(boardProjection)

	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.User
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, u := range rows {
		entries = append(entries, entryFromUser(u))
	}
	return entries, nil
}

// EntryFor returns one student's board row, for callers ranked below the
// returned window. mongo.ErrNoDocuments passes through when the caller has
// no profile.
func (s *Store) EntryFor(ctx context.Context, userID primitive.ObjectID) (*Entry, error) {
	opts := options.FindOne().SetProjection(boardProjection)

	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&u); err != nil {
		return nil, err
	}
	e := entryFromUser(u)
	return &e, nil
}

func entryFromUser(u models.User) Entry {
	return Entry{
		UserID:     u.ID,
		Rank:       u.LeaderboardRank,
		Name:       u.Name,
		Batch:      u.Batch,
		AvatarSeed: u.AvatarSeed,
		Solved:     u.SolvedCount,
		Points:     u.SolvedCount * 10,
	}
}
