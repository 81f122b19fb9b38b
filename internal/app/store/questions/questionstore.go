package questionstore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vedamschool/dsahub/internal/app/system/normalize"
	"github.com/vedamschool/dsahub/internal/app/system/paging"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("questions")}
}

// GetByID loads a catalog question. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Insert adds a new catalog question.
func (s *Store) Insert(ctx context.Context, q models.Question) (models.Question, error) {
	q.ID = primitive.NewObjectID()
	q.Title = strings.TrimSpace(q.Title)
	q.Topic = normalize.Topic(q.Topic)
	q.CreatedAt = time.Now()
	if _, err := s.c.InsertOne(ctx, q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// ListPage is one keyset-paginated window of the question catalog,
// ordered by class date then insertion order.
type ListPage struct {
	Questions  []models.Question
	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
}

// List returns a page of the catalog. topic filters to a single topic when
// non-empty. before/after are opaque cursors from a previous page.
func (s *Store) List(ctx context.Context, topic, before, after string) (ListPage, error) {
	filter := bson.M{}
	if topic != "" {
		filter["topic"] = normalize.Topic(topic)
	}

	cfg := paging.ConfigureKeyset(before, after)
	if window := cfg.KeysetWindow("class_date"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}

	find := options.Find()
	cfg.ApplyToFind(find, "class_date")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return ListPage{}, err
	}
	defer cur.Close(ctx)

	var rows []models.Question
	if err := cur.All(ctx, &rows); err != nil {
		return ListPage{}, err
	}

	res := paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(q models.Question) string { return q.ClassDate },
		func(q models.Question) primitive.ObjectID { return q.ID },
	)

	return ListPage{
		Questions:  rows,
		HasPrev:    res.HasPrev,
		HasNext:    res.HasNext,
		PrevCursor: prev,
		NextCursor: next,
	}, nil
}
