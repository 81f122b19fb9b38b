package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vedamschool/dsahub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateStudent creates a zero-progress student profile.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		LastLogin: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return u
}

// CreateStudentWithProgress creates a student with topic scores and counters
// already populated.
func (f *Fixtures) CreateStudentWithProgress(ctx context.Context, name, email string, rank, solved int, progress map[string]int) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:              primitive.NewObjectID(),
		Email:           email,
		Name:            name,
		SolvedCount:     solved,
		LeaderboardRank: rank,
		DSAProgress:     progress,
		CreatedAt:       now,
		LastLogin:       now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return u
}

// CreateQuestion creates one catalog question.
func (f *Fixtures) CreateQuestion(ctx context.Context, title, topic, difficulty string) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Topic:      topic,
		Difficulty: difficulty,
		ClassDate:  time.Now().UTC().Format("2006-01-02"),
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateAccount creates a password account with the given plaintext password
// hashed the way the real signup path hashes it.
func (f *Fixtures) CreateAccount(ctx context.Context, email, password string) models.Account {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
		AuthMethod:   "password",
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}
