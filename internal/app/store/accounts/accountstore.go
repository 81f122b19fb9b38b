package accountstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vedamschool/dsahub/internal/app/system/normalize"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

var (
	// ErrDuplicateEmail is returned when an account with the email already exists.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	errEmptyPassword  = errors.New("password must not be empty")
)

// CreatePassword inserts a password-based account with a bcrypt hash.
func (s *Store) CreatePassword(ctx context.Context, email, password string) (models.Account, error) {
	if password == "" {
		return models.Account{}, errEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}

	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		PasswordHash: string(hash),
		AuthMethod:   "password",
		CreatedAt:    time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// CreateGoogle inserts an account backed by a Google identity.
func (s *Store) CreateGoogle(ctx context.Context, email, googleID string) (models.Account, error) {
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		AuthMethod:   "google",
		AuthReturnID: &googleID,
		CreatedAt:    time.Now(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// GetByEmail looks up an account by normalized email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByGoogleID looks up an account by its Google subject identifier.
func (s *Store) GetByGoogleID(ctx context.Context, googleID string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"auth_return_id": googleID}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// LinkGoogleID attaches a Google subject id to an existing account so a
// student who signed up with a password can later use Google sign-in.
func (s *Store) LinkGoogleID(ctx context.Context, id primitive.ObjectID, googleID string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"auth_return_id": googleID},
	})
	return err
}

// VerifyPassword checks a plaintext password against the stored hash.
func (s *Store) VerifyPassword(a *models.Account, password string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// Delete removes an account. The access gate calls this when rejecting a
// disallowed email domain so no identity survives the rejection.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
