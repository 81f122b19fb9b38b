// Package gates enforces the account intake policy: only school email
// domains may hold an account, and a profile is provisioned the moment an
// account is accepted.
//
// The check runs at account creation rather than at login so a disallowed
// identity never persists. Rejection is all-or-nothing: the offending
// account is deleted and no profile is ever written for it.
package gates

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/system/normalize"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

// ErrDomainNotAllowed is returned when an email's domain is not on the
// allow-list. The account that triggered it has already been removed.
var ErrDomainNotAllowed = errors.New("email domain is not allowed")

// AccountStore is the slice of the account store the gate needs.
type AccountStore interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileStore is the slice of the user store the gate needs.
type ProfileStore interface {
	CreateDefault(ctx context.Context, id primitive.ObjectID, email, name string) (models.User, error)
}

// Gate checks new accounts against the configured email-domain allow-list
// and provisions the default profile for accepted ones.
type Gate struct {
	allowed  []string
	accounts AccountStore
	profiles ProfileStore
	log      *zap.Logger
}

// New builds a Gate. Allowed domains are compared case-insensitively and
// may be given with or without a leading "@".
func New(allowedDomains []string, accounts AccountStore, profiles ProfileStore, log *zap.Logger) *Gate {
	allowed := make([]string, 0, len(allowedDomains))
	for _, d := range allowedDomains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "@")
		if d != "" {
			allowed = append(allowed, d)
		}
	}
	return &Gate{allowed: allowed, accounts: accounts, profiles: profiles, log: log}
}

// EmailAllowed reports whether the email's domain is on the allow-list.
// A malformed address (no "@") is never allowed.
func (g *Gate) EmailAllowed(email string) bool {
	email = normalize.Email(email)
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	for _, d := range g.allowed {
		if domain == d {
			return true
		}
	}
	return false
}

// OnAccountCreated runs the gate for a freshly inserted account. A
// disallowed domain deletes the account and returns ErrDomainNotAllowed; an
// allowed one provisions and returns the zero-progress profile.
func (g *Gate) OnAccountCreated(ctx context.Context, a models.Account, name string) (models.User, error) {
	if !g.EmailAllowed(a.Email) {
		if err := g.accounts.Delete(ctx, a.ID); err != nil {
			g.log.Error("failed to delete rejected account",
				zap.String("account_id", a.ID.Hex()), zap.Error(err))
			return models.User{}, err
		}
		g.log.Warn("rejected account with disallowed email domain",
			zap.String("email", a.Email))
		return models.User{}, ErrDomainNotAllowed
	}

	u, err := g.profiles.CreateDefault(ctx, a.ID, a.Email, name)
	if err != nil {
		return models.User{}, err
	}
	g.log.Info("provisioned profile for new account",
		zap.String("user_id", u.ID.Hex()), zap.String("email", u.Email))
	return u, nil
}

// Domains returns a copy of the normalized allow-list, mainly for logging.
func (g *Gate) Domains() []string {
	out := make([]string, len(g.allowed))
	copy(out, g.allowed)
	return out
}
