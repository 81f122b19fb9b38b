// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/features/shared"
	accountstore "github.com/vedamschool/dsahub/internal/app/store/accounts"
	loginstore "github.com/vedamschool/dsahub/internal/app/store/logins"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/auth"
	"github.com/vedamschool/dsahub/internal/app/system/authutil"
	"github.com/vedamschool/dsahub/internal/app/system/gates"
	"github.com/vedamschool/dsahub/internal/app/system/normalize"
	"github.com/vedamschool/dsahub/internal/app/system/ratelimit"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
)

type Handler struct {
	Accounts   *accountstore.Store
	Users      *userstore.Store
	Logins     *loginstore.Store
	Gate       *gates.Gate
	SessionMgr *auth.SessionManager
	Limits     *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, gate *gates.Gate, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts:   accountstore.New(db),
		Users:      userstore.New(db),
		Logins:     loginstore.New(db),
		Gate:       gate,
		SessionMgr: sessionMgr,
		Limits:     ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup creates an account, runs the intake gate, and on acceptance
// provisions the profile and opens a session. A disallowed domain answers
// 403 and leaves no trace of the identity.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if normalize.Email(req.Email) == "" || req.Password == "" {
		shared.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error()+". "+authutil.PasswordRules())
		return
	}
	if ok, msg := h.Limits.Check(r, req.Email); !ok {
		shared.Error(w, http.StatusTooManyRequests, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	account, err := h.Accounts.CreatePassword(ctx, req.Email, req.Password)
	if err == accountstore.ErrDuplicateEmail {
		shared.Error(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "create account", err)
		return
	}

	u, err := h.Gate.OnAccountCreated(ctx, account, req.Name)
	if err == gates.ErrDomainNotAllowed {
		shared.Error(w, http.StatusForbidden, "only school email addresses may register")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "provision profile", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		shared.Internal(w, h.Log, "open session after signup", err)
		return
	}
	if err := h.Logins.CreateFrom(ctx, r, u.ID, "password"); err != nil {
		h.Log.Warn("failed to record signup login", zap.Error(err))
	}

	h.Log.Info("student signed up", zap.String("user_id", u.ID.Hex()))
	shared.JSON(w, http.StatusCreated, u)
}

// HandleLogin verifies credentials and opens a session.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ok, msg := h.Limits.Check(r, req.Email); !ok {
		shared.Error(w, http.StatusTooManyRequests, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	account, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		shared.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "look up account", err)
		return
	}
	if !h.Accounts.VerifyPassword(account, req.Password) {
		shared.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, account.ID.Hex()); err != nil {
		shared.Internal(w, h.Log, "open session", err)
		return
	}
	h.Limits.ResetEmail(req.Email)

	if err := h.Users.TouchLastLogin(ctx, account.ID); err != nil {
		h.Log.Warn("failed to bump last_login", zap.Error(err))
	}
	if err := h.Logins.CreateFrom(ctx, r, account.ID, "password"); err != nil {
		h.Log.Warn("failed to record login", zap.Error(err))
	}

	u, err := h.Users.GetByID(ctx, account.ID)
	if err != nil {
		shared.Internal(w, h.Log, "load profile after login", err)
		return
	}
	shared.JSON(w, http.StatusOK, u)
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("failed to clear session", zap.Error(err))
	}
	shared.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
