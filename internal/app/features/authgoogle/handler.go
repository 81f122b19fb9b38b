// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"

	accountstore "github.com/vedamschool/dsahub/internal/app/store/accounts"
	loginstore "github.com/vedamschool/dsahub/internal/app/store/logins"
	"github.com/vedamschool/dsahub/internal/app/store/oauthstate"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/auth"
	"github.com/vedamschool/dsahub/internal/app/system/gates"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

// Handler handles Google OAuth authentication.
type Handler struct {
	Accounts   *accountstore.Store
	Users      *userstore.Store
	Logins     *loginstore.Store
	Gate       *gates.Gate
	SessionMgr *auth.SessionManager
	StateStore *oauthstate.Store
	Log        *zap.Logger

	// OAuth configuration
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://dsahub.vedamschool.tech/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	db *mongo.Database,
	gate *gates.Gate,
	sessionMgr *auth.SessionManager,
	stateStore *oauthstate.Store,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Accounts:     accountstore.New(db),
		Users:        userstore.New(db),
		Logins:       loginstore.New(db),
		Gate:         gate,
		SessionMgr:   sessionMgr,
		StateStore:   stateStore,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: it stores a one-time state and
// redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	returnURL := query.Get(r, "return")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)

	h.Log.Debug("initiating Google OAuth flow",
		zap.String("redirect_url", url),
		zap.String("return_url", returnURL))

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: it validates the state,
// exchanges the code, resolves or provisions the account (running the
// intake gate for identities never seen before), and opens a session.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	returnURL, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	account, err := h.resolveAccount(ctx, googleUser)
	if err == gates.ErrDomainNotAllowed {
		h.Log.Info("Google OAuth: domain not allowed",
			zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=domain_not_allowed", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.Log.Error("failed to resolve Google account", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, account.ID.Hex()); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", account.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	if err := h.Users.TouchLastLogin(ctx, account.ID); err != nil {
		h.Log.Warn("failed to bump last_login", zap.Error(err))
	}
	if err := h.Logins.CreateFrom(ctx, r, account.ID, "google"); err != nil {
		h.Log.Warn("failed to record login", zap.Error(err))
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", account.ID.Hex()),
		zap.String("email", account.Email))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/dashboard"), http.StatusSeeOther)
}

// resolveAccount maps a Google identity to an account: by Google subject id
// first, then by email (linking the subject id), and finally by creating a
// fresh account that must pass the intake gate.
func (h *Handler) resolveAccount(ctx context.Context, gu *googleUserInfo) (*models.Account, error) {
	account, err := h.Accounts.GetByGoogleID(ctx, gu.ID)
	if err == nil {
		return account, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	account, err = h.Accounts.GetByEmail(ctx, gu.Email)
	if err == nil {
		if linkErr := h.Accounts.LinkGoogleID(ctx, account.ID, gu.ID); linkErr != nil {
			h.Log.Warn("failed to link Google id",
				zap.Error(linkErr), zap.String("account_id", account.ID.Hex()))
		}
		return account, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Never seen: check the domain before any write so nothing has to be
	// rolled back for the common rejection case.
	if !h.Gate.EmailAllowed(gu.Email) {
		return nil, gates.ErrDomainNotAllowed
	}

	created, err := h.Accounts.CreateGoogle(ctx, gu.Email, gu.ID)
	if err != nil {
		return nil, err
	}
	if _, err := h.Gate.OnAccountCreated(ctx, created, gu.Name); err != nil {
		return nil, err
	}
	return &created, nil
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
