package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vedamschool/dsahub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "test-session", "", false, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestCurrentUser_NotSet(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user in a bare request")
	}
}

func TestWithTestUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Name: "Student", Email: "s@vedam.org"})

	u, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if u.Name != "Student" || u.Email != "s@vedam.org" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestRequireSignedIn_API_Unauthorized(t *testing.T) {
	m := newManager(t)

	called := false
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Error("next handler should not run for unauthenticated request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireSignedIn_HTML_Redirect(t *testing.T) {
	m := newManager(t)

	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fdashboard" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireSignedIn_PassesThrough(t *testing.T) {
	m := newManager(t)

	called := false
	h := m.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Error("next handler should run for authenticated request")
	}
}

func TestSignInThenLoad(t *testing.T) {
	m := newManager(t)

	// Sign in and capture the cookie.
	signinReq := httptest.NewRequest("POST", "/api/login", nil)
	signinRec := httptest.NewRecorder()
	if err := m.SignIn(signinRec, signinReq, "507f1f77bcf86cd799439011"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	// Replay the cookie through LoadSessionUser (no fetcher: raw ID only).
	var got *auth.SessionUser
	h := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/api/userinfo", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after sign-in")
	}
	if got.ID != "507f1f77bcf86cd799439011" {
		t.Errorf("user ID: got %q", got.ID)
	}
}
