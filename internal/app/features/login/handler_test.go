package login_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/features/login"
	"github.com/vedamschool/dsahub/internal/app/system/auth"
	"github.com/vedamschool/dsahub/internal/app/system/authutil"
	"github.com/vedamschool/dsahub/internal/app/system/gates"
	accountstore "github.com/vedamschool/dsahub/internal/app/store/accounts"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newTestHandler(t *testing.T, db *mongo.Database) *login.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "dsahub_test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	gate := gates.New([]string{"vedam.org", "vedamschool.tech"},
		accountstore.New(db), userstore.New(db), zap.NewNop())
	return login.NewHandler(db, gate, sm, zap.NewNop())
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleSignup_AllowedDomain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleSignup, "/api/signup",
		`{"email":"a@vedam.org","password":"s3cret-pass","name":"Asha"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var profile map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if profile["email"] != "a@vedam.org" {
		t.Errorf("profile email: %v", profile["email"])
	}
	if profile["solved_count"] != float64(0) {
		t.Errorf("solved_count: %v, want 0", profile["solved_count"])
	}

	// A session cookie is set.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie after signup")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, _ := db.Collection("users").CountDocuments(ctx, bson.M{"email": "a@vedam.org"})
	if n != 1 {
		t.Errorf("profiles in db: got %d, want 1", n)
	}
}

func TestHandleSignup_DisallowedDomain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleSignup, "/api/signup",
		`{"email":"a@gmail.com","password":"s3cret-pass","name":"A"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := db.Collection("accounts").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("accounts in db after rejection: got %d, want 0", n)
	}
	if n, _ := db.Collection("users").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("profiles in db after rejection: got %d, want 0", n)
	}
}

func TestHandleSignup_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The duplicate is caught by the unique index EnsureSchema creates in
	// production; create it here too.
	_, err := db.Collection("accounts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create unique index: %v", err)
	}

	fixtures.CreateAccount(ctx, "a@vedam.org", "other-pass")

	rec := postJSON(t, h.HandleSignup, "/api/signup",
		`{"email":"a@vedam.org","password":"s3cret-pass","name":"A"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleSignup_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleSignup, "/api/signup", `{"email":"","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleSignup, "/api/signup",
		`{"email":"a@vedam.org","password":"s3cret-pass","name":"Asha"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d", rec.Code)
	}

	rec = postJSON(t, h.HandleLogin, "/api/login",
		`{"email":"a@vedam.org","password":"s3cret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie after login")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n, _ := db.Collection("login_records").CountDocuments(ctx, bson.M{}); n < 1 {
		t.Errorf("expected at least one login record, got %d", n)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleSignup, "/api/signup",
		`{"email":"a@vedam.org","password":"s3cret-pass","name":"Asha"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d", rec.Code)
	}

	rec = postJSON(t, h.HandleLogin, "/api/login",
		`{"email":"a@vedam.org","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := postJSON(t, h.HandleLogin, "/api/login",
		`{"email":"nobody@vedam.org","password":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleSignup_WeakPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	for _, pw := range []string{"abc", "password"} {
		rec := postJSON(t, h.HandleSignup, "/api/signup",
			`{"email":"a@vedam.org","password":"`+pw+`","name":"Asha"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("password %q: got %d, want %d", pw, rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), authutil.PasswordRules()) {
			t.Errorf("password %q: error body %q missing the policy statement", pw, rec.Body.String())
		}
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	// The per-email budget is five attempts; the sixth must be rejected
	// before touching the database.
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = postJSON(t, h.HandleLogin, "/api/login",
			`{"email":"target@vedam.org","password":"wrong-pass"}`)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Errorf("sixth attempt: got %d, want %d", last.Code, http.StatusTooManyRequests)
	}
}
