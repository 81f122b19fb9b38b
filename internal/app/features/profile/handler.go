// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/features/shared"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/authz"
	"github.com/vedamschool/dsahub/internal/app/system/htmlsanitize"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
)

// Handler owns the self-service profile endpoints.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

// ServeProfile handles GET /api/profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			shared.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		shared.Internal(w, h.Log, "load profile", err)
		return
	}

	shared.JSON(w, http.StatusOK, u)
}

type updateRequest struct {
	Name           string `json:"name"`
	Batch          string `json:"batch"`
	DailyGoalTotal int    `json:"daily_goal_total"`
}

// HandleUpdate handles PUT /api/profile. Email and the progress counters
// are not editable here.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req updateRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = htmlsanitize.PlainText(req.Name)
	if req.Name == "" {
		shared.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.DailyGoalTotal < 0 {
		shared.Error(w, http.StatusBadRequest, "daily goal must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd := userstore.ProfileUpdate{
		Name:           req.Name,
		Batch:          htmlsanitize.PlainText(req.Batch),
		DailyGoalTotal: req.DailyGoalTotal,
	}
	if err := h.Users.UpdateProfile(ctx, uid, upd); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			shared.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		shared.Internal(w, h.Log, "update profile", err)
		return
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		shared.Internal(w, h.Log, "reload profile", err)
		return
	}
	shared.JSON(w, http.StatusOK, u)
}
