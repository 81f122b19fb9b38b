// internal/app/features/analysis/handler.go
package analysis

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/features/shared"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/authz"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
)

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

// ServeAnalysis returns the caller's weak/medium/strong topic breakdown.
// A missing profile yields the empty classification, not an error.
func (h *Handler) ServeAnalysis(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		shared.JSON(w, http.StatusOK, Classification{})
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "load profile for analysis", err)
		return
	}

	shared.JSON(w, http.StatusOK, ClassifyUser(u))
}
