// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/vedamschool/dsahub/internal/app/features/shared"
	leaderboardstore "github.com/vedamschool/dsahub/internal/app/store/leaderboard"
	"github.com/vedamschool/dsahub/internal/app/system/authz"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
)

type Handler struct {
	Board *leaderboardstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Board: leaderboardstore.New(db),
		Log:   logger,
	}
}

type response struct {
	Entries []leaderboardstore.Entry `json:"entries"`
	Me      *leaderboardstore.Entry  `json:"me,omitempty"`
}

// ServeBoard handles GET /api/leaderboard. Clients poll this endpoint; the
// original's live subscription is replaced by re-reads.
func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	limit := 0
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Board.Top(ctx, limit)
	if err != nil {
		shared.Internal(w, h.Log, "load leaderboard", err)
		return
	}

	resp := response{Entries: entries}
	for i := range entries {
		if entries[i].UserID == userID {
			resp.Me = &entries[i]
			break
		}
	}

	// A caller ranked below the window still gets their own row, so
	// clients never need a second query.
	if resp.Me == nil {
		me, err := h.Board.EntryFor(ctx, userID)
		if err != nil && err != mongo.ErrNoDocuments {
			shared.Internal(w, h.Log, "load caller's board entry", err)
			return
		}
		if err == nil {
			resp.Me = me
		}
	}

	shared.JSON(w, http.StatusOK, resp)
}
