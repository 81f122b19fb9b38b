// internal/app/features/questions/handler.go
package questions

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/vedamschool/dsahub/internal/app/features/shared"
	questionstore "github.com/vedamschool/dsahub/internal/app/store/questions"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/authz"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
	"github.com/vedamschool/dsahub/internal/domain/models"
)

type Handler struct {
	Questions *questionstore.Store
	Users     *userstore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Questions: questionstore.New(db),
		Users:     userstore.New(db),
		Log:       logger,
	}
}

// Row is one catalog question merged with the caller's completion status.
type Row struct {
	models.Question
	Status string `json:"status"` // done | todo
}

type listResponse struct {
	Questions  []Row  `json:"questions"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	PrevCursor string `json:"prev_cursor,omitempty"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// ServeList handles GET /api/questions. Completion is derived from the
// caller's solve history by title, so questions added after a solve still
// show as done when the titles match.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Questions.List(ctx,
		query.Get(r, "topic"), query.Get(r, "before"), query.Get(r, "after"))
	if err != nil {
		shared.Internal(w, h.Log, "list questions", err)
		return
	}

	solved := map[string]bool{}
	if u, err := h.Users.GetByID(ctx, userID); err == nil {
		for _, s := range u.SolvedHistory {
			solved[s.Title] = true
		}
	} else if err != mongo.ErrNoDocuments {
		shared.Internal(w, h.Log, "load profile for question list", err)
		return
	}

	rows := make([]Row, 0, len(page.Questions))
	for _, q := range page.Questions {
		status := "todo"
		if solved[q.Title] {
			status = "done"
		}
		rows = append(rows, Row{Question: q, Status: status})
	}

	shared.JSON(w, http.StatusOK, listResponse{
		Questions:  rows,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		PrevCursor: page.PrevCursor,
		NextCursor: page.NextCursor,
	})
}

// HandleSolve handles POST /api/questions/{id}/solve: it marks the catalog
// question done for the caller through one atomic stats update. Solving a
// question whose title is already in the history is rejected.
func (h *Handler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	qid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid question id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Questions.GetByID(ctx, qid)
	if err == mongo.ErrNoDocuments {
		shared.Error(w, http.StatusNotFound, "question not found")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "load question", err)
		return
	}

	h.applySolve(ctx, w, userID, q.Title, q.Topic)
}

type solveRequest struct {
	Title string `json:"title"`
	Topic string `json:"topic"`
}

// HandleAdHocSolve handles POST /api/solves for titles outside the catalog
// (the original tracked LeetCode problems the class never assigned).
func (h *Handler) HandleAdHocSolve(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req solveRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		shared.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.applySolve(ctx, w, userID, req.Title, req.Topic)
}

func (h *Handler) applySolve(ctx context.Context, w http.ResponseWriter, userID primitive.ObjectID, title, topic string) {
	u, err := h.Users.GetByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		shared.Error(w, http.StatusNotFound, "no profile for this user")
		return
	}
	if err != nil {
		shared.Internal(w, h.Log, "load profile for solve", err)
		return
	}
	if u.HasSolved(strings.TrimSpace(title)) {
		shared.Error(w, http.StatusConflict, "question already solved")
		return
	}

	day := time.Now().UTC().Format("2006-01-02")
	if err := h.Users.ApplySolve(ctx, userID, title, topic, day); err != nil {
		shared.Internal(w, h.Log, "apply solve", err)
		return
	}

	h.Log.Info("solve recorded",
		zap.String("user_id", userID.Hex()), zap.String("title", strings.TrimSpace(title)))

	updated, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		shared.Internal(w, h.Log, "reload profile after solve", err)
		return
	}
	shared.JSON(w, http.StatusOK, updated)
}
