// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vedamschool/dsahub/internal/app/features/analysis"
	"github.com/vedamschool/dsahub/internal/app/features/shared"
	userstore "github.com/vedamschool/dsahub/internal/app/store/users"
	"github.com/vedamschool/dsahub/internal/app/system/authz"
	"github.com/vedamschool/dsahub/internal/app/system/timeouts"
	"github.com/vedamschool/dsahub/internal/domain/models"
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

// Summary is the headline stats block of the dashboard.
type Summary struct {
	TotalSolved int `json:"total_solved"`
	Accuracy    int `json:"accuracy"`
	Streak      int `json:"streak"`
	SolvedToday int `json:"solved_today"`
	DailyGoal   int `json:"daily_goal"`
}

// TopicBar is one of the six fixed progress bars.
type TopicBar struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// View is the full dashboard payload.
type View struct {
	Summary     Summary                   `json:"summary"`
	Topics      []TopicBar                `json:"topics"`
	Performance []models.PerformancePoint `json:"performance"`
}

// ServeDashboard aggregates the caller's profile into the dashboard view.
// A missing profile is the valid new-user state: zeroed summary, zeroed
// bars, and a synthesized series that is not persisted.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil && err != mongo.ErrNoDocuments {
		shared.Internal(w, h.Log, "load profile for dashboard", err)
		return
	}

	view := h.buildView(ctx, u)
	shared.JSON(w, http.StatusOK, view)
}

// buildView assembles the dashboard from a profile; u == nil means no
// profile exists yet.
func (h *Handler) buildView(ctx context.Context, u *models.User) View {
	var view View

	if u != nil {
		view.Summary = Summary{
			TotalSolved: u.SolvedCount,
			Accuracy:    u.Accuracy,
			Streak:      u.Streak,
			SolvedToday: u.DailyGoalProgress,
			DailyGoal:   u.DailyGoalTotal,
		}
	}
	if view.Summary.DailyGoal == 0 {
		view.Summary.DailyGoal = 5
	}

	view.Topics = make([]TopicBar, 0, len(models.Topics))
	for _, topic := range models.Topics {
		score := 0
		if u != nil {
			score = u.TopicScore(topic)
		}
		view.Topics = append(view.Topics, TopicBar{
			Name:  analysis.FormatTopicName(topic),
			Score: score,
		})
	}

	if u != nil && len(u.Performance) > 0 {
		view.Performance = sortedSeries(u.Performance)
		return view
	}

	view.Performance = SynthesizeSeries(time.Now())
	if u != nil {
		// Persist so the chart is stable across reloads. A concurrent
		// double-synthesis is last-write-wins, which is acceptable here.
		if err := h.Users.SavePerformanceSeries(ctx, u.ID, view.Performance); err != nil {
			h.Log.Warn("failed to persist synthesized performance series",
				zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
	}
	return view
}
