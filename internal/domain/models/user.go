// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topics is the fixed vocabulary of DSA practice topics. Missing entries in
// a user's progress map are treated as 0.
var Topics = []string{"arrays", "dp", "trees", "graphs", "recursion", "bitmasking"}

// SolvedQuestion is one append-only entry in a user's solve history.
// SolvedAt is the client-observed timestamp (array elements cannot carry a
// server timestamp in a single atomic update).
type SolvedQuestion struct {
	Title    string    `bson:"title" json:"title"`
	Topic    string    `bson:"topic" json:"topic"`
	SolvedAt time.Time `bson:"solved_at" json:"solved_at"`
}

// PerformancePoint is one point of the dashboard chart series: questions
// solved on a date versus the class-average reference.
type PerformancePoint struct {
	Date   string `bson:"date" json:"date"` // YYYY-MM-DD
	Solved int    `bson:"solved" json:"solved"`
	Avg    int    `bson:"avg" json:"avg"`
}

// User is the per-student profile record. The document _id equals the
// owning account's ObjectID, so exactly one profile exists per identity.
//
// Counters (SolvedCount, Streak, LeetSolved) are increment-only and are
// mutated exclusively through atomic $inc updates in the user store.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email" json:"email"` // immutable after creation
	Name       string             `bson:"name" json:"name"`
	Batch      string             `bson:"batch,omitempty" json:"batch,omitempty"`
	AvatarSeed string             `bson:"avatar_seed,omitempty" json:"avatar_seed,omitempty"`

	SolvedCount     int `bson:"solved_count" json:"solved_count"`
	Streak          int `bson:"streak" json:"streak"`
	LeetSolved      int `bson:"leet_solved" json:"leet_solved"`
	LeaderboardRank int `bson:"leaderboard_rank" json:"leaderboard_rank"`

	Accuracy          int `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
	DailyGoalProgress int `bson:"daily_goal_progress,omitempty" json:"daily_goal_progress,omitempty"`
	DailyGoalTotal    int `bson:"daily_goal_total,omitempty" json:"daily_goal_total,omitempty"`

	// DSAProgress maps a topic name to a mastery percentage in [0,100].
	DSAProgress map[string]int `bson:"dsa_progress,omitempty" json:"dsa_progress,omitempty"`

	// Legacy fallback lists, kept from the first iteration of the data
	// model. The topic analysis merges them in when the progress map is
	// sparse; they never override a score-based placement.
	WeakTopics   []string `bson:"weak_topics,omitempty" json:"weak_topics,omitempty"`
	StrongTopics []string `bson:"strong_topics,omitempty" json:"strong_topics,omitempty"`

	// SolvedHistory grows without bound; there is currently no archival
	// policy for it (see DESIGN.md).
	SolvedHistory []SolvedQuestion `bson:"solved_history,omitempty" json:"solved_history,omitempty"`

	// PerformanceHistory accumulates a score per calendar day (UTC,
	// YYYY-MM-DD keys) via atomic increments on each solve.
	PerformanceHistory map[string]int `bson:"performance_history,omitempty" json:"performance_history,omitempty"`

	// Performance is the chart series read by the dashboard. When absent it
	// is synthesized once and persisted so subsequent reads are stable.
	Performance []PerformancePoint `bson:"performance,omitempty" json:"performance,omitempty"`

	LastSolvedAt *time.Time `bson:"last_solved_at,omitempty" json:"last_solved_at,omitempty"`
	LastActive   *time.Time `bson:"last_active,omitempty" json:"last_active,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	LastLogin time.Time `bson:"last_login" json:"last_login"`
}

// TopicScore returns the stored progress for a topic, defaulting to 0.
func (u *User) TopicScore(topic string) int {
	if u.DSAProgress == nil {
		return 0
	}
	return u.DSAProgress[topic]
}

// HasSolved reports whether a question title already appears in the solve
// history.
func (u *User) HasSolved(title string) bool {
	for _, q := range u.SolvedHistory {
		if q.Title == title {
			return true
		}
	}
	return false
}
