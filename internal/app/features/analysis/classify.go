package analysis

import (
	"sort"
	"strings"

	"github.com/vedamschool/dsahub/internal/domain/models"
)

// Topic is one classified topic with its display name and score.
type Topic struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Classification buckets a student's topics by mastery. All three lists
// empty is the defined empty state for a brand-new student.
type Classification struct {
	Weak   []Topic `json:"weak"`
	Medium []Topic `json:"medium"`
	Strong []Topic `json:"strong"`
}

// Band thresholds. A score of 70 or more is strong, 40 to 69 is medium,
// anything below 40 is weak.
const (
	strongThreshold = 70
	mediumThreshold = 40
)

// legacyStrongScore is the score assigned to a legacy strong-list topic
// that has no entry in the progress map.
const legacyStrongScore = 85

// Classify buckets the progress map into weak/medium/strong and then folds
// in the legacy name lists. The legacy merge is additive only: a name that
// already has a score-based placement (after capitalization,
// case-sensitively) is skipped, whichever band the score put it in.
func Classify(progress map[string]int, legacyWeak, legacyStrong []string) Classification {
	var c Classification

	for _, topic := range topicsInOrder(progress) {
		t := Topic{Name: FormatTopicName(topic), Score: progress[topic]}
		switch {
		case t.Score >= strongThreshold:
			c.Strong = append(c.Strong, t)
		case t.Score >= mediumThreshold:
			c.Medium = append(c.Medium, t)
		default:
			c.Weak = append(c.Weak, t)
		}
	}

	for _, name := range legacyWeak {
		t := Topic{Name: FormatTopicName(name), Score: 0}
		if !c.hasName(t.Name) {
			c.Weak = append(c.Weak, t)
		}
	}
	for _, name := range legacyStrong {
		t := Topic{Name: FormatTopicName(name), Score: legacyStrongScore}
		if !c.hasName(t.Name) {
			c.Strong = append(c.Strong, t)
		}
	}

	return c
}

func (c Classification) hasName(name string) bool {
	return containsName(c.Weak, name) || containsName(c.Medium, name) || containsName(c.Strong, name)
}

// ClassifyUser is the convenience form used by the handler.
func ClassifyUser(u *models.User) Classification {
	return Classify(u.DSAProgress, u.WeakTopics, u.StrongTopics)
}

// FormatTopicName capitalizes the first letter of a topic for display
// ("arrays" becomes "Arrays").
func FormatTopicName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// topicsInOrder returns the progress map's keys in a stable order: the
// fixed vocabulary first, then any stray keys sorted.
func topicsInOrder(progress map[string]int) []string {
	if len(progress) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(progress))
	out := make([]string, 0, len(progress))
	for _, t := range models.Topics {
		if _, ok := progress[t]; ok {
			out = append(out, t)
			seen[t] = true
		}
	}
	var extra []string
	for k := range progress {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func containsName(ts []Topic, name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}
