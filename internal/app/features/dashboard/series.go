package dashboard

import (
	"math/rand"
	"time"

	"github.com/vedamschool/dsahub/internal/domain/models"
)

// seriesDays is the length of the synthesized fallback chart.
const seriesDays = 7

// Bounds for synthesized points. Solved is in [5,20), avg in [40,60), the
// same ranges the original demo charts used.
const (
	minSolved = 5
	maxSolved = 20
	minAvg    = 40
	maxAvg    = 60
)

// SynthesizeSeries builds the fallback performance series: one point per
// calendar day for the last seriesDays days, ending today (UTC), dates
// strictly ascending.
func SynthesizeSeries(now time.Time) []models.PerformancePoint {
	now = now.UTC()
	series := make([]models.PerformancePoint, 0, seriesDays)
	for i := seriesDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		series = append(series, models.PerformancePoint{
			Date:   day.Format("2006-01-02"),
			Solved: minSolved + rand.Intn(maxSolved-minSolved),
			Avg:    minAvg + rand.Intn(maxAvg-minAvg),
		})
	}
	return series
}

// sortedSeries returns the stored series ordered ascending by date. Dates
// are YYYY-MM-DD so lexicographic order is chronological order.
func sortedSeries(points []models.PerformancePoint) []models.PerformancePoint {
	out := make([]models.PerformancePoint, len(points))
	copy(out, points)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Date < out[j-1].Date; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
