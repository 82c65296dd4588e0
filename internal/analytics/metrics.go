// Package analytics derives statistics, badges, and insight cards from a
// book collection. Every function is pure: it takes a read-only snapshot
// and trusts the store to have clamped record invariants already.
package analytics

import (
	"math"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

// ComputeMetrics reduces the collection into summary counts. Total: an
// empty collection yields all-zero metrics with empty (non-nil) maps.
func ComputeMetrics(books []model.Book) model.Metrics {
	m := model.Metrics{
		Total:           len(books),
		GenreCounts:     map[string]int{},
		ReadGenreCounts: map[string]int{},
	}
	ratingSum := 0
	for _, b := range books {
		switch {
		case b.Read:
			m.ReadCount++
			m.ReadGenreCounts[b.Genre]++
		case b.PagesRead == 0:
			m.UnreadCount++
		default:
			m.InProgressCount++
		}
		m.TotalPagesRead += b.PagesRead
		if b.Rating != 0 {
			m.RatedCount++
			ratingSum += b.Rating
		}
		m.GenreCounts[b.Genre]++
	}
	if m.RatedCount > 0 {
		avg := round1(float64(ratingSum) / float64(m.RatedCount))
		m.AvgRating = &avg
	}
	return m
}

// CountMonthlyRead counts completions that fall in now's local calendar month.
func CountMonthlyRead(books []model.Book, now time.Time) int {
	count := 0
	for _, b := range books {
		if b.DateRead == "" {
			continue
		}
		day, err := time.ParseInLocation(model.DayFormat, b.DateRead, now.Location())
		if err != nil {
			continue
		}
		if day.Year() == now.Year() && day.Month() == now.Month() {
			count++
		}
	}
	return count
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
