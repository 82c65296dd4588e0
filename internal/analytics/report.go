package analytics

import (
	"context"
	"time"

	"github.com/anserk/bookmind/internal/model"
	"github.com/anserk/bookmind/internal/store"
)

// Report contains every derived statistic for one snapshot of the library.
type Report struct {
	Books       []model.Book
	Settings    model.Settings
	Metrics     model.Metrics
	Streak      int
	MonthlyRead int
	GenreStats  []model.GenreStat
	Recommended string
	Badges      []model.Badge
	Insights    []model.Insight
	Persona     model.Persona
	Habit       model.Habit
	Motivation  model.Motivation
}

// BuildReport loads one snapshot from the store and runs the full
// derivation pipeline. Called after every mutation and on every render,
// so dashboards never see stale numbers.
func BuildReport(ctx context.Context, st *store.Store, now time.Time) (Report, error) {
	books, err := st.LoadBooks(ctx)
	if err != nil {
		return Report{}, err
	}
	settings, err := st.LoadSettings(ctx)
	if err != nil {
		return Report{}, err
	}
	return Derive(books, settings, now), nil
}

// Derive computes a full report from an in-memory snapshot.
func Derive(books []model.Book, settings model.Settings, now time.Time) Report {
	metrics := ComputeMetrics(books)
	streak := ComputeStreak(books, now)
	monthly := CountMonthlyRead(books, now)
	return Report{
		Books:       books,
		Settings:    settings,
		Metrics:     metrics,
		Streak:      streak,
		MonthlyRead: monthly,
		GenreStats:  BuildGenreStats(metrics.GenreCounts),
		Recommended: RecommendGenre(metrics.ReadGenreCounts),
		Badges:      ComputeBadges(metrics, settings, streak, monthly),
		Insights:    BuildInsights(books, metrics, settings, streak, monthly),
		Persona:     ReaderPersona(metrics),
		Habit:       ReadingHabit(books, metrics, now.Location()),
		Motivation:  Motivate(books, metrics, settings, now),
	}
}
