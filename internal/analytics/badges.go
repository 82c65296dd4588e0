package analytics

import (
	"github.com/anserk/bookmind/internal/model"
)

// badgeStats is the derived tuple badge predicates evaluate against.
type badgeStats struct {
	readCount      int
	totalPagesRead int
	uniqueGenres   int
	goalMet        bool
	streak         int
}

type badgeDef struct {
	id    string
	icon  string
	label string
	check func(badgeStats) bool
}

// badgeCatalog is fixed and ordered; output preserves this order.
var badgeCatalog = []badgeDef{
	{id: "first_book", icon: "📖", label: "First Book", check: func(s badgeStats) bool { return s.readCount >= 1 }},
	{id: "five_books", icon: "🔥", label: "5 Books", check: func(s badgeStats) bool { return s.readCount >= 5 }},
	{id: "ten_books", icon: "🏆", label: "10 Books", check: func(s badgeStats) bool { return s.readCount >= 10 }},
	{id: "fifty_books", icon: "📚", label: "50 Books", check: func(s badgeStats) bool { return s.readCount >= 50 }},
	{id: "goal_crusher", icon: "🌟", label: "Goal Crusher", check: func(s badgeStats) bool { return s.goalMet }},
	{id: "explorer", icon: "🗺️", label: "Genre Explorer", check: func(s badgeStats) bool { return s.uniqueGenres >= 4 }},
	{id: "pages_1k", icon: "📄", label: "1K Pages", check: func(s badgeStats) bool { return s.totalPagesRead >= 1000 }},
	{id: "pages_10k", icon: "💪", label: "10K Pages", check: func(s badgeStats) bool { return s.totalPagesRead >= 10000 }},
	{id: "streak_3", icon: "⚡", label: "3-Day Streak", check: func(s badgeStats) bool { return s.streak >= 3 }},
	{id: "streak_7", icon: "🔆", label: "7-Day Streak", check: func(s badgeStats) bool { return s.streak >= 7 }},
}

// ComputeBadges evaluates the badge catalog against current stats. Earned
// status is recomputed fresh on every call, never persisted, so deleting
// books can un-earn a badge.
func ComputeBadges(metrics model.Metrics, settings model.Settings, streak, monthlyRead int) []model.Badge {
	stats := badgeStats{
		readCount:      metrics.ReadCount,
		totalPagesRead: metrics.TotalPagesRead,
		uniqueGenres:   len(metrics.ReadGenreCounts),
		goalMet:        settings.MonthlyGoal > 0 && monthlyRead >= settings.MonthlyGoal,
		streak:         streak,
	}
	out := make([]model.Badge, 0, len(badgeCatalog))
	for _, def := range badgeCatalog {
		out = append(out, model.Badge{
			ID:     def.id,
			Icon:   def.icon,
			Label:  def.label,
			Earned: def.check(stats),
		})
	}
	return out
}
