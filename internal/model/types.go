// Package model defines shared data structures.
package model

import "time"

// DayFormat is the calendar-day layout used for completion dates.
// Days are always the viewer's local calendar days, never UTC.
const DayFormat = "2006-01-02"

// Day formats a time as a local calendar day.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Genres is the canonical genre list. Its order is the tie-break for
// equal counts and the lookup order for untried-genre suggestions.
var Genres = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy",
	"Mystery", "Thriller", "Biography", "History",
	"Self-Help", "Romance", "Horror", "Poetry", "Other",
}

// KnownGenre reports whether the label is in the canonical genre list.
func KnownGenre(label string) bool {
	for _, g := range Genres {
		if g == label {
			return true
		}
	}
	return false
}

// Book is one tracked book record.
type Book struct {
	ID         string
	Title      string
	Author     string
	Genre      string
	TotalPages int
	PagesRead  int
	Read       bool
	Rating     int    // 1-5, 0 when unrated
	DateRead   string // local calendar day (DayFormat), empty when unread
	AddedAt    time.Time
	Color      int // decorative index 0-5, chosen once at creation
}

// Settings holds user preferences. MonthlyGoal of 0 means no goal set.
type Settings struct {
	MonthlyGoal int
}

// Metrics summarizes a book collection.
type Metrics struct {
	Total           int
	ReadCount       int
	UnreadCount     int
	InProgressCount int
	TotalPagesRead  int
	AvgRating       *float64 // one decimal, nil when no book is rated
	RatedCount      int
	GenreCounts     map[string]int
	ReadGenreCounts map[string]int
}

// GenreStat is a ranked genre share row.
type GenreStat struct {
	Label string
	Count int
	Pct   float64
	Color string
}

// Badge is an achievement recomputed from current stats, never persisted.
type Badge struct {
	ID     string
	Icon   string
	Label  string
	Earned bool
}

// Insight is a short generated dashboard card.
type Insight struct {
	Icon  string
	Title string
	Text  string
}

// Persona describes the reader personality derived from genre spread.
type Persona struct {
	Name   string
	Icon   string
	Accent string
	Desc   string
}

// Habit is one observation about reading habits.
type Habit struct {
	Icon string
	Text string
}

// Motivation is a goal- or streak-driven encouragement message.
type Motivation struct {
	Icon string
	Text string
	Tone string
}

// Pick is a curated book suggestion.
type Pick struct {
	Title  string
	Author string
	Reason string
}
