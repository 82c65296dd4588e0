package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

func TestReaderPersonaNewReader(t *testing.T) {
	p := ReaderPersona(ComputeMetrics(nil))
	if p.Name != "New Reader" {
		t.Fatalf("empty library should yield New Reader, got %q", p.Name)
	}
}

func TestReaderPersonaTopReadGenre(t *testing.T) {
	books := []model.Book{
		readBook("Mystery", 100, "2026-08-01"),
		readBook("Mystery", 100, "2026-08-02"),
		readBook("Fiction", 100, "2026-08-03"),
		unreadBook("Fantasy", 100, 0),
		unreadBook("Fantasy", 100, 0),
		unreadBook("Fantasy", 100, 0),
	}
	p := ReaderPersona(ComputeMetrics(books))
	if p.Name != "Mystery Sleuth" {
		t.Fatalf("read genres should outrank added genres, got %q", p.Name)
	}
}

func TestReaderPersonaAddedFallback(t *testing.T) {
	books := []model.Book{
		unreadBook("Fantasy", 100, 0),
		unreadBook("Fantasy", 100, 0),
	}
	p := ReaderPersona(ComputeMetrics(books))
	if p.Name != "World Walker" {
		t.Fatalf("with nothing read the most-added genre decides, got %q", p.Name)
	}
}

func TestReaderPersonaExplorer(t *testing.T) {
	books := []model.Book{
		readBook("Mystery", 100, "2026-08-01"),
		readBook("Fiction", 100, "2026-08-02"),
		readBook("Fantasy", 100, "2026-08-03"),
		readBook("History", 100, "2026-08-04"),
	}
	p := ReaderPersona(ComputeMetrics(books))
	if p.Name != "Genre Explorer" {
		t.Fatalf("four read genres should make an explorer, got %q", p.Name)
	}
}

func TestReadingHabitFirstBook(t *testing.T) {
	h := ReadingHabit(nil, ComputeMetrics(nil), time.Local)
	if h.Icon != "📖" {
		t.Fatalf("expected first-book habit, got %+v", h)
	}
}

func TestReadingHabitWeekendWarrior(t *testing.T) {
	// 2026-08-29/30 are a Saturday and Sunday; 2026-08-28 a Friday.
	books := []model.Book{
		readBook("Fiction", 100, "2026-08-29"),
		readBook("Fiction", 100, "2026-08-30"),
		readBook("Fiction", 100, "2026-08-28"),
	}
	h := ReadingHabit(books, ComputeMetrics(books), time.Local)
	if h.Icon != "🌤️" {
		t.Fatalf("expected weekend habit, got %+v", h)
	}
}

func TestReadingHabitWeekdayDiscipline(t *testing.T) {
	books := []model.Book{
		readBook("Fiction", 250, "2026-08-24"), // Mon
		readBook("Fiction", 250, "2026-08-25"), // Tue
		readBook("Fiction", 250, "2026-08-26"), // Wed
	}
	h := ReadingHabit(books, ComputeMetrics(books), time.Local)
	if h.Icon != "💼" {
		t.Fatalf("expected weekday habit, got %+v", h)
	}
}

func TestReadingHabitLongBooks(t *testing.T) {
	books := []model.Book{
		readBook("Fiction", 600, "2026-08-24"),
		readBook("Mystery", 500, "2026-08-29"), // Sat, balances day counts
	}
	h := ReadingHabit(books, ComputeMetrics(books), time.Local)
	if h.Icon != "🦅" {
		t.Fatalf("expected long-book habit, got %+v", h)
	}
}

func TestMotivateGoalCountdown(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 100, "2026-08-01"),
		readBook("Fiction", 100, "2026-08-02"),
	}
	metrics := ComputeMetrics(books)

	m := Motivate(books, metrics, model.Settings{MonthlyGoal: 3}, now)
	if m.Tone != "hot" {
		t.Fatalf("one book left should be hot, got %+v", m)
	}
	m = Motivate(books, metrics, model.Settings{MonthlyGoal: 2}, now)
	if m.Tone != "gold" {
		t.Fatalf("goal met should be gold, got %+v", m)
	}
	m = Motivate(books, metrics, model.Settings{MonthlyGoal: 10}, now)
	if m.Tone != "neutral" {
		t.Fatalf("far from goal should be neutral, got %+v", m)
	}
}

func TestMotivateNoGoal(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	m := Motivate(nil, ComputeMetrics(nil), model.Settings{}, now)
	if m.Icon != "🌱" {
		t.Fatalf("empty library with no goal should encourage the first book, got %+v", m)
	}
}

func TestShelfFiltersOwnedTitles(t *testing.T) {
	books := []model.Book{
		readBook("Mystery", 100, "2026-08-01"),
	}
	books[0].Title = "In the Woods"
	genre, picks := Shelf(books, ComputeMetrics(books))
	if genre != "Mystery" {
		t.Fatalf("expected Mystery shelf, got %q", genre)
	}
	if len(picks) != 2 {
		t.Fatalf("owned title should be filtered, got %d picks", len(picks))
	}
	for _, p := range picks {
		if p.Title == "In the Woods" {
			t.Fatalf("owned title leaked into picks: %+v", picks)
		}
	}
}

func TestShelfDefaultsToFiction(t *testing.T) {
	genre, picks := Shelf(nil, ComputeMetrics(nil))
	if genre != "Fiction" {
		t.Fatalf("empty library should fall back to Fiction, got %q", genre)
	}
	if len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(picks))
	}
}

func TestTipAndCheerDeterministic(t *testing.T) {
	a := Tip(rand.New(rand.NewSource(7)))
	b := Tip(rand.New(rand.NewSource(7)))
	if a != b {
		t.Fatalf("same seed should pick the same tip")
	}
	if Cheer(rand.New(rand.NewSource(7))) == "" {
		t.Fatalf("cheer should never be empty")
	}
}
