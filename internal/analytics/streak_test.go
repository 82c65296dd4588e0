package analytics

import (
	"testing"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

func TestComputeStreakEmpty(t *testing.T) {
	if got := ComputeStreak(nil, time.Now()); got != 0 {
		t.Fatalf("expected 0 streak, got %d", got)
	}
}

func TestComputeStreakConsecutive(t *testing.T) {
	now := time.Date(2026, time.August, 29, 20, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-29"),
		readBook("Fiction", 10, "2026-08-28"),
		readBook("Fiction", 10, "2026-08-27"),
	}
	if got := ComputeStreak(books, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestComputeStreakTodayGrace(t *testing.T) {
	// Nothing logged today yet: yesterday's run still counts.
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-28"),
		readBook("Fiction", 10, "2026-08-27"),
	}
	if got := ComputeStreak(books, now); got != 2 {
		t.Fatalf("expected streak 2 via grace day, got %d", got)
	}
}

func TestComputeStreakGapBreaks(t *testing.T) {
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-29"),
		readBook("Fiction", 10, "2026-08-27"),
		readBook("Fiction", 10, "2026-08-26"),
	}
	if got := ComputeStreak(books, now); got != 1 {
		t.Fatalf("expected streak 1 past the gap, got %d", got)
	}
}

func TestComputeStreakOlderThanGrace(t *testing.T) {
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-26"),
	}
	if got := ComputeStreak(books, now); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestComputeStreakIgnoresFutureDates(t *testing.T) {
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-09-15"),
		readBook("Fiction", 10, "2026-08-29"),
	}
	if got := ComputeStreak(books, now); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestComputeStreakDuplicateDays(t *testing.T) {
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-29"),
		readBook("Fantasy", 10, "2026-08-29"),
		readBook("Mystery", 10, "2026-08-28"),
	}
	if got := ComputeStreak(books, now); got != 2 {
		t.Fatalf("same-day completions should count once: got %d", got)
	}
}
