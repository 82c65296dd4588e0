package analytics

import (
	"testing"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

func readBook(genre string, pages int, day string) model.Book {
	return model.Book{
		Title:      "t",
		Author:     "a",
		Genre:      genre,
		TotalPages: pages,
		PagesRead:  pages,
		Read:       true,
		DateRead:   day,
	}
}

func unreadBook(genre string, pages, pagesRead int) model.Book {
	return model.Book{
		Title:      "t",
		Author:     "a",
		Genre:      genre,
		TotalPages: pages,
		PagesRead:  pagesRead,
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.Total != 0 || m.ReadCount != 0 || m.UnreadCount != 0 || m.InProgressCount != 0 {
		t.Fatalf("expected all-zero metrics, got %+v", m)
	}
	if m.AvgRating != nil {
		t.Fatalf("expected nil avg rating, got %v", *m.AvgRating)
	}
	if m.GenreCounts == nil || m.ReadGenreCounts == nil {
		t.Fatalf("expected non-nil genre maps")
	}
}

func TestComputeMetricsPartition(t *testing.T) {
	books := []model.Book{
		readBook("Fiction", 100, "2026-08-01"),
		unreadBook("Fantasy", 200, 0),
		unreadBook("Mystery", 300, 50),
		unreadBook("Mystery", 150, 0),
	}
	m := ComputeMetrics(books)
	if m.Total != 4 {
		t.Fatalf("expected total 4, got %d", m.Total)
	}
	if m.ReadCount+m.UnreadCount+m.InProgressCount != m.Total {
		t.Fatalf("status counts do not partition total: %+v", m)
	}
	if m.ReadCount != 1 || m.UnreadCount != 2 || m.InProgressCount != 1 {
		t.Fatalf("unexpected partition: %+v", m)
	}
	if m.TotalPagesRead != 150 {
		t.Fatalf("expected 150 pages read, got %d", m.TotalPagesRead)
	}
	if m.GenreCounts["Mystery"] != 2 || m.ReadGenreCounts["Fiction"] != 1 {
		t.Fatalf("unexpected genre counts: %+v", m)
	}
	if len(m.ReadGenreCounts) != 1 {
		t.Fatalf("read genre counts should only cover finished books: %+v", m.ReadGenreCounts)
	}
}

func TestComputeMetricsAvgRating(t *testing.T) {
	books := []model.Book{
		{Title: "t", Author: "a", Genre: "Fiction", TotalPages: 1, Rating: 4},
		{Title: "t", Author: "a", Genre: "Fiction", TotalPages: 1, Rating: 3},
		{Title: "t", Author: "a", Genre: "Fiction", TotalPages: 1}, // unrated
	}
	m := ComputeMetrics(books)
	if m.RatedCount != 2 {
		t.Fatalf("expected 2 rated books, got %d", m.RatedCount)
	}
	if m.AvgRating == nil || *m.AvgRating != 3.5 {
		t.Fatalf("expected avg rating 3.5, got %v", m.AvgRating)
	}
}

func TestCountMonthlyRead(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	books := []model.Book{
		readBook("Fiction", 10, "2026-08-01"),
		readBook("Fiction", 10, "2026-08-29"),
		readBook("Fiction", 10, "2026-07-31"),
		readBook("Fiction", 10, ""),
	}
	if got := CountMonthlyRead(books, now); got != 2 {
		t.Fatalf("expected 2 monthly completions, got %d", got)
	}
}
