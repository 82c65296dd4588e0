package book

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestCreate(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	b, err := Create(nil, Form{
		Title:      "  The <i>Dispossessed</i> ",
		Author:     "Ursula K. Le Guin",
		Genre:      "Science Fiction",
		TotalPages: 340,
		Rating:     5,
	}, now, testRand())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID == "" {
		t.Fatalf("expected generated id")
	}
	if b.Title != "The Dispossessed" {
		t.Fatalf("title not sanitized: %q", b.Title)
	}
	if b.Read || b.PagesRead != 0 {
		t.Fatalf("new book should start unread: %+v", b)
	}
	if b.Color < 0 || b.Color >= ColorCount {
		t.Fatalf("color out of range: %d", b.Color)
	}
}

func TestCreateValidation(t *testing.T) {
	now := time.Now()
	cases := []Form{
		{Title: "", Author: "A", TotalPages: 100},
		{Title: "<br>", Author: "A", TotalPages: 100},
		{Title: "T", Author: "", TotalPages: 100},
		{Title: "T", Author: "A", TotalPages: 0},
		{Title: "T", Author: "A", TotalPages: PagesMax + 1},
		{Title: "T", Author: "A", TotalPages: 100, Rating: 6},
		{Title: "T", Author: "A", TotalPages: 100, DateRead: "29/08/2026"},
		{Title: "T", Author: "A", TotalPages: 100, DateRead: model.Day(now.AddDate(0, 0, 2))},
	}
	for i, form := range cases {
		if _, err := Create(nil, form, now, testRand()); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, form)
		}
	}
}

func TestCreateFinished(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	b, err := Create(nil, Form{
		Title: "T", Author: "A", Genre: "Fiction",
		TotalPages: 120, DateRead: "2026-08-20",
	}, now, testRand())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !b.Read || b.PagesRead != 120 || b.DateRead != "2026-08-20" {
		t.Fatalf("finished book should be fully read: %+v", b)
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	now := time.Now()
	existing := []model.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", TotalPages: 650},
	}
	_, err := Create(existing, Form{
		Title: "  DUNE ", Author: "frank herbert", TotalPages: 650,
	}, now, testRand())
	if err == nil || !strings.Contains(err.Error(), "already in your library") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestIsDuplicateExcludesSelf(t *testing.T) {
	books := []model.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
	}
	if IsDuplicate(books, "Dune", "Frank Herbert", "1") {
		t.Fatalf("a book should not be its own duplicate")
	}
	if !IsDuplicate(books, "Dune", "Frank Herbert", "2") {
		t.Fatalf("expected duplicate match")
	}
}

func TestUpdateProgress(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	b := model.Book{ID: "1", Title: "T", Author: "A", TotalPages: 100}

	UpdateProgress(&b, 150, now)
	if b.PagesRead != 100 || !b.Read || b.DateRead != "2026-08-29" {
		t.Fatalf("overshoot should clamp and complete: %+v", b)
	}

	// Moving back keeps the completion date but clears read.
	UpdateProgress(&b, 40, now)
	if b.Read || b.PagesRead != 40 || b.DateRead != "2026-08-29" {
		t.Fatalf("regression should keep date: %+v", b)
	}

	UpdateProgress(&b, -5, now)
	if b.PagesRead != 0 {
		t.Fatalf("negative pages should clamp to 0, got %d", b.PagesRead)
	}
}

func TestUpdateProgressKeepsOriginalDate(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	b := model.Book{ID: "1", Title: "T", Author: "A", TotalPages: 100, DateRead: "2026-08-01"}
	UpdateProgress(&b, 100, now)
	if b.DateRead != "2026-08-01" {
		t.Fatalf("existing completion date should survive: %q", b.DateRead)
	}
}

func TestToggleRead(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.Local)
	b := model.Book{ID: "1", Title: "T", Author: "A", TotalPages: 100, PagesRead: 30}

	ToggleRead(&b, now)
	if !b.Read || b.PagesRead != 100 || b.DateRead != "2026-08-29" {
		t.Fatalf("toggle on should complete the book: %+v", b)
	}

	ToggleRead(&b, now)
	if b.Read || b.PagesRead != 0 || b.DateRead != "" {
		t.Fatalf("toggle off should reset progress and date: %+v", b)
	}
}

func TestSetRating(t *testing.T) {
	b := model.Book{ID: "1", Rating: 3}
	if err := SetRating(&b, 5); err != nil || b.Rating != 5 {
		t.Fatalf("set rating: %v, %+v", err, b)
	}
	if err := SetRating(&b, 0); err != nil || b.Rating != 0 {
		t.Fatalf("clearing rating: %v, %+v", err, b)
	}
	if err := SetRating(&b, 6); err == nil {
		t.Fatalf("expected error for out-of-range rating")
	}
}

func TestDelete(t *testing.T) {
	books := []model.Book{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	rest, removed, err := Delete(books, "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Title != "A" || len(rest) != 1 || rest[0].ID != "2" {
		t.Fatalf("unexpected result: %+v, %+v", removed, rest)
	}
	if _, _, err := Delete(rest, "missing"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestFilter(t *testing.T) {
	books := []model.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", TotalPages: 650, PagesRead: 650, Read: true},
		{ID: "2", Title: "Piranesi", Author: "Susanna Clarke", Genre: "Fantasy", TotalPages: 245, PagesRead: 40},
		{ID: "3", Title: "Emma", Author: "Jane Austen", Genre: "Fiction", TotalPages: 400},
	}

	if got := Filter(books, "read", ""); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("read filter: %+v", got)
	}
	if got := Filter(books, "inprogress", ""); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("inprogress filter: %+v", got)
	}
	if got := Filter(books, "unread", ""); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("unread filter: %+v", got)
	}
	if got := Filter(books, "all", "austen"); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("author search: %+v", got)
	}
	if got := Filter(books, "all", "fantasy"); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("genre search: %+v", got)
	}
	if got := Filter(books, "all", ""); len(got) != 3 {
		t.Fatalf("no filter should return everything: %+v", got)
	}
}

func TestSanitizeText(t *testing.T) {
	if got := SanitizeText("<b>Hello</b>   world ", 0); got != "Hello world" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := SanitizeText("abcdef", 3); got != "abc" {
		t.Fatalf("length cap: %q", got)
	}
}

func TestNormalizeGenre(t *testing.T) {
	if got := NormalizeGenre("Fantasy"); got != "Fantasy" {
		t.Fatalf("known genre changed: %q", got)
	}
	if got := NormalizeGenre("Cookbooks"); got != "Other" {
		t.Fatalf("unknown genre should map to Other: %q", got)
	}
	if got := NormalizeGenre(""); got != "Other" {
		t.Fatalf("empty genre should map to Other: %q", got)
	}
}
