// Package book implements book record operations over in-memory snapshots.
// All functions take explicit state; persistence belongs to the store.
package book

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anserk/bookmind/internal/model"
)

// Field limits for free-text and numeric inputs.
const (
	TitleMax  = 300
	AuthorMax = 200
	PagesMin  = 1
	PagesMax  = 50000
	RatingMin = 1
	RatingMax = 5
	SearchMax = 200

	// ColorCount is the size of the decorative color palette.
	ColorCount = 6
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeText strips HTML tags, collapses whitespace, and caps the length.
func SanitizeText(value string, maxLen int) string {
	clean := tagPattern.ReplaceAllString(value, "")
	clean = whitespacePattern.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	if maxLen > 0 && len(clean) > maxLen {
		clean = clean[:maxLen]
	}
	return clean
}

// NormalizeGenre maps unknown or missing genre labels to "Other".
func NormalizeGenre(label string) string {
	if model.KnownGenre(label) {
		return label
	}
	return "Other"
}

// Form carries raw user input for a new book.
type Form struct {
	Title      string
	Author     string
	Genre      string
	TotalPages int
	Rating     int    // 0 when not provided
	DateRead   string // optional, model.DayFormat
}

// Create validates the form and returns a new book record. The decorative
// color is drawn from rnd so callers control randomness.
func Create(books []model.Book, form Form, now time.Time, rnd *rand.Rand) (model.Book, error) {
	title := SanitizeText(form.Title, TitleMax)
	author := SanitizeText(form.Author, AuthorMax)
	if title == "" {
		return model.Book{}, fmt.Errorf("title is required")
	}
	if author == "" {
		return model.Book{}, fmt.Errorf("author is required")
	}
	if form.TotalPages < PagesMin {
		return model.Book{}, fmt.Errorf("page count must be at least %d", PagesMin)
	}
	if form.TotalPages > PagesMax {
		return model.Book{}, fmt.Errorf("page count cannot exceed %d", PagesMax)
	}
	if form.Rating != 0 && (form.Rating < RatingMin || form.Rating > RatingMax) {
		return model.Book{}, fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	if form.DateRead != "" {
		day, err := time.ParseInLocation(model.DayFormat, form.DateRead, now.Location())
		if err != nil {
			return model.Book{}, fmt.Errorf("invalid date finished: %w", err)
		}
		if model.Day(day) > model.Day(now) {
			return model.Book{}, fmt.Errorf("date finished cannot be in the future")
		}
	}
	if IsDuplicate(books, title, author, "") {
		return model.Book{}, fmt.Errorf("%q by %s is already in your library", title, author)
	}

	b := model.Book{
		ID:         uuid.NewString(),
		Title:      title,
		Author:     author,
		Genre:      NormalizeGenre(form.Genre),
		TotalPages: form.TotalPages,
		Rating:     form.Rating,
		DateRead:   form.DateRead,
		AddedAt:    now,
		Color:      rnd.Intn(ColorCount),
	}
	if b.DateRead != "" {
		b.Read = true
		b.PagesRead = b.TotalPages
	}
	return b, nil
}

// IsDuplicate reports whether another book has the same case-insensitive
// title and author pair.
func IsDuplicate(books []model.Book, title, author, excludeID string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	a := strings.ToLower(strings.TrimSpace(author))
	for _, b := range books {
		if b.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(b.Title)) == t &&
			strings.ToLower(strings.TrimSpace(b.Author)) == a {
			return true
		}
	}
	return false
}

// FindByID returns a pointer into books for in-place mutation, or nil.
func FindByID(books []model.Book, id string) *model.Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}

// UpdateProgress sets pagesRead, clamped to [0, totalPages]. Reaching the
// last page marks the book read and stamps today's date if unset; moving
// back clears the read flag but keeps the completion date.
func UpdateProgress(b *model.Book, pages int, now time.Time) {
	if pages < 0 {
		pages = 0
	}
	if pages > b.TotalPages {
		pages = b.TotalPages
	}
	b.PagesRead = pages
	if b.PagesRead >= b.TotalPages && b.TotalPages > 0 {
		b.Read = true
		if b.DateRead == "" {
			b.DateRead = model.Day(now)
		}
	} else {
		b.Read = false
	}
}

// ToggleRead flips the read flag. Marking read fills the page count and
// stamps today's date if unset; marking unread resets both.
func ToggleRead(b *model.Book, now time.Time) {
	b.Read = !b.Read
	if b.Read {
		b.PagesRead = b.TotalPages
		if b.DateRead == "" {
			b.DateRead = model.Day(now)
		}
	} else {
		b.PagesRead = 0
		b.DateRead = ""
	}
}

// SetRating sets a 1-5 rating, or clears it with 0.
func SetRating(b *model.Book, rating int) error {
	if rating != 0 && (rating < RatingMin || rating > RatingMax) {
		return fmt.Errorf("rating must be between %d and %d", RatingMin, RatingMax)
	}
	b.Rating = rating
	return nil
}

// Delete removes the book with the given id and returns the new slice and
// the removed record.
func Delete(books []model.Book, id string) ([]model.Book, model.Book, error) {
	for i := range books {
		if books[i].ID == id {
			removed := books[i]
			return append(books[:i:i], books[i+1:]...), removed, nil
		}
	}
	return books, model.Book{}, fmt.Errorf("book %q not found", id)
}

// Filter returns books matching a status filter and a substring query over
// title, author, and genre.
func Filter(books []model.Book, filter, query string) []model.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) > SearchMax {
		q = q[:SearchMax]
	}
	out := make([]model.Book, 0, len(books))
	for _, b := range books {
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.Genre), q) {
			continue
		}
		switch filter {
		case "read":
			if !b.Read {
				continue
			}
		case "unread":
			if b.Read || b.PagesRead != 0 {
				continue
			}
		case "inprogress":
			if b.Read || b.PagesRead == 0 {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
