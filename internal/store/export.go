package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anserk/bookmind/internal/model"
)

// exportVersion tags the export format.
const exportVersion = 3

type exportFile struct {
	Version  int          `json:"version"`
	Exported string       `json:"exported"`
	Books    []bookJSON   `json:"books"`
	Settings settingsJSON `json:"settings"`
}

type bookJSON struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Genre      string  `json:"genre"`
	TotalPages int     `json:"totalPages"`
	PagesRead  int     `json:"pagesRead"`
	Read       bool    `json:"read"`
	Rating     *int    `json:"rating"`
	DateRead   *string `json:"dateRead"`
	AddedAt    string  `json:"addedAt"`
	Color      int     `json:"color"`
}

type settingsJSON struct {
	MonthlyGoal int `json:"monthlyGoal"`
}

func toBookJSON(b model.Book) bookJSON {
	out := bookJSON{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Genre:      b.Genre,
		TotalPages: b.TotalPages,
		PagesRead:  b.PagesRead,
		Read:       b.Read,
		AddedAt:    b.AddedAt.Format(time.RFC3339Nano),
		Color:      b.Color,
	}
	if b.Rating != 0 {
		rating := b.Rating
		out.Rating = &rating
	}
	if b.DateRead != "" {
		date := b.DateRead
		out.DateRead = &date
	}
	return out
}

func fromBookJSON(raw bookJSON) model.Book {
	b := model.Book{
		ID:         raw.ID,
		Title:      raw.Title,
		Author:     raw.Author,
		Genre:      raw.Genre,
		TotalPages: raw.TotalPages,
		PagesRead:  raw.PagesRead,
		Read:       raw.Read,
		Color:      raw.Color,
	}
	if raw.Rating != nil {
		b.Rating = *raw.Rating
	}
	if raw.DateRead != nil {
		b.DateRead = *raw.DateRead
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw.AddedAt)
	if err != nil {
		parsed = time.Now()
	}
	b.AddedAt = parsed
	return b
}

// ExportData serializes the full library as versioned, indented JSON.
func (s *Store) ExportData(ctx context.Context) ([]byte, error) {
	books, err := s.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	settings, err := s.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	out := exportFile{
		Version:  exportVersion,
		Exported: time.Now().Format(time.RFC3339),
		Books:    make([]bookJSON, 0, len(books)),
		Settings: settingsJSON{MonthlyGoal: settings.MonthlyGoal},
	}
	for _, b := range books {
		out.Books = append(out.Books, toBookJSON(b))
	}
	return json.MarshalIndent(out, "", "  ")
}

// ImportData replaces the stored library with the contents of an export
// file. Every record passes through boundary sanitation; unusable records
// are dropped. Returns the number of imported books.
func (s *Store) ImportData(ctx context.Context, data []byte) (int, error) {
	var in exportFile
	if err := json.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("failed to parse import: %w", err)
	}
	if in.Books == nil {
		return 0, fmt.Errorf("invalid file: missing books array")
	}
	books := make([]model.Book, 0, len(in.Books))
	for _, raw := range in.Books {
		clean, ok := sanitizeBook(fromBookJSON(raw))
		if !ok {
			continue
		}
		books = append(books, clean)
	}
	if err := s.SaveBooks(ctx, books); err != nil {
		return 0, fmt.Errorf("failed to save books: %w", err)
	}
	if err := s.SaveSettings(ctx, model.Settings{MonthlyGoal: in.Settings.MonthlyGoal}); err != nil {
		return 0, fmt.Errorf("failed to save settings: %w", err)
	}
	return len(books), nil
}
