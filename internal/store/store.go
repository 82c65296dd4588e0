// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/anserk/bookmind/internal/book"
	"github.com/anserk/bookmind/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for book records and settings.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			total_pages INTEGER NOT NULL,
			pages_read INTEGER NOT NULL,
			read INTEGER NOT NULL,
			rating INTEGER NOT NULL,
			date_read TEXT NOT NULL,
			added_at TEXT NOT NULL,
			color INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			monthly_goal INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_books_date_read ON books(date_read);`,
		`CREATE INDEX IF NOT EXISTS idx_books_added_at ON books(added_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeBook re-validates a stored row. Everything downstream of the store
// assumes these invariants and never re-checks them. Returns false for rows
// too malformed to keep.
func sanitizeBook(b model.Book) (model.Book, bool) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Title = book.SanitizeText(b.Title, book.TitleMax)
	b.Author = book.SanitizeText(b.Author, book.AuthorMax)
	if b.Title == "" || b.Author == "" {
		return model.Book{}, false
	}
	b.Genre = book.NormalizeGenre(b.Genre)
	if b.TotalPages < 1 {
		b.TotalPages = 1
	}
	if b.PagesRead < 0 {
		b.PagesRead = 0
	}
	if b.PagesRead > b.TotalPages {
		b.PagesRead = b.TotalPages
	}
	if b.PagesRead == b.TotalPages && b.TotalPages > 0 {
		b.Read = true
	}
	if b.Rating < book.RatingMin || b.Rating > book.RatingMax {
		b.Rating = 0
	}
	if b.DateRead != "" {
		if _, err := time.ParseInLocation(model.DayFormat, b.DateRead, time.Local); err != nil {
			b.DateRead = ""
		}
	}
	if b.Color < 0 || b.Color >= book.ColorCount {
		b.Color = 0
	}
	return b, true
}

// LoadBooks returns all sanitized book records, newest first. Rows that fail
// sanitation are dropped rather than propagated.
func (s *Store) LoadBooks(ctx context.Context) ([]model.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author, genre, total_pages, pages_read, read, rating, date_read, added_at, color
		 FROM books
		 ORDER BY added_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var read int
		var addedAt string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.TotalPages,
			&b.PagesRead, &read, &b.Rating, &b.DateRead, &addedAt, &b.Color); err != nil {
			return nil, err
		}
		b.Read = read != 0
		parsed, err := time.Parse(time.RFC3339Nano, addedAt)
		if err != nil {
			parsed = time.Now()
		}
		b.AddedAt = parsed
		clean, ok := sanitizeBook(b)
		if !ok {
			continue
		}
		books = append(books, clean)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// SaveBooks replaces the whole collection in one transaction.
func (s *Store) SaveBooks(ctx context.Context, books []model.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO books (id, title, author, genre, total_pages, pages_read, read, rating, date_read, added_at, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, b := range books {
		if _, err = stmt.ExecContext(ctx, b.ID, b.Title, b.Author, b.Genre, b.TotalPages,
			b.PagesRead, boolToInt(b.Read), b.Rating, b.DateRead,
			b.AddedAt.Format(time.RFC3339Nano), b.Color); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertBook stores a single new record.
func (s *Store) InsertBook(ctx context.Context, b model.Book) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, genre, total_pages, pages_read, read, rating, date_read, added_at, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Genre, b.TotalPages,
		b.PagesRead, boolToInt(b.Read), b.Rating, b.DateRead,
		b.AddedAt.Format(time.RFC3339Nano), b.Color)
	return err
}

// UpdateBook writes back the mutable fields of a record.
func (s *Store) UpdateBook(ctx context.Context, b model.Book) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE books SET pages_read = ?, read = ?, rating = ?, date_read = ? WHERE id = ?`,
		b.PagesRead, boolToInt(b.Read), b.Rating, b.DateRead, b.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteBook removes a record by id.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// LoadSettings returns the stored settings, or defaults when absent.
func (s *Store) LoadSettings(ctx context.Context) (model.Settings, error) {
	var goal int
	err := s.db.QueryRowContext(ctx, `SELECT monthly_goal FROM settings WHERE id = 1`).Scan(&goal)
	if err == sql.ErrNoRows {
		return model.Settings{}, nil
	}
	if err != nil {
		return model.Settings{}, err
	}
	if goal < 0 {
		goal = 0
	}
	return model.Settings{MonthlyGoal: goal}, nil
}

// SaveSettings upserts the single settings row.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	goal := settings.MonthlyGoal
	if goal < 0 {
		goal = 0
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, monthly_goal) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET monthly_goal = excluded.monthly_goal`,
		goal)
	return err
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
