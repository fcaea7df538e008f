// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps paginated books in a SQLite database so a display
// client can fetch any page by number without re-paginating the source.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/internal/source"
	"github.com/pdiddy/inkpager/pkg/types"
)

const dbFile = "library.db"

var (
	// ErrBookNotFound is returned when no book has the requested ID.
	ErrBookNotFound = errors.New("library: book not found")

	// ErrPageNotFound is returned when a page number is outside a book.
	ErrPageNotFound = errors.New("library: page not found")
)

// Store manages the library SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the library database at cfg.Dir/library.db and
// creates the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			source_path TEXT,
			source_mod_time TEXT,
			max_chars INTEGER NOT NULL,
			max_lines INTEGER NOT NULL,
			page_count INTEGER NOT NULL,
			chapter_count INTEGER NOT NULL,
			added_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS pages (
			book_id TEXT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			page_no INTEGER NOT NULL,
			kind TEXT NOT NULL,
			body TEXT NOT NULL,
			PRIMARY KEY (book_id, page_no)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_kind ON pages(book_id, kind)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// BookID derives a book ID from a source path: the lower-cased base name
// without extension, with runs of other characters replaced by "-".
func BookID(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if id == "" {
		return "book"
	}
	return id
}

// AddBook stores book and its pages, replacing any pages already stored
// under book.ID. Page and chapter counts are taken from pages.
func (s *Store) AddBook(ctx context.Context, book types.Book, pages []types.Page) error {
	st := paginate.Stats(pages, book.Layout)
	book.PageCount = st.Pages
	book.ChapterCount = st.ChapterPages
	if book.AddedAt.IsZero() {
		book.AddedAt = time.Now().UTC()
	}

	return withBusyRetry(ctx, func() error {
		return s.writeBook(ctx, book, pages)
	})
}

func (s *Store) writeBook(ctx context.Context, book types.Book, pages []types.Page) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	modTime := ""
	if !book.SourceModTime.IsZero() {
		modTime = book.SourceModTime.UTC().Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO books (id, title, source_path, source_mod_time, max_chars, max_lines, page_count, chapter_count, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, source_path=excluded.source_path,
			source_mod_time=excluded.source_mod_time, max_chars=excluded.max_chars,
			max_lines=excluded.max_lines, page_count=excluded.page_count,
			chapter_count=excluded.chapter_count, added_at=excluded.added_at`,
		book.ID, book.Title, book.SourcePath, modTime,
		book.Layout.MaxCharsPerLine, book.Layout.MaxLinesPerPage,
		book.PageCount, book.ChapterCount, book.AddedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting book: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE book_id = ?`, book.ID); err != nil {
		return fmt.Errorf("deleting old pages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (book_id, page_no, kind, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pages {
		kind := p.Kind
		if kind == "" {
			kind = types.PageContent
		}
		if _, err := stmt.ExecContext(ctx, book.ID, i+1, string(kind), p.Text()); err != nil {
			return fmt.Errorf("inserting page %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// IngestSummary holds counts from a library ingest run.
type IngestSummary struct {
	Added   int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of sources processed.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated + s.Skipped + s.Failed
}

// Ingest loads, paginates and stores each source path. A source whose
// modification time and layout match the stored book is skipped. Per-source
// status lines and a summary are written to w.
func (s *Store) Ingest(ctx context.Context, p *paginate.Paginator, paths []string, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary
	layout := p.Layout()

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		id := BookID(path)

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC()

		existing, err := s.Book(ctx, id)
		isUpdate := err == nil
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		if isUpdate && existing.SourceModTime.Equal(modTime) && existing.Layout == layout {
			fmt.Fprintf(w, "skipped %s\n", id)
			summary.Skipped++
			continue
		}

		lines, err := source.LoadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		pages := p.Paginate(lines)

		book := types.Book{
			ID:            id,
			Title:         strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			SourcePath:    path,
			SourceModTime: modTime,
			Layout:        layout,
		}
		if err := s.AddBook(ctx, book, pages); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", id, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d pages)\n", id, len(pages))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "added   %s (%d pages)\n", id, len(pages))
			summary.Added++
		}
	}

	fmt.Fprintf(w, "\nadded: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Added, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// RemoveBook deletes a book and its pages.
func (s *Store) RemoveBook(ctx context.Context, id string) error {
	return withBusyRetry(ctx, func() error {
		return s.removeBook(ctx, id)
	})
}

func (s *Store) removeBook(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE book_id = ?`, id); err != nil {
		return fmt.Errorf("deleting pages of %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting book %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return tx.Commit()
}
