// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/inkpager/pkg/types"
)

const bookColumns = `id, title, source_path, source_mod_time, max_chars, max_lines, page_count, chapter_count, added_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (types.Book, error) {
	var (
		b                types.Book
		modTime, addedAt string
	)
	err := row.Scan(&b.ID, &b.Title, &b.SourcePath, &modTime,
		&b.Layout.MaxCharsPerLine, &b.Layout.MaxLinesPerPage,
		&b.PageCount, &b.ChapterCount, &addedAt)
	if err != nil {
		return types.Book{}, err
	}
	if modTime != "" {
		b.SourceModTime, _ = time.Parse(time.RFC3339Nano, modTime)
	}
	b.AddedAt, _ = time.Parse(time.RFC3339Nano, addedAt)
	return b, nil
}

// Book returns the stored metadata for id.
func (s *Store) Book(ctx context.Context, id string) (types.Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Book{}, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	if err != nil {
		return types.Book{}, fmt.Errorf("querying book %s: %w", id, err)
	}
	return b, nil
}

// Books returns all stored books ordered by ID.
func (s *Store) Books(ctx context.Context) ([]types.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []types.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Page returns page pageNo (1-based) of book id.
func (s *Store) Page(ctx context.Context, id string, pageNo int) (types.Page, error) {
	var kind, body string
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, body FROM pages WHERE book_id = ? AND page_no = ?`, id, pageNo,
	).Scan(&kind, &body)
	if errors.Is(err, sql.ErrNoRows) {
		if _, berr := s.Book(ctx, id); berr != nil {
			return types.Page{}, berr
		}
		return types.Page{}, fmt.Errorf("%w: %s page %d", ErrPageNotFound, id, pageNo)
	}
	if err != nil {
		return types.Page{}, fmt.Errorf("querying page: %w", err)
	}
	return pageFromRow(kind, body), nil
}

// Pages returns every page of book id in order.
func (s *Store) Pages(ctx context.Context, id string) ([]types.Page, error) {
	if _, err := s.Book(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, body FROM pages WHERE book_id = ? ORDER BY page_no`, id)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []types.Page
	for rows.Next() {
		var kind, body string
		if err := rows.Scan(&kind, &body); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, pageFromRow(kind, body))
	}
	return pages, rows.Err()
}

// SearchHit is a page containing a search term.
type SearchHit struct {
	BookID string `json:"book_id" yaml:"book_id"`
	PageNo int    `json:"page_no" yaml:"page_no"`
	Line   string `json:"line" yaml:"line"`
}

// Search returns pages whose text contains term, ASCII case-insensitively,
// with the first matching line of each. bookID limits the search to one
// book when non-empty. At most limit hits are returned; zero means 20.
func (s *Store) Search(ctx context.Context, term, bookID string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT book_id, page_no, body FROM pages WHERE body LIKE ? ESCAPE '\'`)
	args = append(args, "%"+escapeLike(term)+"%")
	if bookID != "" {
		qb.WriteString(` AND book_id = ?`)
		args = append(args, bookID)
	}
	qb.WriteString(` ORDER BY book_id, page_no LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching pages: %w", err)
	}
	defer rows.Close()

	lower := strings.ToLower(term)
	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		var body string
		if err := rows.Scan(&h.BookID, &h.PageNo, &body); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		for _, line := range strings.Split(body, "\n") {
			if strings.Contains(strings.ToLower(line), lower) {
				h.Line = strings.TrimSpace(line)
				break
			}
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func pageFromRow(kind, body string) types.Page {
	return types.Page{
		Kind:  types.PageKind(kind),
		Lines: strings.Split(body, "\n"),
	}
}
