// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"io"

	"github.com/pdiddy/inkpager/internal/pagefile"
	"github.com/pdiddy/inkpager/pkg/types"
)

// Export writes book id in format: paged text, YAML or JSON.
func (s *Store) Export(ctx context.Context, id string, w io.Writer, format types.OutputFormat) error {
	book, err := s.Book(ctx, id)
	if err != nil {
		return err
	}
	pages, err := s.Pages(ctx, id)
	if err != nil {
		return err
	}
	return pagefile.Export(w, pagefile.NewDocument(book.SourcePath, book.Layout, pages), format)
}
