// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagefile reads and writes paged text files: each page's lines
// followed by a "<<PAGE BREAK>>" line.
package pagefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/pkg/types"
)

// Write serializes pages to w, one line per display line, each page closed
// by a PageBreakMarker line.
func Write(w io.Writer, pages []types.Page) error {
	bw := bufio.NewWriter(w)
	for _, p := range pages {
		for _, line := range p.Lines {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
		bw.WriteString(types.PageBreakMarker)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes pages to path, creating parent directories. The file is
// written to a temporary name and renamed into place.
func WriteFile(path string, pages []types.Page) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, pages); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// Read parses a paged file. Pages are classified against layout: a page of
// exactly MaxLinesPerPage lines whose only text is a chapter header on the
// title row and an optional subtitle on the middle row is a chapter page.
// Lines after the last marker form a final page.
func Read(r io.Reader, layout types.Layout) ([]types.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var pages []types.Page
	var cur []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == types.PageBreakMarker {
			pages = append(pages, classify(cur, layout))
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pages: %w", err)
	}
	if len(cur) > 0 {
		pages = append(pages, classify(cur, layout))
	}
	return pages, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, layout types.Layout) ([]types.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, layout)
}

func classify(lines []string, layout types.Layout) types.Page {
	page := types.Page{Kind: types.PageContent, Lines: lines}
	if lines == nil {
		page.Lines = []string{}
	}
	if len(lines) != layout.MaxLinesPerPage {
		return page
	}

	mid := paginate.Midpoint(layout.MaxLinesPerPage)
	if !paginate.IsChapterHeader(lines[mid-1]) {
		return page
	}
	for i, line := range lines {
		if i != mid-1 && i != mid && strings.TrimSpace(line) != "" {
			return page
		}
	}
	page.Kind = types.PageChapter
	return page
}
