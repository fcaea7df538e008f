// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paginate turns the lines of a plain-text document into fixed-size
// pages for a character-grid display.
//
// Paragraphs (runs of non-blank lines) are re-flowed into lines of at most
// Layout.MaxCharsPerLine characters and followed by one blank line. The
// resulting line stream is cut into pages of Layout.MaxLinesPerPage lines.
// A line starting with "chapter" closes the current run and gets a page of
// its own: title centered just above the middle row, and the following line,
// when non-blank, centered on the middle row as a subtitle.
package paginate

import (
	"strings"
	"unicode"

	"github.com/pdiddy/inkpager/pkg/types"
)

// Paginator converts raw document lines into pages for one layout. A
// Paginator holds no per-document state and may be shared.
type Paginator struct {
	layout types.Layout
}

// New returns a Paginator for layout, or an error if the layout cannot hold
// a chapter page.
func New(layout types.Layout) (*Paginator, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Paginator{layout: layout}, nil
}

// Default returns a Paginator for the 47x10 panel layout.
func Default() *Paginator {
	return &Paginator{layout: types.DefaultLayout()}
}

// Layout returns the layout the Paginator wraps and splits against.
func (p *Paginator) Layout() types.Layout {
	return p.layout
}

// Paginate converts lines using the default layout.
func Paginate(lines []string) []types.Page {
	return Default().Paginate(lines)
}

// Paginate runs a single forward pass over lines and returns the pages in the
// order they were produced. Each line may carry a trailing newline. The
// result is empty for empty or blank-only input.
//
// The line after a chapter header is taken as its subtitle whenever it is
// non-blank, even if it is itself a chapter header.
func (p *Paginator) Paginate(lines []string) []types.Page {
	s := &state{layout: p.layout}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r\n")

		if IsChapterHeader(line) {
			subtitle := ""
			if i+1 < len(lines) {
				if next := strings.TrimSpace(lines[i+1]); next != "" {
					subtitle = next
					i++
				}
			}
			s.flushParagraph()
			s.flushPage()
			s.emitChapterPage(strings.TrimSpace(line), subtitle)
			continue
		}

		if strings.TrimSpace(line) == "" {
			s.flushParagraph()
			continue
		}

		s.accumulate(line)
	}

	s.flushParagraph()
	s.flushPage()

	return s.pages
}

// state carries the accumulators of one Paginate call.
type state struct {
	layout types.Layout

	// paragraph holds left-stripped fragments of the current paragraph.
	paragraph []string

	// pending holds wrapped lines not yet cut into pages.
	pending []string

	pages []types.Page
}

func (s *state) accumulate(line string) {
	s.paragraph = append(s.paragraph, strings.TrimLeftFunc(line, unicode.IsSpace))
}

// flushParagraph wraps the buffered paragraph into pending, followed by one
// blank line. It does nothing when the buffer is empty.
func (s *state) flushParagraph() {
	if len(s.paragraph) == 0 {
		return
	}
	s.pending = append(s.pending, Wrap(strings.Join(s.paragraph, " "), s.layout.MaxCharsPerLine)...)
	s.pending = append(s.pending, "")
	s.paragraph = s.paragraph[:0]
}

// flushPage cuts pending into content pages. The last page is left short.
func (s *state) flushPage() {
	if len(s.pending) == 0 {
		return
	}
	s.pages = append(s.pages, Split(s.pending, s.layout.MaxLinesPerPage)...)
	s.pending = nil
}

func (s *state) emitChapterPage(title, subtitle string) {
	s.pages = append(s.pages, ChapterPage(title, subtitle, s.layout))
}

// ChapterPage builds a full-height page with title centered on row
// Midpoint-1 and, when non-empty, subtitle centered on row Midpoint. All
// other rows are empty.
func ChapterPage(title, subtitle string, layout types.Layout) types.Page {
	lines := make([]string, layout.MaxLinesPerPage)
	mid := Midpoint(layout.MaxLinesPerPage)
	lines[mid-1] = Center(title, layout.MaxCharsPerLine)
	if subtitle != "" {
		lines[mid] = Center(subtitle, layout.MaxCharsPerLine)
	}
	return types.Page{Kind: types.PageChapter, Lines: lines}
}
