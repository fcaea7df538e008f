// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// PageKind tells a content page from a chapter page.
type PageKind string

const (
	// PageContent is a chunk of wrapped paragraph text. The last content page
	// of a run may be shorter than the layout height.
	PageContent PageKind = "content"

	// PageChapter is a full-height page carrying a centered chapter title and
	// an optional centered subtitle.
	PageChapter PageKind = "chapter"
)

// Page is one screen of display lines.
type Page struct {
	Kind  PageKind `json:"kind" yaml:"kind"`
	Lines []string `json:"lines" yaml:"lines"`
}

// Text returns the page lines joined with newlines.
func (p Page) Text() string {
	return strings.Join(p.Lines, "\n")
}

// PageStats summarizes a page sequence.
type PageStats struct {
	Pages         int      `json:"pages" yaml:"pages"`
	ContentPages  int      `json:"content_pages" yaml:"content_pages"`
	ChapterPages  int      `json:"chapter_pages" yaml:"chapter_pages"`
	Lines         int      `json:"lines" yaml:"lines"`
	BlankLines    int      `json:"blank_lines" yaml:"blank_lines"`
	OverlongLines int      `json:"overlong_lines" yaml:"overlong_lines"`
	Chapters      []string `json:"chapters,omitempty" yaml:"chapters,omitempty"`
}

// Document is the exported form of a paginated source.
type Document struct {
	Source string    `json:"source" yaml:"source"`
	Layout Layout    `json:"layout" yaml:"layout"`
	Stats  PageStats `json:"stats" yaml:"stats"`
	Pages  []Page    `json:"pages" yaml:"pages"`
}

// Book is a paginated source kept in the page library.
type Book struct {
	// ID is a slug derived from the source filename (e.g. "fellowship").
	ID string `json:"id" yaml:"id"`

	// Title defaults to the source filename without extension.
	Title string `json:"title" yaml:"title"`

	// SourcePath is the file the book was paginated from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// SourceModTime is the source modification time at ingest, used to skip
	// unchanged sources.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// Layout is the layout the book was paginated with.
	Layout Layout `json:"layout" yaml:"layout"`

	PageCount    int       `json:"page_count" yaml:"page_count"`
	ChapterCount int       `json:"chapter_count" yaml:"chapter_count"`
	AddedAt      time.Time `json:"added_at" yaml:"added_at"`
}
