// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Page geometry for the target display. A page holds MaxLinesPerPage display
// lines of at most MaxCharsPerLine characters each.
const (
	MaxCharsPerLine = 47
	MaxLinesPerPage = 10
)

// Pixel geometry of the e-paper panel. The paginator never reads these; they
// describe the panel for a downstream renderer.
const (
	CharWidth  = 6 // 5 + 1 for spacing
	CharHeight = 8 // 7 + 1 for spacing
	PageWidth  = 296
	PageHeight = 128
)

// PageBreakMarker is the sentinel line written after every page in a paged file.
const PageBreakMarker = "<<PAGE BREAK>>"

// Layout holds the character-grid limits the paginator wraps and splits against.
type Layout struct {
	// MaxCharsPerLine is the wrap width in characters (default 47).
	MaxCharsPerLine int `json:"max_chars_per_line" yaml:"max_chars_per_line" mapstructure:"max_chars_per_line"`

	// MaxLinesPerPage is the number of display lines on a page (default 10).
	MaxLinesPerPage int `json:"max_lines_per_page" yaml:"max_lines_per_page" mapstructure:"max_lines_per_page"`
}

// DefaultLayout returns the layout of the 2.9" panel.
func DefaultLayout() Layout {
	return Layout{
		MaxCharsPerLine: MaxCharsPerLine,
		MaxLinesPerPage: MaxLinesPerPage,
	}
}

// Validate reports whether the layout can hold a chapter page. A chapter page
// needs two rows (title and subtitle) around the midpoint.
func (l Layout) Validate() error {
	if l.MaxCharsPerLine <= 0 {
		return fmt.Errorf("max_chars_per_line must be positive, got %d", l.MaxCharsPerLine)
	}
	if l.MaxLinesPerPage < 2 {
		return fmt.Errorf("max_lines_per_page must be at least 2, got %d", l.MaxLinesPerPage)
	}
	return nil
}

// Display describes the pixel geometry of the target panel.
type Display struct {
	CharWidth  int `json:"char_width" yaml:"char_width" mapstructure:"char_width"`
	CharHeight int `json:"char_height" yaml:"char_height" mapstructure:"char_height"`
	PageWidth  int `json:"page_width" yaml:"page_width" mapstructure:"page_width"`
	PageHeight int `json:"page_height" yaml:"page_height" mapstructure:"page_height"`
}

// DefaultDisplay returns the geometry of the 296x128 panel with a 6x8 cell.
func DefaultDisplay() Display {
	return Display{
		CharWidth:  CharWidth,
		CharHeight: CharHeight,
		PageWidth:  PageWidth,
		PageHeight: PageHeight,
	}
}

// Columns returns how many character cells fit across the panel.
func (d Display) Columns() int {
	if d.CharWidth <= 0 {
		return 0
	}
	return d.PageWidth / d.CharWidth
}

// Rows returns how many character cells fit down the panel.
func (d Display) Rows() int {
	if d.CharHeight <= 0 {
		return 0
	}
	return d.PageHeight / d.CharHeight
}

// Fits reports whether a layout's character grid fits on the panel.
func (d Display) Fits(l Layout) bool {
	return l.MaxCharsPerLine <= d.Columns() && l.MaxLinesPerPage <= d.Rows()
}

// OutputFormat selects how paginate writes its result.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat. Empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputText:
		return OutputText, nil
	case OutputYAML:
		return OutputYAML, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q: use text, yaml, or json", s)
}

// LibraryConfig holds settings for the page library.
type LibraryConfig struct {
	// Dir is the directory holding library.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Layout is the layout books are paginated with on ingest.
	Layout Layout `json:"layout" yaml:"layout" mapstructure:"layout"`
}

// Config groups everything read from inkpager.yaml.
type Config struct {
	Layout  Layout        `json:"layout" yaml:"layout" mapstructure:"layout"`
	Display Display       `json:"display" yaml:"display" mapstructure:"display"`
	Library LibraryConfig `json:"library" yaml:"library" mapstructure:"library"`
}
