// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview draws pages in a terminal as framed character grids sized
// to the layout, so a paginated document can be checked without the panel.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/inkpager/pkg/types"
)

// Renderer frames pages for one layout.
type Renderer struct {
	layout types.Layout

	// ShowRuler adds a column ruler above each frame.
	ShowRuler bool
}

// NewRenderer returns a Renderer for layout.
func NewRenderer(layout types.Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Render writes every page to w, numbered from 1.
func (r *Renderer) Render(w io.Writer, pages []types.Page) error {
	for i, p := range pages {
		if err := r.RenderPage(w, p, i+1, len(pages)); err != nil {
			return err
		}
	}
	return nil
}

// RenderPage writes one framed page. Short pages are drawn to full height
// with empty rows. Lines wider than the frame are cut with "~" in the frame
// only.
func (r *Renderer) RenderPage(w io.Writer, p types.Page, num, total int) error {
	var b strings.Builder
	for _, line := range r.Frame(p, num, total) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Frame returns the rows RenderPage draws for p, without line terminators:
// the optional ruler, the header, one row per display line and the footer.
func (r *Renderer) Frame(p types.Page, num, total int) []string {
	width := r.layout.MaxCharsPerLine

	title := fmt.Sprintf(" page %d/%d ", num, total)
	if p.Kind == types.PageChapter {
		title += "[chapter] "
	}
	title = runewidth.Truncate(title, width, "")

	var rows []string
	if r.ShowRuler {
		rows = append(rows, " "+ruler(width))
	}
	rows = append(rows, "+"+title+strings.Repeat("-", width-runewidth.StringWidth(title))+"+")

	n := max(len(p.Lines), r.layout.MaxLinesPerPage)
	for i := 0; i < n; i++ {
		line := ""
		if i < len(p.Lines) {
			line = p.Lines[i]
		}
		if runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "~")
		}
		rows = append(rows, "|"+runewidth.FillRight(line, width)+"|")
	}
	return append(rows, "+"+strings.Repeat("-", width)+"+")
}

// ruler returns a column ruler of width characters marking every tenth column.
func ruler(width int) string {
	var b strings.Builder
	for col := 1; col <= width; col++ {
		switch {
		case col%10 == 0:
			b.WriteByte(byte('0' + (col/10)%10))
		case col%5 == 0:
			b.WriteByte('+')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Geometry writes the panel's character grid and whether layout fits on it.
func Geometry(w io.Writer, d types.Display, layout types.Layout) {
	fmt.Fprintf(w, "panel:  %dx%d px, cell %dx%d px\n", d.PageWidth, d.PageHeight, d.CharWidth, d.CharHeight)
	fmt.Fprintf(w, "grid:   %d columns x %d rows\n", d.Columns(), d.Rows())
	fit := "fits"
	if !d.Fits(layout) {
		fit = "does not fit"
	}
	fmt.Fprintf(w, "layout: %d columns x %d rows (%s)\n", layout.MaxCharsPerLine, layout.MaxLinesPerPage, fit)
}
