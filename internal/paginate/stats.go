// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/inkpager/pkg/types"
)

// Stats summarizes pages produced for layout. Chapters lists each chapter
// page's title in order.
func Stats(pages []types.Page, layout types.Layout) types.PageStats {
	var st types.PageStats
	st.Pages = len(pages)

	for _, p := range pages {
		switch p.Kind {
		case types.PageChapter:
			st.ChapterPages++
			if title := chapterTitle(p, layout); title != "" {
				st.Chapters = append(st.Chapters, title)
			}
		default:
			st.ContentPages++
		}

		for _, line := range p.Lines {
			st.Lines++
			if line == "" {
				st.BlankLines++
			}
			if utf8.RuneCountInString(line) > layout.MaxCharsPerLine {
				st.OverlongLines++
			}
		}
	}
	return st
}

func chapterTitle(p types.Page, layout types.Layout) string {
	mid := Midpoint(layout.MaxLinesPerPage)
	if mid-1 < 0 || mid-1 >= len(p.Lines) {
		return ""
	}
	return strings.TrimSpace(p.Lines[mid-1])
}
