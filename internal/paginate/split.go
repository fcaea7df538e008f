// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import "github.com/pdiddy/inkpager/pkg/types"

// Split partitions lines into content pages of exactly size lines, in order.
// The final page holds the remainder and is not padded.
func Split(lines []string, size int) []types.Page {
	if len(lines) == 0 || size <= 0 {
		return nil
	}

	pages := make([]types.Page, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		chunk := make([]string, end-start)
		copy(chunk, lines[start:end])
		pages = append(pages, types.Page{Kind: types.PageContent, Lines: chunk})
	}
	return pages
}
