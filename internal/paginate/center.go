// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"strings"
	"unicode/utf8"
)

// Center pads text with spaces on both sides to width characters. When the
// margin is odd the extra space goes left only if width is odd too. Text of
// width characters or more is returned unchanged.
func Center(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	margin := width - n
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", margin-left)
}

// Midpoint returns the middle row index of a page of pageSize lines.
func Midpoint(pageSize int) int {
	return pageSize / 2
}
