// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import (
	"strings"
	"unicode/utf8"
)

// Wrap re-flows paragraph into lines of at most width characters, breaking
// greedily at whitespace. Whitespace runs, newlines included, collapse to a
// single space. A word longer than width is placed alone on its line and
// never split. A paragraph with no words yields no lines.
func Wrap(paragraph string, width int) []string {
	words := strings.FieldsFunc(paragraph, isBreakSpace)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur strings.Builder
	curLen := 0

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+n > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	lines = append(lines, cur.String())

	return lines
}

// isBreakSpace reports the ASCII whitespace the wrapper breaks on. No-break
// space and other Unicode spaces stay inside words.
func isBreakSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
