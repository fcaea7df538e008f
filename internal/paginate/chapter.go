// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paginate

import "strings"

const chapterPrefix = "chapter"

// IsChapterHeader reports whether line, trimmed and lower-cased, starts with
// "chapter". Prose lines such as "Chapters are long." match too.
func IsChapterHeader(line string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), chapterPrefix)
}
