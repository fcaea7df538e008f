// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineBytes = 1024 * 1024

// TextLoader reads plain text. A UTF-8 or UTF-16 byte order mark selects the
// encoding and is dropped; text without one is read as UTF-8.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	return lines, nil
}
