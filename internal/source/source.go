// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source loads documents of several formats as the raw line
// sequence the paginator consumes. Block-structured formats (Markdown, HTML,
// Word) are flattened to one line per block with blank lines between blocks,
// so that block boundaries become paragraph breaks.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by ForFile for extensions no Loader handles.
var ErrUnsupportedFormat = errors.New("source: unsupported format")

// Loader reads a document and returns its lines without line terminators.
type Loader interface {
	Load(r io.Reader) ([]string, error)
}

// Extensions lists the file extensions ForFile accepts.
var Extensions = []string{".txt", ".text", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"}

// ForFile returns the Loader for a filename based on its extension. Files
// without an extension are read as plain text.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text", "":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// LoadFile opens path and loads it with the Loader for its extension.
func LoadFile(path string) ([]string, error) {
	loader, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := loader.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return lines, nil
}

// blockWriter collects block texts as lines separated by one blank line.
type blockWriter struct {
	lines []string
}

func (b *blockWriter) block(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(b.lines) > 0 {
		b.lines = append(b.lines, "")
	}
	b.lines = append(b.lines, strings.Split(text, "\n")...)
}
