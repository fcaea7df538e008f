// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name    string
		want    Loader
		wantErr bool
	}{
		{name: "fellowship.txt", want: &TextLoader{}},
		{name: "README", want: &TextLoader{}},
		{name: "notes.MD", want: &MarkdownLoader{}},
		{name: "book.markdown", want: &MarkdownLoader{}},
		{name: "page.htm", want: &HTMLLoader{}},
		{name: "page.html", want: &HTMLLoader{}},
		{name: "scan.pdf", want: &PDFLoader{}},
		{name: "draft.docx", want: &DOCXLoader{}},
		{name: "book.epub", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForFile(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				assert.Contains(t, err.Error(), ".epub")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestTextLoader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []string
	}{
		{
			name:  "plain lines",
			input: []byte("Chapter One\nThe Beginning\n\nSome body text.\n"),
			want:  []string{"Chapter One", "The Beginning", "", "Some body text."},
		},
		{
			name:  "crlf line endings",
			input: []byte("one\r\ntwo\r\n"),
			want:  []string{"one", "two"},
		},
		{
			name:  "no trailing newline",
			input: []byte("one\n  two"),
			want:  []string{"one", "  two"},
		},
		{
			name:  "utf-8 bom dropped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Chapter 1\n")...),
			want:  []string{"Chapter 1"},
		},
		{
			name:  "utf-16 little endian",
			input: []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0, 'y', 0, 'o', 0},
			want:  []string{"hi", "yo"},
		},
		{
			name:  "empty",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&TextLoader{}).Load(strings.NewReader(string(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownLoader(t *testing.T) {
	input := `# Chapter One

The *road* wandered east
past the mill.

- first item
- second item

---

    code line
`
	got, err := (&MarkdownLoader{}).Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Chapter One",
		"",
		"The road wandered east past the mill.",
		"",
		"first item",
		"",
		"second item",
		"",
		"code line",
	}, got)
}

func TestHTMLLoader(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<h1>Chapter  Two</h1>
<p>Three rings
   for the <em>river-folk</em>.</p>
<script>alert(1)</script>
<ul><li>one</li><li>two</li></ul>
</body></html>`

	got, err := (&HTMLLoader{}).Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Chapter Two",
		"",
		"Three rings for the river-folk.",
		"",
		"one",
		"",
		"two",
	}, got)
}

func TestDOCXLoader(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("Chapter Three")
	w.AddParagraph()
	p := w.AddParagraph()
	p.AddText("A Journey in ")
	p.AddText("the Dark")

	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)

	got, err := (&DOCXLoader{}).Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter Three", "", "A Journey in the Dark"}, got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nb\n"), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, got)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "story.odt"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
