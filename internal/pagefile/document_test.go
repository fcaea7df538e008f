// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagefile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/pkg/types"
)

func TestReadDocument_RoundTrip(t *testing.T) {
	layout := types.DefaultLayout()
	doc := NewDocument("hobbit.txt", layout, paginate.Paginate(sampleLines))

	for _, format := range []types.OutputFormat{types.OutputYAML, types.OutputJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, doc, format))

			got, err := ReadDocument(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, doc.Source, got.Source)
			assert.Equal(t, doc.Layout, got.Layout)
			assert.Equal(t, doc.Pages, got.Pages)
		})
	}
}

func TestReadDocument_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		format types.OutputFormat
		input  string
	}{
		{
			name:   "missing pages",
			format: types.OutputJSON,
			input:  `{"source": "a.txt", "layout": {"max_chars_per_line": 47, "max_lines_per_page": 10}}`,
		},
		{
			name:   "unknown page kind",
			format: types.OutputJSON,
			input:  `{"source": "a.txt", "layout": {"max_chars_per_line": 47, "max_lines_per_page": 10}, "pages": [{"kind": "cover", "lines": []}]}`,
		},
		{
			name:   "one line per page",
			format: types.OutputYAML,
			input:  "source: a.txt\nlayout:\n  max_chars_per_line: 47\n  max_lines_per_page: 1\npages: []\n",
		},
		{
			name:   "malformed json",
			format: types.OutputJSON,
			input:  `{"source": `,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}

	_, err := ReadDocument(strings.NewReader("{}"), types.OutputText)
	assert.Error(t, err)
}

func TestLoadPages(t *testing.T) {
	layout := types.DefaultLayout()
	pages := paginate.Paginate(sampleLines)
	dir := t.TempDir()

	textPath := filepath.Join(dir, "hobbit_paged.txt")
	require.NoError(t, WriteFile(textPath, pages))

	jsonPath := filepath.Join(dir, "hobbit_paged.json")
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, NewDocument("hobbit.txt", layout, pages)))
	require.NoError(t, os.WriteFile(jsonPath, buf.Bytes(), 0o644))

	for _, path := range []string{textPath, jsonPath} {
		got, err := LoadPages(path, layout)
		require.NoError(t, err, path)
		assert.Equal(t, pages, got, path)
	}

	_, err := LoadPages(filepath.Join(dir, "missing.yaml"), layout)
	assert.Error(t, err)
}
