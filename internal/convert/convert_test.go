// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/inkpager/internal/pagefile"
	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/pkg/types"
)

const fellowship = `Chapter 1
A Long-Expected Journey

The road left the village at the bottom of the hill and wandered east
between hedges that had not been trimmed since spring, and nobody who
lived along it could remember where it ended.

Chapter 2
The Shadow at the Gate
`

// setupSource writes a text source into a temp dir and returns its path.
func setupSource(t *testing.T, name, content string) (srcPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	srcPath = filepath.Join(tmpDir, name)
	if err := os.WriteFile(srcPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return srcPath, tmpDir
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want string
	}{
		{name: "next to source", src: "books/fellowship.txt", want: filepath.Join("books", "fellowship_paged.txt")},
		{name: "out dir", src: "books/fellowship.txt", opts: Options{OutDir: "out"}, want: filepath.Join("out", "fellowship_paged.txt")},
		{name: "yaml", src: "fellowship.md", opts: Options{Format: types.OutputYAML}, want: "fellowship_paged.yaml"},
		{name: "json", src: "fellowship.html", opts: Options{Format: types.OutputJSON}, want: "fellowship_paged.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputPath(tt.src, tt.opts); got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		srcName    string
		preCreate  bool // create output before running
		force      bool
		wantStatus Status
		wantLog    string
	}{
		{
			name:       "successful conversion",
			srcName:    "fellowship.txt",
			wantStatus: StatusConverted,
			wantLog:    "Wrote 3 pages to",
		},
		{
			name:       "skip existing output",
			srcName:    "fellowship.txt",
			preCreate:  true,
			wantStatus: StatusSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force overwrites existing output",
			srcName:    "fellowship.txt",
			preCreate:  true,
			force:      true,
			wantStatus: StatusConverted,
			wantLog:    "Wrote 3 pages to",
		},
		{
			name:       "unsupported source",
			srcName:    "fellowship.odt",
			wantStatus: StatusFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, tmpDir := setupSource(t, tt.srcName, fellowship)
			opts := Options{OutDir: filepath.Join(tmpDir, "out"), Force: tt.force}

			if tt.preCreate {
				if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(OutputPath(src, opts), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status, _ := ConvertFile(paginate.Default(), src, opts, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertFile_Output(t *testing.T) {
	src, tmpDir := setupSource(t, "fellowship.txt", fellowship)
	opts := Options{OutDir: tmpDir}

	var log bytes.Buffer
	status, n := ConvertFile(paginate.Default(), src, opts, &log)
	if status != StatusConverted {
		t.Fatalf("expected StatusConverted, got %q (%s)", status, log.String())
	}
	if n != 3 {
		t.Errorf("pages = %d, want 3", n)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "fellowship_paged.txt"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	if got := strings.Count(content, "<<PAGE BREAK>>\n"); got != 3 {
		t.Errorf("page breaks = %d, want 3", got)
	}
	if !strings.Contains(content, "A Long-Expected Journey") {
		t.Error("output should contain the subtitle")
	}

	pages, err := pagefile.ReadFile(filepath.Join(tmpDir, "fellowship_paged.txt"), types.DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	kinds := []types.PageKind{types.PageChapter, types.PageContent, types.PageChapter}
	for i, want := range kinds {
		if pages[i].Kind != want {
			t.Errorf("page %d kind = %q, want %q", i, pages[i].Kind, want)
		}
	}
}

func TestConvertFile_YAML(t *testing.T) {
	src, tmpDir := setupSource(t, "fellowship.txt", fellowship)
	opts := Options{OutDir: tmpDir, Format: types.OutputYAML}

	var log bytes.Buffer
	if status, _ := ConvertFile(paginate.Default(), src, opts, &log); status != StatusConverted {
		t.Fatalf("expected StatusConverted, got %q (%s)", status, log.String())
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "fellowship_paged.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "chapter_pages: 2") {
		t.Errorf("yaml export should carry stats, got:\n%s", data)
	}
}

func TestConvertBatch(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	// Three sources: one converts, one already has output, one is unsupported.
	var srcs []string
	for _, name := range []string{"a.txt", "b.md", "c.odt"} {
		p := filepath.Join(tmpDir, name)
		if err := os.WriteFile(p, []byte("# Chapter 1\n\nText.\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		srcs = append(srcs, p)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "b_paged.txt"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result := ConvertBatch(paginate.Default(), srcs, Options{OutDir: outDir}, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary:") {
		t.Error("batch output should contain summary line")
	}
}
