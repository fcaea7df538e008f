// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert paginates source documents into paged text files.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/inkpager/internal/pagefile"
	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/internal/source"
	"github.com/pdiddy/inkpager/pkg/types"
)

// pagedSuffix is appended to the source base name for the output file.
const pagedSuffix = "_paged"

// Status is the outcome of converting one source.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Options controls where and how output is written.
type Options struct {
	// OutDir receives the output files. Empty means next to each source.
	OutDir string

	// Format selects paged text, YAML or JSON output.
	Format types.OutputFormat

	// Force overwrites existing output instead of skipping it.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Pages     int
}

// Total returns the total number of sources processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any source failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns where the output for src is written: <base>_paged.txt
// for text, .yaml or .json for the export formats.
func OutputPath(src string, opts Options) string {
	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))

	ext := ".txt"
	switch opts.Format {
	case types.OutputYAML:
		ext = ".yaml"
	case types.OutputJSON:
		ext = ".json"
	}
	return filepath.Join(dir, base+pagedSuffix+ext)
}

// ConvertFile loads src, paginates it with p and writes the result. It prints
// one status line to w and returns the status and page count. Existing
// output is skipped unless opts.Force is set.
func ConvertFile(p *paginate.Paginator, src string, opts Options, w io.Writer) (Status, int) {
	out := OutputPath(src, opts)

	if !opts.Force {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", out)
			return StatusSkipped, 0
		}
	}

	lines, err := source.LoadFile(src)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed, 0
	}

	pages := p.Paginate(lines)

	if err := writeOutput(out, src, p.Layout(), pages, opts.Format); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed, 0
	}

	fmt.Fprintf(w, "Wrote %d pages to %s\n", len(pages), out)
	return StatusConverted, len(pages)
}

// ConvertBatch converts each source in order, printing per-file status and a
// summary line to w.
func ConvertBatch(p *paginate.Paginator, srcs []string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	for _, src := range srcs {
		status, n := ConvertFile(p, src, opts, w)
		switch status {
		case StatusConverted:
			result.Converted++
			result.Pages += n
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	if len(srcs) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
			result.Converted, result.Skipped, result.Failed, result.Total())
	}
	return result
}

func writeOutput(path, src string, layout types.Layout, pages []types.Page, format types.OutputFormat) error {
	if format == types.OutputText || format == "" {
		return pagefile.WriteFile(path, pages)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pagefile.Export(f, pagefile.NewDocument(src, layout, pages), format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
