// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inkpager/internal/convert"
	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/internal/watch"
	"github.com/pdiddy/inkpager/pkg/types"
)

// defaultSource is paginated when no file is named.
const defaultSource = "fellowship.txt"

var paginateCmd = &cobra.Command{
	Use:   "paginate [files...]",
	Short: "Paginate text files into display pages",
	Long: `Paginate reads each source (plain text, Markdown, HTML, or PDF), wraps it
into display lines, splits the lines into pages, and writes <name>_paged.txt
with a <<PAGE BREAK>> line after every page. Chapter headings get a page of
their own with the title and subtitle centered.

With no arguments, paginate reads fellowship.txt. Existing output is skipped
unless --force is given. --watch re-paginates a single file whenever it
changes.`,
	RunE: runPaginate,
}

func runPaginate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{defaultSource}
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	force, _ := cmd.Flags().GetBool("force")
	formatFlag, _ := cmd.Flags().GetString("format")
	watchFlag, _ := cmd.Flags().GetBool("watch")

	format, err := types.ParseOutputFormat(formatFlag)
	if err != nil {
		return err
	}

	p, err := paginate.New(cfg.Layout)
	if err != nil {
		return err
	}

	opts := convert.Options{OutDir: outDir, Format: format, Force: force}

	if watchFlag {
		if len(args) != 1 {
			return fmt.Errorf("--watch takes exactly one file, got %d", len(args))
		}
		return watchSource(cmd.Context(), p, args[0], opts)
	}

	result := convert.ConvertBatch(p, args, opts, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed pagination", result.Failed)
	}
	return nil
}

// watchSource paginates src once, then again on every change until
// interrupted.
func watchSource(ctx context.Context, p *paginate.Paginator, src string, opts convert.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Rewrites during a watch always replace the previous output.
	opts.Force = true
	run := func() error {
		status, _ := convert.ConvertFile(p, src, opts, os.Stdout)
		if status == convert.StatusFailed {
			return fmt.Errorf("paginating %s failed", src)
		}
		return nil
	}

	if err := run(); err != nil {
		logger.Warn("initial pagination failed", "path", src, "error", err)
	}

	w := &watch.Watcher{Path: src, OnChange: run, Logger: logger}
	return w.Run(ctx)
}

func init() {
	paginateCmd.Flags().String("out-dir", "", "directory for output files (default: next to each source)")
	paginateCmd.Flags().Bool("force", false, "overwrite existing output")
	paginateCmd.Flags().String("format", "text", "output format: text, yaml, or json")
	paginateCmd.Flags().Bool("watch", false, "re-paginate the file whenever it changes")

	rootCmd.AddCommand(paginateCmd)
}
