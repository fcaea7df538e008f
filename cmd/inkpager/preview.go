// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/inkpager/internal/pagefile"
	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/internal/preview"
	"github.com/pdiddy/inkpager/internal/source"
	"github.com/pdiddy/inkpager/pkg/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show pages framed as they appear on the display",
	Long: `Preview paginates a source file and draws each page in a frame the width
of a display line. Use --paged to read an existing _paged.txt file (or a
.yaml/.json export) instead, --page to show a single page, --interactive to
page through the document in the terminal, and --geometry to print the
panel's character grid and whether the current layout fits.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	geometry, _ := cmd.Flags().GetBool("geometry")
	paged, _ := cmd.Flags().GetBool("paged")
	pageNo, _ := cmd.Flags().GetInt("page")
	showRuler, _ := cmd.Flags().GetBool("ruler")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if geometry {
		preview.Geometry(os.Stdout, cfg.Display, cfg.Layout)
		if len(args) == 0 {
			return nil
		}
		fmt.Println()
	}
	if len(args) == 0 {
		return fmt.Errorf("a file is required unless --geometry is given")
	}

	pages, err := previewPages(args[0], paged)
	if err != nil {
		return err
	}

	if interactive {
		return preview.Interactive(cfg.Layout, pages, filepath.Base(args[0]))
	}

	r := preview.NewRenderer(cfg.Layout)
	r.ShowRuler = showRuler

	if pageNo > 0 {
		if pageNo > len(pages) {
			return fmt.Errorf("page %d out of range: %s has %d pages", pageNo, args[0], len(pages))
		}
		return r.RenderPage(os.Stdout, pages[pageNo-1], pageNo, len(pages))
	}
	return r.Render(os.Stdout, pages)
}

func previewPages(path string, paged bool) ([]types.Page, error) {
	if paged {
		return pagefile.LoadPages(path, cfg.Layout)
	}
	p, err := paginate.New(cfg.Layout)
	if err != nil {
		return nil, err
	}
	lines, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Paginate(lines), nil
}

func init() {
	previewCmd.Flags().Bool("paged", false, "read an already paginated file")
	previewCmd.Flags().Int("page", 0, "show only this page (1-based)")
	previewCmd.Flags().Bool("ruler", false, "draw a column ruler above each page")
	previewCmd.Flags().BoolP("interactive", "i", false, "page through the document with the keyboard")
	previewCmd.Flags().Bool("geometry", false, "print the display grid and layout fit")

	rootCmd.AddCommand(previewCmd)
}
