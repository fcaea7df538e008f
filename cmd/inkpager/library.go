// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/inkpager/internal/library"
	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/internal/preview"
	"github.com/pdiddy/inkpager/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the page library (add, list, page, search, remove, export)",
	Long: `Library keeps paginated books in a local SQLite database so a display
renderer can fetch any page by book and number. Use subcommands to add
sources, list books, read pages, search, or export a book.`,
}

// --- add subcommand ---

var libraryAddCmd = &cobra.Command{
	Use:   "add [files...]",
	Short: "Paginate sources and store them in the library",
	Long: `Add loads and paginates each source and stores its pages. Sources whose
modification time and layout are unchanged since the last add are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLibraryAdd,
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	store, err := openLibrary()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := paginate.New(cfg.Layout)
	if err != nil {
		return err
	}

	summary, err := store.Ingest(cmd.Context(), p, args, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d source(s) failed", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		books, err := store.Books(cmd.Context())
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatBooks(books, jsonOutput)
	},
}

func formatBooks(books []types.Book, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(books)
	}

	if len(books) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %6s  %8s  %s\n", "ID", "Title", "Pages", "Chapters", "Layout")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, b := range books {
		id := b.ID
		if len(id) > 20 {
			id = id[:17] + "..."
		}
		title := b.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %6d  %8d  %dx%d\n",
			id, title, b.PageCount, b.ChapterCount, b.Layout.MaxCharsPerLine, b.Layout.MaxLinesPerPage)
	}
	fmt.Fprintf(os.Stdout, "\n%d books\n", len(books))
	return nil
}

// --- page subcommand ---

var libraryPageCmd = &cobra.Command{
	Use:   "page BOOK N",
	Short: "Print one page of a book (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page number %q", args[1])
		}

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		book, err := store.Book(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		page, err := store.Page(cmd.Context(), args[0], n)
		if err != nil {
			return err
		}

		frame, _ := cmd.Flags().GetBool("frame")
		if frame {
			return preview.NewRenderer(book.Layout).RenderPage(os.Stdout, page, n, book.PageCount)
		}
		fmt.Println(page.Text())
		return nil
	},
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Find pages containing a term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, _ := cmd.Flags().GetString("book")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		hits, err := store.Search(cmd.Context(), strings.Join(args, " "), bookID, limit)
		if err != nil {
			return err
		}

		if len(hits) == 0 {
			fmt.Println("No results found.")
			return nil
		}
		for _, h := range hits {
			fmt.Fprintf(os.Stdout, "%s p.%d: %s\n", h.BookID, h.PageNo, strings.TrimSpace(h.Line))
		}
		fmt.Fprintf(os.Stdout, "\n%d results\n", len(hits))
		return nil
	},
}

// --- remove subcommand ---

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove BOOK",
	Short: "Remove a book and its pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RemoveBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export BOOK",
	Short: "Write a book as paged text, YAML, or JSON to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := types.ParseOutputFormat(formatFlag)
		if err != nil {
			return err
		}

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Export(cmd.Context(), args[0], os.Stdout, format)
	},
}

// --- shared helpers ---

func openLibrary() (*library.Store, error) {
	libCfg := cfg.Library
	if dir := viper.GetString("library.dir"); dir != "" {
		libCfg.Dir = dir
	}
	libCfg.Layout = cfg.Layout
	return library.NewStore(libCfg)
}

func init() {
	libraryCmd.PersistentFlags().String("library-dir", "library", "directory holding library.db")
	viper.BindPFlag("library.dir", libraryCmd.PersistentFlags().Lookup("library-dir"))

	libraryListCmd.Flags().Bool("json", false, "output books as JSON")
	libraryPageCmd.Flags().Bool("frame", false, "draw the page in a preview frame")
	librarySearchCmd.Flags().String("book", "", "limit the search to one book ID")
	librarySearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	libraryExportCmd.Flags().String("format", "yaml", "export format: text, yaml, or json")

	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryPageCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryExportCmd)

	rootCmd.AddCommand(libraryCmd)
}
