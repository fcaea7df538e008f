// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the inkpager CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/inkpager/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the configuration loaded before any subcommand runs.
var cfg types.Config

// rootCmd is the base command for the inkpager CLI.
var rootCmd = &cobra.Command{
	Use:   "inkpager",
	Short: "Paginate plain-text books for small e-paper displays",
	Long: `inkpager wraps prose into lines of at most 47 characters, groups them
into pages of 10 lines, and gives every chapter heading a page of its own with
a centered title and subtitle. The result targets a 296x128 e-paper panel drawn
with a 6x8 character cell.

Use paginate to write paged files, preview to inspect pages in the terminal,
and library to keep paginated books in a local SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./inkpager.yaml or ~/.config/inkpager/inkpager.yaml)")
	rootCmd.PersistentFlags().Int("max-chars", types.MaxCharsPerLine, "maximum characters per display line")
	rootCmd.PersistentFlags().Int("max-lines", types.MaxLinesPerPage, "display lines per page")

	viper.BindPFlag("layout.max_chars_per_line", rootCmd.PersistentFlags().Lookup("max-chars"))
	viper.BindPFlag("layout.max_lines_per_page", rootCmd.PersistentFlags().Lookup("max-lines"))
}

func initConfig() {
	defaults := types.Config{
		Layout:  types.DefaultLayout(),
		Display: types.DefaultDisplay(),
		Library: types.LibraryConfig{Dir: "library"},
	}
	viper.SetDefault("layout.max_chars_per_line", defaults.Layout.MaxCharsPerLine)
	viper.SetDefault("layout.max_lines_per_page", defaults.Layout.MaxLinesPerPage)
	viper.SetDefault("display.char_width", defaults.Display.CharWidth)
	viper.SetDefault("display.char_height", defaults.Display.CharHeight)
	viper.SetDefault("display.page_width", defaults.Display.PageWidth)
	viper.SetDefault("display.page_height", defaults.Display.PageHeight)
	viper.SetDefault("library.dir", defaults.Library.Dir)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inkpager")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inkpager"))
		}
	}

	viper.SetEnvPrefix("INKPAGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile == "" {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// loadConfig unmarshals viper state into cfg and validates the layout.
func loadConfig() error {
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	cfg.Library.Layout = cfg.Layout
	if err := cfg.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
