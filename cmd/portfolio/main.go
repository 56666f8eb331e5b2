// Package main provides the portfolio command: a CLI and HTTP server for
// building a portfolio page from form fields and an ordered list of sections.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	store      string
	dsn        string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio builder",
		Long:          "Builds a portfolio page from form fields and a reorderable list of sections, keeps it in a local store and exports it as HTML, PDF or text.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON or YAML config file")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "Store driver: memory, sqlite or postgres")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "SQLite file path or PostgreSQL URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed summaries")

	root.AddCommand(
		newServeCmd(opts),
		newShowCmd(opts),
		newSetCmd(opts),
		newSectionsCmd(opts),
		newCustomizeCmd(opts),
		newThemeCmd(opts),
		newRenderCmd(opts),
		newExportCmd(opts),
		newWatchCmd(opts),
		newValidateCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
