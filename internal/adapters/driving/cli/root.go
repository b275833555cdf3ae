// Package cli provides the cobra command tree for the crhp binary.
package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "crhp",
	Short: "Civil rights oral history archive",
	Long: `crhp builds classroom lesson plans from the civil rights oral history archive.

A lesson names glossary terms and interview clips; crhp fetches them from the
configured archive store and renders the combined view in the terminal, as
JSON, over HTTP, or as MCP tools for AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.crhp, or $CRHP_CONFIG_DIR)")
}

// setup runs before every command.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// SetVersion sets the version reported by `crhp version`.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
