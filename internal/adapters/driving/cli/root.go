// Package cli wires the cobra command tree that drives the agent.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/datamoor/csvrelay/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "csvrelay",
	Short: "Watch a directory and forward CSV drops to their tables",
	Long: `csvrelay watches a source directory tree for newly written CSV files,
matches each file's header line against known table templates, and
transfers matched files to the remote host under a directory named
after the table. The local copy is deleted after a successful transfer
and every outcome is appended to an upload.log next to the source file.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the TOML settings file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
