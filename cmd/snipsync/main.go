// Command snipsync keeps the code blocks in markdown documentation in
// sync with tagged regions in the source files they quote.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/snipsync/snipsync/config"
)

const version = "0.3.0"

var (
	verbose    bool
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "snipsync",
	Short: "sync tagged source snippets into markdown docs",
	Long: `snipsync rewrites the fenced code blocks in markdown files so they
match the tagged regions of the source files they reference.

A region is delimited in the source by a pair of "//! [tag]" marker
lines. A markdown code block is bound to a region with a directive
comment placed directly above it:

  <!-- [snipsync] [path/relative/to/repo/root] [tag] -->`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the snipsync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("snipsync", version)
	},
}

// loadConfig resolves the configuration for a run: the --config path if
// given, otherwise the optional config file next to the doc path.
func loadConfig(docPath string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	dir := docPath
	if info, err := os.Stat(docPath); err == nil && !info.IsDir() {
		dir = filepath.Dir(docPath)
	}

	return config.Find(dir)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a .snipsync.yaml")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "snipsync:", err)
		os.Exit(1)
	}
}
