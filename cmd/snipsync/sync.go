package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snipsync/snipsync/docsync"
)

var syncCmd = &cobra.Command{
	Use:   "sync [doc path]",
	Short: "rewrite the code blocks under a doc path",
	Long: `Discovers the markdown files under the doc path (a single file or a
directory tree), parses the content files their directives reference,
and rewrites every bound code block in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		d, err := docsync.New(args[0], cfg, logger)
		if err != nil {
			return err
		}
		if err := d.Parse(cmd.Context()); err != nil {
			return err
		}
		return d.Sync(cmd.Context())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [doc path]",
	Short: "verify that the docs are in sync",
	Long: `Runs the same pipeline as sync but writes nothing. Files whose code
blocks are out of date are listed on stdout and the command exits
non-zero, which makes check suitable as a CI gate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		d, err := docsync.New(args[0], cfg, logger)
		if err != nil {
			return err
		}
		if err := d.Parse(cmd.Context()); err != nil {
			return err
		}

		stale, err := d.Check(cmd.Context())
		if err != nil {
			return err
		}

		for _, path := range stale {
			fmt.Println(path)
		}
		if len(stale) > 0 {
			return fmt.Errorf("%d doc file(s) out of sync", len(stale))
		}
		return nil
	},
}
