package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snipsync/snipsync/docsync"
	"github.com/snipsync/snipsync/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [doc path]",
	Short: "sync continuously while docs or content change",
	Long: `Performs an initial sync, then watches the doc tree and every
referenced content directory and re-syncs after changes. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}

		// a full run also collects the directories to watch
		resync := func() error {
			d, err := docsync.New(args[0], cfg, logger)
			if err != nil {
				return err
			}
			if err := d.Parse(ctx); err != nil {
				return err
			}
			return d.Sync(ctx)
		}

		d, err := docsync.New(args[0], cfg, logger)
		if err != nil {
			return err
		}
		if err := d.Parse(ctx); err != nil {
			return err
		}
		if err := d.Sync(ctx); err != nil {
			return err
		}

		w, err := watch.New(d.WatchDirs(), resync, logger)
		if err != nil {
			return err
		}

		w.Start(ctx)
		defer w.Stop()

		logger.Info("watching", zap.Strings("dirs", d.WatchDirs()))

		<-ctx.Done()
		return nil
	},
}
