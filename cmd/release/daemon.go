// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/taibuivan/nevisa/internal/platform/constants"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run release passes on an interval",
	Long:  `Runs a release pass immediately and then every RELEASE_INTERVAL. Overlapping passes are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		w, err := openWorker(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		scheduler := gocron.NewScheduler(time.UTC)

		_, err = scheduler.Every(w.cfg.Release.Interval).SingletonMode().Do(func() {
			passCtx, passCancel := context.WithTimeout(ctx, constants.ReleasePassTimeout)
			defer passCancel()

			if _, err := w.scheduler.RunReleasePass(passCtx, time.Now().UTC()); err != nil {
				w.log.Error("release_pass_failed", slog.Any("error", err))
			}
		})
		if err != nil {
			return err
		}

		w.log.Info("release_daemon_started", slog.Duration("interval", w.cfg.Release.Interval))
		scheduler.StartAsync()

		<-ctx.Done()
		scheduler.Stop()
		w.log.Info("release_daemon_stopped")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
