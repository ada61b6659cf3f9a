// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/nevisa/internal/platform/constants"
)

var passNow string

var passCmd = &cobra.Command{
	Use:   "pass",
	Short: "Run one release pass",
	Long:  `Releases every episode due at --now (default: current time) and prints the pass result as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := parseNow(passNow)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		w, err := openWorker(ctx)
		if err != nil {
			return err
		}
		defer w.Close()

		passCtx, passCancel := context.WithTimeout(ctx, constants.ReleasePassTimeout)
		defer passCancel()

		result, runErr := w.scheduler.RunReleasePass(passCtx, now)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}

		return runErr
	},
}

// parseNow accepts an RFC 3339 timestamp; empty means the current time.
func parseNow(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", raw, err)
	}
	return now.UTC(), nil
}

func init() {
	passCmd.Flags().StringVar(&passNow, "now", "", "pass time in RFC 3339 (default: now)")
	rootCmd.AddCommand(passCmd)
}
