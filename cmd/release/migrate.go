// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/nevisa/internal/platform/config"
	"github.com/taibuivan/nevisa/internal/platform/logger"
	"github.com/taibuivan/nevisa/internal/platform/migration"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger.New(os.Stdout, "migrate", cfg.Debug))
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, downSteps, logger.New(os.Stdout, "migrate", cfg.Debug))
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
