// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the JSON slog logger shared by the Nevisa binaries.
package logger

import (
	"io"
	"log/slog"

	"github.com/taibuivan/nevisa/internal/platform/constants"
)

// New returns a JSON logger tagged with the app and process names and installs
// it as the slog default.
func New(output io.Writer, process string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})).With(
		slog.String(constants.FieldApp, constants.AppName),
		slog.String("process", process),
	)
	slog.SetDefault(log)

	return log
}
