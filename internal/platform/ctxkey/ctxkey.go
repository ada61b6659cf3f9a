// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys shared by middleware and handlers.
package ctxkey

// key is unexported so no other package can collide with these entries.
type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser holds the verified [sec.AuthClaims].
	KeyUser key = "user"

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger key = "logger"
)
