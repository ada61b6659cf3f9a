// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared by the API server and the
release worker.

Anything an operator may want to tune lives in config instead; what remains
here are protocol names, server deadlines and the release pipeline's fixed
thresholds.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "nevisa"
	AppVersion = "0.1.0-dev"

	// SiteDomain is the public apex domain; CORS trusts it and its subdomains.
	SiteDomain = "nevisa.ir"

	// AuthIssuer is the 'iss' claim expected on access tokens.
	AuthIssuer = "nevisa.ir"
)

// # HTTP Server

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 90 * time.Second

	// GlobalRequestTimeout caps one request end to end, handler included.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the drain window for in-flight requests.
	ShutdownTimeout = 20 * time.Second
)

// # Per-IP Throttling

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// Idle visitors are swept every RateLimitCleanupInterval once unseen for RateLimitClientTTL.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 5 * time.Minute
)

// # Release Pipeline

const (
	// CompletionThreshold is the reading progress at which an article counts as read.
	CompletionThreshold = 0.9

	// ReleasePassTimeout bounds a single pass started from the CLI or the admin endpoint.
	ReleasePassTimeout = 10 * time.Minute

	// RedisKeyReleaseLease names the lock that keeps release passes from overlapping.
	RedisKeyReleaseLease = "nevisa:release:lease"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Health Payload Fields

const (
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
