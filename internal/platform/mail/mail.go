// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers transactional emails through a pluggable [Transport].

The default implementation posts JSON to an HTTP mail provider configured via
MAIL_API_URL and degrades to a log-only transport when no provider is set, so
development environments never send real mail.

Callers depend only on the [Transport] interface.
*/
package mail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/nevisa/internal/platform/config"
)

// defaultTimeout applies when the configured timeout is not positive.
const defaultTimeout = 10 * time.Second

// SeriesReleaseEmail is the payload of a "new episode" email.
type SeriesReleaseEmail struct {
	To            string
	RecipientName string
	SeriesTitle   string
	EpisodeTitle  string
	EpisodeURL    string
}

// Receipt reports the provider's verdict on a single send.
type Receipt struct {
	Delivered bool
	MessageID string
}

// Transport sends emails. Implementations must honour ctx cancellation.
type Transport interface {
	SendSeriesReleaseEmail(ctx context.Context, email SeriesReleaseEmail) (Receipt, error)
}

// NewTransport builds the HTTP provider transport when configured, otherwise a log-only one.
func NewTransport(cfg config.Mail, logger *slog.Logger) Transport {
	endpoint := strings.TrimSpace(cfg.APIURL)
	if endpoint == "" {
		logger.Warn("mail_transport_disabled", slog.String("reason", "MAIL_API_URL not set"))
		return NewLogTransport(logger)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return NewHTTPTransport(endpoint, cfg.APIKey, cfg.From, timeout)
}

// # Log-only Transport

// LogTransport records emails instead of sending them. It never reports delivery.
type LogTransport struct {
	logger *slog.Logger
}

// NewLogTransport constructs a [LogTransport].
func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// SendSeriesReleaseEmail implements [Transport].
func (transport *LogTransport) SendSeriesReleaseEmail(ctx context.Context, email SeriesReleaseEmail) (Receipt, error) {
	transport.logger.InfoContext(ctx, "mail_suppressed",
		slog.String("to", email.To),
		slog.String("series", email.SeriesTitle),
		slog.String("episode", email.EpisodeTitle),
		slog.String("url", email.EpisodeURL),
	)
	return Receipt{Delivered: false}, nil
}
