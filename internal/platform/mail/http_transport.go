// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/nevisa/internal/platform/constants"
)

const (
	// maxErrorBody caps how much of a failed response body ends up in the error.
	maxErrorBody = 512

	releaseSubject = "قسمت تازه از «%s»"
)

var (
	releaseHTML = template.Must(template.New("release").Parse(`<!doctype html>
<html lang="fa" dir="rtl">
<body style="font-family: Vazirmatn, Tahoma, sans-serif;">
<p>{{if .RecipientName}}{{.RecipientName}} عزیز،{{else}}سلام،{{end}}</p>
<p>قسمت «{{.EpisodeTitle}}» از مجموعهٔ «{{.SeriesTitle}}» منتشر شد.</p>
<p><a href="{{.EpisodeURL}}">خواندن قسمت</a></p>
</body>
</html>`))
)

// HTTPTransport posts emails as JSON to a mail provider API.
type HTTPTransport struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

// NewHTTPTransport constructs an [HTTPTransport] whose calls are bounded by timeout.
func NewHTTPTransport(endpoint, apiKey, from string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: timeout},
	}
}

// providerRequest is the provider's send schema.
type providerRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type providerResponse struct {
	ID string `json:"id"`
}

// SendSeriesReleaseEmail implements [Transport].
//
// A 2xx reply counts as delivered, a 4xx as a rejection (not delivered, no
// error), anything else as an error.
func (transport *HTTPTransport) SendSeriesReleaseEmail(ctx context.Context, email SeriesReleaseEmail) (Receipt, error) {
	payload, err := transport.render(email)
	if err != nil {
		return Receipt{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("mail: encode request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, transport.endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("mail: new request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)
	if transport.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+transport.apiKey)
	}

	response, err := transport.client.Do(request)
	if err != nil {
		return Receipt{}, fmt.Errorf("mail: send: %w", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		var decoded providerResponse
		// The id is informational; providers that reply with an empty body are fine.
		_ = json.NewDecoder(io.LimitReader(response.Body, 64<<10)).Decode(&decoded)
		return Receipt{Delivered: true, MessageID: decoded.ID}, nil

	case response.StatusCode >= 400 && response.StatusCode < 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxErrorBody))
		return Receipt{Delivered: false}, nil

	default:
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return Receipt{}, fmt.Errorf("mail: provider returned %s: %s", response.Status, strings.TrimSpace(string(snippet)))
	}
}

func (transport *HTTPTransport) render(email SeriesReleaseEmail) (providerRequest, error) {
	var html bytes.Buffer
	if err := releaseHTML.Execute(&html, email); err != nil {
		return providerRequest{}, fmt.Errorf("mail: render template: %w", err)
	}

	text := fmt.Sprintf("قسمت «%s» از مجموعهٔ «%s» منتشر شد.\n%s\n", email.EpisodeTitle, email.SeriesTitle, email.EpisodeURL)

	return providerRequest{
		From:    transport.from,
		To:      email.To,
		Subject: fmt.Sprintf(releaseSubject, email.SeriesTitle),
		HTML:    html.String(),
		Text:    text,
	}, nil
}
