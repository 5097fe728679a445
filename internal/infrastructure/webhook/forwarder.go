package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/business-intake/api/internal/infrastructure/httpclient"
	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/intake/domain"
)

const maxResponseBody = 1 << 16

// Config defines dependencies required by Forwarder.
type Config struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Forwarder posts submissions to the workflow webhook.
type Forwarder struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewForwarder builds a Forwarder for cfg.URL.
func NewForwarder(cfg Config) *Forwarder {
	timeout := httpclient.TimeoutOrDefault(cfg.Timeout)
	client := cfg.HTTPClient
	if client == nil {
		client = httpclient.NewNoRedirect(timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Forwarder{
		url:        strings.TrimSpace(cfg.URL),
		timeout:    timeout,
		httpClient: client,
		logger:     logger,
	}
}

// Forward sends payload as JSON. Errors are application.ErrUpstreamTimeout,
// *application.UpstreamStatusError, or anything else for unclassified failures.
// Redirects are not followed, so a 3xx is reported as an UpstreamStatusError.
// No retries are attempted.
func (f *Forwarder) Forward(ctx context.Context, payload domain.SubmissionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := f.httpClient.Do(req)
	if err != nil {
		if httpclient.IsTimeout(err) {
			return fmt.Errorf("webhook delivery: %w", application.ErrUpstreamTimeout)
		}
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		message, readErr := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
		if readErr != nil {
			f.logger.Debug("webhook error body read failed", slog.Any("error", readErr))
		}
		return &application.UpstreamStatusError{
			Service:    "webhook",
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(message)),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBody))
	f.logger.Debug("webhook delivered", slog.Int("status", res.StatusCode), slog.Int("companies", len(payload.Companies)))
	return nil
}

var _ application.SubmissionForwarder = (*Forwarder)(nil)
