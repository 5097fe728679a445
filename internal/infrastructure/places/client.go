package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sngm3741/business-intake/api/internal/infrastructure/httpclient"
	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/intake/domain"
)

const (
	// DefaultEndpoint is the Google Places autocomplete endpoint.
	DefaultEndpoint = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	placeTypeFilter = "establishment"
	maxErrorBody    = 1 << 16
)

// Config defines dependencies required by Client.
type Config struct {
	APIKey     string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client implements application.PlacesLookup against the places autocomplete API.
type Client struct {
	apiKey     string
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a Client; zero values fall back to the defaults above.
func NewClient(cfg Config) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := httpclient.TimeoutOrDefault(cfg.Timeout)
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpclient.New(timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     logger,
	}
}

type autocompleteResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Predictions  []prediction `json:"predictions"`
}

type prediction struct {
	Description *string `json:"description"`
	PlaceID     *string `json:"place_id"`
}

// Autocomplete issues one GET per call and maps predictions in upstream order.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]domain.Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build autocomplete request: %w", err)
	}
	values := req.URL.Query()
	values.Set("input", query)
	values.Set("types", placeTypeFilter)
	values.Set("key", c.apiKey)
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		if httpclient.IsTimeout(err) {
			return nil, fmt.Errorf("places autocomplete: %w", application.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("places autocomplete request failed: %w", redact(err))
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, &application.UpstreamStatusError{
			Service:    "places",
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload autocompleteResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w: %v", application.ErrMalformedResponse, err)
	}

	switch payload.Status {
	case "", "OK", "ZERO_RESULTS":
	default:
		c.logger.Warn("places autocomplete returned non-ok status",
			slog.String("status", payload.Status),
			slog.String("error_message", payload.ErrorMessage))
	}

	results := make([]domain.Prediction, 0, len(payload.Predictions))
	for i, p := range payload.Predictions {
		if p.Description == nil || p.PlaceID == nil {
			return nil, fmt.Errorf("prediction %d lacks description or place_id: %w", i, application.ErrMalformedResponse)
		}
		results = append(results, domain.Prediction{Name: *p.Description, PlaceID: *p.PlaceID})
	}
	return results, nil
}

// redact drops the request URL from transport errors so the API key never reaches the logs.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s places endpoint: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

var _ application.PlacesLookup = (*Client)(nil)
