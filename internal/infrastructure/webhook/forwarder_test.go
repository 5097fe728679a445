package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sngm3741/business-intake/api/internal/infrastructure/httpclient"
	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/intake/domain"
	"github.com/sngm3741/business-intake/api/internal/shared/logging"
)

var samplePayload = domain.SubmissionPayload{
	Email:     "a@b.com",
	Companies: []domain.Company{{Name: "Acme", PlaceID: "xyz"}},
}

func newTestForwarder(url string, timeout time.Duration) *Forwarder {
	return NewForwarder(Config{URL: url, Timeout: timeout, Logger: logging.Discard()})
}

func TestForward_PostsJSON(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &received); err != nil {
			t.Errorf("body is not json: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := newTestForwarder(srv.URL, time.Second).Forward(context.Background(), samplePayload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received["email"] != "a@b.com" {
		t.Fatalf("unexpected email %v", received["email"])
	}
	companies, ok := received["companies"].([]any)
	if !ok || len(companies) != 1 {
		t.Fatalf("unexpected companies %v", received["companies"])
	}
	company := companies[0].(map[string]any)
	if company["name"] != "Acme" || company["place_id"] != "xyz" {
		t.Fatalf("unexpected company %v", company)
	}
}

func TestForward_EmptyCompaniesSerializesAsArray(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	payload := domain.SubmissionPayload{Email: "a@b.com", Companies: []domain.Company{}}
	if err := newTestForwarder(srv.URL, time.Second).Forward(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"email":"a@b.com","companies":[]}` {
		t.Fatalf("unexpected body %s", raw)
	}
}

func TestForward_NonSuccessStatus(t *testing.T) {
	statuses := []int{http.StatusFound, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway}
	for _, status := range statuses {
		var landed int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/moved" {
				atomic.AddInt32(&landed, 1)
				w.WriteHeader(http.StatusOK)
				return
			}
			if status == http.StatusFound {
				w.Header().Set("Location", "/moved")
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(" workflow not active "))
		}))

		err := newTestForwarder(srv.URL, time.Second).Forward(context.Background(), samplePayload)
		srv.Close()

		if n := atomic.LoadInt32(&landed); n != 0 {
			t.Fatalf("status %d: redirect target was requested %d times", status, n)
		}

		var statusErr *application.UpstreamStatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: expected UpstreamStatusError, got %v", status, err)
		}
		if statusErr.StatusCode != status || statusErr.Body != "workflow not active" {
			t.Fatalf("status %d: unexpected error %+v", status, statusErr)
		}
	}
}

func TestNewForwarder_Defaults(t *testing.T) {
	f := NewForwarder(Config{URL: " http://hooks.local/intake "})
	if f.url != "http://hooks.local/intake" {
		t.Fatalf("unexpected url %q", f.url)
	}
	if f.timeout != httpclient.DefaultTimeout || f.httpClient.Timeout != httpclient.DefaultTimeout {
		t.Fatalf("unexpected timeouts %v / %v", f.timeout, f.httpClient.Timeout)
	}
	if f.httpClient.CheckRedirect == nil {
		t.Fatal("expected redirects to be disabled")
	}
}

func TestForward_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := newTestForwarder(srv.URL, 20*time.Millisecond).Forward(context.Background(), samplePayload)
	if !errors.Is(err, application.ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestForward_ConnectionRefusedIsUnclassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestForwarder(url, time.Second).Forward(context.Background(), samplePayload)
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *application.UpstreamStatusError
	if errors.Is(err, application.ErrUpstreamTimeout) || errors.As(err, &statusErr) {
		t.Fatalf("expected unclassified error, got %v", err)
	}
}
