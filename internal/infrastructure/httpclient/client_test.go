package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestTimeoutOrDefault(t *testing.T) {
	if got := TimeoutOrDefault(0); got != DefaultTimeout {
		t.Fatalf("expected default, got %v", got)
	}
	if got := TimeoutOrDefault(-time.Second); got != DefaultTimeout {
		t.Fatalf("expected default for negative, got %v", got)
	}
	if got := TimeoutOrDefault(2 * time.Second); got != 2*time.Second {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestNewNoRedirect_ReturnsRedirectResponse(t *testing.T) {
	var landed int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			atomic.AddInt32(&landed, 1)
			return
		}
		http.Redirect(w, r, "/moved", http.StatusFound)
	}))
	defer srv.Close()

	res, err := NewNoRedirect(time.Second).Post(srv.URL, "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", res.StatusCode)
	}
	if n := atomic.LoadInt32(&landed); n != 0 {
		t.Fatalf("redirect target was requested %d times", n)
	}
}

func TestIsTimeout(t *testing.T) {
	if IsTimeout(nil) {
		t.Fatal("nil is not a timeout")
	}
	if IsTimeout(errors.New("connection refused")) {
		t.Fatal("plain error is not a timeout")
	}
	if !IsTimeout(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)) {
		t.Fatal("wrapped deadline should be a timeout")
	}
}

func TestIsTimeout_ClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(20 * time.Millisecond).Get(srv.URL)
	if err == nil {
		t.Fatal("expected client timeout")
	}
	if !IsTimeout(err) {
		t.Fatalf("expected IsTimeout for %v", err)
	}
}
