package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sngm3741/business-intake/api/internal/config"
	"github.com/sngm3741/business-intake/api/internal/infrastructure/httpclient"
	"github.com/sngm3741/business-intake/api/internal/infrastructure/places"
	"github.com/sngm3741/business-intake/api/internal/infrastructure/webhook"
	"github.com/sngm3741/business-intake/api/internal/intake/application"
	"github.com/sngm3741/business-intake/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/business-intake/api/internal/interfaces/http/public"
	"github.com/sngm3741/business-intake/api/internal/shared/logging"
)

// Server owns the HTTP lifecycle and wires handlers to application services.
type Server struct {
	logger         *slog.Logger
	addr           string
	allowedOrigins []string
	autocomplete   application.AutocompleteService
	submissions    application.SubmissionService
}

// New builds a Server from cfg. Outbound clients are created here and shared by all requests.
func New(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	lookup := places.NewClient(places.Config{
		APIKey:  cfg.PlacesAPIKey,
		Timeout: httpclient.DefaultTimeout,
		Logger:  logger.With(slog.String("component", "places")),
	})
	forwarder := webhook.NewForwarder(webhook.Config{
		URL:     cfg.WebhookURL,
		Timeout: httpclient.DefaultTimeout,
		Logger:  logger.With(slog.String("component", "webhook")),
	})

	return &Server{
		logger:         logger,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		autocomplete:   application.NewAutocompleteService(lookup),
		submissions:    application.NewSubmissionService(forwarder),
	}
}

// Router assembles middleware and routes.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logging.StdLogger(s.logger, slog.LevelInfo),
		NoColor: true,
	}))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:       s.logger,
		Autocomplete: s.autocomplete,
		Submissions:  s.submissions,
	})
	publicHandler.Register(router)

	return router
}

// Run starts the HTTP server and blocks until it stops or a shutdown signal arrives.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(httpServer, errChan)
}

// withCORS returns middleware adding CORS headers for the allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports liveness only; upstreams are not contacted.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// waitForShutdown waits for ListenAndServe to exit or for SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("http server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil
	}
}
