package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"animebuddy/internal/anime"
	"animebuddy/internal/logging"
)

const (
	defaultRequestTimeout = 90 * time.Second
	shutdownGracePeriod   = 10 * time.Second
	maxAskBodyBytes       = 16 << 10
)

// Assistant answers free-form questions.
type Assistant interface {
	HandleUserQuestion(ctx context.Context, question string) (string, error)
}

// Browser serves the list and detail views.
type Browser interface {
	TopPage(ctx context.Context, page int) (anime.Page, error)
	FetchFull(ctx context.Context, id int) (anime.Record, error)
}

// Options configures optional server behaviour.
type Options struct {
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	Gatherer           prometheus.Gatherer
	Logger             *slog.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	assistant      Assistant
	browser        Browser
	router         *chi.Mux
	requestTimeout time.Duration
	gatherer       prometheus.Gatherer
	corsOrigins    []string
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(assistant Assistant, browser Browser, opts Options) *Server {
	s := &Server{
		assistant:      assistant,
		browser:        browser,
		router:         chi.NewRouter(),
		requestTimeout: opts.RequestTimeout,
		gatherer:       opts.Gatherer,
		corsOrigins:    opts.CORSAllowedOrigins,
		logger:         logging.NewComponentLogger(opts.Logger, "api"),
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Route("/anime", func(r chi.Router) {
			r.Get("/top", s.handleTopPage)
			r.Get("/{id}", s.handleGetAnime)
		})
	})
}

// Run serves on bind until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", logging.String("addr", listener.Addr().String()))
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
