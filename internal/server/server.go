package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/synapses/sfdr-navigator/internal/clients/oracle"
	"github.com/synapses/sfdr-navigator/internal/database"
	"github.com/synapses/sfdr-navigator/internal/modules/analytics"
	"github.com/synapses/sfdr-navigator/internal/modules/assessments"
	"github.com/synapses/sfdr-navigator/internal/modules/classification"
	"github.com/synapses/sfdr-navigator/internal/modules/risk"
	"github.com/synapses/sfdr-navigator/internal/scheduler"
)

// Config holds server configuration and the module handlers to mount
type Config struct {
	Port    int
	Log     zerolog.Logger
	DB      *database.DB
	DevMode bool

	Classification *classification.Handler
	Risk           *risk.Handler
	Assessments    *assessments.Handler
	Analytics      *analytics.Handler
	Oracle         *oracle.Client
	Scheduler      *scheduler.Scheduler
	ReviewJob      scheduler.Job
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	system *SystemHandlers
	cfg    Config
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		system: NewSystemHandlers(cfg.Log, cfg.DB, cfg.Oracle, cfg.Scheduler, cfg.ReviewJob),
		cfg:    cfg,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.system.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/classify", s.cfg.Classification.HandleClassify)
		r.Post("/risk-assessment", s.cfg.Risk.HandleAssess)

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.cfg.Assessments.HandleList)
			r.Get("/{id}", s.cfg.Assessments.HandleGet)
		})

		r.Get("/analytics/compliance", s.cfg.Analytics.HandleComplianceSummary)
		r.Get("/capabilities", s.system.HandleCapabilities)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.system.HandleSystemStatus)
		})

		r.Post("/jobs/review-scan", s.system.HandleTriggerReviewScan)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
