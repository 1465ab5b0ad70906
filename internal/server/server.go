// Package server provides the HTTP server and routing for the intake
// engine. The HTTP surface is a thin transport over the household service:
// all rules live in the engine, the UI only renders state and forwards
// user actions.
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

	"github.com/arcadia-advisors/intake/internal/config"
	"github.com/arcadia-advisors/intake/internal/database"
	"github.com/arcadia-advisors/intake/internal/events"
	"github.com/arcadia-advisors/intake/internal/modules/attachments"
	"github.com/arcadia-advisors/intake/internal/modules/display"
	"github.com/arcadia-advisors/intake/internal/modules/household"
)

// Config holds server configuration
type Config struct {
	Log         zerolog.Logger
	Config      *config.Config
	DB          *database.DB
	Household   *household.Service
	Attachments *attachments.Store
	Formatter   *display.Formatter
	EventBus    *events.Bus
	Port        int
	DevMode     bool
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	db             *database.DB
	household      *household.Service
	handlers       *Handlers
	systemHandlers *SystemHandlers
	eventsStream   *EventsStreamHandler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		cfg:       cfg.Config,
		db:        cfg.DB,
		household: cfg.Household,
	}

	s.handlers = NewHandlers(cfg.Household, cfg.Attachments, cfg.Formatter, cfg.Log)
	s.systemHandlers = NewSystemHandlers(cfg.DB, cfg.Config.DataDir, cfg.Log)
	s.eventsStream = NewEventsStreamHandler(cfg.EventBus, cfg.Log)

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

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
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
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// The events stream holds its connection open, so the request
		// timeout applies to every route except this one.
		r.Get("/events", s.eventsStream.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			s.setupAPIRoutes(r)
		})
	})
}

// setupAPIRoutes registers the engine API under the request timeout
func (s *Server) setupAPIRoutes(r chi.Router) {
	r.Get("/household", s.handlers.HandleGetHousehold)
	r.Post("/household/save", s.handlers.HandleSave)

	r.Route("/owners", func(r chi.Router) {
		r.Post("/", s.handlers.HandleCreateOwner)
		r.Put("/{ownerID}/fields/{field}", s.handlers.HandleUpdateOwnerField)
		r.Put("/{ownerID}/trusted-contact", s.handlers.HandleSetTrustedContact)
		r.Get("/{ownerID}/validation", s.handlers.HandleValidateOwner)
		r.Delete("/{ownerID}", s.handlers.HandleDeleteOwner)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", s.handlers.HandleCreateAccount)
		r.Put("/{accountID}/fields/{field}", s.handlers.HandleUpdateAccountField)
		r.Put("/{accountID}/owners", s.handlers.HandleSetAccountOwners)
		r.Get("/{accountID}/validation", s.handlers.HandleValidateAccount)
		r.Delete("/{accountID}", s.handlers.HandleDeleteAccount)

		r.Post("/{accountID}/banking", s.handlers.HandleAddBanking)
		r.Delete("/{accountID}/banking/{entryID}", s.handlers.HandleRemoveBanking)

		r.Get("/{accountID}/funding", s.handlers.HandleListFunding)
		r.Post("/{accountID}/funding/{fundingType}", s.handlers.HandleAddFunding)
		r.Put("/{accountID}/funding/{fundingType}/{instanceID}", s.handlers.HandleUpdateFunding)
		r.Delete("/{accountID}/funding/{fundingType}/{instanceID}", s.handlers.HandleRemoveFunding)
	})

	r.Post("/registrations", s.handlers.HandleCreateRegistration)

	r.Route("/navigation", func(r chi.Router) {
		r.Get("/", s.handlers.HandleGetNavigation)
		r.Post("/next", s.handlers.HandleNext)
		r.Post("/previous", s.handlers.HandlePrevious)
		r.Post("/select/owner/{ownerID}", s.handlers.HandleSelectOwner)
		r.Post("/select/account/{accountID}", s.handlers.HandleSelectAccount)
		r.Put("/review-mode", s.handlers.HandleSetReviewMode)
	})

	r.Get("/completion", s.handlers.HandleGetCompletion)

	r.Route("/attachments", func(r chi.Router) {
		r.Post("/", s.handlers.HandleUploadAttachment)
		r.Get("/{ref}", s.handlers.HandleGetAttachment)
	})

	r.Get("/format/currency", s.handlers.HandleFormatCurrency)

	r.Route("/system", func(r chi.Router) {
		r.Get("/status", s.systemHandlers.HandleSystemStatus)
		r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
	})
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
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
