package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/cyberquest/backend/internal/catalog"
	"github.com/cyberquest/backend/internal/database"
	"github.com/cyberquest/backend/internal/eventlog"
	"github.com/cyberquest/backend/internal/handler"
	"github.com/cyberquest/backend/internal/identity"
	"github.com/cyberquest/backend/internal/leaderboard"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/metrics"
	"github.com/cyberquest/backend/internal/progression"
	"github.com/cyberquest/backend/internal/repository"
)

type Server struct {
	httpServer         *http.Server
	dbPool             database.Pool
	progressionService progression.Service
	leaderboardService leaderboard.Service
	eventlogService    eventlog.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, content *catalog.Catalog, users repository.User, progressionService progression.Service, leaderboardService leaderboard.Service, eventlogService eventlog.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(DetectorConfig{})

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// The auth layer fronting this service sets the identity headers
		r.Use(identity.Middleware(users))

		catalogHandlers := handler.NewCatalogHandlers(content, progressionService)
		progressionHandlers := handler.NewProgressionHandlers(progressionService)

		// Content routes (per-user view; flags and unpurchased hints stripped)
		r.Route("/catalog", func(r chi.Router) {
			r.Use(identity.RequireUser)
			r.Get("/", catalogHandlers.HandleGetCatalog())
			r.Get("/categories/{categoryID}", catalogHandlers.HandleGetCategory())
			r.Get("/challenges/{challengeID}", catalogHandlers.HandleGetChallenge())
		})

		// Progression routes
		r.Route("/progress", func(r chi.Router) {
			r.Use(identity.RequireUser)
			r.Get("/", progressionHandlers.HandleGetProgress())
			r.Delete("/", progressionHandlers.HandleReset())
			r.Get("/tiers", progressionHandlers.HandleGetRewardTiers())
			r.Get("/refusal", progressionHandlers.HandleGetRefusal())
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Use(identity.RequireUser)
			r.Post("/{challengeID}/flag", progressionHandlers.HandleSubmitFlag())
			r.Post("/{challengeID}/hints/{hintID}", progressionHandlers.HandleRevealHint())
		})

		// Leaderboard (no identity required; derived read model)
		r.Get("/leaderboard", handler.HandleGetLeaderboard(leaderboardService))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/unlock/challenge", progressionHandlers.HandleAdminUnlockChallenge())
			r.Post("/unlock/category", progressionHandlers.HandleAdminUnlockCategory())
			r.Get("/submissions", handler.HandleListSubmissions(eventlogService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:             dbPool,
		progressionService: progressionService,
		leaderboardService: leaderboardService,
		eventlogService:    eventlogService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
