package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/quizbingo/internal/api/apierr"
	"github.com/mcoot/quizbingo/internal/api/handler"
	"github.com/mcoot/quizbingo/internal/api/middleware"
	"github.com/mcoot/quizbingo/internal/services/countdown"
	"github.com/mcoot/quizbingo/internal/services/game"
	"github.com/mcoot/quizbingo/internal/services/host"
	"github.com/mcoot/quizbingo/internal/services/quizbank"
	"github.com/mcoot/quizbingo/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	StorageType string
	Engine      *game.Engine
	Countdown   *countdown.Service
	QuizBank    *quizbank.Service
	HostService *host.Service
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Engine)
	timerHandler := handler.NewTimerHandler(cfg.Countdown)
	hostHandler := handler.NewHostHandler(cfg.HostService)
	eventsHandler := handler.NewEventsHandler(cfg.Engine, cfg.Countdown, cfg.Hub, cfg.Broadcaster, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.StorageType, cfg.QuizBank)

	// Create middleware
	hostOnly := middleware.HostOnly(cfg.HostService)
	loggingMiddleware := middleware.Logging(cfg.Logger, "/api/v1/health")
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/host/login", hostHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/host/logout", hostHandler.Logout).Methods(http.MethodPost)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session/panels/{id}/select", sessionHandler.Select).Methods(http.MethodPost)
	api.HandleFunc("/session/answer", sessionHandler.Answer).Methods(http.MethodPost)
	api.HandleFunc("/session/close", sessionHandler.Close).Methods(http.MethodPost)
	api.HandleFunc("/session/dismiss", sessionHandler.Dismiss).Methods(http.MethodPost)

	// Destructive routes need the host
	hostRoutes := api.PathPrefix("/session").Subrouter()
	hostRoutes.Use(hostOnly)
	hostRoutes.HandleFunc("/reset", sessionHandler.Reset).Methods(http.MethodPost)

	// Countdown routes
	api.HandleFunc("/timer", timerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/timer/start", timerHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/timer/stop", timerHandler.Stop).Methods(http.MethodPost)

	// Push stream
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	return r
}
