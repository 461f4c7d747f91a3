package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trxgoblin/minerd/internal/api/apierr"
	"github.com/trxgoblin/minerd/internal/api/handler"
	"github.com/trxgoblin/minerd/internal/middleware"
	"github.com/trxgoblin/minerd/internal/services/auth"
	"github.com/trxgoblin/minerd/internal/services/ingest"
	"github.com/trxgoblin/minerd/internal/services/registry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	IngestService   *ingest.Service
	RegistryService *registry.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	minerHandler := handler.NewMinerHandler(cfg.AuthService, cfg.IngestService, cfg.Logger)
	registryHandler := handler.NewRegistryHandler(cfg.RegistryService, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, jsonPanicHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/miners/register", minerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/miners/login", minerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/miners/stats", minerHandler.PushStats).Methods(http.MethodPost)
	api.HandleFunc("/miners", registryHandler.List).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func jsonPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
