package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trxgoblin/minerd/internal/middleware"
	"github.com/trxgoblin/minerd/internal/services/registry"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	RegistryService *registry.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	dashboardHandler := NewDashboardHandler(cfg.RegistryService, cfg.Logger)
	r.HandleFunc("/", dashboardHandler.Dashboard).Methods(http.MethodGet)

	return r
}
