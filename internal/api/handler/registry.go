package handler

import (
	"log/slog"
	"net/http"

	"github.com/trxgoblin/minerd/internal/api/apierr"
	"github.com/trxgoblin/minerd/internal/api/response"
	"github.com/trxgoblin/minerd/internal/services/registry"
)

// RegistryHandler handles the miner listing endpoint
type RegistryHandler struct {
	registryService *registry.Service
	logger          *slog.Logger
}

// NewRegistryHandler creates a new registry handler
func NewRegistryHandler(registryService *registry.Service, logger *slog.Logger) *RegistryHandler {
	return &RegistryHandler{
		registryService: registryService,
		logger:          logger,
	}
}

// List handles GET /api/v1/miners
func (h *RegistryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.registryService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("listing failed", slog.String("error", err.Error()))
		apierr.WriteError(w, err)
		return
	}

	miners := make([]response.MinerRow, len(rows))
	for i, row := range rows {
		miners[i] = response.MinerRowFromRegistry(row)
	}

	response.JSON(w, http.StatusOK, miners)
}
