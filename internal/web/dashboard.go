package web

import (
	"log/slog"
	"net/http"

	"github.com/trxgoblin/minerd/internal/services/registry"
)

// DashboardHandler renders the operator miner listing
type DashboardHandler struct {
	registryService *registry.Service
	logger          *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(registryService *registry.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		registryService: registryService,
		logger:          logger,
	}
}

type dashboardRow struct {
	Username      string
	DeviceModel   string
	Hashrate      float64
	Threads       int
	AcceptedDaily int
	TrxDaily      float64
	Online        bool
	ElapsedLabel  string
}

type dashboardData struct {
	Rows []dashboardRow
}

// Dashboard renders GET /
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.registryService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("dashboard listing failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := dashboardData{Rows: make([]dashboardRow, len(rows))}
	for i, row := range rows {
		data.Rows[i] = dashboardRow{
			Username:      string(row.Account.Username),
			DeviceModel:   row.Account.DeviceModel,
			Hashrate:      row.Telemetry.Hashrate,
			Threads:       row.Telemetry.Threads,
			AcceptedDaily: row.Telemetry.AcceptedDaily,
			TrxDaily:      row.Telemetry.TrxDaily,
			Online:        row.Status.Online,
			ElapsedLabel:  row.Status.ElapsedLabel,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		h.logger.Error("dashboard render failed", slog.String("error", err.Error()))
	}
}
