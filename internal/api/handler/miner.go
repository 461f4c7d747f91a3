package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trxgoblin/minerd/internal/api/apierr"
	"github.com/trxgoblin/minerd/internal/api/request"
	"github.com/trxgoblin/minerd/internal/api/response"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/services/auth"
	"github.com/trxgoblin/minerd/internal/services/ingest"
)

// MinerHandler handles registration, login and stats endpoints
type MinerHandler struct {
	authService   *auth.Service
	ingestService *ingest.Service
	logger        *slog.Logger
}

// NewMinerHandler creates a new miner handler
func NewMinerHandler(authService *auth.Service, ingestService *ingest.Service, logger *slog.Logger) *MinerHandler {
	return &MinerHandler{
		authService:   authService,
		ingestService: ingestService,
		logger:        logger,
	}
}

// Register handles POST /api/v1/miners/register
func (h *MinerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	account, err := h.authService.Register(r.Context(), auth.RegisterParams{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DeviceModel: req.DeviceModel,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MinerFromAccount(account))
}

// Login handles POST /api/v1/miners/login
func (h *MinerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		// Same shape for unknown user and wrong password
		response.JSON(w, http.StatusOK, response.LoginResponse{OK: false})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponse{OK: true})
}

// PushStats handles POST /api/v1/miners/stats
func (h *MinerHandler) PushStats(w http.ResponseWriter, r *http.Request) {
	var req request.StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	err := h.ingestService.ApplyUpdate(r.Context(), model.Username(req.Username), req.Update())
	if err != nil {
		h.fail(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatusResponse{Status: "ok"})
}

// fail logs server-side failures and writes the sanitized error response
func (h *MinerHandler) fail(w http.ResponseWriter, err error) {
	if apierr.IsInternal(err) {
		h.logger.Error("request failed", slog.String("error", err.Error()))
	}
	apierr.WriteError(w, err)
}
