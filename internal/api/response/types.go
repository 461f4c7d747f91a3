package response

import (
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/services/registry"
)

// Miner represents a miner identity in API responses.
// The password digest is never part of any response.
type Miner struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DeviceModel string `json:"device_model,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// MinerFromAccount converts a model.Account to a response Miner
func MinerFromAccount(a *model.Account) Miner {
	return Miner{
		Username:    string(a.Username),
		Email:       a.Email,
		DeviceModel: a.DeviceModel,
		CreatedAt:   a.CreatedAt.Unix(),
	}
}

// LoginResponse is the response for the login endpoint
type LoginResponse struct {
	OK bool `json:"ok"`
}

// StatusResponse acknowledges a stats push
type StatusResponse struct {
	Status string `json:"status"`
}

// MinerRow is one row of the miner listing
type MinerRow struct {
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	DeviceModel   string  `json:"device_model,omitempty"`
	Hashrate      float64 `json:"hashrate"`
	Threads       int     `json:"threads"`
	AcceptedDaily int     `json:"accepted_daily"`
	TrxDaily      float64 `json:"trx_daily"`
	Online        bool    `json:"online"`
	ElapsedLabel  string  `json:"elapsed_label"`
	LastSeenEpoch *int64  `json:"last_seen_epoch"`
}

// MinerRowFromRegistry converts a registry.Row to a response MinerRow
func MinerRowFromRegistry(row registry.Row) MinerRow {
	var lastSeen *int64
	if row.Telemetry.LastSeen != nil {
		epoch := row.Telemetry.LastSeen.Unix()
		lastSeen = &epoch
	}

	return MinerRow{
		Username:      string(row.Account.Username),
		Email:         row.Account.Email,
		DeviceModel:   row.Account.DeviceModel,
		Hashrate:      row.Telemetry.Hashrate,
		Threads:       row.Telemetry.Threads,
		AcceptedDaily: row.Telemetry.AcceptedDaily,
		TrxDaily:      row.Telemetry.TrxDaily,
		Online:        row.Status.Online,
		ElapsedLabel:  row.Status.ElapsedLabel,
		LastSeenEpoch: lastSeen,
	}
}
