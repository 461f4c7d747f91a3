package request

import (
	"encoding/json"

	"github.com/trxgoblin/minerd/internal/model"
)

// RegisterRequest is the request body for registering a miner
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DeviceModel string `json:"device_model,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatsRequest is the request body for a stats push.
//
// The numeric fields are kept raw so one malformed field (a string where a
// number belongs, a fractional thread count) drops that field alone instead
// of rejecting the whole payload. Clients in the field send oddly-shaped
// telemetry; the registry keeps what it can parse.
type StatsRequest struct {
	Username      string          `json:"username"`
	Hashrate      json.RawMessage `json:"hashrate,omitempty"`
	Threads       json.RawMessage `json:"threads,omitempty"`
	AcceptedDaily json.RawMessage `json:"accepted_daily,omitempty"`
	TrxDaily      json.RawMessage `json:"trx_daily,omitempty"`
}

// Update converts the raw payload into a TelemetryUpdate. Absent or
// unparseable fields become nil, which the ingest layer treats as omitted.
func (r *StatsRequest) Update() model.TelemetryUpdate {
	return model.TelemetryUpdate{
		Hashrate:      floatField(r.Hashrate),
		Threads:       intField(r.Threads),
		AcceptedDaily: intField(r.AcceptedDaily),
		TrxDaily:      floatField(r.TrxDaily),
	}
}

func floatField(raw json.RawMessage) *float64 {
	// A literal null unmarshals into a float64 as a no-op zero; treat it as
	// omitted like any other unparseable field
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func intField(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}
