package model

import "time"

// Username uniquely identifies a miner account (case-sensitive)
type Username string

// Account is a registered miner identity.
// Fields other than telemetry are immutable after registration.
type Account struct {
	Username     Username
	PasswordHash string // hex digest, never the plaintext
	Email        string
	DeviceModel  string // optional
	CreatedAt    time.Time
}

// TelemetryRecord holds the live stats reported by one miner.
// Keyed 1:1 by username; created all-zero at registration.
type TelemetryRecord struct {
	Username      Username
	Hashrate      float64
	Threads       int
	AcceptedDaily int
	TrxDaily      float64
	LastSeen      *time.Time // nil until the first login or stats push
}

// NewTelemetryRecord returns the initial all-zero record for a freshly
// registered miner.
func NewTelemetryRecord(username Username) *TelemetryRecord {
	return &TelemetryRecord{Username: username}
}

// Touch stamps LastSeen with t. LastSeen only ever moves forward: if the
// record already carries a later timestamp, Touch is a no-op.
func (r *TelemetryRecord) Touch(t time.Time) {
	if r.LastSeen != nil && r.LastSeen.After(t) {
		return
	}
	ts := t
	r.LastSeen = &ts
}

// TelemetryUpdate is a partial stats payload. Nil fields leave the stored
// value untouched; negative values are dropped field-by-field before the
// update is applied.
type TelemetryUpdate struct {
	Hashrate      *float64
	Threads       *int
	AcceptedDaily *int
	TrxDaily      *float64
}

// ApplyTo merges the update into rec with coalesce semantics: each present,
// valid field replaces the stored value, everything else is kept.
func (u TelemetryUpdate) ApplyTo(rec *TelemetryRecord) {
	if u.Hashrate != nil && *u.Hashrate >= 0 {
		rec.Hashrate = *u.Hashrate
	}
	if u.Threads != nil && *u.Threads >= 0 {
		rec.Threads = *u.Threads
	}
	if u.AcceptedDaily != nil && *u.AcceptedDaily >= 0 {
		rec.AcceptedDaily = *u.AcceptedDaily
	}
	if u.TrxDaily != nil && *u.TrxDaily >= 0 {
		rec.TrxDaily = *u.TrxDaily
	}
}
