package storage

import (
	"context"

	"github.com/trxgoblin/minerd/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must serialize operations per username: concurrent
// CreateAccount or MutateTelemetry calls for the same miner are applied in
// some order with no lost updates, and a reader never observes a partially
// applied record. Operations on distinct usernames must not contend.
type Storage interface {
	// CreateAccount persists the account and its initial telemetry record
	// atomically (both or neither). Returns model.ErrUsernameExists if the
	// username is already taken; the existing records are left untouched.
	CreateAccount(ctx context.Context, account *model.Account, telemetry *model.TelemetryRecord) error

	// GetAccount returns the account for a username, or model.ErrAccountNotFound.
	GetAccount(ctx context.Context, username model.Username) (*model.Account, error)

	// GetTelemetry returns the telemetry record for a username, or
	// model.ErrAccountNotFound.
	GetTelemetry(ctx context.Context, username model.Username) (*model.TelemetryRecord, error)

	// MutateTelemetry applies fn to the stored record for username inside a
	// per-username critical section and persists the result atomically.
	// If fn returns an error the stored record is left unchanged.
	// Returns model.ErrAccountNotFound when no record exists.
	MutateTelemetry(ctx context.Context, username model.Username, fn func(*model.TelemetryRecord) error) error

	// ListAccounts returns every account in registration order.
	ListAccounts(ctx context.Context) ([]*model.Account, error)

	// ListTelemetry returns the telemetry records for the given usernames,
	// positionally matching the input. Missing records yield nil entries.
	ListTelemetry(ctx context.Context, usernames []model.Username) ([]*model.TelemetryRecord, error)
}
