package registry

import (
	"context"

	"github.com/trxgoblin/minerd/internal/dependencies/clock"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/presence"
	"github.com/trxgoblin/minerd/internal/storage"
)

// Row is one miner in the operator listing: identity, live stats, and the
// presence status evaluated at query time.
type Row struct {
	Account   model.Account
	Telemetry model.TelemetryRecord
	Status    presence.Status
}

// Service joins accounts, telemetry and presence for the listing view
type Service struct {
	storage   storage.Storage
	clock     clock.Clock
	evaluator presence.Evaluator
}

// New creates a new registry service
func New(storage storage.Storage, clock clock.Clock, evaluator presence.Evaluator) *Service {
	return &Service{
		storage:   storage,
		clock:     clock,
		evaluator: evaluator,
	}
}

// ListAll returns every registered miner in registration order. Presence is
// recomputed against the current clock on each call, never cached or stored.
// The read mutates nothing.
func (s *Service) ListAll(ctx context.Context) ([]Row, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	usernames := make([]model.Username, len(accounts))
	for i, account := range accounts {
		usernames[i] = account.Username
	}

	records, err := s.storage.ListTelemetry(ctx, usernames)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rows := make([]Row, 0, len(accounts))
	for i, account := range accounts {
		rec := records[i]
		if rec == nil {
			// Telemetry rows exist 1:1 with accounts; tolerate a gap rather
			// than failing the whole listing
			rec = model.NewTelemetryRecord(account.Username)
		}
		rows = append(rows, Row{
			Account:   *account,
			Telemetry: *rec,
			Status:    s.evaluator.Evaluate(rec.LastSeen, now),
		})
	}

	return rows, nil
}
