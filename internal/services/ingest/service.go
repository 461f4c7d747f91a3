package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trxgoblin/minerd/internal/dependencies/clock"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage"
)

// Service applies periodic stats pushes from mining clients
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new ingest service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ApplyUpdate merges a partial stats payload into the miner's telemetry
// record. Fields absent from the update (or carrying negative values) keep
// their stored value; every successful call stamps last-seen with server
// receipt time. A push for an unregistered username returns
// model.ErrAccountNotFound and never creates a record.
func (s *Service) ApplyUpdate(ctx context.Context, username model.Username, update model.TelemetryUpdate) error {
	if strings.TrimSpace(string(username)) == "" {
		return fmt.Errorf("%w: username is required", model.ErrInvalidInput)
	}

	now := s.clock.Now()

	err := s.storage.MutateTelemetry(ctx, username, func(rec *model.TelemetryRecord) error {
		update.ApplyTo(rec)
		rec.Touch(now)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("telemetry updated", slog.String("username", string(username)))
	return nil
}
