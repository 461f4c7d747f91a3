package ingest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/trxgoblin/minerd/internal/dependencies/mocks"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage/memory"
	"github.com/trxgoblin/minerd/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) registerMiner(username model.Username) {
	account := &model.Account{
		Username:     username,
		PasswordHash: "digest",
		Email:        string(username) + "@example.com",
		CreatedAt:    s.clock.Now(),
	}
	err := s.storage.CreateAccount(s.ctx, account, model.NewTelemetryRecord(username))
	s.Require().NoError(err)
}

func (s *ServiceSuite) telemetry(username model.Username) *model.TelemetryRecord {
	rec, err := s.storage.GetTelemetry(s.ctx, username)
	s.Require().NoError(err)
	return rec
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func (s *ServiceSuite) TestApplyUpdateSetsFields() {
	s.registerMiner("alice")

	err := s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{
		Hashrate:      floatPtr(125.5),
		Threads:       intPtr(4),
		AcceptedDaily: intPtr(300),
		TrxDaily:      floatPtr(1.75),
	})
	s.Require().NoError(err)

	rec := s.telemetry("alice")
	s.Equal(125.5, rec.Hashrate)
	s.Equal(4, rec.Threads)
	s.Equal(300, rec.AcceptedDaily)
	s.Equal(1.75, rec.TrxDaily)
}

func (s *ServiceSuite) TestApplyUpdateUnknownMiner() {
	err := s.service.ApplyUpdate(s.ctx, "ghost", model.TelemetryUpdate{Hashrate: floatPtr(10)})
	s.ErrorIs(err, model.ErrAccountNotFound)

	// A stats push never creates an orphan record
	_, err = s.storage.GetTelemetry(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestApplyUpdateEmptyUsername() {
	err := s.service.ApplyUpdate(s.ctx, "", model.TelemetryUpdate{})
	s.ErrorIs(err, model.ErrInvalidInput)

	err = s.service.ApplyUpdate(s.ctx, "   ", model.TelemetryUpdate{})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *ServiceSuite) TestPartialUpdateKeepsOtherFields() {
	s.registerMiner("alice")

	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{Hashrate: floatPtr(10)}))
	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{Threads: intPtr(4)}))

	rec := s.telemetry("alice")
	s.Equal(10.0, rec.Hashrate) // second push did not reset hashrate
	s.Equal(4, rec.Threads)
}

func (s *ServiceSuite) TestNegativeValuesDroppedFieldByField() {
	s.registerMiner("alice")
	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{
		Hashrate: floatPtr(50),
		Threads:  intPtr(2),
	}))

	err := s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{
		Hashrate: floatPtr(-1),   // rejected, keeps 50
		Threads:  intPtr(8),      // applied
		TrxDaily: floatPtr(-0.5), // rejected, keeps 0
	})
	s.Require().NoError(err)

	rec := s.telemetry("alice")
	s.Equal(50.0, rec.Hashrate)
	s.Equal(8, rec.Threads)
	s.Zero(rec.TrxDaily)
}

func (s *ServiceSuite) TestUpdateAlwaysStampsLastSeen() {
	s.registerMiner("alice")

	// Even an empty payload counts as a heartbeat
	err := s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{})
	s.Require().NoError(err)

	rec := s.telemetry("alice")
	s.Require().NotNil(rec.LastSeen)
	s.True(rec.LastSeen.Equal(s.clock.Now()))
}

func (s *ServiceSuite) TestLastSeenAdvancesPerCall() {
	s.registerMiner("alice")

	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{}))
	first := *s.telemetry("alice").LastSeen

	s.clock.Advance(30 * time.Second)
	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{}))

	second := *s.telemetry("alice").LastSeen
	s.True(second.After(first))
}

func (s *ServiceSuite) TestLastSeenNeverMovesBackward() {
	s.registerMiner("alice")
	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{}))
	stamped := *s.telemetry("alice").LastSeen

	// Clock regression (e.g. a replica swap); the stored stamp must hold
	s.clock.Rewind(5 * time.Minute)
	s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", model.TelemetryUpdate{Threads: intPtr(2)}))

	rec := s.telemetry("alice")
	s.True(rec.LastSeen.Equal(stamped))
	s.Equal(2, rec.Threads) // data fields still applied
}

func (s *ServiceSuite) TestIdempotentReplay() {
	s.registerMiner("alice")

	payload := model.TelemetryUpdate{Hashrate: floatPtr(5), Threads: intPtr(2)}
	for i := 0; i < 3; i++ {
		s.clock.Advance(time.Second)
		s.Require().NoError(s.service.ApplyUpdate(s.ctx, "alice", payload))
	}

	rec := s.telemetry("alice")
	s.Equal(5.0, rec.Hashrate)
	s.Equal(2, rec.Threads)
	s.True(rec.LastSeen.Equal(s.clock.Now())) // only lastSeen kept advancing
}

func (s *ServiceSuite) TestConcurrentUpdatesDistinctFields() {
	s.registerMiner("alice")

	payloads := []model.TelemetryUpdate{
		{Hashrate: floatPtr(100)},
		{Threads: intPtr(8)},
		{AcceptedDaily: intPtr(500)},
		{TrxDaily: floatPtr(3.25)},
	}

	var wg sync.WaitGroup
	wg.Add(len(payloads))
	for _, p := range payloads {
		go func(update model.TelemetryUpdate) {
			defer wg.Done()
			s.NoError(s.service.ApplyUpdate(s.ctx, "alice", update))
		}(p)
	}
	wg.Wait()

	// Every field carries the value from its one writer; no update was lost
	rec := s.telemetry("alice")
	s.Equal(100.0, rec.Hashrate)
	s.Equal(8, rec.Threads)
	s.Equal(500, rec.AcceptedDaily)
	s.Equal(3.25, rec.TrxDaily)
}
