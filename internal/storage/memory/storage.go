package memory

import (
	"context"
	"sync"

	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// Records are stored behind pointers and swapped whole, so readers never see
// a half-applied update. Telemetry writes take a per-username mutex: the
// read-modify-write for one miner is serialized without blocking updates to
// any other miner.
type Storage struct {
	mu        sync.RWMutex
	accounts  map[model.Username]*model.Account
	telemetry map[model.Username]*model.TelemetryRecord
	order     []model.Username

	locksMu sync.Mutex
	locks   map[model.Username]*sync.Mutex
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:  make(map[model.Username]*model.Account),
		telemetry: make(map[model.Username]*model.TelemetryRecord),
		locks:     make(map[model.Username]*sync.Mutex),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account, telemetry *model.TelemetryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return model.ErrUsernameExists
	}

	a := *account
	t := *telemetry
	s.accounts[account.Username] = &a
	s.telemetry[account.Username] = &t
	s.order = append(s.order, account.Username)
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, username model.Username) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	a := *account
	return &a, nil
}

func (s *Storage) GetTelemetry(ctx context.Context, username model.Username) (*model.TelemetryRecord, error) {
	s.mu.RLock()
	rec, ok := s.telemetry[username]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return copyRecord(rec), nil
}

func (s *Storage) MutateTelemetry(ctx context.Context, username model.Username, fn func(*model.TelemetryRecord) error) error {
	lock := s.lockFor(username)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	rec, ok := s.telemetry[username]
	s.mu.RUnlock()

	if !ok {
		return model.ErrAccountNotFound
	}

	updated := copyRecord(rec)
	if err := fn(updated); err != nil {
		return err
	}

	s.mu.Lock()
	s.telemetry[username] = updated
	s.mu.Unlock()
	return nil
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*model.Account, 0, len(s.order))
	for _, username := range s.order {
		if account, ok := s.accounts[username]; ok {
			a := *account
			accounts = append(accounts, &a)
		}
	}
	return accounts, nil
}

func (s *Storage) ListTelemetry(ctx context.Context, usernames []model.Username) ([]*model.TelemetryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*model.TelemetryRecord, len(usernames))
	for i, username := range usernames {
		if rec, ok := s.telemetry[username]; ok {
			records[i] = copyRecord(rec)
		}
	}
	return records, nil
}

// lockFor returns the mutex serializing writes for one username, creating it
// on first use. The registry mutex is held only for the map lookup, never
// across the read-modify-write itself. Locks are retained for the process
// lifetime: accounts cannot be deleted, so the map never outgrows the
// account set.
func (s *Storage) lockFor(username model.Username) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[username] = lock
	}
	return lock
}

func copyRecord(rec *model.TelemetryRecord) *model.TelemetryRecord {
	c := *rec
	if rec.LastSeen != nil {
		ts := *rec.LastSeen
		c.LastSeen = &ts
	}
	return &c
}
