package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Records are JSON values swapped with single SETs, so a reader never sees a
// torn record. Account creation and telemetry read-modify-write go through
// WATCH + MULTI/EXEC: Redis aborts the transaction if the watched key changed
// underneath it, which serializes concurrent writers per username without any
// cross-username lock.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.MaxTxRetries == 0 {
		cfg.MaxTxRetries = DefaultConfig().MaxTxRetries
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account, telemetry *model.TelemetryRecord) error {
	accountData, err := json.Marshal(account)
	if err != nil {
		return err
	}
	telemetryData, err := json.Marshal(telemetry)
	if err != nil {
		return err
	}

	aKey := accountKey(account.Username)
	tKey := telemetryKey(account.Username)

	// Conditional create: WATCH the account key, fail with ErrUsernameExists
	// if it is already set, otherwise write both records and the order index
	// in one transaction.
	create := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, aKey).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return model.ErrUsernameExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, aKey, accountData, 0)
			pipe.Set(ctx, tKey, telemetryData, 0)
			pipe.RPush(ctx, registrationOrderKey(), string(account.Username))
			return nil
		})
		return err
	}

	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, create, aKey)
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race for this key, re-check existence
			continue
		}
		return err
	}
	return fmt.Errorf("create account: transaction retries exhausted for %q", account.Username)
}

func (s *Storage) GetAccount(ctx context.Context, username model.Username) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetTelemetry(ctx context.Context, username model.Username) (*model.TelemetryRecord, error) {
	data, err := s.client.Get(ctx, telemetryKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var rec model.TelemetryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Storage) MutateTelemetry(ctx context.Context, username model.Username, fn func(*model.TelemetryRecord) error) error {
	tKey := telemetryKey(username)

	mutate := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, tKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrAccountNotFound
			}
			return err
		}

		var rec model.TelemetryRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}

		if err := fn(&rec); err != nil {
			return err
		}

		updated, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		// EXEC aborts if the watched key changed since GET
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, tKey, updated, 0)
			return nil
		})
		return err
	}

	for i := 0; i < s.cfg.MaxTxRetries; i++ {
		err := s.client.Watch(ctx, mutate, tKey)
		if errors.Is(err, redis.TxFailedErr) {
			// Concurrent writer won, retry against the fresh record
			continue
		}
		return err
	}
	return fmt.Errorf("mutate telemetry: transaction retries exhausted for %q", username)
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	usernames, err := s.client.LRange(ctx, registrationOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(usernames) == 0 {
		return []*model.Account{}, nil
	}

	keys := make([]string, len(usernames))
	for i, username := range usernames {
		keys[i] = accountKey(model.Username(username))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var account model.Account
		if err := json.Unmarshal([]byte(val.(string)), &account); err != nil {
			continue // Skip invalid data
		}
		accounts = append(accounts, &account)
	}

	return accounts, nil
}

func (s *Storage) ListTelemetry(ctx context.Context, usernames []model.Username) ([]*model.TelemetryRecord, error) {
	if len(usernames) == 0 {
		return []*model.TelemetryRecord{}, nil
	}

	keys := make([]string, len(usernames))
	for i, username := range usernames {
		keys[i] = telemetryKey(username)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.TelemetryRecord, len(usernames))
	for i, val := range values {
		if val == nil {
			continue
		}
		var rec model.TelemetryRecord
		if err := json.Unmarshal([]byte(val.(string)), &rec); err != nil {
			continue
		}
		records[i] = &rec
	}

	return records, nil
}
