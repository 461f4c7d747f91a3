package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trxgoblin/minerd/internal/dependencies/clock"
	"github.com/trxgoblin/minerd/internal/hash"
	"github.com/trxgoblin/minerd/internal/model"
	"github.com/trxgoblin/minerd/internal/storage"
)

// ErrInvalidCredentials is returned for any failed login. It deliberately
// does not distinguish an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles miner registration and login
type Service struct {
	storage storage.Storage
	hasher  hash.Hasher
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth service
func New(storage storage.Storage, hasher hash.Hasher, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		clock:   clock,
		logger:  logger,
	}
}

// RegisterParams are the fields supplied at registration
type RegisterParams struct {
	Username    string
	Password    string
	Email       string
	DeviceModel string // optional
}

// Register validates the supplied fields, hashes the password and creates the
// account together with its all-zero telemetry record. Returns
// model.ErrInvalidInput for missing fields and model.ErrUsernameExists for a
// taken username.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*model.Account, error) {
	username := strings.TrimSpace(p.Username)
	password := strings.TrimSpace(p.Password)
	email := strings.TrimSpace(p.Email)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", model.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}

	account := &model.Account{
		Username:     model.Username(username),
		PasswordHash: s.hasher.Hash(password),
		Email:        email,
		DeviceModel:  strings.TrimSpace(p.DeviceModel),
		CreatedAt:    s.clock.Now(),
	}

	telemetry := model.NewTelemetryRecord(account.Username)

	if err := s.storage.CreateAccount(ctx, account, telemetry); err != nil {
		return nil, err
	}

	s.logger.Info("miner registered",
		slog.String("username", username),
		slog.String("device_model", account.DeviceModel),
	)

	return account, nil
}

// Login verifies a username/password pair. A successful login refreshes the
// miner's last-seen timestamp; any credential mismatch returns
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", model.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", model.ErrInvalidInput)
	}

	// Hash before the lookup so unknown usernames cost as much as known ones
	digest := s.hasher.Hash(password)

	account, err := s.storage.GetAccount(ctx, model.Username(username))
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if subtle.ConstantTimeCompare([]byte(digest), []byte(account.PasswordHash)) != 1 {
		return ErrInvalidCredentials
	}

	now := s.clock.Now()
	return s.storage.MutateTelemetry(ctx, account.Username, func(rec *model.TelemetryRecord) error {
		rec.Touch(now)
		return nil
	})
}
