package redis

import (
	"fmt"

	"github.com/trxgoblin/minerd/internal/model"
)

// Key prefix for all miner registry data
const keyPrefix = "minerd"

// accountKey returns the Redis key for an Account
func accountKey(username model.Username) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, username)
}

// telemetryKey returns the Redis key for a TelemetryRecord
func telemetryKey(username model.Username) string {
	return fmt.Sprintf("%s:telemetry:%s", keyPrefix, username)
}

// registrationOrderKey returns the Redis key for the LIST of usernames in
// registration order
func registrationOrderKey() string {
	return fmt.Sprintf("%s:idx:registration_order", keyPrefix)
}
