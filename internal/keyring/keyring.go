package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lumen/internal/constants"
)

// Secret names an entry lumen keeps in the OS keyring.
type Secret string

const (
	PostgresDSN   Secret = constants.DefaultKeyringUser
	RedisPassword Secret = "redis-password"
)

// Secrets lists every entry, in the order `lumen keyring status` prints them.
var Secrets = []Secret{PostgresDSN, RedisPassword}

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get reads a secret. Returns ErrNotFound if nothing is stored.
func Get(name Secret) (string, error) {
	value, err := keyring.Get(constants.AppName, string(name))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

// Set stores a secret, replacing any previous value.
func Set(name Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if err := keyring.Set(constants.AppName, string(name), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", name, err)
	}
	return nil
}

// Delete removes a secret.
func Delete(name Secret) error {
	if err := keyring.Delete(constants.AppName, string(name)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", name, err)
	}
	return nil
}

// Lookup returns the stored secret, or fallback when none is stored or the
// keyring cannot be reached.
func Lookup(name Secret, fallback string) string {
	value, err := Get(name)
	if err != nil {
		return fallback
	}
	return value
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
