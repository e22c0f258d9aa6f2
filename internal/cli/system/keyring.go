package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/keyring"
	"github.com/julianstephens/lumen/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string or Redis password."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a stored secret."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability and stored secrets."`
}

// KeyringSetCmd stores a secret in the OS keyring
type KeyringSetCmd struct {
	Value string `arg:"" help:"Secret value."`
	Redis bool   `help:"Store the Redis password instead of the PostgreSQL connection string."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	name := keyring.PostgresDSN
	if cmd.Redis {
		name = keyring.RedisPassword
	} else {
		if !strings.HasPrefix(cmd.Value, "postgres://") &&
			!strings.HasPrefix(cmd.Value, "postgresql://") &&
			!strings.Contains(cmd.Value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if err := postgres.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(name, cmd.Value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored successfully in OS keyring\n", name)
	return nil
}

type KeyringDeleteCmd struct {
	Redis bool `help:"Delete the Redis password instead of the PostgreSQL connection string."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	name := keyring.PostgresDSN
	if cmd.Redis {
		name = keyring.RedisPassword
	}
	if err := keyring.Delete(name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", name)
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", name)
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")
	for _, name := range keyring.Secrets {
		if _, err := keyring.Get(name); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", name)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored in keyring\n", name)
		}
	}
	return nil
}
