package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/utils"
)

// Config is the merged result of defaults, config.yaml, .env and LUMEN_* variables.
type Config struct {
	ConfigDir   string
	Store       string
	DataPath    string
	PostgresDSN string
	Timezone    string

	Cache    CacheConfig
	Redis    RedisConfig
	Mood     MoodConfig
	Wellness WellnessConfig
	Server   ServerConfig
}

type CacheConfig struct {
	TTL     time.Duration
	Backend string
}

type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

type MoodConfig struct {
	WindowDays int
}

type WellnessConfig struct {
	InactivityDays int
}

type ServerConfig struct {
	Addr string
}

// Location resolves the configured timezone, defaulting to the system zone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads <configDir>/config.yaml (optional), <configDir>/.env (optional)
// and LUMEN_* environment variables, in increasing order of precedence.
func Load(configDir string) (*Config, error) {
	dir, err := ExpandHome(configDir)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	dataPath, err := ExpandHome(v.GetString("data_path"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir:   dir,
		Store:       strings.ToLower(v.GetString("store")),
		DataPath:    dataPath,
		PostgresDSN: v.GetString("postgres_dsn"),
		Timezone:    v.GetString("timezone"),
		Cache: CacheConfig{
			TTL:     parseDuration(v.GetString("cache.ttl"), constants.DefaultCacheTTL),
			Backend: strings.ToLower(v.GetString("cache.backend")),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			DB:       v.GetInt("redis.db"),
			Password: v.GetString("redis.password"),
		},
		Mood:     MoodConfig{WindowDays: v.GetInt("mood.window_days")},
		Wellness: WellnessConfig{InactivityDays: v.GetInt("wellness.inactivity_days")},
		Server:   ServerConfig{Addr: v.GetString("server.addr")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("store", constants.StoreSQLite)
	v.SetDefault("data_path", filepath.Join(dir, constants.DefaultDataFile))
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("timezone", "Local")

	v.SetDefault("cache.ttl", constants.DefaultCacheTTL.String())
	v.SetDefault("cache.backend", constants.CacheBackendMemory)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")

	v.SetDefault("mood.window_days", constants.DefaultMoodWindowDays)
	v.SetDefault("wellness.inactivity_days", constants.DefaultInactivityDays)
	v.SetDefault("server.addr", constants.DefaultServerAddr)
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	stores := []string{constants.StoreSQLite, constants.StorePostgres, constants.StoreJSON, constants.StoreMemory}
	if !slices.Contains(stores, c.Store) {
		return fmt.Errorf("invalid store %q (expected one of %s)", c.Store, strings.Join(stores, ", "))
	}
	if c.Cache.Backend != constants.CacheBackendMemory && c.Cache.Backend != constants.CacheBackendRedis {
		return fmt.Errorf("invalid cache.backend %q (expected memory or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.Wellness.InactivityDays < 1 {
		return fmt.Errorf("wellness.inactivity_days must be at least 1")
	}
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
