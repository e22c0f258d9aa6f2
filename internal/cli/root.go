package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lumen/internal/backup"
	"github.com/julianstephens/lumen/internal/cache"
	"github.com/julianstephens/lumen/internal/config"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/keyring"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/metrics"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/service"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/storage/postgres"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	GoodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	BadStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type Context struct {
	Config  *config.Config
	Store   storage.Provider
	Service *service.Service
	Metrics *metrics.Metrics
	Cache   *cache.Cache
	// Out receives command output; stdout when nil.
	Out io.Writer

	ctx     context.Context
	closers []func() error
}

// NewContext builds the service over an opened store. The store must
// already be loaded unless the command initializes it.
func NewContext(ctx context.Context, cfg *config.Config, store storage.Provider) (*Context, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	c := &Context{Config: cfg, Store: store, Metrics: m, ctx: ctx}

	backend, closeFn, err := OpenCacheBackend(ctx, cfg)
	if err != nil {
		// Results are still cached in memory when redis is unreachable
		logger.Warn("Cache backend unavailable, using memory", "backend", cfg.Cache.Backend, "error", err)
		backend = cache.NewMemoryBackend()
	}
	if closeFn != nil {
		c.closers = append(c.closers, closeFn)
	}

	c.Cache = cache.New(backend, cache.WithTTL(cfg.Cache.TTL), cache.WithMetrics(m))
	c.Service = service.New(store, service.Options{
		Cache:          c.Cache,
		Metrics:        m,
		Location:       loc,
		MoodWindowDays: cfg.Mood.WindowDays,
		InactivityDays: cfg.Wellness.InactivityDays,
	})
	return c, nil
}

// Ctx is the context commands run under.
func (c *Context) Ctx() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Heading prints a styled section title.
func (c *Context) Heading(title string) {
	fmt.Fprintln(c.out(), HeadingStyle.Render(title))
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Close releases the cache backend and the store.
func (c *Context) Close() error {
	var errs []error
	for _, fn := range c.closers {
		errs = append(errs, fn())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}

// OpenStore returns the provider selected by cfg.Store, not yet loaded.
func OpenStore(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Store {
	case constants.StoreSQLite:
		return sqlite.NewStore(cfg.DataPath), nil
	case constants.StorePostgres:
		dsn, err := PostgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(dsn), nil
	case constants.StoreJSON:
		path := cfg.DataPath
		if strings.HasSuffix(path, ".db") {
			path = strings.TrimSuffix(path, ".db") + ".json"
		}
		return storage.NewJSONStore(path), nil
	case constants.StoreMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// PostgresDSN prefers the keyring over configuration. A configured DSN must
// not embed a password; one stored in the keyring may.
func PostgresDSN(cfg *config.Config) (string, error) {
	if dsn, err := keyring.Get(keyring.PostgresDSN); err == nil {
		if err := postgres.ValidateConnString(dsn); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return "", fmt.Errorf("invalid connection string in keyring: %w", err)
		}
		return dsn, nil
	}

	if cfg.PostgresDSN == "" {
		return "", errors.New("no PostgreSQL connection string: run 'lumen keyring set' or set postgres_dsn")
	}
	if err := postgres.ValidateConnString(cfg.PostgresDSN); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return "", errors.New("postgres_dsn must not embed a password: store it with 'lumen keyring set' or use .pgpass")
		}
		return "", err
	}
	return cfg.PostgresDSN, nil
}

// OpenCacheBackend returns the configured result-cache backend and its
// closer, which is nil for the in-memory backend.
func OpenCacheBackend(ctx context.Context, cfg *config.Config) (cache.Backend, func() error, error) {
	if cfg.Cache.Backend != constants.CacheBackendRedis {
		return cache.NewMemoryBackend(), nil, nil
	}
	password := keyring.Lookup(keyring.RedisPassword, cfg.Redis.Password)
	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	backend := cache.NewRedisBackend(client)
	return backend, backend.Close, nil
}

// ParseDay parses a YYYY-MM-DD argument; "" and "today" select today.
func ParseDay(s string, today models.Date) (models.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return today, nil
	}
	if strings.EqualFold(s, "yesterday") {
		return today.AddDays(-1), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// PerformAutomaticBackup snapshots a SQLite store before a destructive
// change. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	s, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	if _, err := backup.NewManager(s.GetConfigPath()).CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
