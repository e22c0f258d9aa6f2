package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/lumen/internal/backup"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/keyring"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

type DoctorCmd struct{}

// schemaReporter is implemented by the SQL stores.
type schemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}

// errWarning marks a check result that should not fail the run.
type errWarning struct{ msg string }

func (e errWarning) Error() string { return e.msg }

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error) {
		var warn errWarning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
		case errors.As(err, &warn):
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}
	skip := func(name, reason string) {
		ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
	}

	err := checkStoreReachable(ctx)
	report("Database reachable", err)
	reachable := err == nil

	dependent := []struct {
		name  string
		check func(*cli.Context) error
	}{
		{"Schema version", checkSchemaVersion},
		{"Collections readable", checkCollections},
		{"Habit integrity", checkHabitsIntegrity},
		{"Completion references", checkCompletionReferences},
	}
	for _, d := range dependent {
		if !reachable {
			skip(d.name, "database not reachable")
			continue
		}
		report(d.name, d.check(ctx))
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok {
		report("Backups present", checkBackupsPresent(ctx))
	} else {
		skip("Backups present", "not a SQLite store")
	}

	report("Clock/timezone", checkClockTimezone(ctx))
	report("Cache backend", checkCacheBackend(ctx))

	if ctx.Config.Store == constants.StorePostgres {
		report("OS keyring", checkKeyring())
	} else {
		skip("OS keyring", "not using PostgreSQL")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	r, ok := ctx.Store.(schemaReporter)
	if !ok {
		// Document stores have no schema
		return nil
	}
	current, latest, err := r.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("database schema version (%d) is behind latest (%d), run '%s init'", current, latest, constants.AppName)
	}
	return nil
}

func checkCollections(ctx *cli.Context) error {
	rec := ctx.Service.Records()
	reads := []struct {
		name string
		read func() error
	}{
		{constants.CollectionHabits, func() error { _, err := rec.Habits(); return err }},
		{constants.CollectionCompletions, func() error { _, err := rec.Completions(); return err }},
		{constants.CollectionMoodEntries, func() error { _, err := rec.Moods(); return err }},
		{constants.CollectionTodos, func() error { _, err := rec.Tasks(); return err }},
		{constants.CollectionBooks, func() error { _, err := rec.Books(); return err }},
		{constants.CollectionReadingProgress, func() error { _, err := rec.ReadingSessions(); return err }},
	}
	var errs []error
	for _, r := range reads {
		if err := r.read(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Service.Records().Habits()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit ID %q", h.ID)
		}
		seen[h.ID] = true
		if err := h.Validate(); err != nil {
			return fmt.Errorf("habit %q: %w", h.Name, err)
		}
	}
	return nil
}

func checkCompletionReferences(ctx *cli.Context) error {
	rec := ctx.Service.Records()
	habits, err := rec.Habits()
	if err != nil {
		return err
	}
	completions, err := rec.Completions()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	orphans := 0
	for id := range completions {
		if !known[id] {
			orphans++
		}
	}
	if orphans > 0 {
		return errWarning{fmt.Sprintf("%d completion sets reference unknown habits and are ignored", orphans)}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return errWarning{fmt.Sprintf("failed to list backups: %v", err)}
	}
	if len(backups) == 0 {
		return errWarning{fmt.Sprintf("no backups found in %s", mgr.GetBackupDir())}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	if now.Year() < 2000 {
		return fmt.Errorf("system clock appears to be wrong: %s", now.Format(time.RFC3339))
	}
	if models.DateOf(now) != ctx.Service.Today() {
		return fmt.Errorf("service date %s does not match %s", ctx.Service.Today(), models.DateOf(now))
	}
	return nil
}

func checkCacheBackend(ctx *cli.Context) error {
	if ctx.Config.Cache.Backend != constants.CacheBackendRedis {
		return nil
	}
	_, closeFn, err := cli.OpenCacheBackend(ctx.Ctx(), ctx.Config)
	if err != nil {
		return errWarning{fmt.Sprintf("%v (results fall back to the in-memory cache)", err)}
	}
	if closeFn != nil {
		if err := closeFn(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close redis client: %v\n", err)
		}
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return errWarning{"OS keyring is not available; postgres_dsn must come from configuration"}
	}
	return nil
}
