package backups

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/config"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, store storage.Provider, kind string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	cfg := &config.Config{
		Store:    kind,
		Timezone: "UTC",
		Cache:    config.CacheConfig{TTL: time.Minute, Backend: constants.CacheBackendMemory},
	}
	ctx, err := cli.NewContext(context.Background(), cfg, store)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(func() { ctx.Close() })
	return ctx, out
}

func TestBackupCreateListRestore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lumen.db")
	ctx, out := setupTestContext(t, sqlite.NewStore(dbPath), constants.StoreSQLite)

	if _, err := ctx.Service.AddHabit(ctx.Ctx(), models.Habit{Name: "Read"}); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "✓ Backup created: "+constants.BackupFilePrefix) {
		t.Errorf("unexpected output: %s", out.String())
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), name) {
		t.Errorf("list output missing %s:\n%s", name, out.String())
	}

	// Change the data, then restore the earlier snapshot
	habits, _ := ctx.Service.Records().Habits()
	if err := ctx.Service.DeleteHabit(ctx.Ctx(), habits[0].ID); err != nil {
		t.Fatal(err)
	}
	stats, err := ctx.Service.AllHabitsStats(ctx.Ctx())
	if err != nil || len(stats.Habits) != 0 {
		t.Fatalf("stats before restore = %+v, %v", stats, err)
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database restored successfully") {
		t.Errorf("unexpected output: %s", out.String())
	}

	stats, err = ctx.Service.AllHabitsStats(ctx.Ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.Habits) != 1 || stats.Habits[0].Name != "Read" {
		t.Errorf("stats after restore = %+v; cache should have been cleared", stats.Habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "lumen.db")), constants.StoreSQLite)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected missing backup to fail")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx, _ := setupTestContext(t, storage.NewMemoryStore(), constants.StoreMemory)

	cmds := []interface{ Run(*cli.Context) error }{
		&BackupCreateCmd{},
		&BackupListCmd{},
		&BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err != errNotSQLite {
			t.Errorf("%T error = %v, want errNotSQLite", cmd, err)
		}
	}
}

func TestBackupRestoreDeclined(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lumen.db")
	ctx, out := setupTestContext(t, sqlite.NewStore(dbPath), constants.StoreSQLite)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))
	if _, err := ctx.Service.AddHabit(ctx.Ctx(), models.Habit{Name: "Walk"}); err != nil {
		t.Fatal(err)
	}

	var asked string
	orig := confirm
	confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}
	t.Cleanup(func() { confirm = orig })

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if asked == "" {
		t.Error("expected a confirmation prompt")
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	habits, err := ctx.Service.Records().Habits()
	if err != nil || len(habits) != 1 {
		t.Errorf("habits after declined restore = %v, %v; want the current database untouched", habits, err)
	}
}
