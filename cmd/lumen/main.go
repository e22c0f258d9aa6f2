package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/cli/backups"
	"github.com/julianstephens/lumen/internal/cli/habits"
	"github.com/julianstephens/lumen/internal/cli/moods"
	"github.com/julianstephens/lumen/internal/cli/reports"
	"github.com/julianstephens/lumen/internal/cli/system"
	"github.com/julianstephens/lumen/internal/config"
	"github.com/julianstephens/lumen/internal/constants"
	apperrors "github.com/julianstephens/lumen/internal/errors"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, .env, logs and the default database." default:"~/.config/lumen" name:"config-dir"`
	Store     string `help:"Record store: sqlite, postgres, json or memory (overrides config)." enum:",sqlite,postgres,json,memory" default:""`
	Data      string `help:"Database or JSON file path (overrides data_path)." type:"path"`
	Debug     bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize lumen storage."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Habit     habits.HabitCmd      `cmd:"" help:"Manage habits and habit tracking."`
	Mood      moods.MoodCmd        `cmd:"" help:"Log and review moods."`
	Dashboard reports.DashboardCmd `cmd:"" help:"Show today's dashboard." default:"1"`
	Analytics reports.AnalyticsCmd `cmd:"" help:"Show cross-domain analytics."`
	Wellness  reports.WellnessCmd  `cmd:"" help:"Show the wellness report."`
	Export    reports.ExportCmd    `cmd:"" help:"Export analytics as JSON, CSV or PDF."`
	Import    reports.ImportCmd    `cmd:"" help:"Import todos, books or reading progress."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups (SQLite only)."`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Keyring  system.KeyringCmd `cmd:"" help:"Manage secrets in the OS keyring."`
	Serve    system.ServeCmd   `cmd:"" help:"Serve the local JSON API."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit, mood and wellness analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if CLI.Data != "" {
		cfg.DataPath = CLI.Data
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := kctx.Command()
	store, err := cli.OpenStore(cfg)
	if err != nil {
		if !strings.HasPrefix(command, "keyring") {
			apperrors.Fatal(err)
		}
		// Keyring commands must work before a store is reachable
		store = storage.NewMemoryStore()
	}

	// init and doctor load the store themselves
	if !needsNoLoad(command) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx, err := cli.NewContext(ctx, cfg, store)
	if err != nil {
		apperrors.Fatal(err)
	}

	runErr := kctx.Run(appCtx)
	if err := appCtx.Close(); err != nil {
		logger.Warn("Failed to close resources", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		apperrors.Fatal(runErr)
	}
}

func needsNoLoad(command string) bool {
	for _, prefix := range []string{"init", "doctor", "keyring"} {
		if strings.HasPrefix(command, prefix) {
			return true
		}
	}
	return false
}
