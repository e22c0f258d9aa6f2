package constants

import "time"

const (
	AppName            = "lumen"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/lumen"
	DefaultDataFile    = "lumen.db"
	Version            = "v0.3.0"

	// DateFormat is the canonical calendar date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lumen-"
	BackupFileSuffix = ".db"

	// Store backends
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreJSON     = "json"
	StoreMemory   = "memory"

	// Cache backends
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheKeyPrefix     = "lumen:cache:"

	// Record store collections
	CollectionHabits          = "habits"
	CollectionCompletions     = "habit-completions"
	CollectionMoodEntries     = "mood-entries"
	CollectionTodos           = "todos"
	CollectionBooks           = "books"
	CollectionReadingProgress = "reading-progress"

	// Defaults
	DefaultCacheTTL       = 5 * time.Minute
	DefaultMoodWindowDays = 30
	DefaultInactivityDays = 3
	DefaultServerAddr     = "127.0.0.1:7410"

	// Derived windows
	HistoryDays  = 30
	TimelineDays = 30
	TrendWindow  = 7
	ActiveWindow = 7
)

// Collections lists every collection the record store knows about.
var Collections = []string{
	CollectionHabits,
	CollectionCompletions,
	CollectionMoodEntries,
	CollectionTodos,
	CollectionBooks,
	CollectionReadingProgress,
}

// ReadOnlyCollections are owned by other subsystems and only imported here.
var ReadOnlyCollections = []string{
	CollectionTodos,
	CollectionBooks,
	CollectionReadingProgress,
}
