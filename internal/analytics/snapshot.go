package analytics

import (
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/metrics"
	"github.com/julianstephens/lumen/internal/models"
)

// Domain names, as they appear in logs, metrics and Snapshot.Degraded.
const (
	DomainHabits      = "habits"
	DomainCompletions = "completions"
	DomainMoods       = "moods"
	DomainTodos       = "todos"
	DomainBooks       = "books"
	DomainReading     = "reading"
)

// Source reads raw domain records. *storage.Records satisfies it.
type Source interface {
	Habits() ([]models.Habit, error)
	Completions() (models.CompletionRecord, error)
	Moods() (models.MoodLog, error)
	Tasks() ([]models.Task, error)
	Books() ([]models.Book, error)
	ReadingSessions() ([]models.ReadingSession, error)
}

// Snapshot is every domain's raw data as read at one point in time.
type Snapshot struct {
	Habits      []models.Habit
	Completions models.CompletionRecord
	Moods       []models.MoodEntry
	Tasks       []models.Task
	Books       []models.Book
	Sessions    []models.ReadingSession
	// Degraded lists the domains that failed to read and were zeroed.
	Degraded []string
}

// Loader reads a Snapshot. A failing domain never fails the load.
type Loader struct {
	src     Source
	metrics *metrics.Metrics
}

// NewLoader reads from src and counts failed domains in m, which may be nil.
func NewLoader(src Source, m *metrics.Metrics) *Loader {
	return &Loader{src: src, metrics: m}
}

// Load reads every domain. Failed domains are zeroed and listed in Degraded.
func (l *Loader) Load() Snapshot {
	var snap Snapshot
	snap.Habits = loadDomain(l, &snap, DomainHabits, l.src.Habits)
	snap.Completions = loadDomain(l, &snap, DomainCompletions, l.src.Completions)
	snap.Moods = loadDomain(l, &snap, DomainMoods, l.src.Moods).Entries()
	snap.Tasks = loadDomain(l, &snap, DomainTodos, l.src.Tasks)
	snap.Books = loadDomain(l, &snap, DomainBooks, l.src.Books)
	snap.Sessions = loadDomain(l, &snap, DomainReading, l.src.ReadingSessions)
	return snap
}

func loadDomain[T any](l *Loader, snap *Snapshot, domain string, read func() (T, error)) T {
	v, err := read()
	if err != nil {
		if log := logger.With("domain", domain); log != nil {
			log.Warn("domain read failed, using empty default", "error", err)
		}
		l.metrics.DomainReadFailed(domain)
		snap.Degraded = append(snap.Degraded, domain)
		var zero T
		return zero
	}
	return v
}
