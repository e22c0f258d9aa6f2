// Package service is the query and mutation surface shared by the CLI and
// the HTTP API. Every query is memoized; every mutation clears the cache.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lumen/internal/analytics"
	"github.com/julianstephens/lumen/internal/cache"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/metrics"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/utils"
	"github.com/julianstephens/lumen/internal/wellness"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrMoodNotFound  = errors.New("mood entry not found")
)

// Options configures a Service. Zero values select defaults.
type Options struct {
	Cache          *cache.Cache
	Metrics        *metrics.Metrics
	Now            func() time.Time
	Location       *time.Location
	MoodWindowDays int
	InactivityDays int
}

// Service answers queries over one record store. It is safe for concurrent use.
type Service struct {
	records    *storage.Records
	loader     *analytics.Loader
	engine     *analytics.Engine
	scorer     *wellness.Scorer
	cache      *cache.Cache
	now        func() time.Time
	loc        *time.Location
	moodWindow int
}

// New builds a Service over an initialized provider.
func New(p storage.Provider, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MoodWindowDays == 0 {
		opts.MoodWindowDays = constants.DefaultMoodWindowDays
	}

	records := storage.NewRecords(p)
	return &Service{
		records: records,
		loader:  analytics.NewLoader(records, opts.Metrics),
		engine: analytics.NewEngine(
			analytics.WithLocation(opts.Location),
			analytics.WithClock(opts.Now),
		),
		scorer:     wellness.NewScorer(opts.InactivityDays),
		cache:      opts.Cache,
		now:        opts.Now,
		loc:        opts.Location,
		moodWindow: opts.MoodWindowDays,
	}
}

// Today is the reference date for every query.
func (s *Service) Today() models.Date {
	return utils.TodayIn(s.now(), s.loc)
}

func (s *Service) MoodWindowDays() int { return s.moodWindow }

func (s *Service) Records() *storage.Records { return s.records }

// ClearCache drops every memoized result.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// key scopes a cache entry to the reference date so results roll over at midnight.
func key(ref models.Date, parts ...string) string {
	return strings.Join(append(parts, ref.String()), ":")
}

// HabitStats returns one habit's statistics or ErrHabitNotFound.
func (s *Service) HabitStats(ctx context.Context, id string) (stats.HabitStats, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "habit-stats", id), func() (stats.HabitStats, error) {
		snap := s.loader.Load()
		for _, h := range snap.Habits {
			if h.ID == id {
				return stats.ComputeHabitStats(h, snap.Completions.Dates(id), ref), nil
			}
		}
		return stats.HabitStats{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	})
}

// AllHabitsStats returns every habit's statistics and their summary.
func (s *Service) AllHabitsStats(ctx context.Context) (stats.AllHabitStats, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "habits-stats"), func() (stats.AllHabitStats, error) {
		snap := s.loader.Load()
		return stats.ComputeAllHabitStats(snap.Habits, snap.Completions, ref), nil
	})
}

// MoodStats covers the trailing days days; days <= 0 covers all history.
func (s *Service) MoodStats(ctx context.Context, days int) (stats.MoodStats, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "mood-stats", fmt.Sprint(days)), func() (stats.MoodStats, error) {
		return stats.ComputeMoodStats(s.loader.Load().Moods, days, ref), nil
	})
}

// MoodInsights describes the configured mood window.
func (s *Service) MoodInsights(ctx context.Context) ([]stats.Insight, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "mood-insights"), func() ([]stats.Insight, error) {
		ms := stats.ComputeMoodStats(s.loader.Load().Moods, s.moodWindow, ref)
		return stats.MoodInsights(ms, ref), nil
	})
}

// Analytics returns the cross-domain report for today.
func (s *Service) Analytics(ctx context.Context) (analytics.Analytics, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "analytics"), func() (analytics.Analytics, error) {
		return s.engine.Analytics(s.loader.Load(), ref), nil
	})
}

// Dashboard returns today's at-a-glance view.
func (s *Service) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "dashboard"), func() (analytics.Dashboard, error) {
		return s.engine.Dashboard(s.loader.Load(), ref), nil
	})
}

// WellnessReport scores today's habits and mood.
func (s *Service) WellnessReport(ctx context.Context, opts wellness.Options) (wellness.Report, error) {
	ref := s.Today()
	return memo(ctx, s, key(ref, "wellness", fmt.Sprintf("all=%t", opts.All)), func() (wellness.Report, error) {
		snap := s.loader.Load()
		habits := stats.ComputeAllHabitStats(snap.Habits, snap.Completions, ref)
		mood := stats.ComputeMoodStats(snap.Moods, s.moodWindow, ref)
		return s.scorer.Report(habits, mood, ref, opts), nil
	})
}

// ExportAnalytics serializes the cached analytics report.
func (s *Service) ExportAnalytics(ctx context.Context, format analytics.Format) ([]byte, error) {
	a, err := s.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Export(a, format)
}

func memo[T any](ctx context.Context, s *Service, key string, compute func() (T, error)) (T, error) {
	v, _, err := cache.Memoize(ctx, s.cache, key, 0, compute)
	return v, err
}

// NewHabit fills in the defaults for a habit about to be added.
func (s *Service) NewHabit(name string) models.Habit {
	return models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: models.FrequencyDaily,
		Type:      models.HabitPositive,
		StartDate: s.Today(),
		CreatedAt: s.now(),
	}
}

func (s *Service) AddHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	defaults := s.NewHabit(h.Name)
	if h.ID == "" {
		h.ID = defaults.ID
	}
	if h.Frequency == "" {
		h.Frequency = defaults.Frequency
	}
	if h.Type == "" {
		h.Type = defaults.Type
	}
	if h.StartDate.IsZero() {
		h.StartDate = defaults.StartDate
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = defaults.CreatedAt
	}

	if err := s.records.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	s.mutated(ctx)
	return h, nil
}

func (s *Service) UpdateHabit(ctx context.Context, h models.Habit) error {
	return s.mutate(ctx, h.ID, s.records.UpdateHabit(h))
}

func (s *Service) ArchiveHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, id, s.records.ArchiveHabit(id))
}

func (s *Service) UnarchiveHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, id, s.records.UnarchiveHabit(id))
}

// DeleteHabit removes a habit together with its completions.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, id, s.records.DeleteHabit(id))
}

// ToggleCompletion flips a habit's completion on date (today when zero) and
// reports whether it is completed afterwards.
func (s *Service) ToggleCompletion(ctx context.Context, id string, date models.Date) (bool, error) {
	if date.IsZero() {
		date = s.Today()
	}
	done, err := s.records.ToggleCompletion(id, date)
	if err := s.mutate(ctx, id, err); err != nil {
		return false, err
	}
	return done, nil
}

// LogMood stores entry, defaulting its date to today and its timestamp to now.
func (s *Service) LogMood(ctx context.Context, entry models.MoodEntry) (models.MoodEntry, error) {
	if entry.Date.IsZero() {
		entry.Date = s.Today()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if err := s.records.LogMood(entry); err != nil {
		return models.MoodEntry{}, err
	}
	s.mutated(ctx)
	return entry, nil
}

// DeleteMood removes the entry for date or returns ErrMoodNotFound.
func (s *Service) DeleteMood(ctx context.Context, date models.Date) error {
	if err := s.records.DeleteMood(date); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrMoodNotFound, date)
		}
		return err
	}
	s.mutated(ctx)
	return nil
}

// Import replaces a read-only collection and returns the number of items.
func (s *Service) Import(ctx context.Context, collection string, doc []byte) (int, error) {
	n, err := s.records.Import(collection, doc)
	if err != nil {
		return 0, err
	}
	s.mutated(ctx)
	return n, nil
}

// mutate maps a habit mutation's error and clears the cache on success.
func (s *Service) mutate(ctx context.Context, id string, err error) error {
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
		}
		return err
	}
	s.mutated(ctx)
	return nil
}

// mutated clears the cache. A failed clear is logged by the cache and does
// not fail the write that preceded it.
func (s *Service) mutated(ctx context.Context) {
	_ = s.ClearCache(ctx)
}
