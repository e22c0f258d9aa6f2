package analytics

import (
	"slices"
	"time"

	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
)

// DashboardMoodDays is the mood window shown on the dashboard.
const DashboardMoodDays = 7

// TodayHabit is one active habit's state for the day.
type TodayHabit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
}

// Dashboard is the at-a-glance view for one day.
type Dashboard struct {
	Date         models.Date        `json:"date"`
	Habits       []TodayHabit       `json:"habits"`
	TodayMood    *models.MoodEntry  `json:"todayMood,omitempty"`
	Summary      stats.HabitSummary `json:"summary"`
	Mood         stats.MoodStats    `json:"mood"`
	Productivity Productivity       `json:"productivity"`
	Achievements []Achievement      `json:"achievements"`
	Degraded     []string           `json:"degraded,omitempty"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}

// Dashboard builds today's view out of the same snapshot as Analytics.
func (e *Engine) Dashboard(snap Snapshot, ref models.Date) Dashboard {
	all := stats.ComputeAllHabitStats(snap.Habits, snap.Completions, ref)

	today := make([]TodayHabit, 0, len(all.Habits))
	for _, h := range all.Habits {
		if h.IsArchived {
			continue
		}
		today = append(today, TodayHabit{ID: h.HabitID, Name: h.Name, Done: h.CompletedToday, Streak: h.CurrentStreak})
	}

	var mood *models.MoodEntry
	for _, m := range snap.Moods {
		if m.Date == ref {
			entry := m
			mood = &entry
		}
	}

	return Dashboard{
		Date:         ref,
		Habits:       today,
		TodayMood:    mood,
		Summary:      all.Summary,
		Mood:         stats.ComputeMoodStats(snap.Moods, DashboardMoodDays, ref),
		Productivity: productivity(e.Timeline(snap, ref)),
		Achievements: Recent(e.Achievements(snap, ref), 3),
		Degraded:     snap.Degraded,
		GeneratedAt:  e.now(),
	}
}

// Recent returns up to n achievements, most recently earned first. Equal
// dates keep rule order.
func Recent(achievements []Achievement, n int) []Achievement {
	out := slices.Clone(achievements)
	slices.SortStableFunc(out, func(a, b Achievement) int {
		return b.EarnedAt.Compare(a.EarnedAt)
	})
	return out[:min(n, len(out))]
}
