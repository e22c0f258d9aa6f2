package stats

import (
	"math"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/utils"
)

// DayCompletion is one point of a habit's trailing history.
type DayCompletion struct {
	Date      models.Date `json:"date"`
	Completed bool        `json:"completed"`
}

// HabitStats is derived from a habit and its completion set at a reference date.
type HabitStats struct {
	HabitID           string          `json:"habitId"`
	Name              string          `json:"name"`
	Category          string          `json:"category,omitempty"`
	IsArchived        bool            `json:"isArchived"`
	CurrentStreak     int             `json:"currentStreak"`
	BestStreak        int             `json:"bestStreak"`
	TotalCompletions  int             `json:"totalCompletions"`
	CompletionRate    int             `json:"completionRate"`
	CompletedToday    bool            `json:"completedToday"`
	CompletionHistory []DayCompletion `json:"completionHistory"`
}

// HabitSummary aggregates stats across all habits.
type HabitSummary struct {
	Total                 int  `json:"total"`
	Active                int  `json:"active"`
	Archived              int  `json:"archived"`
	TotalCompletions      int  `json:"totalCompletions"`
	AverageCompletionRate int  `json:"averageCompletionRate"`
	BestStreak            int  `json:"bestStreak"`
	LongestCurrentStreak  int  `json:"longestCurrentStreak"`
	CompletedToday        int  `json:"completedToday"`
	AllDoneToday          bool `json:"allDoneToday"`
}

// AllHabitStats holds per-habit stats in store order plus their summary.
type AllHabitStats struct {
	Habits  []HabitStats `json:"habits"`
	Summary HabitSummary `json:"summary"`
}

// ComputeHabitStats derives a habit's statistics as of ref.
func ComputeHabitStats(habit models.Habit, completions models.DateSet, ref models.Date) HabitStats {
	done := completions.Until(ref)

	history := make([]DayCompletion, 0, constants.HistoryDays)
	for i := constants.HistoryDays - 1; i >= 0; i-- {
		day := ref.AddDays(-i)
		history = append(history, DayCompletion{Date: day, Completed: done.Contains(day)})
	}

	return HabitStats{
		HabitID:           habit.ID,
		Name:              habit.Name,
		Category:          habit.Category,
		IsArchived:        habit.IsArchived,
		CurrentStreak:     CurrentStreak(done, ref),
		BestStreak:        BestStreak(done, ref),
		TotalCompletions:  done.Len(),
		CompletionRate:    CompletionRate(habit, done, ref),
		CompletedToday:    done.Contains(ref),
		CompletionHistory: history,
	}
}

// CompletionRate normalizes completions since the habit's start date against
// the days it was expected to be done. The result is in [0, 100].
func CompletionRate(habit models.Habit, completions models.DateSet, ref models.Date) int {
	if habit.IsArchived || habit.StartDate.IsZero() {
		return 0
	}
	expected := ExpectedDays(habit, ref)
	if expected <= 0 {
		return 0
	}
	done := len(completions.Between(habit.StartDate, ref))
	rate := math.Round(float64(done) / float64(expected) * 100)
	return utils.Clamp(int(rate), 0, 100)
}

// ExpectedDays counts the days in [startDate, ref] on which the habit was due.
// Negative habits are due every day regardless of frequency.
func ExpectedDays(habit models.Habit, ref models.Date) int {
	start := habit.StartDate
	if start.IsZero() || start.After(ref) {
		return 0
	}
	total := ref.DaysSince(start) + 1
	if habit.Type == models.HabitNegative {
		return total
	}

	switch habit.Frequency {
	case models.FrequencyWeekly:
		return (total + 6) / 7
	case models.FrequencyMonthly:
		n := 0
		for d := start; !d.After(ref); d = d.AddDays(1) {
			if d.Day() == start.Day() {
				n++
			}
		}
		return n
	default:
		return total
	}
}

// ComputeAllHabitStats derives stats for every habit and a summary over them.
// The average completion rate only counts non-archived habits.
func ComputeAllHabitStats(habits []models.Habit, record models.CompletionRecord, ref models.Date) AllHabitStats {
	out := AllHabitStats{Habits: make([]HabitStats, 0, len(habits))}
	summary := &out.Summary
	rateSum := 0

	for _, h := range habits {
		s := ComputeHabitStats(h, record.Dates(h.ID), ref)
		out.Habits = append(out.Habits, s)

		summary.Total++
		summary.TotalCompletions += s.TotalCompletions
		summary.BestStreak = max(summary.BestStreak, s.BestStreak)
		if h.IsArchived {
			summary.Archived++
			continue
		}
		summary.Active++
		rateSum += s.CompletionRate
		summary.LongestCurrentStreak = max(summary.LongestCurrentStreak, s.CurrentStreak)
		if s.CompletedToday {
			summary.CompletedToday++
		}
	}

	summary.AverageCompletionRate = int(math.Round(utils.Ratio(float64(rateSum), float64(summary.Active))))
	summary.AllDoneToday = summary.Active > 0 && summary.CompletedToday == summary.Active
	return out
}
