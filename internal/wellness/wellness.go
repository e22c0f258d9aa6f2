// Package wellness blends habit and mood statistics into a graded score.
package wellness

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// MaxHighlights caps the highlights in a report.
const MaxHighlights = 3

// Score is the blended wellness figure and its parts.
type Score struct {
	Score       int    `json:"score"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
	HabitScore  int    `json:"habitScore"`
	MoodScore   int    `json:"moodScore"`
}

// Highlight is a positive observation.
type Highlight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recommendation is a suggested change with a priority.
type Recommendation struct {
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Report is the wellness view for one reference date.
type Report struct {
	Date            models.Date      `json:"date"`
	OverallScore    Score            `json:"overallScore"`
	Highlights      []Highlight      `json:"highlights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Options controls which recommendations are surfaced.
type Options struct {
	// All returns every recommendation instead of only high priority ones.
	All bool
}

// Scorer builds wellness reports. InactivityDays is how long without a mood
// entry before logging is recommended.
type Scorer struct {
	InactivityDays int
}

// NewScorer flags missing mood entries after inactivityDays; values <= 0
// select the default.
func NewScorer(inactivityDays int) *Scorer {
	if inactivityDays <= 0 {
		inactivityDays = constants.DefaultInactivityDays
	}
	return &Scorer{InactivityDays: inactivityDays}
}

// Grade maps a 0-100 score to a letter and its description.
func Grade(score int) (string, string) {
	switch {
	case score >= 90:
		return "A", "Excellent"
	case score >= 75:
		return "B", "Good"
	case score >= 60:
		return "C", "Fair"
	default:
		return "D", "Needs attention"
	}
}

// Report scores habits and mood and derives highlights and recommendations.
func (s *Scorer) Report(habits stats.AllHabitStats, mood stats.MoodStats, ref models.Date, opts Options) Report {
	habitScore := habits.Summary.AverageCompletionRate
	moodScore := int(math.Round(mood.AverageMood / constants.MaxMoodScore * 100))
	overall := int(math.Round(constants.WellnessHabitWeight*float64(habitScore) + constants.WellnessMoodWeight*float64(moodScore)))
	grade, description := Grade(overall)

	recs := s.recommendations(habits.Summary, mood, ref)
	if !opts.All {
		recs = slices.DeleteFunc(recs, func(r Recommendation) bool { return r.Priority != PriorityHigh })
	}
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(a.Priority.rank(), b.Priority.rank())
	})

	return Report{
		Date: ref,
		OverallScore: Score{
			Score:       overall,
			Grade:       grade,
			Description: description,
			HabitScore:  habitScore,
			MoodScore:   moodScore,
		},
		Highlights:      highlights(habits.Summary, mood),
		Recommendations: recs,
	}
}

// highlights are listed in priority order and capped at MaxHighlights.
func highlights(h stats.HabitSummary, mood stats.MoodStats) []Highlight {
	out := []Highlight{}
	add := func(ok bool, hl Highlight) {
		if ok && len(out) < MaxHighlights {
			out = append(out, hl)
		}
	}

	add(h.BestStreak >= 7, Highlight{
		Icon:        "🔥",
		Title:       "Strong streak",
		Description: fmt.Sprintf("Your best habit streak is %d days.", h.BestStreak),
	})
	add(h.Active > 0 && h.AverageCompletionRate >= 80, Highlight{
		Icon:        "🎯",
		Title:       "Consistent habits",
		Description: fmt.Sprintf("You complete %d%% of your habits on schedule.", h.AverageCompletionRate),
	})
	add(mood.RecentTrend == stats.TrendImproving, Highlight{
		Icon:        "📈",
		Title:       "Mood on the rise",
		Description: "Your mood this week is up on last week.",
	})
	add(mood.CurrentStreak >= 7, Highlight{
		Icon:        "🌈",
		Title:       "Checking in daily",
		Description: fmt.Sprintf("You have logged your mood %d days in a row.", mood.CurrentStreak),
	})
	add(mood.TotalEntries > 0 && mood.AverageMood >= 4, Highlight{
		Icon:        "😊",
		Title:       "Feeling good",
		Description: fmt.Sprintf("Your average mood is %.1f out of 5.", mood.AverageMood),
	})
	return out
}

func (s *Scorer) recommendations(h stats.HabitSummary, mood stats.MoodStats, ref models.Date) []Recommendation {
	out := []Recommendation{}

	switch {
	case h.Active == 0:
		out = append(out, Recommendation{
			Icon:        "🌱",
			Title:       "Start a habit",
			Description: "Pick one small daily practice to build on.",
			Priority:    PriorityMedium,
		})
	case h.AverageCompletionRate < 50:
		out = append(out, Recommendation{
			Icon:        "🎯",
			Title:       "Focus on fewer habits",
			Description: fmt.Sprintf("Your completion rate is %d%%. Consider archiving habits you are not keeping.", h.AverageCompletionRate),
			Priority:    PriorityHigh,
		})
	case h.AverageCompletionRate < 70:
		out = append(out, Recommendation{
			Icon:        "📅",
			Title:       "Build consistency",
			Description: fmt.Sprintf("Your completion rate is %d%%. Try tying habits to a fixed time of day.", h.AverageCompletionRate),
			Priority:    PriorityMedium,
		})
	}

	if mood.RecentTrend == stats.TrendDeclining {
		out = append(out, Recommendation{
			Icon:        "💙",
			Title:       "Check in with yourself",
			Description: "Your mood has been lower this week. Make room for rest and things you enjoy.",
			Priority:    PriorityHigh,
		})
	}

	if mood.LastEntryDate.IsZero() || ref.DaysSince(mood.LastEntryDate) >= s.InactivityDays {
		out = append(out, Recommendation{
			Icon:        "📝",
			Title:       "Log your mood",
			Description: fmt.Sprintf("You have not logged a mood in the last %d days.", s.InactivityDays),
			Priority:    PriorityHigh,
		})
	}

	if mood.TotalEntries > 0 && mood.AverageMood < 2.5 {
		out = append(out, Recommendation{
			Icon:        "🤝",
			Title:       "Reach out",
			Description: "Your mood has been low for a while. Talking to someone you trust can help.",
			Priority:    PriorityHigh,
		})
	}

	if h.Active > 0 && h.LongestCurrentStreak == 0 {
		out = append(out, Recommendation{
			Icon:        "🔁",
			Title:       "Restart a streak",
			Description: "None of your habits are done today. One completion starts a new streak.",
			Priority:    PriorityLow,
		})
	}
	return out
}
