package stats

import (
	"slices"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/utils"
)

// MoodCount is one row of the mood distribution.
type MoodCount struct {
	Mood       models.MoodID `json:"mood"`
	Icon       string        `json:"icon"`
	Label      string        `json:"label"`
	Count      int           `json:"count"`
	Percentage int           `json:"percentage"`
}

// MoodStats summarizes mood entries over a lookback window.
type MoodStats struct {
	WindowDays       int           `json:"windowDays"`
	TotalEntries     int           `json:"totalEntries"`
	AverageMood      float64       `json:"averageMood"`
	MoodDistribution []MoodCount   `json:"moodDistribution"`
	RecentTrend      Trend         `json:"recentTrend"`
	CurrentStreak    int           `json:"currentStreak"`
	LongestStreak    int           `json:"longestStreak"`
	MostCommonMood   models.MoodID `json:"mostCommonMood,omitempty"`
	LastEntryDate    models.Date   `json:"lastEntryDate"`
}

// ComputeMoodStats derives mood statistics for the windowDays days ending at
// ref. A windowDays of 0 or less covers all history up to ref. Streaks and
// the last entry date always use the full history.
func ComputeMoodStats(entries []models.MoodEntry, windowDays int, ref models.Date) MoodStats {
	history := models.NewDateSet()
	var window []models.MoodEntry
	for _, e := range entries {
		if e.Date.After(ref) {
			continue
		}
		history.Add(e.Date)
		if windowDays > 0 && e.Date.Before(ref.AddDays(-(windowDays - 1))) {
			continue
		}
		window = append(window, e)
	}

	// Newest first.
	slices.SortStableFunc(window, func(a, b models.MoodEntry) int {
		return b.Date.Compare(a.Date)
	})

	stats := MoodStats{
		WindowDays:       windowDays,
		TotalEntries:     len(window),
		MoodDistribution: distribution(window),
		RecentTrend:      moodTrend(window),
		CurrentStreak:    CurrentStreak(history, ref),
		LongestStreak:    BestStreak(history, ref),
		MostCommonMood:   mostCommon(window),
	}
	if desc := history.Descending(); len(desc) > 0 {
		stats.LastEntryDate = desc[0]
	}

	scores := make([]float64, 0, len(window))
	for _, e := range window {
		scores = append(scores, e.Mood.Score())
	}
	stats.AverageMood = utils.Round1(utils.Mean(scores))
	return stats
}

func distribution(window []models.MoodEntry) []MoodCount {
	counts := make(map[models.MoodID]int, len(models.Moods))
	for _, e := range window {
		counts[e.Mood]++
	}

	out := make([]MoodCount, 0, len(models.Moods))
	for _, m := range models.Moods {
		out = append(out, MoodCount{
			Mood:       m,
			Icon:       m.Icon(),
			Label:      m.Label(),
			Count:      counts[m],
			Percentage: utils.Percent(counts[m], len(window)),
		})
	}
	return out
}

// mostCommon breaks ties toward the higher-scoring mood.
func mostCommon(window []models.MoodEntry) models.MoodID {
	counts := make(map[models.MoodID]int)
	for _, e := range window {
		counts[e.Mood]++
	}

	var best models.MoodID
	bestCount := 0
	for _, m := range models.Moods {
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}
	return best
}

// moodTrend compares the newest TrendWindow entries with the block before
// them. newestFirst must be sorted newest first.
func moodTrend(newestFirst []models.MoodEntry) Trend {
	n := constants.TrendWindow
	if len(newestFirst) < n {
		return TrendInsufficientData
	}
	older := newestFirst[n:min(len(newestFirst), 2*n)]
	if len(older) == 0 {
		return TrendStable
	}

	recentMean := meanScore(newestFirst[:n])
	olderMean := meanScore(older)
	switch {
	case recentMean > olderMean+constants.MoodTrendThreshold:
		return TrendImproving
	case recentMean < olderMean-constants.MoodTrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanScore(entries []models.MoodEntry) float64 {
	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = e.Mood.Score()
	}
	return utils.Mean(scores)
}
