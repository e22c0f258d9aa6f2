package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/lumen/internal/models"
)

// series logs moods on consecutive days ending at end, oldest first.
func series(end string, moods ...models.MoodID) []models.MoodEntry {
	last := d(end)
	out := make([]models.MoodEntry, 0, len(moods))
	for i, m := range moods {
		out = append(out, models.MoodEntry{Date: last.AddDays(i - len(moods) + 1), Mood: m})
	}
	return out
}

func repeat(m models.MoodID, n int) []models.MoodID {
	out := make([]models.MoodID, n)
	for i := range out {
		out[i] = m
	}
	return out
}

func TestMoodTrendImprovingSecondWeek(t *testing.T) {
	moods := append(repeat(models.MoodAnxious, 7),
		models.MoodAnxious, models.MoodTired, models.MoodOkay, models.MoodCalm,
		models.MoodHappy, models.MoodHappy, models.MoodAmazing)
	entries := series("2024-01-14", moods...)

	s := ComputeMoodStats(entries, 30, d("2024-01-14"))

	assert.Equal(t, TrendImproving, s.RecentTrend)
	assert.Equal(t, 14, s.TotalEntries)
	assert.Equal(t, 14, s.CurrentStreak)
	assert.Equal(t, 14, s.LongestStreak)
	assert.Equal(t, d("2024-01-14"), s.LastEntryDate)
}

func TestMoodStatsNoEntries(t *testing.T) {
	ref := d("2024-01-14")
	s := ComputeMoodStats(nil, 30, ref)

	assert.Zero(t, s.TotalEntries)
	assert.Zero(t, s.AverageMood)
	assert.Equal(t, TrendInsufficientData, s.RecentTrend)
	assert.Len(t, s.MoodDistribution, 8)

	insights := MoodInsights(s, ref)
	require.Len(t, insights, 1)
	assert.Equal(t, StartLoggingTitle, insights[0].Title)
}

func TestMoodTrendClassification(t *testing.T) {
	tests := []struct {
		name  string
		moods []models.MoodID
		want  Trend
	}{
		{"six entries", repeat(models.MoodOkay, 6), TrendInsufficientData},
		{"exactly seven", repeat(models.MoodOkay, 7), TrendStable},
		{"flat", repeat(models.MoodOkay, 14), TrendStable},
		{"declining", append(repeat(models.MoodHappy, 7), repeat(models.MoodSad, 7)...), TrendDeclining},
		// Older block of 3 entries only: 3.0 vs 3.5 within 7+3.
		{"partial older block improving", append(repeat(models.MoodOkay, 3), repeat(models.MoodCalm, 7)...), TrendImproving},
		// 3.0 vs 3.29 is within the 0.3 band.
		{"small change stable", append(repeat(models.MoodOkay, 7), append(repeat(models.MoodOkay, 3), repeat(models.MoodCalm, 4)...)...), TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ComputeMoodStats(series("2024-02-01", tt.moods...), 0, d("2024-02-01"))
			assert.Equal(t, tt.want, s.RecentTrend)
		})
	}
}

func TestMoodWindow(t *testing.T) {
	ref := d("2024-01-31")
	entries := []models.MoodEntry{
		{Date: d("2024-01-01"), Mood: models.MoodAngry},
		{Date: d("2024-01-25"), Mood: models.MoodHappy},
		{Date: d("2024-01-31"), Mood: models.MoodAmazing},
		{Date: d("2024-02-01"), Mood: models.MoodSad},
	}

	week := ComputeMoodStats(entries, 7, ref)
	assert.Equal(t, 2, week.TotalEntries)
	assert.Equal(t, 4.5, week.AverageMood)
	assert.Equal(t, d("2024-01-31"), week.LastEntryDate)

	all := ComputeMoodStats(entries, 0, ref)
	assert.Equal(t, 3, all.TotalEntries)
	assert.Equal(t, 3.3, all.AverageMood)
}

func TestMoodDistribution(t *testing.T) {
	entries := series("2024-01-03", models.MoodHappy, models.MoodHappy, models.MoodSad)
	s := ComputeMoodStats(entries, 30, d("2024-01-03"))

	require.Len(t, s.MoodDistribution, len(models.Moods))
	for i, c := range s.MoodDistribution {
		assert.Equal(t, models.Moods[i], c.Mood)
	}

	byMood := map[models.MoodID]MoodCount{}
	total := 0
	for _, c := range s.MoodDistribution {
		byMood[c.Mood] = c
		total += c.Percentage
	}
	assert.Equal(t, 2, byMood[models.MoodHappy].Count)
	assert.Equal(t, 67, byMood[models.MoodHappy].Percentage)
	assert.Equal(t, 33, byMood[models.MoodSad].Percentage)
	assert.InDelta(t, 100, total, 1)
	assert.Equal(t, models.MoodHappy, s.MostCommonMood)
}

func TestMostCommonMoodTieBreaksHigherScore(t *testing.T) {
	entries := series("2024-01-04", models.MoodSad, models.MoodCalm, models.MoodSad, models.MoodCalm)
	s := ComputeMoodStats(entries, 30, d("2024-01-04"))
	assert.Equal(t, models.MoodCalm, s.MostCommonMood)
}

func TestMoodStreakUsesFullHistory(t *testing.T) {
	ref := d("2024-01-20")
	entries := series("2024-01-20", repeat(models.MoodOkay, 10)...)

	s := ComputeMoodStats(entries, 3, ref)
	assert.Equal(t, 3, s.TotalEntries)
	assert.Equal(t, 10, s.CurrentStreak)
	assert.Equal(t, 10, s.LongestStreak)

	// Yesterday's entry still counts as a run, but not a current streak.
	s = ComputeMoodStats(entries, 3, ref.AddDays(1))
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 10, s.LongestStreak)
}

func TestMoodInsights(t *testing.T) {
	ref := d("2024-01-14")
	moods := append(repeat(models.MoodSad, 7), repeat(models.MoodAmazing, 7)...)
	s := ComputeMoodStats(series("2024-01-14", moods...), 30, ref)

	titles := []string{}
	for _, in := range MoodInsights(s, ref) {
		titles = append(titles, in.Title)
	}
	assert.Equal(t, []string{
		"Mostly Amazing",
		"Your mood is improving",
		"14-day logging streak",
		"Steady mood",
	}, titles)

	titles = titles[:0]
	for _, in := range MoodInsights(s, ref.AddDays(1)) {
		titles = append(titles, in.Title)
	}
	assert.Contains(t, titles, "No entry today")
}
