package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/lumen/internal/models"
)

func d(s string) models.Date { return models.MustParseDate(s) }

func set(ss ...string) models.DateSet {
	out := models.NewDateSet()
	for _, s := range ss {
		out.Add(d(s))
	}
	return out
}

func dailyHabit(start string) models.Habit {
	return models.Habit{
		ID:        "h1",
		Name:      "Read",
		Frequency: models.FrequencyDaily,
		Type:      models.HabitPositive,
		StartDate: d(start),
	}
}

func TestCurrentStreakConsecutiveDays(t *testing.T) {
	s := ComputeHabitStats(dailyHabit("2024-01-01"), set("2024-01-01", "2024-01-02", "2024-01-03"), d("2024-01-03"))

	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.BestStreak)
	assert.Equal(t, 3, s.TotalCompletions)
	assert.Equal(t, 100, s.CompletionRate)
	assert.True(t, s.CompletedToday)
}

func TestCurrentStreakResetsAfterGap(t *testing.T) {
	s := ComputeHabitStats(dailyHabit("2024-01-01"), set("2024-01-01", "2024-01-02", "2024-01-05"), d("2024-01-05"))

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 60, s.CompletionRate)
}

func TestCurrentStreakZeroWhenRefMissing(t *testing.T) {
	completions := set("2024-01-01", "2024-01-02")
	assert.Equal(t, 0, CurrentStreak(completions, d("2024-01-03")))
	assert.Equal(t, 2, BestStreak(completions, d("2024-01-03")))
}

func TestFutureCompletionsIgnored(t *testing.T) {
	s := ComputeHabitStats(dailyHabit("2024-01-01"), set("2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"), d("2024-01-03"))

	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 2, s.TotalCompletions)
}

func TestEmptyCompletionSet(t *testing.T) {
	s := ComputeHabitStats(dailyHabit("2024-01-01"), models.NewDateSet(), d("2024-01-10"))

	assert.Zero(t, s.CurrentStreak)
	assert.Zero(t, s.BestStreak)
	assert.Zero(t, s.TotalCompletions)
	assert.Zero(t, s.CompletionRate)
	assert.False(t, s.CompletedToday)
	assert.Len(t, s.CompletionHistory, 30)
}

func TestCompletionHistory(t *testing.T) {
	s := ComputeHabitStats(dailyHabit("2024-01-01"), set("2024-01-30", "2024-02-01"), d("2024-02-01"))

	require.Len(t, s.CompletionHistory, 30)
	assert.Equal(t, d("2024-01-03"), s.CompletionHistory[0].Date)
	last := s.CompletionHistory[29]
	assert.Equal(t, d("2024-02-01"), last.Date)
	assert.True(t, last.Completed)
	assert.False(t, s.CompletionHistory[28].Completed)
	assert.True(t, s.CompletionHistory[27].Completed)
}

func TestStreakMonotonicity(t *testing.T) {
	ref := d("2024-03-10")
	sets := []models.DateSet{
		set(),
		set("2024-03-10"),
		set("2024-03-01", "2024-03-02", "2024-03-03", "2024-03-09", "2024-03-10"),
		set("2024-02-01", "2024-03-08", "2024-03-09"),
		set("2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09"),
	}

	for _, s := range sets {
		current := CurrentStreak(s, ref)
		assert.GreaterOrEqual(t, BestStreak(s, ref), current)

		if s.Contains(ref.AddDays(-1)) && !s.Contains(ref) {
			yesterday := CurrentStreak(s, ref.AddDays(-1))
			s.Add(ref)
			assert.Equal(t, yesterday+1, CurrentStreak(s, ref))
		}
	}
}

func TestCompletionRate(t *testing.T) {
	ref := d("2024-01-31")
	tests := []struct {
		name  string
		habit models.Habit
		set   models.DateSet
		want  int
	}{
		{
			name:  "daily half",
			habit: dailyHabit("2024-01-22"),
			set:   set("2024-01-22", "2024-01-24", "2024-01-26", "2024-01-28", "2024-01-30"),
			want:  50,
		},
		{
			name:  "archived is zero",
			habit: models.Habit{ID: "a", Frequency: models.FrequencyDaily, Type: models.HabitPositive, StartDate: d("2024-01-30"), IsArchived: true},
			set:   set("2024-01-30", "2024-01-31"),
			want:  0,
		},
		{
			name:  "no start date",
			habit: models.Habit{ID: "a", Frequency: models.FrequencyDaily, Type: models.HabitPositive},
			set:   set("2024-01-30"),
			want:  0,
		},
		{
			name:  "start after ref",
			habit: dailyHabit("2024-02-05"),
			set:   set("2024-01-30"),
			want:  0,
		},
		{
			// Wednesdays from 2024-01-03: 3, 10, 17, 24, 31
			name:  "weekly",
			habit: models.Habit{ID: "w", Frequency: models.FrequencyWeekly, Type: models.HabitPositive, StartDate: d("2024-01-03")},
			set:   set("2024-01-03", "2024-01-10", "2024-01-17", "2024-01-24"),
			want:  80,
		},
		{
			name:  "weekly over-completion clamps",
			habit: models.Habit{ID: "w", Frequency: models.FrequencyWeekly, Type: models.HabitPositive, StartDate: d("2024-01-25")},
			set:   set("2024-01-25", "2024-01-26", "2024-01-27"),
			want:  100,
		},
		{
			name:  "negative counts every day",
			habit: models.Habit{ID: "n", Frequency: models.FrequencyWeekly, Type: models.HabitNegative, StartDate: d("2024-01-22")},
			set:   set("2024-01-22", "2024-01-23"),
			want:  20,
		},
		{
			name:  "completions before start not counted",
			habit: dailyHabit("2024-01-30"),
			set:   set("2024-01-01", "2024-01-02", "2024-01-31"),
			want:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionRate(tt.habit, tt.set, ref)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestExpectedDaysMonthly(t *testing.T) {
	h := models.Habit{Frequency: models.FrequencyMonthly, Type: models.HabitPositive, StartDate: d("2024-01-15")}

	assert.Equal(t, 1, ExpectedDays(h, d("2024-02-14")))
	assert.Equal(t, 2, ExpectedDays(h, d("2024-02-15")))
	assert.Equal(t, 4, ExpectedDays(h, d("2024-04-30")))

	// The 31st only occurs in long months.
	h.StartDate = d("2024-01-31")
	assert.Equal(t, 2, ExpectedDays(h, d("2024-03-31")))
}

func TestComputeAllHabitStats(t *testing.T) {
	ref := d("2024-01-10")
	habits := []models.Habit{
		{ID: "a", Name: "A", Frequency: models.FrequencyDaily, Type: models.HabitPositive, StartDate: d("2024-01-01")},
		{ID: "b", Name: "B", Frequency: models.FrequencyDaily, Type: models.HabitPositive, StartDate: d("2024-01-06")},
		{ID: "c", Name: "C", Frequency: models.FrequencyDaily, Type: models.HabitPositive, StartDate: d("2024-01-01"), IsArchived: true},
	}
	record := models.CompletionRecord{
		"a": set("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"),
		"b": set("2024-01-06", "2024-01-07"),
		"c": set("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10", "2023-12-31"),
	}

	all := ComputeAllHabitStats(habits, record, ref)

	require.Len(t, all.Habits, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{all.Habits[0].HabitID, all.Habits[1].HabitID, all.Habits[2].HabitID})

	s := all.Summary
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Archived)
	assert.Equal(t, 23, s.TotalCompletions)
	// a=100, b=40; archived c excluded
	assert.Equal(t, 70, s.AverageCompletionRate)
	assert.Equal(t, 11, s.BestStreak)
	assert.Equal(t, 10, s.LongestCurrentStreak)
	assert.Equal(t, 1, s.CompletedToday)
	assert.False(t, s.AllDoneToday)
}

func TestComputeAllHabitStatsEmpty(t *testing.T) {
	all := ComputeAllHabitStats(nil, nil, d("2024-01-10"))
	assert.Empty(t, all.Habits)
	assert.Equal(t, HabitSummary{}, all.Summary)
}
