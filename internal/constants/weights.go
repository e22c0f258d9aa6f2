package constants

const (
	// Overall productivity blend. Each term is already on a 0-100 scale.
	ProductivityTodoWeight    = 0.4
	ProductivityHabitWeight   = 0.3
	ProductivityReadingWeight = 0.3

	// Per-day timeline score
	DayScoreTodo  = 2
	DayScoreHabit = 1
	DayScoreBook  = 3

	// Wellness blend
	WellnessHabitWeight = 0.5
	WellnessMoodWeight  = 0.5

	// Trend thresholds
	TrendPercentThreshold = 10.0 // percent change between adjacent windows
	MoodTrendThreshold    = 0.3  // absolute score change between adjacent windows
	MaxMoodScore          = 5.0
)
