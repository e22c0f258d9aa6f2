package stats

import "github.com/julianstephens/lumen/internal/models"

// CurrentStreak counts the run of consecutive days ending at ref. The i-th
// most recent date must equal ref minus i days; the walk stops at the first
// mismatch, so a set without ref yields 0. Dates after ref are ignored.
func CurrentStreak(set models.DateSet, ref models.Date) int {
	streak := 0
	for i, d := range set.Until(ref).Descending() {
		if d != ref.AddDays(-i) {
			break
		}
		streak++
	}
	return streak
}

// BestStreak returns the longest run of consecutive days on or before ref.
func BestStreak(set models.DateSet, ref models.Date) int {
	dates := set.Until(ref).Dates()
	if len(dates) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].DaysSince(dates[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}
