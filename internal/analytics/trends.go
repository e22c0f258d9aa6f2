package analytics

import (
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/stats"
	"github.com/julianstephens/lumen/internal/utils"
)

// TrendSignal compares the last TrendWindow points of a series with the
// TrendWindow points before them.
type TrendSignal struct {
	Direction       stats.Trend `json:"direction"`
	RecentAverage   float64     `json:"recentAverage"`
	PreviousAverage float64     `json:"previousAverage"`
	ChangePercent   float64     `json:"changePercent"`
}

// Trends classifies each timeline series.
type Trends struct {
	Productivity TrendSignal `json:"productivity"`
	Todos        TrendSignal `json:"todos"`
	Habits       TrendSignal `json:"habits"`
	Reading      TrendSignal `json:"reading"`
}

// ComputeTrends classifies productivity, todos, habits and pages read.
func ComputeTrends(timeline []DayAnalytics) Trends {
	series := func(pick func(DayAnalytics) int) []float64 {
		out := make([]float64, len(timeline))
		for i, d := range timeline {
			out[i] = float64(pick(d))
		}
		return out
	}
	return Trends{
		Productivity: Classify(series(func(d DayAnalytics) int { return d.ProductivityScore })),
		Todos:        Classify(series(func(d DayAnalytics) int { return d.TodosCompleted })),
		Habits:       Classify(series(func(d DayAnalytics) int { return d.HabitsCompleted })),
		Reading:      Classify(series(func(d DayAnalytics) int { return d.PagesRead })),
	}
}

// Classify reports improving when the recent mean is strictly more than
// TrendPercentThreshold percent above the previous mean, and declining when
// strictly more than that below it. A zero previous mean is improving for
// any positive recent mean.
func Classify(values []float64) TrendSignal {
	n := constants.TrendWindow
	if len(values) < 2*n {
		return TrendSignal{Direction: stats.TrendInsufficientData}
	}
	recent := utils.Mean(values[len(values)-n:])
	previous := utils.Mean(values[len(values)-2*n : len(values)-n])

	signal := TrendSignal{
		Direction:       stats.TrendStable,
		RecentAverage:   utils.Round1(recent),
		PreviousAverage: utils.Round1(previous),
	}

	if previous == 0 {
		if recent > 0 {
			signal.Direction = stats.TrendImproving
			signal.ChangePercent = 100
		}
		return signal
	}

	delta := recent - previous
	signal.ChangePercent = utils.Round1(delta / previous * 100)
	// Multiplied out to keep the boundary exact.
	switch {
	case delta*100 > constants.TrendPercentThreshold*previous:
		signal.Direction = stats.TrendImproving
	case delta*100 < -constants.TrendPercentThreshold*previous:
		signal.Direction = stats.TrendDeclining
	}
	return signal
}
