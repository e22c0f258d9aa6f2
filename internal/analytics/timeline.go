package analytics

import (
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

// DayAnalytics counts what was completed on one calendar day.
type DayAnalytics struct {
	Date              models.Date `json:"date"`
	TodosCompleted    int         `json:"todosCompleted"`
	HabitsCompleted   int         `json:"habitsCompleted"`
	BooksCompleted    int         `json:"booksCompleted"`
	PagesRead         int         `json:"pagesRead"`
	ProductivityScore int         `json:"productivityScore"`
}

func (d DayAnalytics) score() int {
	return constants.DayScoreTodo*d.TodosCompleted +
		constants.DayScoreHabit*d.HabitsCompleted +
		constants.DayScoreBook*d.BooksCompleted
}

// Timeline returns the trailing TimelineDays days ending at ref, oldest first.
func (e *Engine) Timeline(snap Snapshot, ref models.Date) []DayAnalytics {
	first := ref.AddDays(-(constants.TimelineDays - 1))
	days := make([]DayAnalytics, constants.TimelineDays)
	for i := range days {
		days[i].Date = first.AddDays(i)
	}
	slot := func(d models.Date) *DayAnalytics {
		i := d.DaysSince(first)
		if i < 0 || i >= len(days) {
			return nil
		}
		return &days[i]
	}

	for _, t := range snap.Tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		if day := slot(e.day(*t.CompletedAt)); day != nil {
			day.TodosCompleted++
		}
	}
	for _, h := range snap.Habits {
		for _, d := range snap.Completions.Dates(h.ID).Between(first, ref) {
			slot(d).HabitsCompleted++
		}
	}
	for _, b := range snap.Books {
		if b.Status != models.BookCompleted || b.CompletedAt == nil {
			continue
		}
		if day := slot(e.day(*b.CompletedAt)); day != nil {
			day.BooksCompleted++
		}
	}
	for _, s := range snap.Sessions {
		if day := slot(s.Date); day != nil {
			day.PagesRead += s.Pages
		}
	}

	for i := range days {
		days[i].ProductivityScore = days[i].score()
	}
	return days
}
