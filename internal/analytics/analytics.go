package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
	"github.com/julianstephens/lumen/internal/utils"
)

// Overview holds lifetime totals across every domain.
type Overview struct {
	TotalHabits           int     `json:"totalHabits"`
	ActiveHabits          int     `json:"activeHabits"`
	TotalTodos            int     `json:"totalTodos"`
	CompletedTodos        int     `json:"completedTodos"`
	TodoCompletionRate    int     `json:"todoCompletionRate"`
	TotalBooks            int     `json:"totalBooks"`
	CompletedBooks        int     `json:"completedBooks"`
	ReadingCompletionRate int     `json:"readingCompletionRate"`
	TotalPagesRead        int     `json:"totalPagesRead"`
	MoodEntries           int     `json:"moodEntries"`
	HabitActiveRatio      float64 `json:"habitActiveRatio"`
	ProductivityScore     int     `json:"productivityScore"`
}

// Productivity sums the timeline's day scores over trailing ranges.
type Productivity struct {
	Today        int     `json:"today"`
	Week         int     `json:"week"`
	Month        int     `json:"month"`
	DailyAverage float64 `json:"dailyAverage"`
}

// Reading summarizes books and pages read.
type Reading struct {
	TotalBooks         int     `json:"totalBooks"`
	CompletedBooks     int     `json:"completedBooks"`
	CurrentlyReading   int     `json:"currentlyReading"`
	TotalPagesRead     int     `json:"totalPagesRead"`
	PagesLast30Days    int     `json:"pagesLast30Days"`
	AveragePagesPerDay float64 `json:"averagePagesPerDay"`
}

// Todos summarizes the task list.
type Todos struct {
	Total             int `json:"total"`
	Completed         int `json:"completed"`
	Pending           int `json:"pending"`
	CompletionRate    int `json:"completionRate"`
	CompletedThisWeek int `json:"completedThisWeek"`
}

// Analytics is the full cross-domain report for one reference date.
type Analytics struct {
	Date         models.Date         `json:"date"`
	Overview     Overview            `json:"overview"`
	Productivity Productivity        `json:"productivity"`
	Habits       stats.AllHabitStats `json:"habits"`
	Reading      Reading             `json:"reading"`
	Todos        Todos               `json:"todos"`
	Timeline     []DayAnalytics      `json:"timeline"`
	Trends       Trends              `json:"trends"`
	Achievements []Achievement       `json:"achievements"`
	Degraded     []string            `json:"degraded,omitempty"`
	GeneratedAt  time.Time           `json:"generatedAt"`
}

// Engine aggregates a Snapshot into reports. It holds no data.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocation buckets completion instants by their wall clock in loc rather
// than in the offset they were recorded with.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithClock sets the clock used for generatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an Engine that buckets instants in their recorded offset
// unless WithLocation is given.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// day maps an instant to its calendar date.
func (e *Engine) day(t time.Time) models.Date {
	if e.loc != nil {
		t = t.In(e.loc)
	}
	return models.DateOf(t)
}

// Analytics aggregates every domain as of ref. It never fails; missing
// domains contribute zeros.
func (e *Engine) Analytics(snap Snapshot, ref models.Date) Analytics {
	habits := stats.ComputeAllHabitStats(snap.Habits, snap.Completions, ref)
	timeline := e.Timeline(snap, ref)

	a := Analytics{
		Date:         ref,
		Habits:       habits,
		Timeline:     timeline,
		Trends:       ComputeTrends(timeline),
		Achievements: e.Achievements(snap, ref),
		Degraded:     snap.Degraded,
		GeneratedAt:  e.now(),
	}

	a.Productivity = productivity(timeline)
	a.Todos = todos(snap.Tasks, timeline)
	a.Reading = reading(snap, timeline)
	a.Overview = Overview{
		TotalHabits:           habits.Summary.Total,
		ActiveHabits:          habits.Summary.Active,
		TotalTodos:            a.Todos.Total,
		CompletedTodos:        a.Todos.Completed,
		TodoCompletionRate:    a.Todos.CompletionRate,
		TotalBooks:            a.Reading.TotalBooks,
		CompletedBooks:        a.Reading.CompletedBooks,
		ReadingCompletionRate: utils.Percent(a.Reading.CompletedBooks, a.Reading.TotalBooks),
		TotalPagesRead:        a.Reading.TotalPagesRead,
		MoodEntries:           countMoods(snap.Moods, ref),
		HabitActiveRatio:      HabitActiveRatio(snap.Habits, snap.Completions, ref),
	}
	a.Overview.ProductivityScore = ProductivityScore(
		a.Overview.TodoCompletionRate,
		a.Overview.HabitActiveRatio,
		a.Overview.ReadingCompletionRate,
	)
	return a
}

// ProductivityScore blends the todo rate, habit activity and reading rate,
// each on a 0-100 scale, and caps the result at 100.
func ProductivityScore(todoRate int, habitActiveRatio float64, readingRate int) int {
	score := constants.ProductivityTodoWeight*float64(todoRate) +
		constants.ProductivityHabitWeight*habitActiveRatio*100 +
		constants.ProductivityReadingWeight*float64(readingRate)
	return min(100, int(math.Round(score)))
}

// HabitActiveRatio is the share of non-archived habits with at least one
// completion in the trailing week ending at ref.
func HabitActiveRatio(habits []models.Habit, record models.CompletionRecord, ref models.Date) float64 {
	from := ref.AddDays(-(constants.ActiveWindow - 1))
	active, recent := 0, 0
	for _, h := range habits {
		if h.IsArchived {
			continue
		}
		active++
		if len(record.Dates(h.ID).Between(from, ref)) > 0 {
			recent++
		}
	}
	return math.Round(utils.Ratio(float64(recent), float64(active))*100) / 100
}

func countMoods(entries []models.MoodEntry, ref models.Date) int {
	n := 0
	for _, m := range entries {
		if !m.Date.After(ref) {
			n++
		}
	}
	return n
}

func productivity(timeline []DayAnalytics) Productivity {
	var p Productivity
	for i, day := range timeline {
		fromEnd := len(timeline) - 1 - i
		if fromEnd == 0 {
			p.Today = day.ProductivityScore
		}
		if fromEnd < 7 {
			p.Week += day.ProductivityScore
		}
		p.Month += day.ProductivityScore
	}
	p.DailyAverage = utils.Round1(float64(p.Month) / constants.TimelineDays)
	return p
}

func todos(tasks []models.Task, timeline []DayAnalytics) Todos {
	t := Todos{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			t.Completed++
		}
	}
	t.Pending = t.Total - t.Completed
	t.CompletionRate = utils.Percent(t.Completed, t.Total)
	for _, day := range lastN(timeline, 7) {
		t.CompletedThisWeek += day.TodosCompleted
	}
	return t
}

func reading(snap Snapshot, timeline []DayAnalytics) Reading {
	r := Reading{TotalBooks: len(snap.Books)}
	for _, b := range snap.Books {
		switch b.Status {
		case models.BookCompleted:
			r.CompletedBooks++
		case models.BookReading:
			r.CurrentlyReading++
		}
	}
	for _, s := range snap.Sessions {
		r.TotalPagesRead += s.Pages
	}
	for _, day := range timeline {
		r.PagesLast30Days += day.PagesRead
	}
	r.AveragePagesPerDay = utils.Round1(float64(r.PagesLast30Days) / constants.TimelineDays)
	return r
}

func lastN[T any](xs []T, n int) []T {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}
