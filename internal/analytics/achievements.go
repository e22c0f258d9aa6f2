package analytics

import (
	"slices"

	"github.com/julianstephens/lumen/internal/models"
)

// AchievementCategory groups achievements by the domain they reward.
type AchievementCategory string

const (
	CategoryHabits  AchievementCategory = "habits"
	CategoryTodos   AchievementCategory = "todos"
	CategoryReading AchievementCategory = "reading"
	CategoryMood    AchievementCategory = "mood"
)

// Achievement is a badge unlocked by a lifetime total crossing a threshold.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	EarnedAt    models.Date         `json:"earnedAt"`
}

// facts are the lifetime totals achievement rules are evaluated against.
type facts struct {
	habitCount   int
	habitCreated []models.Date
	habitDates   []models.Date // every completion across habits, ascending, may repeat
	habitSets    []models.DateSet
	taskDone     int
	taskDates    []models.Date
	bookDone     int
	bookDates    []models.Date
	sessions     []models.ReadingSession
	totalPages   int
	moodDates    models.DateSet
}

type rule struct {
	id          string
	title       string
	description string
	icon        string
	category    AchievementCategory
	// earned reports whether the rule holds and, if derivable, when it
	// first did.
	earned func(f facts) (models.Date, bool)
}

var rules = []rule{
	{"first_habit", "First Step", "Create your first habit", "🌱", CategoryHabits,
		func(f facts) (models.Date, bool) {
			d, _ := nth(f.habitCreated, 1)
			return d, f.habitCount >= 1
		}},
	{"streak_7", "Week Warrior", "Keep a habit going for 7 days in a row", "🔥", CategoryHabits,
		func(f facts) (models.Date, bool) { return firstRun(f.habitSets, 7) }},
	{"streak_30", "Monthly Master", "Keep a habit going for 30 days in a row", "🏆", CategoryHabits,
		func(f facts) (models.Date, bool) { return firstRun(f.habitSets, 30) }},
	{"habit_100", "Centurion", "Log 100 habit completions", "💯", CategoryHabits,
		func(f facts) (models.Date, bool) { return nth(f.habitDates, 100) }},
	{"tasks_10", "Getting Things Done", "Complete 10 tasks", "✅", CategoryTodos,
		func(f facts) (models.Date, bool) { return counted(f.taskDone, f.taskDates, 10) }},
	{"tasks_100", "Productivity Pro", "Complete 100 tasks", "🚀", CategoryTodos,
		func(f facts) (models.Date, bool) { return counted(f.taskDone, f.taskDates, 100) }},
	{"first_book", "Bookworm", "Finish your first book", "📖", CategoryReading,
		func(f facts) (models.Date, bool) { return counted(f.bookDone, f.bookDates, 1) }},
	{"books_10", "Avid Reader", "Finish 10 books", "📚", CategoryReading,
		func(f facts) (models.Date, bool) { return counted(f.bookDone, f.bookDates, 10) }},
	{"pages_1000", "Page Turner", "Read 1,000 pages", "📄", CategoryReading,
		func(f facts) (models.Date, bool) { return pagesReached(f, 1000) }},
	{"mood_7", "Self Aware", "Log your mood 7 times", "🪞", CategoryMood,
		func(f facts) (models.Date, bool) { return nth(f.moodDates.Dates(), 7) }},
	{"mood_30", "Emotional Explorer", "Log your mood 30 times", "🧭", CategoryMood,
		func(f facts) (models.Date, bool) { return nth(f.moodDates.Dates(), 30) }},
	{"mood_streak_7", "Daily Check-in", "Log your mood 7 days in a row", "🌈", CategoryMood,
		func(f facts) (models.Date, bool) { return firstRun([]models.DateSet{f.moodDates}, 7) }},
}

func (e *Engine) facts(snap Snapshot, ref models.Date) facts {
	f := facts{habitCount: len(snap.Habits), moodDates: models.NewDateSet()}

	for _, h := range snap.Habits {
		if !h.CreatedAt.IsZero() {
			f.habitCreated = append(f.habitCreated, e.day(h.CreatedAt))
		} else if !h.StartDate.IsZero() {
			f.habitCreated = append(f.habitCreated, h.StartDate)
		}
		set := snap.Completions.Dates(h.ID).Until(ref)
		f.habitSets = append(f.habitSets, set)
		f.habitDates = append(f.habitDates, set.Dates()...)
	}
	slices.SortFunc(f.habitCreated, models.Date.Compare)
	slices.SortFunc(f.habitDates, models.Date.Compare)

	for _, t := range snap.Tasks {
		if !t.Completed {
			continue
		}
		f.taskDone++
		if t.CompletedAt != nil {
			f.taskDates = append(f.taskDates, e.day(*t.CompletedAt))
		}
	}
	slices.SortFunc(f.taskDates, models.Date.Compare)

	for _, b := range snap.Books {
		if b.Status != models.BookCompleted {
			continue
		}
		f.bookDone++
		if b.CompletedAt != nil {
			f.bookDates = append(f.bookDates, e.day(*b.CompletedAt))
		}
	}
	slices.SortFunc(f.bookDates, models.Date.Compare)

	f.sessions = slices.Clone(snap.Sessions)
	slices.SortStableFunc(f.sessions, func(a, b models.ReadingSession) int { return a.Date.Compare(b.Date) })
	for _, s := range f.sessions {
		f.totalPages += s.Pages
	}

	for _, m := range snap.Moods {
		if !m.Date.After(ref) {
			f.moodDates.Add(m.Date)
		}
	}
	return f
}

// Achievements evaluates the rule table in order. EarnedAt falls back to ref
// when the data does not say when a threshold was crossed.
func (e *Engine) Achievements(snap Snapshot, ref models.Date) []Achievement {
	f := e.facts(snap, ref)
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		earnedAt, ok := r.earned(f)
		if !ok {
			continue
		}
		if earnedAt.IsZero() || earnedAt.After(ref) {
			earnedAt = ref
		}
		out = append(out, Achievement{
			ID:          r.id,
			Title:       r.title,
			Description: r.description,
			Icon:        r.icon,
			Category:    r.category,
			EarnedAt:    earnedAt,
		})
	}
	return out
}

// nth returns the n-th (1-based) date of an ascending list.
func nth(dates []models.Date, n int) (models.Date, bool) {
	if len(dates) < n {
		return models.Date{}, false
	}
	return dates[n-1], true
}

// counted holds when total reaches n; the date is the n-th dated event if
// enough events carry a date.
func counted(total int, dates []models.Date, n int) (models.Date, bool) {
	if total < n {
		return models.Date{}, false
	}
	d, _ := nth(dates, n)
	return d, true
}

// firstRun returns the earliest day on which any set reached a run of n
// consecutive days.
func firstRun(sets []models.DateSet, n int) (models.Date, bool) {
	var earliest models.Date
	found := false
	for _, set := range sets {
		dates := set.Dates()
		run := 0
		for i, d := range dates {
			if i > 0 && d.DaysSince(dates[i-1]) == 1 {
				run++
			} else {
				run = 1
			}
			if run == n {
				if !found || d.Before(earliest) {
					earliest = d
				}
				found = true
				break
			}
		}
	}
	return earliest, found
}

func pagesReached(f facts, n int) (models.Date, bool) {
	if f.totalPages < n {
		return models.Date{}, false
	}
	sum := 0
	for _, s := range f.sessions {
		sum += s.Pages
		if sum >= n {
			return s.Date, true
		}
	}
	return models.Date{}, true
}
