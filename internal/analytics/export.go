package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/lumen/internal/export"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for anything but json, csv or pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts json, csv or pdf in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json, csv or pdf)", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of an export.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Export serializes a report. It is a convenience dump, not a storage format.
func Export(a Analytics, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(a, "", "  ")
	case FormatCSV:
		return export.NewCSVExporter().Render(Report(a))
	case FormatPDF:
		return export.NewPDFExporter().Render(Report(a))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Report flattens analytics into metric/value rows and timeline rows.
func Report(a Analytics) export.Report {
	i := strconv.Itoa
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	o := a.Overview

	metrics := [][]string{
		{"date", a.Date.String()},
		{"totalHabits", i(o.TotalHabits)},
		{"activeHabits", i(o.ActiveHabits)},
		{"habitActiveRatio", f(o.HabitActiveRatio)},
		{"averageCompletionRate", i(a.Habits.Summary.AverageCompletionRate)},
		{"bestStreak", i(a.Habits.Summary.BestStreak)},
		{"totalTodos", i(o.TotalTodos)},
		{"completedTodos", i(o.CompletedTodos)},
		{"todoCompletionRate", i(o.TodoCompletionRate)},
		{"totalBooks", i(o.TotalBooks)},
		{"completedBooks", i(o.CompletedBooks)},
		{"readingCompletionRate", i(o.ReadingCompletionRate)},
		{"totalPagesRead", i(o.TotalPagesRead)},
		{"moodEntries", i(o.MoodEntries)},
		{"productivityScore", i(o.ProductivityScore)},
		{"productivityToday", i(a.Productivity.Today)},
		{"productivityWeek", i(a.Productivity.Week)},
		{"productivityMonth", i(a.Productivity.Month)},
		{"productivityDailyAverage", f(a.Productivity.DailyAverage)},
		{"trendProductivity", string(a.Trends.Productivity.Direction)},
		{"trendTodos", string(a.Trends.Todos.Direction)},
		{"trendHabits", string(a.Trends.Habits.Direction)},
		{"trendReading", string(a.Trends.Reading.Direction)},
		{"achievements", i(len(a.Achievements))},
	}

	timeline := make([][]string, 0, len(a.Timeline))
	for _, d := range a.Timeline {
		timeline = append(timeline, []string{
			d.Date.String(),
			i(d.TodosCompleted),
			i(d.HabitsCompleted),
			i(d.BooksCompleted),
			i(d.PagesRead),
			i(d.ProductivityScore),
		})
	}

	return export.Report{
		Title: "Lumen analytics " + a.Date.String(),
		Tables: []export.Table{
			{Name: "Overview", Headers: []string{"metric", "value"}, Rows: metrics},
			{Name: "Timeline", Headers: []string{"date", "todosCompleted", "habitsCompleted", "booksCompleted", "pagesRead", "productivityScore"}, Rows: timeline},
		},
	}
}
