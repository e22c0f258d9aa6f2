package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/lumen/internal/analytics"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/wellness"
)

type AnalyticsCmd struct {
	JSON bool `help:"Print the full report as JSON."`
}

func (c *AnalyticsCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Service.Analytics(ctx.Ctx())
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, a)
	}

	o := a.Overview
	ctx.Heading(fmt.Sprintf("Analytics for %s", a.Date))
	ctx.Printf("  Productivity score: %d\n", o.ProductivityScore)
	ctx.Printf("  Habits:             %d active of %d (%.0f%% active this week)\n", o.ActiveHabits, o.TotalHabits, o.HabitActiveRatio*100)
	ctx.Printf("  Todos:              %d/%d done (%d%%)\n", o.CompletedTodos, o.TotalTodos, o.TodoCompletionRate)
	ctx.Printf("  Books:              %d/%d finished, %d pages read\n", o.CompletedBooks, o.TotalBooks, o.TotalPagesRead)
	ctx.Printf("  Mood entries:       %d\n", o.MoodEntries)
	ctx.Println()

	ctx.Heading("Productivity")
	p := a.Productivity
	ctx.Printf("  Today %d  Week %d  Month %d  Daily average %.1f\n", p.Today, p.Week, p.Month, p.DailyAverage)
	ctx.Println()

	ctx.Heading("Trends")
	for _, t := range []struct {
		name   string
		signal analytics.TrendSignal
	}{
		{"Productivity", a.Trends.Productivity},
		{"Todos", a.Trends.Todos},
		{"Habits", a.Trends.Habits},
		{"Reading", a.Trends.Reading},
	} {
		ctx.Printf("  %-13s %-17s %+.1f%%\n", t.name, t.signal.Direction, t.signal.ChangePercent)
	}

	if len(a.Achievements) > 0 {
		ctx.Println()
		ctx.Heading("Achievements")
		for _, ach := range a.Achievements {
			ctx.Printf("  %s %s %s\n", ach.Icon, ach.Title, cli.MutedStyle.Render(ach.EarnedAt.String()))
		}
	}
	printDegraded(ctx, a.Degraded)
	return nil
}

type DashboardCmd struct {
	JSON bool `help:"Print the dashboard as JSON."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	d, err := ctx.Service.Dashboard(ctx.Ctx())
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, d)
	}

	ctx.Heading(fmt.Sprintf("Today, %s", d.Date))
	if len(d.Habits) == 0 {
		ctx.Println("  No habits yet.")
	}
	for _, h := range d.Habits {
		mark := "[ ]"
		if h.Done {
			mark = cli.GoodStyle.Render("[x]")
		}
		ctx.Printf("  %s %s %s\n", mark, h.Name, cli.MutedStyle.Render(fmt.Sprintf("(%d day streak)", h.Streak)))
	}
	ctx.Printf("  Done: %d/%d\n", d.Summary.CompletedToday, d.Summary.Active)
	ctx.Println()

	if d.TodayMood != nil {
		ctx.Printf("Mood: %s %s\n", d.TodayMood.Mood.Icon(), d.TodayMood.Mood.Label())
	} else {
		ctx.Println(cli.WarnStyle.Render("Mood: not logged today"))
	}
	if d.Mood.TotalEntries > 0 {
		ctx.Printf("Week average: %.1f (%s)\n", d.Mood.AverageMood, d.Mood.RecentTrend)
	}
	ctx.Printf("Productivity today: %d\n", d.Productivity.Today)

	if len(d.Achievements) > 0 {
		ctx.Println()
		ctx.Heading("Recent achievements")
		for _, ach := range d.Achievements {
			ctx.Printf("  %s %s\n", ach.Icon, ach.Title)
		}
	}
	printDegraded(ctx, d.Degraded)
	return nil
}

type WellnessCmd struct {
	All  bool `help:"Show every recommendation, not only high priority ones."`
	JSON bool `help:"Print the report as JSON."`
}

func (c *WellnessCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Service.WellnessReport(ctx.Ctx(), wellness.Options{All: c.All})
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, r)
	}

	s := r.OverallScore
	ctx.Heading(fmt.Sprintf("Wellness for %s", r.Date))
	ctx.Printf("  Score: %d (%s) %s\n", s.Score, s.Grade, cli.MutedStyle.Render(s.Description))
	ctx.Printf("  Habits %d  Mood %d\n", s.HabitScore, s.MoodScore)

	if len(r.Highlights) > 0 {
		ctx.Println()
		ctx.Heading("Highlights")
		for _, h := range r.Highlights {
			ctx.Printf("  %s %s: %s\n", h.Icon, h.Title, h.Description)
		}
	}
	if len(r.Recommendations) > 0 {
		ctx.Println()
		ctx.Heading("Recommendations")
		for _, rec := range r.Recommendations {
			title := rec.Title
			if rec.Priority == wellness.PriorityHigh {
				title = cli.BadStyle.Render(title)
			}
			ctx.Printf("  %s %s [%s]: %s\n", rec.Icon, title, rec.Priority, rec.Description)
		}
	}
	return nil
}

type ExportCmd struct {
	Format string `help:"json, csv or pdf." default:"json"`
	Out    string `help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := analytics.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	body, err := ctx.Service.ExportAnalytics(ctx.Ctx(), format)
	if err != nil {
		return err
	}

	if c.Out == "" {
		if format == analytics.FormatPDF {
			return fmt.Errorf("pdf export requires --out")
		}
		ctx.Printf("%s", body)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(c.Out, body, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %s to %s\n", format, c.Out)
	return nil
}

type ImportCmd struct {
	Collection string `arg:"" help:"todos, books or reading-progress."`
	File       string `arg:"" help:"JSON file holding the collection." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	doc, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	ctx.PerformAutomaticBackup()
	n, err := ctx.Service.Import(ctx.Ctx(), c.Collection, doc)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %d %s\n", n, c.Collection)
	return nil
}

func printJSON(ctx *cli.Context, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(b))
	return nil
}

func printDegraded(ctx *cli.Context, degraded []string) {
	if len(degraded) == 0 {
		return
	}
	ctx.Println()
	ctx.Println(cli.WarnStyle.Render("⚠ Some data could not be read: " + strings.Join(degraded, ", ")))
}
