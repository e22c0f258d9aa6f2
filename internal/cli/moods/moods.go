package moods

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
)

type MoodCmd struct {
	Log      MoodLogCmd      `cmd:"" help:"Log today's mood (replaces any entry for the day)."`
	Delete   MoodDeleteCmd   `cmd:"" help:"Delete the mood entry for a day."`
	Stats    MoodStatsCmd    `cmd:"" help:"Show mood statistics."`
	Insights MoodInsightsCmd `cmd:"" help:"Show observations about recent moods."`
}

type MoodLogCmd struct {
	Mood string `arg:"" optional:"" help:"One of amazing, happy, calm, okay, tired, anxious, sad, angry (prompts when omitted)."`
	Note string `arg:"" optional:"" help:"Optional journal entry."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Date, ctx.Service.Today())
	if err != nil {
		return err
	}
	mood := models.MoodID(strings.ToLower(strings.TrimSpace(c.Mood)))
	if mood == "" {
		if mood, err = pickMood(fmt.Sprintf("How do you feel on %s?", day)); err != nil {
			return err
		}
		if mood == "" {
			ctx.Println("Nothing logged.")
			return nil
		}
	}

	entry, err := ctx.Service.LogMood(ctx.Ctx(), models.MoodEntry{
		Date:  day,
		Mood:  mood,
		Entry: c.Note,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Logged %s %s for %s\n", entry.Mood.Icon(), entry.Mood.Label(), entry.Date)
	return nil
}

// pickMood shows a select over every mood. An aborted prompt returns "".
// Tests replace it.
var pickMood = func(title string) (models.MoodID, error) {
	var mood models.MoodID
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.MoodID]().
				Title(title).
				Options(moodOptions()...).
				Value(&mood),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("interactive form error: %w", err)
	}
	return mood, nil
}

// moodOptions lists the moods in display order, labelled with their icons.
func moodOptions() []huh.Option[models.MoodID] {
	opts := make([]huh.Option[models.MoodID], 0, len(models.Moods))
	for _, m := range models.Moods {
		opts = append(opts, huh.NewOption(m.Icon()+" "+m.Label(), m))
	}
	return opts
}

type MoodDeleteCmd struct {
	Date string `arg:"" help:"Date in YYYY-MM-DD format."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Date, ctx.Service.Today())
	if err != nil {
		return err
	}
	if err := ctx.Service.DeleteMood(ctx.Ctx(), day); err != nil {
		return err
	}
	ctx.Printf("Deleted mood entry for %s\n", day)
	return nil
}

type MoodStatsCmd struct {
	Days int `help:"Window in days; 0 uses the configured window, negative means all history." default:"0"`
}

func (c *MoodStatsCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days == 0 {
		days = ctx.Service.MoodWindowDays()
	}
	s, err := ctx.Service.MoodStats(ctx.Ctx(), days)
	if err != nil {
		return err
	}

	window := fmt.Sprintf("last %d days", s.WindowDays)
	if s.WindowDays <= 0 {
		window = "all time"
	}
	ctx.Heading(fmt.Sprintf("Mood (%s)", window))
	if s.TotalEntries == 0 {
		ctx.Println("No mood entries yet.")
		return nil
	}

	ctx.Printf("  Entries:        %d\n", s.TotalEntries)
	ctx.Printf("  Average:        %.1f / 5\n", s.AverageMood)
	ctx.Printf("  Trend:          %s\n", s.RecentTrend)
	ctx.Printf("  Current streak: %d\n", s.CurrentStreak)
	ctx.Printf("  Longest streak: %d\n", s.LongestStreak)
	if s.MostCommonMood != "" {
		ctx.Printf("  Most common:    %s %s\n", s.MostCommonMood.Icon(), s.MostCommonMood.Label())
	}
	ctx.Println()
	for _, mc := range s.MoodDistribution {
		if mc.Count == 0 {
			continue
		}
		ctx.Printf("  %s %-8s %3d  %s %d%%\n", mc.Icon, mc.Label, mc.Count, strings.Repeat("▇", mc.Percentage/5), mc.Percentage)
	}
	return nil
}

type MoodInsightsCmd struct{}

func (c *MoodInsightsCmd) Run(ctx *cli.Context) error {
	insights, err := ctx.Service.MoodInsights(ctx.Ctx())
	if err != nil {
		return err
	}
	ctx.Heading("Mood insights")
	for _, in := range insights {
		ctx.Printf("%s %s\n", in.Icon, kindStyle(in.Kind).Render(in.Title))
		ctx.Printf("   %s\n", cli.MutedStyle.Render(in.Description))
	}
	return nil
}

func kindStyle(kind stats.InsightKind) lipgloss.Style {
	switch kind {
	case stats.InsightSuccess:
		return cli.GoodStyle
	case stats.InsightWarning:
		return cli.WarnStyle
	default:
		return cli.HeadingStyle
	}
}
