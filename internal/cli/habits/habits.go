package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/stats"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Mark      HabitMarkCmd      `cmd:"" help:"Toggle a habit's completion for a day."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Unarchive a habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its completions."`
	Stats     HabitStatsCmd     `cmd:"" help:"Show habit statistics."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Category  string `help:"Optional category."`
	Frequency string `help:"daily, weekly or monthly." default:"daily" enum:"daily,weekly,monthly"`
	Negative  bool   `help:"Track a habit to avoid rather than to do."`
	Start     string `help:"Start date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := findHabit(ctx, c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	start, err := cli.ParseDay(c.Start, ctx.Service.Today())
	if err != nil {
		return err
	}

	habit := ctx.Service.NewHabit(strings.TrimSpace(c.Name))
	habit.Category = c.Category
	habit.Frequency = models.Frequency(c.Frequency)
	habit.StartDate = start
	if c.Negative {
		habit.Type = models.HabitNegative
	}

	habit, err = ctx.Service.AddHabit(ctx.Ctx(), habit)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.Records().Habits()
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if h.IsArchived && !c.Archived {
			continue
		}
		status := ""
		if h.IsArchived {
			status = cli.MutedStyle.Render(" [ARCHIVED]")
		}
		ctx.Printf("%s  %s (%s, %s)%s\n", cli.MutedStyle.Render(shortID(h.ID)), h.Name, h.Frequency, h.Type, status)
		shown++
	}
	if shown == 0 {
		ctx.Println("No habits found.")
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, ctx.Service.Today())
	if err != nil {
		return err
	}

	done, err := ctx.Service.ToggleCompletion(ctx.Ctx(), habit.ID, day)
	if err != nil {
		return err
	}
	if done {
		ctx.Printf("Marked habit %q for %s\n", habit.Name, day)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	}
	return nil
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Service.ArchiveHabit(ctx.Ctx(), habit.ID); err != nil {
		return err
	}
	ctx.Printf("Archived habit: %s\n", habit.Name)
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitUnarchiveCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Service.UnarchiveHabit(ctx.Ctx(), habit.ID); err != nil {
		return err
	}
	ctx.Printf("Unarchived habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Service.DeleteHabit(ctx.Ctx(), habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitStatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID (default: all habits)."`
}

func (c *HabitStatsCmd) Run(ctx *cli.Context) error {
	if c.Habit != "" {
		habit, err := findHabit(ctx, c.Habit)
		if err != nil {
			return err
		}
		s, err := ctx.Service.HabitStats(ctx.Ctx(), habit.ID)
		if err != nil {
			return err
		}
		ctx.Heading(s.Name)
		ctx.Printf("  Current streak:  %d\n", s.CurrentStreak)
		ctx.Printf("  Best streak:     %d\n", s.BestStreak)
		ctx.Printf("  Completions:     %d\n", s.TotalCompletions)
		ctx.Printf("  Completion rate: %d%%\n", s.CompletionRate)
		ctx.Printf("  Last 30 days:    %s\n", historyBar(s.CompletionHistory))
		return nil
	}

	all, err := ctx.Service.AllHabitsStats(ctx.Ctx())
	if err != nil {
		return err
	}
	if len(all.Habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	ctx.Heading(fmt.Sprintf("Habits for %s", ctx.Service.Today()))
	for _, s := range all.Habits {
		if s.IsArchived {
			continue
		}
		mark := "[ ]"
		if s.CompletedToday {
			mark = cli.GoodStyle.Render("[x]")
		}
		ctx.Printf("%s %-24s streak %3d  best %3d  rate %3d%%\n", mark, s.Name, s.CurrentStreak, s.BestStreak, s.CompletionRate)
	}

	sum := all.Summary
	ctx.Println()
	ctx.Printf("Done today: %d/%d  Average rate: %d%%  Longest current streak: %d\n",
		sum.CompletedToday, sum.Active, sum.AverageCompletionRate, sum.LongestCurrentStreak)
	if sum.AllDoneToday {
		ctx.Println(cli.GoodStyle.Render("All habits done today!"))
	}
	return nil
}

// findHabit matches an exact ID, then a case-insensitive name.
func findHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	habits, err := ctx.Service.Records().Habits()
	if err != nil {
		return models.Habit{}, err
	}
	ref = strings.TrimSpace(ref)
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func historyBar(history []stats.DayCompletion) string {
	var b strings.Builder
	for _, d := range history {
		if d.Completed {
			b.WriteString("█")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}
