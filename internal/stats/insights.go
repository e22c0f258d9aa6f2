package stats

import (
	"fmt"

	"github.com/julianstephens/lumen/internal/models"
)

// InsightKind is the tone of an insight.
type InsightKind string

const (
	InsightInfo    InsightKind = "info"
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
)

// Insight is a short observation about recent mood data.
type Insight struct {
	Icon        string      `json:"icon"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Kind        InsightKind `json:"kind"`
}

// StartLoggingTitle is the title of the only insight produced without data.
const StartLoggingTitle = "Start logging your mood"

// MoodInsights turns mood stats into observations, most notable first.
func MoodInsights(s MoodStats, ref models.Date) []Insight {
	if s.TotalEntries == 0 && s.LastEntryDate.IsZero() {
		return []Insight{{
			Icon:        "📝",
			Title:       StartLoggingTitle,
			Description: "Record how you feel each day to start seeing patterns.",
			Kind:        InsightInfo,
		}}
	}

	var insights []Insight
	insights = append(insights, dominantMood(s)...)
	insights = append(insights, trendInsight(s)...)
	insights = append(insights, streakInsight(s)...)
	insights = append(insights, averageInsight(s)...)
	if s.LastEntryDate != ref {
		insights = append(insights, Insight{
			Icon:        "⏰",
			Title:       "No entry today",
			Description: "Take a moment to note how today is going.",
			Kind:        InsightInfo,
		})
	}
	return insights
}

func dominantMood(s MoodStats) []Insight {
	if s.MostCommonMood == "" {
		return nil
	}
	pct := 0
	for _, c := range s.MoodDistribution {
		if c.Mood == s.MostCommonMood {
			pct = c.Percentage
		}
	}
	return []Insight{{
		Icon:        s.MostCommonMood.Icon(),
		Title:       fmt.Sprintf("Mostly %s", s.MostCommonMood.Label()),
		Description: fmt.Sprintf("%s makes up %d%% of your recent entries.", s.MostCommonMood.Label(), pct),
		Kind:        InsightInfo,
	}}
}

func trendInsight(s MoodStats) []Insight {
	switch s.RecentTrend {
	case TrendImproving:
		return []Insight{{
			Icon:        "📈",
			Title:       "Your mood is improving",
			Description: "Your last week scored higher than the week before.",
			Kind:        InsightSuccess,
		}}
	case TrendDeclining:
		return []Insight{{
			Icon:        "📉",
			Title:       "Your mood has dipped",
			Description: "Your last week scored lower than the week before.",
			Kind:        InsightWarning,
		}}
	}
	return nil
}

func streakInsight(s MoodStats) []Insight {
	if s.CurrentStreak < 3 {
		return nil
	}
	return []Insight{{
		Icon:        "🔥",
		Title:       fmt.Sprintf("%d-day logging streak", s.CurrentStreak),
		Description: "You have checked in every day. Keep it going.",
		Kind:        InsightSuccess,
	}}
}

func averageInsight(s MoodStats) []Insight {
	if s.TotalEntries == 0 {
		return nil
	}
	switch {
	case s.AverageMood >= 4:
		return []Insight{{
			Icon:        "🌟",
			Title:       "Great stretch",
			Description: fmt.Sprintf("Your average mood is %.1f out of 5.", s.AverageMood),
			Kind:        InsightSuccess,
		}}
	case s.AverageMood >= 3:
		return []Insight{{
			Icon:        "🙂",
			Title:       "Steady mood",
			Description: fmt.Sprintf("Your average mood is %.1f out of 5.", s.AverageMood),
			Kind:        InsightInfo,
		}}
	default:
		return []Insight{{
			Icon:        "💙",
			Title:       "Tough stretch",
			Description: fmt.Sprintf("Your average mood is %.1f out of 5. Be kind to yourself.", s.AverageMood),
			Kind:        InsightWarning,
		}}
	}
}
