package models

import "time"

// Frequency is how often a habit is expected.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// HabitType distinguishes habits to build from habits to avoid.
type HabitType string

const (
	HabitPositive HabitType = "positive"
	HabitNegative HabitType = "negative"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID         string    `json:"id" validate:"required"`
	Name       string    `json:"name" validate:"required,max=200"`
	Category   string    `json:"category,omitempty" validate:"max=100"`
	Frequency  Frequency `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Type       HabitType `json:"type" validate:"required,oneof=positive negative"`
	StartDate  Date      `json:"startDate"`
	IsArchived bool      `json:"isArchived"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CompletionRecord maps a habit ID to the dates it was completed on.
type CompletionRecord map[string]DateSet

// Dates returns the completion set for a habit (empty if none).
func (r CompletionRecord) Dates(habitID string) DateSet {
	return r[habitID]
}

// Toggle flips the completion of habitID on date and reports whether the
// habit is completed on that date afterwards.
func (r CompletionRecord) Toggle(habitID string, date Date) bool {
	set := r[habitID]
	done := set.Toggle(date)
	if set.Len() == 0 {
		delete(r, habitID)
	} else {
		r[habitID] = set
	}
	return done
}
