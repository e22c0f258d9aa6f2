package models

import (
	"errors"
	"testing"
	"time"
)

func TestHabit_Validate(t *testing.T) {
	valid := Habit{
		ID:        "h1",
		Name:      "Read",
		Frequency: FrequencyDaily,
		Type:      HabitPositive,
		StartDate: MustParseDate("2024-01-01"),
		CreatedAt: time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(h *Habit)
		wantErr bool
	}{
		{name: "valid daily habit", mutate: func(h *Habit) {}},
		{name: "valid weekly negative habit", mutate: func(h *Habit) {
			h.Frequency = FrequencyWeekly
			h.Type = HabitNegative
		}},
		{name: "missing name", mutate: func(h *Habit) { h.Name = "" }, wantErr: true},
		{name: "unknown frequency", mutate: func(h *Habit) { h.Frequency = "hourly" }, wantErr: true},
		{name: "unknown type", mutate: func(h *Habit) { h.Type = "neutral" }, wantErr: true},
		{name: "missing start date", mutate: func(h *Habit) { h.StartDate = Date{} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)
			err := h.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
			}
		})
	}
}

func TestMoodEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   MoodEntry
		wantErr bool
	}{
		{name: "valid", entry: MoodEntry{Date: MustParseDate("2024-01-03"), Mood: MoodCalm}},
		{name: "unknown mood", entry: MoodEntry{Date: MustParseDate("2024-01-03"), Mood: "meh"}, wantErr: true},
		{name: "missing date", entry: MoodEntry{Mood: MoodHappy}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.entry.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMoodScores(t *testing.T) {
	want := map[MoodID]float64{
		MoodAmazing: 5, MoodHappy: 4, MoodCalm: 3.5, MoodOkay: 3,
		MoodTired: 2.5, MoodAnxious: 2, MoodSad: 1.5, MoodAngry: 1,
	}
	if len(Moods) != len(want) {
		t.Fatalf("Moods has %d ids, want %d", len(Moods), len(want))
	}
	for id, score := range want {
		if got := id.Score(); got != score {
			t.Errorf("%s.Score() = %v, want %v", id, got, score)
		}
	}
	if MoodID("meh").Score() != 0 {
		t.Error("unknown mood should score 0")
	}
}

func TestMoodLogEntriesOldestFirst(t *testing.T) {
	log := MoodLog{}
	for _, s := range []string{"2024-01-05", "2024-01-01", "2024-01-03"} {
		d := MustParseDate(s)
		log[d] = MoodEntry{Date: d, Mood: MoodOkay}
	}
	entries := log.Entries()
	if entries[0].Date.String() != "2024-01-01" || entries[2].Date.String() != "2024-01-05" {
		t.Errorf("unexpected order: %v, %v", entries[0].Date, entries[2].Date)
	}
}
