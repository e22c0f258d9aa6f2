package models

import "time"

// MoodID is one of the eight fixed moods.
type MoodID string

const (
	MoodAmazing MoodID = "amazing"
	MoodHappy   MoodID = "happy"
	MoodCalm    MoodID = "calm"
	MoodOkay    MoodID = "okay"
	MoodTired   MoodID = "tired"
	MoodAnxious MoodID = "anxious"
	MoodSad     MoodID = "sad"
	MoodAngry   MoodID = "angry"
)

type moodInfo struct {
	score float64
	icon  string
	label string
}

// Moods is the fixed display order, highest score first.
var Moods = []MoodID{
	MoodAmazing, MoodHappy, MoodCalm, MoodOkay,
	MoodTired, MoodAnxious, MoodSad, MoodAngry,
}

var moodTable = map[MoodID]moodInfo{
	MoodAmazing: {5, "🤩", "Amazing"},
	MoodHappy:   {4, "😊", "Happy"},
	MoodCalm:    {3.5, "😌", "Calm"},
	MoodOkay:    {3, "😐", "Okay"},
	MoodTired:   {2.5, "😴", "Tired"},
	MoodAnxious: {2, "😰", "Anxious"},
	MoodSad:     {1.5, "😢", "Sad"},
	MoodAngry:   {1, "😠", "Angry"},
}

// Valid reports whether m is a known mood.
func (m MoodID) Valid() bool {
	_, ok := moodTable[m]
	return ok
}

// Score returns the mood's numeric proxy, or 0 for an unknown id.
func (m MoodID) Score() float64 { return moodTable[m].score }

func (m MoodID) Icon() string { return moodTable[m].icon }

func (m MoodID) Label() string {
	if info, ok := moodTable[m]; ok {
		return info.label
	}
	return string(m)
}

// MoodEntry is the user's mood for one calendar day.
type MoodEntry struct {
	Date      Date      `json:"date"`
	Mood      MoodID    `json:"mood" validate:"required,mood"`
	Entry     string    `json:"entry,omitempty" validate:"max=5000"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodLog holds at most one entry per date.
type MoodLog map[Date]MoodEntry

// Entries returns the log's entries, oldest first.
func (l MoodLog) Entries() []MoodEntry {
	set := NewDateSet()
	for d := range l {
		set.Add(d)
	}
	out := make([]MoodEntry, 0, len(l))
	for _, d := range set.Dates() {
		out = append(out, l[d])
	}
	return out
}

// Dates returns the set of dates that carry an entry.
func (l MoodLog) Dates() DateSet {
	set := NewDateSet()
	for d := range l {
		set.Add(d)
	}
	return set
}
