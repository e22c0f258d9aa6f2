package models

import (
	"encoding/json"
	"slices"
)

// DateSet is an ascending set of unique dates.
type DateSet struct {
	dates []Date
}

// NewDateSet builds a set from dates in any order; duplicates collapse.
func NewDateSet(dates ...Date) DateSet {
	var s DateSet
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s *DateSet) search(d Date) (int, bool) {
	return slices.BinarySearchFunc(s.dates, d, func(a, b Date) int { return a.Compare(b) })
}

// Add inserts d and reports whether it was new.
func (s *DateSet) Add(d Date) bool {
	i, found := s.search(d)
	if found {
		return false
	}
	s.dates = slices.Insert(s.dates, i, d)
	return true
}

// Remove deletes d and reports whether it was present.
func (s *DateSet) Remove(d Date) bool {
	i, found := s.search(d)
	if !found {
		return false
	}
	s.dates = slices.Delete(s.dates, i, i+1)
	return true
}

// Toggle adds d if absent, removes it otherwise. It returns true when d is
// present afterwards.
func (s *DateSet) Toggle(d Date) bool {
	if s.Remove(d) {
		return false
	}
	s.Add(d)
	return true
}

// Contains reports whether d is in the set.
func (s DateSet) Contains(d Date) bool {
	_, found := s.search(d)
	return found
}

// Len returns the number of distinct dates.
func (s DateSet) Len() int { return len(s.dates) }

// Dates returns the dates oldest first.
func (s DateSet) Dates() []Date {
	return slices.Clone(s.dates)
}

// Descending returns the dates newest first.
func (s DateSet) Descending() []Date {
	out := slices.Clone(s.dates)
	slices.Reverse(out)
	return out
}

// Until returns the subset of dates on or before ref.
func (s DateSet) Until(ref Date) DateSet {
	i, found := s.search(ref)
	if found {
		i++
	}
	return DateSet{dates: slices.Clone(s.dates[:i])}
}

// Between returns the dates in [from, to], oldest first.
func (s DateSet) Between(from, to Date) []Date {
	var out []Date
	for _, d := range s.dates {
		if d.Before(from) {
			continue
		}
		if d.After(to) {
			break
		}
		out = append(out, d)
	}
	return out
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	if s.dates == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.dates)
}

func (s *DateSet) UnmarshalJSON(data []byte) error {
	var raw []Date
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewDateSet(raw...)
	return nil
}
