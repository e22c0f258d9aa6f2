package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/models"
)

// Records gives typed access to the collections held by a Provider.
//
// Reads of an absent key return an empty value. A document that fails to
// decode also returns an empty value, together with an error wrapping
// ErrCorrupt. Mutations are read-modify-write and refuse to overwrite a
// corrupt document.
type Records struct {
	p Provider
}

// NewRecords wraps p with typed collection accessors.
func NewRecords(p Provider) *Records {
	return &Records{p: p}
}

func (r *Records) Provider() Provider { return r.p }

func read[T any](p Provider, key string, out *T) error {
	doc, ok, err := p.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(doc) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	*out = v
	return nil
}

func write(p Provider, key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.Set(key, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Habits returns every habit in store order.
func (r *Records) Habits() ([]models.Habit, error) {
	habits := []models.Habit{}
	if err := read(r.p, constants.CollectionHabits, &habits); err != nil {
		return []models.Habit{}, err
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

func (r *Records) Completions() (models.CompletionRecord, error) {
	record := models.CompletionRecord{}
	if err := read(r.p, constants.CollectionCompletions, &record); err != nil {
		return models.CompletionRecord{}, err
	}
	if record == nil {
		record = models.CompletionRecord{}
	}
	return record, nil
}

// Moods returns the mood log keyed by date.
func (r *Records) Moods() (models.MoodLog, error) {
	log := models.MoodLog{}
	if err := read(r.p, constants.CollectionMoodEntries, &log); err != nil {
		return models.MoodLog{}, err
	}
	if log == nil {
		log = models.MoodLog{}
	}
	return log, nil
}

func (r *Records) Tasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := read(r.p, constants.CollectionTodos, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *Records) Books() ([]models.Book, error) {
	var books []models.Book
	if err := read(r.p, constants.CollectionBooks, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *Records) ReadingSessions() ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	if err := read(r.p, constants.CollectionReadingProgress, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Habit returns the habit with id, or ErrNotFound.
func (r *Records) Habit(id string) (models.Habit, error) {
	habits, err := r.Habits()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return habits[i], nil
}

func indexOf(habits []models.Habit, id string) int {
	return slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
}

func (r *Records) AddHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	habits, err := r.Habits()
	if err != nil {
		return err
	}
	if indexOf(habits, h.ID) >= 0 {
		return fmt.Errorf("habit %s already exists", h.ID)
	}
	return write(r.p, constants.CollectionHabits, append(habits, h))
}

func (r *Records) UpdateHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return r.modifyHabit(h.ID, func(existing *models.Habit) {
		createdAt := existing.CreatedAt
		*existing = h
		if h.CreatedAt.IsZero() {
			existing.CreatedAt = createdAt
		}
	})
}

func (r *Records) ArchiveHabit(id string) error {
	return r.modifyHabit(id, func(h *models.Habit) { h.IsArchived = true })
}

func (r *Records) UnarchiveHabit(id string) error {
	return r.modifyHabit(id, func(h *models.Habit) { h.IsArchived = false })
}

func (r *Records) modifyHabit(id string, fn func(*models.Habit)) error {
	habits, err := r.Habits()
	if err != nil {
		return err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	fn(&habits[i])
	return write(r.p, constants.CollectionHabits, habits)
}

// DeleteHabit removes the habit and its completion set.
func (r *Records) DeleteHabit(id string) error {
	habits, err := r.Habits()
	if err != nil {
		return err
	}
	i := indexOf(habits, id)
	if i < 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	record, err := r.Completions()
	if err != nil {
		return err
	}

	if err := write(r.p, constants.CollectionHabits, slices.Delete(habits, i, i+1)); err != nil {
		return err
	}
	if _, ok := record[id]; !ok {
		return nil
	}
	delete(record, id)
	return write(r.p, constants.CollectionCompletions, record)
}

// ToggleCompletion flips the habit's completion on date and reports whether
// it is completed afterwards.
func (r *Records) ToggleCompletion(habitID string, date models.Date) (bool, error) {
	if _, err := r.Habit(habitID); err != nil {
		return false, err
	}
	record, err := r.Completions()
	if err != nil {
		return false, err
	}
	done := record.Toggle(habitID, date)
	if err := write(r.p, constants.CollectionCompletions, record); err != nil {
		return false, err
	}
	return done, nil
}

// LogMood stores entry, replacing any entry already logged for its date.
func (r *Records) LogMood(entry models.MoodEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	log, err := r.Moods()
	if err != nil {
		return err
	}
	log[entry.Date] = entry
	return write(r.p, constants.CollectionMoodEntries, log)
}

func (r *Records) DeleteMood(date models.Date) error {
	log, err := r.Moods()
	if err != nil {
		return err
	}
	if _, ok := log[date]; !ok {
		return fmt.Errorf("mood for %s: %w", date, ErrNotFound)
	}
	delete(log, date)
	return write(r.p, constants.CollectionMoodEntries, log)
}

func (r *Records) SaveTasks(tasks []models.Task) error {
	return write(r.p, constants.CollectionTodos, tasks)
}

func (r *Records) SaveBooks(books []models.Book) error {
	return write(r.p, constants.CollectionBooks, books)
}

func (r *Records) SaveReadingSessions(sessions []models.ReadingSession) error {
	return write(r.p, constants.CollectionReadingProgress, sessions)
}

// ErrReadOnlyCollection is returned when importing into a collection lumen owns.
var ErrReadOnlyCollection = errors.New("only todos, books and reading-progress can be imported")

// Import replaces one of the externally owned collections with doc after
// checking that it decodes.
func (r *Records) Import(collection string, doc []byte) (int, error) {
	switch collection {
	case constants.CollectionTodos:
		return importAs[models.Task](doc, r.SaveTasks)
	case constants.CollectionBooks:
		return importAs[models.Book](doc, r.SaveBooks)
	case constants.CollectionReadingProgress:
		return importAs[models.ReadingSession](doc, r.SaveReadingSessions)
	default:
		return 0, fmt.Errorf("%w: %q", ErrReadOnlyCollection, collection)
	}
}

func importAs[T any](doc []byte, save func([]T) error) (int, error) {
	var items []T
	if err := json.Unmarshal(doc, &items); err != nil {
		return 0, fmt.Errorf("failed to parse import: %w", err)
	}
	if err := save(items); err != nil {
		return 0, err
	}
	return len(items), nil
}
