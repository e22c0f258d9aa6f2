package models

import "time"

// BookStatus tracks a book through the reading list.
type BookStatus string

const (
	BookWant      BookStatus = "want"
	BookReading   BookStatus = "reading"
	BookCompleted BookStatus = "completed"
)

// Book is a read-only view of the reading list.
type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author,omitempty"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Status      BookStatus `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ReadingSession records pages read from a book on one day.
type ReadingSession struct {
	BookID string `json:"bookId"`
	Date   Date   `json:"date"`
	Pages  int    `json:"pages"`
}
