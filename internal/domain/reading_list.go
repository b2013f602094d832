package domain

import "time"

// ReadingStatus is the progress of a book within a reading list.
type ReadingStatus string

// Reading statuses.
const (
	StatusWantToRead ReadingStatus = "Want to Read"
	StatusReading    ReadingStatus = "Reading"
	StatusCompleted  ReadingStatus = "Completed"
)

// Valid reports whether the status is one of the known values.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// ReadingList is a named collection of books owned by a user.
// Deleting the owning user deletes the list and its entries.
type ReadingList struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReadingListBook associates a cached book with a reading list.
// At most one association exists per (list, book) pair; deleting either
// side removes the association.
type ReadingListBook struct {
	ReadingListID string        `json:"reading_list_id"`
	BookID        string        `json:"book_id"`
	Status        ReadingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	AddedAt       time.Time     `json:"added_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	Rating        *int          `json:"rating,omitempty"` // 1-5
}
