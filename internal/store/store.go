// Package store defines the persistence contract for the book discovery service.
//
// Implementations return the sentinel errors in errors.go so callers can
// branch on outcome without knowing the backing engine. The SQLite
// implementation lives in the sqlite subpackage.
package store

import (
	"context"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
)

// Store is the full persistence surface used by the services.
type Store interface {
	BookStore
	SearchHistoryStore
	UserStore
	ReadingListStore

	Close() error
}

// BookStore manages the cached-book table and its aggregations.
type BookStore interface {
	// CreateBook inserts a new cached book.
	// Returns ErrAlreadyExists when a row with the same OpenLibrary ID exists;
	// callers treat that as "someone else inserted it first" and re-read.
	CreateBook(ctx context.Context, book *domain.Book) error

	// GetBookByOpenLibraryID returns the cached book for an external work ID.
	// Returns ErrNotFound when the work has never been viewed.
	GetBookByOpenLibraryID(ctx context.Context, openLibraryID string) (*domain.Book, error)

	// ListRecentBooks returns up to limit books, most recently cached first.
	ListRecentBooks(ctx context.Context, limit int) ([]*domain.Book, error)

	// DeleteBook removes a cached book. Reading-list associations referencing
	// it are removed by the cascade. The ingestion path never calls this.
	DeleteBook(ctx context.Context, id string) error

	// CountBooks returns the total number of cached books.
	CountBooks(ctx context.Context) (int, error)

	// CountDistinctAuthors counts distinct non-null author strings.
	// A joined "A, B" author field is one distinct value.
	CountDistinctAuthors(ctx context.Context) (int, error)

	// BooksByYear groups cached books by first-publish year, ascending.
	// Books without a year are excluded.
	BooksByYear(ctx context.Context) ([]domain.YearCount, error)
}

// SearchHistoryStore appends and aggregates the search audit trail.
type SearchHistoryStore interface {
	// CreateSearchHistory appends one search record.
	CreateSearchHistory(ctx context.Context, entry *domain.SearchHistory) error

	// CountSearches returns the total number of recorded searches.
	CountSearches(ctx context.Context) (int, error)

	// PopularSearches returns the top queries by occurrence count, descending,
	// ties broken by query text ascending.
	PopularSearches(ctx context.Context, limit int) ([]domain.PopularSearch, error)
}

// UserStore manages user rows.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrAlreadyExists on duplicate email.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser returns a user by ID, or ErrNotFound.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// DeleteUser removes a user; their reading lists cascade.
	DeleteUser(ctx context.Context, id string) error
}

// ReadingListStore manages reading lists and their book associations.
type ReadingListStore interface {
	CreateReadingList(ctx context.Context, list *domain.ReadingList) error
	GetReadingList(ctx context.Context, id string) (*domain.ReadingList, error)
	ListReadingListsForUser(ctx context.Context, userID string) ([]*domain.ReadingList, error)
	UpdateReadingList(ctx context.Context, list *domain.ReadingList) error
	DeleteReadingList(ctx context.Context, id string) error

	// AddBookToReadingList creates the (list, book) association.
	// Returns ErrAlreadyExists when the pair already exists and
	// ErrInvalidInput when either side does not exist.
	AddBookToReadingList(ctx context.Context, entry *domain.ReadingListBook) error

	GetReadingListBook(ctx context.Context, listID, bookID string) (*domain.ReadingListBook, error)
	UpdateReadingListBook(ctx context.Context, entry *domain.ReadingListBook) error
	RemoveBookFromReadingList(ctx context.Context, listID, bookID string) error
	ListReadingListBooks(ctx context.Context, listID string) ([]*domain.ReadingListBook, error)
}
