package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
)

// scanReadingList scans a row into a domain.ReadingList.
func scanReadingList(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingList, error) {
	var l domain.ReadingList

	var (
		description sql.NullString
		createdAt   string
	)

	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &description, &createdAt)
	if err != nil {
		return nil, err
	}

	l.Description = description.String
	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// scanReadingListBook scans a row into a domain.ReadingListBook.
func scanReadingListBook(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingListBook, error) {
	var e domain.ReadingListBook

	var (
		status      string
		notes       sql.NullString
		addedAt     string
		completedAt sql.NullString
		rating      sql.NullInt64
	)

	err := scanner.Scan(&e.ReadingListID, &e.BookID, &status, &notes, &addedAt, &completedAt, &rating)
	if err != nil {
		return nil, err
	}

	e.Status = domain.ReadingStatus(status)
	e.Notes = notes.String
	e.Rating = intPtr(rating)

	e.AddedAt, err = parseTime(addedAt)
	if err != nil {
		return nil, err
	}
	e.CompletedAt, err = parseNullableTime(completedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateReadingList inserts a new reading list.
// Returns store.ErrInvalidInput if the owning user does not exist.
func (s *Store) CreateReadingList(ctx context.Context, list *domain.ReadingList) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_lists (id, user_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		list.ID,
		list.UserID,
		list.Name,
		nullString(list.Description),
		formatTime(list.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("user does not exist")
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetReadingList retrieves a reading list by ID.
// Returns store.ErrNotFound if the list does not exist.
func (s *Store) GetReadingList(ctx context.Context, id string) (*domain.ReadingList, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM reading_lists WHERE id = ?`, id)

	l, err := scanReadingList(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListReadingListsForUser returns all reading lists owned by a user,
// oldest first.
func (s *Store) ListReadingListsForUser(ctx context.Context, userID string) ([]*domain.ReadingList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM reading_lists WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []*domain.ReadingList
	for rows.Next() {
		l, err := scanReadingList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

// UpdateReadingList updates a list's name and description.
// Returns store.ErrNotFound if the list does not exist.
func (s *Store) UpdateReadingList(ctx context.Context, list *domain.ReadingList) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reading_lists SET name = ?, description = ?
		WHERE id = ?`,
		list.Name,
		nullString(list.Description),
		list.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteReadingList removes a list; its book associations cascade.
// Returns store.ErrNotFound if the list does not exist.
func (s *Store) DeleteReadingList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reading_lists WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddBookToReadingList creates the (list, book) association.
// Returns store.ErrAlreadyExists if the pair exists and store.ErrInvalidInput
// when the list or book does not exist.
func (s *Store) AddBookToReadingList(ctx context.Context, entry *domain.ReadingListBook) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reading_list_books (
			reading_list_id, book_id, status, notes, added_at, completed_at, rating
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ReadingListID,
		entry.BookID,
		string(entry.Status),
		nullString(entry.Notes),
		formatTime(entry.AddedAt),
		nullTimeString(entry.CompletedAt),
		nullInt(entry.Rating),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("reading list or book does not exist")
		}
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return store.ErrInvalidInput.WithMessage("rating must be between 1 and 5")
		}
		return err
	}
	return nil
}

// GetReadingListBook retrieves one association.
// Returns store.ErrNotFound if the pair does not exist.
func (s *Store) GetReadingListBook(ctx context.Context, listID, bookID string) (*domain.ReadingListBook, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT reading_list_id, book_id, status, notes, added_at, completed_at, rating
		FROM reading_list_books
		WHERE reading_list_id = ? AND book_id = ?`, listID, bookID)

	e, err := scanReadingListBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateReadingListBook updates the status, notes, completion time and rating
// of an association. Returns store.ErrNotFound if the pair does not exist.
func (s *Store) UpdateReadingListBook(ctx context.Context, entry *domain.ReadingListBook) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reading_list_books SET
			status = ?,
			notes = ?,
			completed_at = ?,
			rating = ?
		WHERE reading_list_id = ? AND book_id = ?`,
		string(entry.Status),
		nullString(entry.Notes),
		nullTimeString(entry.CompletedAt),
		nullInt(entry.Rating),
		entry.ReadingListID,
		entry.BookID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return store.ErrInvalidInput.WithMessage("rating must be between 1 and 5")
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// RemoveBookFromReadingList deletes one association.
// Returns store.ErrNotFound if the pair does not exist.
func (s *Store) RemoveBookFromReadingList(ctx context.Context, listID, bookID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM reading_list_books
		WHERE reading_list_id = ? AND book_id = ?`, listID, bookID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListReadingListBooks returns all associations for a list, oldest first.
func (s *Store) ListReadingListBooks(ctx context.Context, listID string) ([]*domain.ReadingListBook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reading_list_id, book_id, status, notes, added_at, completed_at, rating
		FROM reading_list_books
		WHERE reading_list_id = ?
		ORDER BY added_at ASC, book_id ASC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ReadingListBook
	for rows.Next() {
		e, err := scanReadingListBook(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
