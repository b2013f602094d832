package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, open_library_id, title, author, description, cover_url,
	publish_year, page_count, isbn, created_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		author      sql.NullString
		description sql.NullString
		coverURL    sql.NullString
		publishYear sql.NullInt64
		pageCount   sql.NullInt64
		isbn        sql.NullString
		createdAt   string
	)

	err := scanner.Scan(
		&b.ID,
		&b.OpenLibraryID,
		&b.Title,
		&author,
		&description,
		&coverURL,
		&publishYear,
		&pageCount,
		&isbn,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.Author = author.String
	b.Description = description.String
	b.CoverURL = coverURL.String
	b.PublishYear = intPtr(publishYear)
	b.PageCount = intPtr(pageCount)
	b.ISBN = isbn.String

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new cached book.
// Returns store.ErrAlreadyExists if a book with the same OpenLibrary ID exists.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			id, open_library_id, title, author, description, cover_url,
			publish_year, page_count, isbn, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.OpenLibraryID,
		book.Title,
		nullString(book.Author),
		nullString(book.Description),
		nullString(book.CoverURL),
		nullInt(book.PublishYear),
		nullInt(book.PageCount),
		nullString(book.ISBN),
		formatTime(book.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBookByOpenLibraryID retrieves a cached book by its external work ID.
// Returns store.ErrNotFound if the book has not been cached.
func (s *Store) GetBookByOpenLibraryID(ctx context.Context, openLibraryID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE open_library_id = ?`, openLibraryID)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListRecentBooks returns up to limit books ordered by cache time, newest first.
func (s *Store) ListRecentBooks(ctx context.Context, limit int) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// DeleteBook removes a cached book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
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

// CountBooks returns the total number of cached books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountDistinctAuthors counts distinct non-null author strings.
func (s *Store) CountDistinctAuthors(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT author) FROM books WHERE author IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// BooksByYear groups cached books by first-publish year, ascending.
func (s *Store) BooksByYear(ctx context.Context) ([]domain.YearCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT publish_year, COUNT(*)
		FROM books
		WHERE publish_year IS NOT NULL
		GROUP BY publish_year
		ORDER BY publish_year ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.YearCount
	for rows.Next() {
		var yc domain.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
