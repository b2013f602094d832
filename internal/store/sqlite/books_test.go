package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
)

func intp(v int) *int { return &v }

func testBook(id, olid, title string) *domain.Book {
	return &domain.Book{
		ID:            id,
		OpenLibraryID: olid,
		Title:         title,
		Author:        "OL23919A",
		Description:   "A test book.",
		CoverURL:      "https://covers.openlibrary.org/b/id/12345-L.jpg",
		PublishYear:   intp(1997),
		CreatedAt:     time.Now(),
	}
}

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := testBook("book-1", "OL82563W", "Harry Potter")
	book.PageCount = intp(223)
	book.ISBN = "9780747532699"

	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	got, err := s.GetBookByOpenLibraryID(ctx, "OL82563W")
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.ID != "book-1" {
		t.Errorf("expected id book-1, got %s", got.ID)
	}
	if got.Title != "Harry Potter" {
		t.Errorf("expected title Harry Potter, got %s", got.Title)
	}
	if got.Author != "OL23919A" {
		t.Errorf("expected author OL23919A, got %s", got.Author)
	}
	if got.PublishYear == nil || *got.PublishYear != 1997 {
		t.Errorf("expected publish year 1997, got %v", got.PublishYear)
	}
	if got.PageCount == nil || *got.PageCount != 223 {
		t.Errorf("expected page count 223, got %v", got.PageCount)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestCreateBookDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateBook(ctx, testBook("book-1", "OL82563W", "First")); err != nil {
		t.Fatalf("create book: %v", err)
	}

	err := s.CreateBook(ctx, testBook("book-2", "OL82563W", "Second"))
	if err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// The first row must be untouched.
	got, err := s.GetBookByOpenLibraryID(ctx, "OL82563W")
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Title != "First" {
		t.Errorf("expected title First, got %s", got.Title)
	}
}

func TestGetBookNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBookByOpenLibraryID(context.Background(), "OL0W")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBookNullableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := &domain.Book{
		ID:            "book-1",
		OpenLibraryID: "OL1W",
		Title:         "Bare",
		CreatedAt:     time.Now(),
	}
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	got, err := s.GetBookByOpenLibraryID(ctx, "OL1W")
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Author != "" || got.Description != "" || got.CoverURL != "" || got.ISBN != "" {
		t.Errorf("expected empty optional strings, got %+v", got)
	}
	if got.PublishYear != nil || got.PageCount != nil {
		t.Errorf("expected nil optional ints, got %+v", got)
	}
}

func TestListRecentBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, olid := range []string{"OL1W", "OL2W", "OL3W"} {
		book := testBook("book-"+olid, olid, "Book "+olid)
		book.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.CreateBook(ctx, book); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	books, err := s.ListRecentBooks(ctx, 2)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].OpenLibraryID != "OL3W" || books[1].OpenLibraryID != "OL2W" {
		t.Errorf("expected newest first, got %s then %s",
			books[0].OpenLibraryID, books[1].OpenLibraryID)
	}
}

func TestDeleteBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateBook(ctx, testBook("book-1", "OL1W", "Doomed")); err != nil {
		t.Fatalf("create book: %v", err)
	}
	if err := s.DeleteBook(ctx, "book-1"); err != nil {
		t.Fatalf("delete book: %v", err)
	}
	if _, err := s.GetBookByOpenLibraryID(ctx, "OL1W"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteBook(ctx, "book-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBookAggregations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	years := []*int{intp(2000), intp(2000), intp(1999), nil}
	authors := []string{"OL1A", "OL1A", "OL2A", ""}
	for i := range years {
		book := &domain.Book{
			ID:            "book-" + string(rune('a'+i)),
			OpenLibraryID: "OL" + string(rune('a'+i)) + "W",
			Title:         "Book",
			Author:        authors[i],
			PublishYear:   years[i],
			CreatedAt:     time.Now(),
		}
		if err := s.CreateBook(ctx, book); err != nil {
			t.Fatalf("create book: %v", err)
		}
	}

	total, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("count books: %v", err)
	}
	if total != 4 {
		t.Errorf("expected 4 books, got %d", total)
	}

	// Empty author is stored as NULL and does not count.
	distinct, err := s.CountDistinctAuthors(ctx)
	if err != nil {
		t.Fatalf("count authors: %v", err)
	}
	if distinct != 2 {
		t.Errorf("expected 2 distinct authors, got %d", distinct)
	}

	byYear, err := s.BooksByYear(ctx)
	if err != nil {
		t.Fatalf("books by year: %v", err)
	}
	want := []domain.YearCount{{Year: 1999, Count: 1}, {Year: 2000, Count: 2}}
	if len(byYear) != len(want) {
		t.Fatalf("expected %d year groups, got %d", len(want), len(byYear))
	}
	for i := range want {
		if byYear[i] != want[i] {
			t.Errorf("group %d: expected %+v, got %+v", i, want[i], byYear[i])
		}
	}
}
