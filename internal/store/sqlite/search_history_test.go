package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
)

func recordSearch(t *testing.T, s *Store, id, query string, results int) {
	t.Helper()
	err := s.CreateSearchHistory(context.Background(), &domain.SearchHistory{
		ID:          id,
		Query:       query,
		ResultCount: results,
		SearchedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("create search history: %v", err)
	}
}

func TestCountSearches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountSearches(ctx)
	if err != nil {
		t.Fatalf("count searches: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 searches, got %d", count)
	}

	recordSearch(t, s, "sh-1", "dune", 42)
	recordSearch(t, s, "sh-2", "dune", 42)

	count, err = s.CountSearches(ctx)
	if err != nil {
		t.Fatalf("count searches: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 searches, got %d", count)
	}
}

func TestPopularSearches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recordSearch(t, s, "sh-1", "dune", 42)
	recordSearch(t, s, "sh-2", "dune", 40)
	recordSearch(t, s, "sh-3", "foundation", 17)
	recordSearch(t, s, "sh-4", "hyperion", 9)
	recordSearch(t, s, "sh-5", "foundation", 18)
	recordSearch(t, s, "sh-6", "dune", 41)

	popular, err := s.PopularSearches(ctx, 2)
	if err != nil {
		t.Fatalf("popular searches: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(popular))
	}
	if popular[0].Query != "dune" || popular[0].Count != 3 {
		t.Errorf("expected dune x3 first, got %+v", popular[0])
	}
	if popular[1].Query != "foundation" || popular[1].Count != 2 {
		t.Errorf("expected foundation x2 second, got %+v", popular[1])
	}
}

func TestPopularSearchesTieBreak(t *testing.T) {
	s := newTestStore(t)

	recordSearch(t, s, "sh-1", "zebra", 1)
	recordSearch(t, s, "sh-2", "aardvark", 1)

	popular, err := s.PopularSearches(context.Background(), 5)
	if err != nil {
		t.Fatalf("popular searches: %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(popular))
	}
	// Equal counts order by query text.
	if popular[0].Query != "aardvark" || popular[1].Query != "zebra" {
		t.Errorf("expected alphabetical tie-break, got %s then %s",
			popular[0].Query, popular[1].Query)
	}
}

func TestPopularSearchesEmpty(t *testing.T) {
	s := newTestStore(t)

	popular, err := s.PopularSearches(context.Background(), 5)
	if err != nil {
		t.Fatalf("popular searches: %v", err)
	}
	if len(popular) != 0 {
		t.Errorf("expected no entries, got %d", len(popular))
	}
}
