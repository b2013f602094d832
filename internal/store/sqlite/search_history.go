package sqlite

import (
	"context"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
)

// CreateSearchHistory appends one search record.
func (s *Store) CreateSearchHistory(ctx context.Context, entry *domain.SearchHistory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, query, result_count, searched_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.Query,
		entry.ResultCount,
		formatTime(entry.SearchedAt),
	)
	return err
}

// CountSearches returns the total number of recorded searches.
func (s *Store) CountSearches(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM search_history`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// PopularSearches returns the top queries by occurrence count.
// Ties are broken by query text so the ordering is deterministic.
func (s *Store) PopularSearches(ctx context.Context, limit int) ([]domain.PopularSearch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, COUNT(*) AS n
		FROM search_history
		GROUP BY query
		ORDER BY n DESC, query ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []domain.PopularSearch
	for rows.Next() {
		var p domain.PopularSearch
		if err := rows.Scan(&p.Query, &p.Count); err != nil {
			return nil, err
		}
		popular = append(popular, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return popular, nil
}
