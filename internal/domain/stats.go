package domain

// HomeStats is the landing view data: recently cached books and the
// most popular searches.
type HomeStats struct {
	PopularSearches []PopularSearch `json:"popular_searches"`
	RecentBooks     []*Book         `json:"recent_books"`
}

// DashboardStats aggregates the cached catalog and the search history.
// All values are computed on demand; nothing is materialized.
type DashboardStats struct {
	TotalBooks      int             `json:"total_books"`
	UniqueAuthors   int             `json:"unique_authors"`
	TotalSearches   int             `json:"total_searches"`
	PopularSearches []PopularSearch `json:"popular_searches"`
	BooksByYear     []YearCount     `json:"books_by_year"`
}
