package domain

import "time"

// SearchHistory is an append-only audit record of one executed search.
// Rows are never updated or deleted; repeated identical queries produce
// repeated rows, which is what popularity aggregation counts.
type SearchHistory struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	SearchedAt  time.Time `json:"searched_at"`
}

// PopularSearch is a query with the number of times it has been searched.
type PopularSearch struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
