// Package domain contains the core business entities for the book discovery service.
package domain

import "time"

// Book is a locally cached copy of an OpenLibrary work.
// A row is created the first time a work's detail page is viewed and is
// never updated afterwards; the OpenLibrary ID is the stable external key.
type Book struct {
	ID            string    `json:"id"`
	OpenLibraryID string    `json:"open_library_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author,omitempty"` // comma-joined author keys
	Description   string    `json:"description,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	PublishYear   *int      `json:"publish_year,omitempty"`
	PageCount     *int      `json:"page_count,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// YearCount is the number of cached books first published in a given year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}
