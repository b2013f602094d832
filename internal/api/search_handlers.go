package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search books",
		Description: "Searches the OpenLibrary catalog and records the query in the search history",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "advancedSearchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/advanced",
		Summary:     "Advanced search",
		Description: "Searches by title, author, subject or ISBN. Not recorded in the search history",
		Tags:        []string{"Search"},
	}, s.handleAdvancedSearch)
}

// === DTOs ===

// SearchInput contains parameters for a free-text search.
type SearchInput struct {
	Query string `query:"q" required:"true" doc:"Free-text search query"`
	Page  int    `query:"page" default:"1" minimum:"1" doc:"1-based result page"`
	Limit int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Results per page"`
}

// AdvancedSearchInput contains parameters for a fielded search.
// At least one of title, author, subject or isbn must be set.
type AdvancedSearchInput struct {
	Title   string `query:"title" doc:"Title to match"`
	Author  string `query:"author" doc:"Author to match"`
	Subject string `query:"subject" doc:"Subject to match"`
	ISBN    string `query:"isbn" doc:"ISBN to match"`
	Page    int    `query:"page" default:"1" minimum:"1" doc:"1-based result page"`
	Limit   int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Results per page"`
}

// SearchHit is one search result row.
type SearchHit struct {
	WorkID           string   `json:"work_id" doc:"OpenLibrary work ID"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	ISBNs            []string `json:"isbns,omitempty"`
	CoverID          int      `json:"cover_id,omitempty"`
	CoverURL         string   `json:"cover_url,omitempty"`
	PageCountMedian  int      `json:"page_count_median,omitempty"`
}

// SearchResponse is a page of search results.
type SearchResponse struct {
	NumFound int         `json:"num_found" doc:"Total matches across all pages"`
	Start    int         `json:"start" doc:"Offset of the first result"`
	Results  []SearchHit `json:"results"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

func toSearchResponse(result *openlibrary.SearchResult) SearchResponse {
	resp := SearchResponse{
		NumFound: result.NumFound,
		Start:    result.Start,
		Results:  make([]SearchHit, 0, len(result.Docs)),
	}
	for _, d := range result.Docs {
		resp.Results = append(resp.Results, SearchHit{
			WorkID:           d.Key,
			Title:            d.Title,
			Authors:          d.AuthorNames,
			FirstPublishYear: d.FirstPublishYear,
			ISBNs:            d.ISBNs,
			CoverID:          d.CoverID,
			CoverURL:         d.CoverURL,
			PageCountMedian:  d.PageCountMedian,
		})
	}
	return resp
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.catalogService.Search(ctx, service.SearchRequest{
		Query: input.Query,
		Page:  input.Page,
		Limit: input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: toSearchResponse(result)}, nil
}

func (s *Server) handleAdvancedSearch(ctx context.Context, input *AdvancedSearchInput) (*SearchOutput, error) {
	result, err := s.catalogService.AdvancedSearch(ctx, service.AdvancedSearchRequest{
		Title:   input.Title,
		Author:  input.Author,
		Subject: input.Subject,
		ISBN:    input.ISBN,
		Page:    input.Page,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: toSearchResponse(result)}, nil
}
