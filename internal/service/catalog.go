// Package service implements the application use cases on top of the store
// and the OpenLibrary client.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/errors"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/id"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/metadata/openlibrary"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/validation"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// MetadataClient is the slice of the OpenLibrary client the catalog uses.
type MetadataClient interface {
	Search(ctx context.Context, query string, page, limit int) (*openlibrary.SearchResult, error)
	FetchWork(ctx context.Context, workID string) (*openlibrary.WorkDetail, error)
}

// CatalogService handles search, detail caching and export.
type CatalogService struct {
	store     store.Store
	client    MetadataClient
	validator *validation.Validator
	log       *logger.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st store.Store, client MetadataClient, v *validation.Validator, log *logger.Logger) *CatalogService {
	return &CatalogService{
		store:     st,
		client:    client,
		validator: v,
		log:       log,
	}
}

// SearchRequest is a free-text search.
type SearchRequest struct {
	Query string `json:"query" validate:"required"`
	Page  int    `json:"page" validate:"omitempty,gte=1"`
	Limit int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// AdvancedSearchRequest is a fielded search. At least one criterion
// must be non-empty.
type AdvancedSearchRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	ISBN    string `json:"isbn"`
	Page    int    `json:"page" validate:"omitempty,gte=1"`
	Limit   int    `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// normalizePage applies defaults to page and limit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return page, limit
}

// Search runs a free-text search and records it in the search history.
// The history row is written only after the upstream call succeeds, so
// failed searches never count towards popularity.
func (s *CatalogService) Search(ctx context.Context, req SearchRequest) (*openlibrary.SearchResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.Validation("query must not be empty")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	page, limit := normalizePage(req.Page, req.Limit)

	result, err := s.client.Search(ctx, query, page, limit)
	if err != nil {
		return nil, errors.Upstream("book search is temporarily unavailable").WithCause(err)
	}

	s.recordSearch(ctx, query, result.NumFound)
	return result, nil
}

// AdvancedSearch runs a fielded search. It does not record history;
// only plain searches feed the popularity stats.
func (s *CatalogService) AdvancedSearch(ctx context.Context, req AdvancedSearchRequest) (*openlibrary.SearchResult, error) {
	query := openlibrary.BuildAdvancedQuery(req.Title, req.Author, req.Subject, req.ISBN)
	if query == "" {
		return nil, errors.Validation("at least one search criterion is required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	page, limit := normalizePage(req.Page, req.Limit)

	result, err := s.client.Search(ctx, query, page, limit)
	if err != nil {
		return nil, errors.Upstream("book search is temporarily unavailable").WithCause(err)
	}
	return result, nil
}

// recordSearch appends a history row. Failures are logged, not returned;
// losing one audit row must not fail a successful search.
func (s *CatalogService) recordSearch(ctx context.Context, query string, numFound int) {
	entryID, err := id.Generate("sh")
	if err != nil {
		s.log.Warn("failed to generate search history ID", "error", err)
		return
	}
	entry := &domain.SearchHistory{
		ID:          entryID,
		Query:       query,
		ResultCount: numFound,
		SearchedAt:  time.Now(),
	}
	if err := s.store.CreateSearchHistory(ctx, entry); err != nil {
		s.log.Warn("failed to record search history",
			"query", query,
			"error", err,
		)
	}
}

// GetBookDetail returns the detail view for a work, caching it locally on
// first view. Subsequent views are served from the cache without touching
// the upstream API.
func (s *CatalogService) GetBookDetail(ctx context.Context, workID string) (*domain.Book, error) {
	workID = strings.TrimSpace(workID)
	if workID == "" {
		return nil, errors.Validation("work ID must not be empty")
	}

	cached, err := s.store.GetBookByOpenLibraryID(ctx, workID)
	if err == nil {
		return cached, nil
	}
	if err != store.ErrNotFound {
		return nil, err
	}

	detail, err := s.client.FetchWork(ctx, workID)
	if err != nil {
		if errors.Is(err, openlibrary.ErrNotFound) {
			return nil, errors.NotFoundf("work %s not found", workID)
		}
		return nil, errors.Upstream("book details are temporarily unavailable").WithCause(err)
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, err
	}
	book := &domain.Book{
		ID:            bookID,
		OpenLibraryID: detail.Key,
		Title:         detail.Title,
		Author:        strings.Join(detail.AuthorKeys, ", "),
		Description:   detail.Description,
		CoverURL:      detail.CoverURL,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		if err == store.ErrAlreadyExists {
			// A concurrent view cached it first; the earlier row wins.
			return s.store.GetBookByOpenLibraryID(ctx, workID)
		}
		return nil, err
	}

	s.log.Info("cached book on first view",
		"work_id", workID,
		"book_id", book.ID,
		"title", book.Title,
	)
	return book, nil
}

// ExportFile is a rendered plain-text book export.
type ExportFile struct {
	Filename string
	Content  string
}

// ExportBook renders an already-cached book as plain text. Export is
// read-only: works that were never viewed are not fetched from upstream.
func (s *CatalogService) ExportBook(ctx context.Context, workID string) (*ExportFile, error) {
	workID = strings.TrimSpace(workID)
	if workID == "" {
		return nil, errors.Validation("work ID must not be empty")
	}

	book, err := s.store.GetBookByOpenLibraryID(ctx, workID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("work %s has not been viewed", workID)
		}
		return nil, err
	}

	author := book.Author
	if author == "" {
		author = "Unknown"
	}
	description := book.Description
	if description == "" {
		description = "No description available"
	}
	published := "Unknown"
	if book.PublishYear != nil {
		published = strconv.Itoa(*book.PublishYear)
	}

	content := fmt.Sprintf("Title: %s\nAuthor: %s\nDescription: %s\nFirst Published: %s\n",
		book.Title, author, description, published)

	return &ExportFile{
		Filename: exportFilename(book.Title),
		Content:  content,
	}, nil
}

// exportFilename derives the attachment name from the book title,
// replacing characters that are unsafe in filenames.
func exportFilename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "book"
	}
	return name + ".txt"
}
