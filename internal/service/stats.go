package service

import (
	"context"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
)

const (
	homePopularLimit      = 5
	homeRecentLimit       = 4
	dashboardPopularLimit = 10
)

// StatsService computes the home and dashboard aggregations.
// Everything is computed on demand from the store; nothing is cached.
type StatsService struct {
	store store.Store
	log   *logger.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(st store.Store, log *logger.Logger) *StatsService {
	return &StatsService{
		store: st,
		log:   log,
	}
}

// Home returns the landing view data: the top five searches and the four
// most recently cached books.
func (s *StatsService) Home(ctx context.Context) (*domain.HomeStats, error) {
	popular, err := s.store.PopularSearches(ctx, homePopularLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.ListRecentBooks(ctx, homeRecentLimit)
	if err != nil {
		return nil, err
	}

	return &domain.HomeStats{
		PopularSearches: popular,
		RecentBooks:     recent,
	}, nil
}

// Dashboard returns the full reporting view.
func (s *StatsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	totalBooks, err := s.store.CountBooks(ctx)
	if err != nil {
		return nil, err
	}
	uniqueAuthors, err := s.store.CountDistinctAuthors(ctx)
	if err != nil {
		return nil, err
	}
	totalSearches, err := s.store.CountSearches(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.store.PopularSearches(ctx, dashboardPopularLimit)
	if err != nil {
		return nil, err
	}
	byYear, err := s.store.BooksByYear(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalBooks:      totalBooks,
		UniqueAuthors:   uniqueAuthors,
		TotalSearches:   totalSearches,
		PopularSearches: popular,
		BooksByYear:     byYear,
	}, nil
}
