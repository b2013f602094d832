package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getHome",
		Method:      http.MethodGet,
		Path:        "/api/v1/home",
		Summary:     "Home view",
		Description: "Returns the most popular searches and the most recently cached books",
		Tags:        []string{"Stats"},
	}, s.handleHome)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Dashboard",
		Description: "Returns catalog and search history aggregations",
		Tags:        []string{"Stats"},
	}, s.handleDashboard)
}

// HomeOutput wraps the home view for Huma.
type HomeOutput struct {
	Body *domain.HomeStats
}

// DashboardOutput wraps the dashboard for Huma.
type DashboardOutput struct {
	Body *domain.DashboardStats
}

func (s *Server) handleHome(ctx context.Context, _ *struct{}) (*HomeOutput, error) {
	stats, err := s.statsService.Home(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeOutput{Body: stats}, nil
}

func (s *Server) handleDashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	stats, err := s.statsService.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{Body: stats}, nil
}
