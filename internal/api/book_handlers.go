package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/http/response"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBookDetail",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{workID}",
		Summary:     "Get book detail",
		Description: "Returns the detail view for a work, caching it locally on first view",
		Tags:        []string{"Books"},
	}, s.handleGetBookDetail)

	// Export streams plain text, which huma's JSON pipeline does not cover.
	s.router.Get("/api/v1/books/{workID}/export", s.handleExportBook)
}

// === DTOs ===

// GetBookInput identifies a work.
type GetBookInput struct {
	WorkID string `path:"workID" doc:"OpenLibrary work ID, e.g. OL82563W"`
}

// BookOutput wraps a cached book for Huma.
type BookOutput struct {
	Body *domain.Book
}

func (s *Server) handleGetBookDetail(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.catalogService.GetBookDetail(ctx, input.WorkID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: book}, nil
}

// handleExportBook writes the book as a plain-text attachment.
func (s *Server) handleExportBook(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")
	if workID == "" {
		response.BadRequest(w, "work ID is required", s.log.Logger)
		return
	}

	export, err := s.catalogService.ExportBook(r.Context(), workID)
	if err != nil {
		response.HandleError(w, err, s.log.Logger)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	if _, err := w.Write([]byte(export.Content)); err != nil {
		s.log.Error("failed to write export", "work_id", workID, "error", err)
	}
}
