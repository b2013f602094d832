package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
)

func (s *Server) registerReadingListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createReadingList",
		Method:        http.MethodPost,
		Path:          "/api/v1/reading-lists",
		Summary:       "Create reading list",
		Tags:          []string{"Reading Lists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateReadingList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getReadingList",
		Method:      http.MethodGet,
		Path:        "/api/v1/reading-lists/{id}",
		Summary:     "Get reading list",
		Tags:        []string{"Reading Lists"},
	}, s.handleGetReadingList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReadingList",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reading-lists/{id}",
		Summary:     "Update reading list",
		Tags:        []string{"Reading Lists"},
	}, s.handleUpdateReadingList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteReadingList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reading-lists/{id}",
		Summary:     "Delete reading list",
		Tags:        []string{"Reading Lists"},
	}, s.handleDeleteReadingList)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBookToReadingList",
		Method:        http.MethodPost,
		Path:          "/api/v1/reading-lists/{id}/books",
		Summary:       "Add book to reading list",
		Description:   "Adds a cached book to a list. The book must have been viewed at least once",
		Tags:          []string{"Reading Lists"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBookToReadingList)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingListBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/reading-lists/{id}/books",
		Summary:     "List books in a reading list",
		Tags:        []string{"Reading Lists"},
	}, s.handleListReadingListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateReadingListBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/reading-lists/{id}/books/{bookID}",
		Summary:     "Update a reading list entry",
		Tags:        []string{"Reading Lists"},
	}, s.handleUpdateReadingListBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeBookFromReadingList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/reading-lists/{id}/books/{bookID}",
		Summary:     "Remove a book from a reading list",
		Tags:        []string{"Reading Lists"},
	}, s.handleRemoveBookFromReadingList)
}

// === DTOs ===

// CreateReadingListInput is the create-list request.
type CreateReadingListInput struct {
	Body struct {
		UserID      string `json:"user_id" doc:"Owning user ID"`
		Name        string `json:"name" minLength:"1" maxLength:"100"`
		Description string `json:"description,omitempty" maxLength:"500"`
	}
}

// ReadingListIDInput identifies a list.
type ReadingListIDInput struct {
	ID string `path:"id" doc:"Reading list ID"`
}

// UpdateReadingListInput renames a list.
type UpdateReadingListInput struct {
	ID   string `path:"id" doc:"Reading list ID"`
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"100"`
		Description string `json:"description,omitempty" maxLength:"500"`
	}
}

// AddListBookInput adds a book to a list.
type AddListBookInput struct {
	ID   string `path:"id" doc:"Reading list ID"`
	Body struct {
		BookID string `json:"book_id" doc:"Cached book ID"`
		Status string `json:"status,omitempty" enum:"Want to Read,Reading,Completed"`
		Notes  string `json:"notes,omitempty" maxLength:"1000"`
	}
}

// ListBookIDInput identifies one list entry.
type ListBookIDInput struct {
	ID     string `path:"id" doc:"Reading list ID"`
	BookID string `path:"bookID" doc:"Cached book ID"`
}

// UpdateListBookInput changes a list entry.
type UpdateListBookInput struct {
	ID     string `path:"id" doc:"Reading list ID"`
	BookID string `path:"bookID" doc:"Cached book ID"`
	Body   struct {
		Status string `json:"status" enum:"Want to Read,Reading,Completed"`
		Notes  string `json:"notes,omitempty" maxLength:"1000"`
		Rating *int   `json:"rating,omitempty" minimum:"1" maximum:"5"`
	}
}

// ReadingListOutput wraps one list for Huma.
type ReadingListOutput struct {
	Body *domain.ReadingList
}

// ListBookOutput wraps one list entry for Huma.
type ListBookOutput struct {
	Body *domain.ReadingListBook
}

// ListBooksOutput wraps the entries of a list for Huma.
type ListBooksOutput struct {
	Body []*domain.ReadingListBook
}

func (s *Server) handleCreateReadingList(ctx context.Context, input *CreateReadingListInput) (*ReadingListOutput, error) {
	list, err := s.readingListService.CreateList(ctx, service.CreateListRequest{
		UserID:      input.Body.UserID,
		Name:        input.Body.Name,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}
	return &ReadingListOutput{Body: list}, nil
}

func (s *Server) handleGetReadingList(ctx context.Context, input *ReadingListIDInput) (*ReadingListOutput, error) {
	list, err := s.readingListService.GetList(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ReadingListOutput{Body: list}, nil
}

func (s *Server) handleUpdateReadingList(ctx context.Context, input *UpdateReadingListInput) (*ReadingListOutput, error) {
	list, err := s.readingListService.UpdateList(ctx, input.ID, service.UpdateListRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
	})
	if err != nil {
		return nil, err
	}
	return &ReadingListOutput{Body: list}, nil
}

func (s *Server) handleDeleteReadingList(ctx context.Context, input *ReadingListIDInput) (*DeletedOutput, error) {
	if err := s.readingListService.DeleteList(ctx, input.ID); err != nil {
		return nil, err
	}
	out := &DeletedOutput{}
	out.Body.Deleted = true
	return out, nil
}

func (s *Server) handleAddBookToReadingList(ctx context.Context, input *AddListBookInput) (*ListBookOutput, error) {
	entry, err := s.readingListService.AddBook(ctx, input.ID, service.AddBookRequest{
		BookID: input.Body.BookID,
		Status: input.Body.Status,
		Notes:  input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &ListBookOutput{Body: entry}, nil
}

func (s *Server) handleListReadingListBooks(ctx context.Context, input *ReadingListIDInput) (*ListBooksOutput, error) {
	entries, err := s.readingListService.ListBooks(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ListBooksOutput{Body: entries}, nil
}

func (s *Server) handleUpdateReadingListBook(ctx context.Context, input *UpdateListBookInput) (*ListBookOutput, error) {
	entry, err := s.readingListService.UpdateBook(ctx, input.ID, input.BookID, service.UpdateBookRequest{
		Status: input.Body.Status,
		Notes:  input.Body.Notes,
		Rating: input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &ListBookOutput{Body: entry}, nil
}

func (s *Server) handleRemoveBookFromReadingList(ctx context.Context, input *ListBookIDInput) (*DeletedOutput, error) {
	if err := s.readingListService.RemoveBook(ctx, input.ID, input.BookID); err != nil {
		return nil, err
	}
	out := &DeletedOutput{}
	out.Body.Deleted = true
	return out, nil
}
