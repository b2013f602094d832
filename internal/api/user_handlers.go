package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes a user and all of their reading lists",
		Tags:        []string{"Users"},
	}, s.handleDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserReadingLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/reading-lists",
		Summary:     "List a user's reading lists",
		Tags:        []string{"Reading Lists"},
	}, s.handleListUserReadingLists)
}

// === DTOs ===

// CreateUserInput is the create-user request.
type CreateUserInput struct {
	Body struct {
		Username string `json:"username" doc:"Display name" minLength:"2" maxLength:"50"`
		Email    string `json:"email" format:"email" doc:"Unique email address"`
	}
}

// UserIDInput identifies a user.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

// ReadingListsOutput wraps a list collection for Huma.
type ReadingListsOutput struct {
	Body []*domain.ReadingList
}

// DeletedOutput is the empty body of a successful delete.
type DeletedOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.userService.CreateUser(ctx, service.CreateUserRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	user, err := s.userService.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserIDInput) (*DeletedOutput, error) {
	if err := s.userService.DeleteUser(ctx, input.ID); err != nil {
		return nil, err
	}
	out := &DeletedOutput{}
	out.Body.Deleted = true
	return out, nil
}

func (s *Server) handleListUserReadingLists(ctx context.Context, input *UserIDInput) (*ReadingListsOutput, error) {
	lists, err := s.readingListService.ListForUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ReadingListsOutput{Body: lists}, nil
}
