package service

import (
	"context"
	"strings"
	"time"

	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/domain"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/errors"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/id"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/logger"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/store"
	"github.com/bookdiscoveryapp/bookdiscovery-server/internal/validation"
)

// ReadingListService manages reading lists and their book entries.
type ReadingListService struct {
	store     store.Store
	validator *validation.Validator
	log       *logger.Logger
}

// NewReadingListService creates a new reading list service.
func NewReadingListService(st store.Store, v *validation.Validator, log *logger.Logger) *ReadingListService {
	return &ReadingListService{
		store:     st,
		validator: v,
		log:       log,
	}
}

// CreateListRequest is the input for CreateList.
type CreateListRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// UpdateListRequest is the input for UpdateList.
type UpdateListRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// AddBookRequest is the input for AddBook.
type AddBookRequest struct {
	BookID string `json:"book_id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof='Want to Read' Reading Completed"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateBookRequest is the input for UpdateBook.
type UpdateBookRequest struct {
	Status string `json:"status" validate:"required,oneof='Want to Read' Reading Completed"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
	Rating *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// CreateList creates a reading list for a user.
func (s *ReadingListService) CreateList(ctx context.Context, req CreateListRequest) (*domain.ReadingList, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, req.UserID); err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("user %s not found", req.UserID)
		}
		return nil, err
	}

	listID, err := id.Generate("list")
	if err != nil {
		return nil, err
	}
	list := &domain.ReadingList{
		ID:          listID,
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now(),
	}

	if err := s.store.CreateReadingList(ctx, list); err != nil {
		return nil, err
	}

	s.log.Info("reading list created", "list_id", list.ID, "user_id", list.UserID)
	return list, nil
}

// GetList returns one reading list.
func (s *ReadingListService) GetList(ctx context.Context, listID string) (*domain.ReadingList, error) {
	list, err := s.store.GetReadingList(ctx, listID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("reading list %s not found", listID)
		}
		return nil, err
	}
	return list, nil
}

// ListForUser returns all reading lists owned by a user.
func (s *ReadingListService) ListForUser(ctx context.Context, userID string) ([]*domain.ReadingList, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("user %s not found", userID)
		}
		return nil, err
	}
	return s.store.ListReadingListsForUser(ctx, userID)
}

// UpdateList renames a list or changes its description.
func (s *ReadingListService) UpdateList(ctx context.Context, listID string, req UpdateListRequest) (*domain.ReadingList, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	list.Name = strings.TrimSpace(req.Name)
	list.Description = strings.TrimSpace(req.Description)
	if err := s.store.UpdateReadingList(ctx, list); err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("reading list %s not found", listID)
		}
		return nil, err
	}
	return list, nil
}

// DeleteList removes a list and its entries.
func (s *ReadingListService) DeleteList(ctx context.Context, listID string) error {
	if err := s.store.DeleteReadingList(ctx, listID); err != nil {
		if err == store.ErrNotFound {
			return errors.NotFoundf("reading list %s not found", listID)
		}
		return err
	}

	s.log.Info("reading list deleted", "list_id", listID)
	return nil
}

// AddBook adds a cached book to a list. The default status is Want to Read.
func (s *ReadingListService) AddBook(ctx context.Context, listID string, req AddBookRequest) (*domain.ReadingListBook, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	status := domain.ReadingStatus(req.Status)
	if req.Status == "" {
		status = domain.StatusWantToRead
	}

	entry := &domain.ReadingListBook{
		ReadingListID: listID,
		BookID:        req.BookID,
		Status:        status,
		Notes:         strings.TrimSpace(req.Notes),
		AddedAt:       time.Now(),
	}

	if err := s.store.AddBookToReadingList(ctx, entry); err != nil {
		switch err {
		case store.ErrAlreadyExists:
			return nil, errors.Conflict("book is already in this reading list")
		default:
			var storeErr *store.Error
			if errors.As(err, &storeErr) && storeErr.Code == store.ErrInvalidInput.Code {
				return nil, errors.NotFound(storeErr.Message)
			}
			return nil, err
		}
	}
	return entry, nil
}

// UpdateBook changes the status, notes or rating of a list entry.
// Moving to Completed stamps the completion time if it is not set yet.
func (s *ReadingListService) UpdateBook(ctx context.Context, listID, bookID string, req UpdateBookRequest) (*domain.ReadingListBook, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry, err := s.store.GetReadingListBook(ctx, listID, bookID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFound("book is not in this reading list")
		}
		return nil, err
	}

	entry.Status = domain.ReadingStatus(req.Status)
	entry.Notes = strings.TrimSpace(req.Notes)
	entry.Rating = req.Rating
	if entry.Status == domain.StatusCompleted && entry.CompletedAt == nil {
		now := time.Now()
		entry.CompletedAt = &now
	}
	if entry.Status != domain.StatusCompleted {
		entry.CompletedAt = nil
	}

	if err := s.store.UpdateReadingListBook(ctx, entry); err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFound("book is not in this reading list")
		}
		return nil, err
	}
	return entry, nil
}

// RemoveBook removes a book from a list. The cached book itself stays.
func (s *ReadingListService) RemoveBook(ctx context.Context, listID, bookID string) error {
	if err := s.store.RemoveBookFromReadingList(ctx, listID, bookID); err != nil {
		if err == store.ErrNotFound {
			return errors.NotFound("book is not in this reading list")
		}
		return err
	}
	return nil
}

// ListBooks returns all entries in a list.
func (s *ReadingListService) ListBooks(ctx context.Context, listID string) ([]*domain.ReadingListBook, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}
	return s.store.ListReadingListBooks(ctx, listID)
}
