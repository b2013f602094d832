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

// UserService manages user accounts.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	log       *logger.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, v *validation.Validator, log *logger.Logger) *UserService {
	return &UserService{
		store:     st,
		validator: v,
		log:       log,
	}
}

// CreateUserRequest is the input for CreateUser.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:        userID,
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if err == store.ErrAlreadyExists {
			return nil, errors.AlreadyExists("email already in use")
		}
		return nil, err
	}

	s.log.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.NotFoundf("user %s not found", userID)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and, via cascade, their reading lists.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		if err == store.ErrNotFound {
			return errors.NotFoundf("user %s not found", userID)
		}
		return err
	}

	s.log.Info("user deleted", "user_id", userID)
	return nil
}
