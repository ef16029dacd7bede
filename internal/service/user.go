package service

import (
	"context"
	"errors"

	"github.com/accountd/accountd-go/internal/crypto"
	"github.com/accountd/accountd-go/internal/model"
	"github.com/accountd/accountd-go/internal/repository"
)

// ErrForbidden is returned when the token subject does not match the
// requested user id.
var ErrForbidden = errors.New("token subject does not match requested user")

// UserService handles profile lookups and account mutation. Every operation
// takes the verified token subject and refuses requests for other users.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Get returns the user without the password hash.
func (s *UserService) Get(ctx context.Context, subject, id string) (model.UserResponse, error) {
	if subject != id {
		return model.UserResponse{}, ErrForbidden
	}

	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Update merges the provided fields onto the stored record and returns the
// post-update representation. A new password is re-validated against the
// policy and hashed before it is stored.
func (s *UserService) Update(ctx context.Context, subject, id string, req model.UpdateUserRequest) (model.UserResponse, error) {
	if subject != id {
		return model.UserResponse{}, ErrForbidden
	}

	fields := map[string]any{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return model.UserResponse{}, err
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		fields["password"] = hash
	}

	if len(fields) == 0 {
		return s.Get(ctx, subject, id)
	}

	user, err := s.store.UpdateByID(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return model.UserResponse{}, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateUsername):
			return model.UserResponse{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Delete removes the user and returns the deleted record.
func (s *UserService) Delete(ctx context.Context, subject, id string) (model.UserResponse, error) {
	if subject != id {
		return model.UserResponse{}, ErrForbidden
	}

	user, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}
