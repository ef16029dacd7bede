package service

import (
	"context"
	"errors"
	"time"

	"github.com/accountd/accountd-go/internal/crypto"
	"github.com/accountd/accountd-go/internal/metrics"
	"github.com/accountd/accountd-go/internal/model"
	"github.com/accountd/accountd-go/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("username already in use")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// UserStore is the persistence surface the services need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateByID(ctx context.Context, id string, fields map[string]any) (*model.User, error)
	DeleteByID(ctx context.Context, id string) (*model.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	store     UserStore
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register validates the request, checks uniqueness, and creates the user.
// The username check runs before the email check; the first conflict wins.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	if err := validateRegistration(req.Username, req.Email, req.Password); err != nil {
		return model.UserResponse{}, err
	}

	// Ordered pre-checks give the caller a precise conflict message; the
	// unique indexes close the race window on insert.
	if _, err := s.store.GetByUsername(ctx, req.Username); err == nil {
		return model.UserResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserResponse{}, err
	}

	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return model.UserResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}

	if err := s.store.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return model.UserResponse{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Login authenticates a user by email and password and issues a token.
// Repeated failures produce the same error each time; there is no lockout.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if req.Email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrUserNotFound
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrWrongPassword
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}
	metrics.TokensIssued.Inc()

	return model.AuthResponse{
		Message: "authentication successful",
		Token:   token,
	}, nil
}
