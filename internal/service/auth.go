package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cesmanager/cesmanager-go/internal/crypto"
	"github.com/cesmanager/cesmanager-go/internal/model"
	"github.com/cesmanager/cesmanager-go/internal/repository"
)

const (
	MsgCredentialsRequired = "Username and password are required."
	MsgUserExists          = "User already exists."
	MsgUserNotFound        = "User not found."
	MsgWrongPassword       = "Wrong password."
)

// AuthService handles registration, login and token issuance.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns its ID.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) model.Response[int64] {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return model.Fail[int64](model.StatusInvalidRegister, MsgCredentialsRequired)
	}

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return internalError[int64](ctx, "checking username", err)
	}
	if exists {
		return model.Fail[int64](model.StatusInvalidRegister, MsgUserExists)
	}

	hash, salt, err := crypto.HashPassword(req.Password)
	if err != nil {
		return internalError[int64](ctx, "hashing password", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.Fail[int64](model.StatusInvalidRegister, MsgUserExists)
		}
		return internalError[int64](ctx, "creating user", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return model.OK(user.ID)
}

// Login authenticates a user and returns a signed bearer token whose subject
// is the user's ID.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) model.Response[string] {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Fail[string](model.StatusInvalidLogin, MsgUserNotFound)
		}
		return internalError[string](ctx, "loading user", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash, user.PasswordSalt)
	if err != nil {
		return internalError[string](ctx, "verifying password", err, "user_id", user.ID)
	}
	if !match {
		return model.Fail[string](model.StatusInvalidLogin, MsgWrongPassword)
	}

	token, err := crypto.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return internalError[string](ctx, "signing token", err, "user_id", user.ID)
	}

	return model.OK(token)
}

// GetUser retrieves a user by ID and returns safe user data. It returns an
// error instead of a Response because no status code describes a missing
// profile; the handler answers repository.ErrUserNotFound with 401.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}
