package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesmanager/cesmanager-go/internal/crypto"
	"github.com/cesmanager/cesmanager-go/internal/model"
	"github.com/cesmanager/cesmanager-go/internal/repository"
	"github.com/cesmanager/cesmanager-go/internal/repository/repotest"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(
		repository.NewUserRepository(repotest.NewSQLite(t), repository.SQLite),
		"test-secret",
		time.Hour,
	)
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(nil, repository.MySQL), "test-secret", time.Hour)

	resp := svc.Register(context.Background(), model.RegisterRequest{Username: "  ", Password: "password123"})

	if resp.Status != model.StatusInvalidRegister {
		t.Errorf("expected InvalidRegister, got %v", resp.Status)
	}
	if resp.Message != MsgCredentialsRequired {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc := NewAuthService(repository.NewUserRepository(nil, repository.MySQL), "test-secret", time.Hour)

	resp := svc.Register(context.Background(), model.RegisterRequest{Username: "Sheila", Password: ""})

	if resp.Status != model.StatusInvalidRegister {
		t.Errorf("expected InvalidRegister, got %v", resp.Status)
	}
}

func TestRegister_ThenLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	reg := svc.Register(ctx, model.RegisterRequest{Username: "Sheila", Password: "123456"})
	require.True(t, reg.Success(), reg.Message)
	require.Positive(t, reg.Data)

	login := svc.Login(ctx, model.LoginRequest{Username: "Sheila", Password: "123456"})
	require.True(t, login.Success(), login.Message)

	claims, err := crypto.ValidateToken(login.Data, "test-secret")
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, reg.Data, id)

	user, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sheila", user.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	require.True(t, svc.Register(ctx, model.RegisterRequest{Username: "Sheila", Password: "a"}).Success())
	resp := svc.Register(ctx, model.RegisterRequest{Username: "Sheila", Password: "b"})

	assert.Equal(t, model.StatusInvalidRegister, resp.Status)
	assert.Equal(t, MsgUserExists, resp.Message)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t)

	resp := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "x"})

	assert.Equal(t, model.StatusInvalidLogin, resp.Status)
	assert.Equal(t, MsgUserNotFound, resp.Message)
	assert.Empty(t, resp.Data)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	require.True(t, svc.Register(ctx, model.RegisterRequest{Username: "Sheila", Password: "123456"}).Success())

	resp := svc.Login(ctx, model.LoginRequest{Username: "Sheila", Password: "654321"})

	assert.Equal(t, model.StatusInvalidLogin, resp.Status)
	assert.Equal(t, MsgWrongPassword, resp.Message)
	assert.Empty(t, resp.Data)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.GetUser(context.Background(), 77)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
