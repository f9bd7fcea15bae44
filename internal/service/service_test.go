package service

import (
	"context"
	"testing"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/repository"
	"uptime_monitor/internal/storage"

	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack over a throwaway data directory.
type testEnv struct {
	baseDir   string
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	checkRepo repository.CheckRepository
	tokens    TokenService
	users     UserService
	checks    CheckService
}

func newTestEnv(t *testing.T, maxChecks int) *testEnv {
	t.Helper()

	baseDir := t.TempDir()
	store, err := storage.NewStore(baseDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(store)
	tokenRepo := repository.NewTokenRepository(store)
	checkRepo := repository.NewCheckRepository(store)

	tokens := NewTokenService(tokenRepo, userRepo)
	return &testEnv{
		baseDir:   baseDir,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		checkRepo: checkRepo,
		tokens:    tokens,
		users:     NewUserService(userRepo, tokens),
		checks:    NewCheckService(checkRepo, userRepo, tokenRepo, tokens, maxChecks),
	}
}

func (e *testEnv) registerUser(t *testing.T, phone, password string) {
	t.Helper()
	err := e.users.Create(context.Background(), model.CreateUserRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		Phone:        phone,
		Password:     password,
		TOSAgreement: true,
	})
	require.NoError(t, err)
}

func (e *testEnv) login(t *testing.T, phone, password string) *model.Token {
	t.Helper()
	token, err := e.tokens.Create(context.Background(), model.CreateTokenRequest{
		Phone:    phone,
		Password: password,
	})
	require.NoError(t, err)
	return token
}
