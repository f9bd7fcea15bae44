package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckRequest() model.CreateCheckRequest {
	return model.CreateCheckRequest{
		Protocol:       "https",
		URL:            "example.com",
		Method:         "get",
		SuccessCodes:   []int{200, 201},
		TimeoutSeconds: 3,
	}
}

func TestCheckService_Create(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")

	check, err := env.checks.Create(ctx, validCheckRequest(), token.ID)
	require.NoError(t, err)
	assert.Len(t, check.ID, 20)
	assert.Equal(t, "1234567890", check.UserPhone)
	assert.Equal(t, "https", check.Protocol)
	assert.Equal(t, []int{200, 201}, check.SuccessCodes)

	// The owner's back-reference list carries the new id.
	user, err := env.userRepo.FindByPhone(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, []string{check.ID}, user.Checks)
}

func TestCheckService_Create_Validation(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")

	cases := map[string]func(r model.CreateCheckRequest) model.CreateCheckRequest{
		"bad protocol": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.Protocol = "ftp"
			return r
		},
		"empty url": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.URL = "  "
			return r
		},
		"bad method": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.Method = "PATCH"
			return r
		},
		"no success codes": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.SuccessCodes = nil
			return r
		},
		"timeout too low": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.TimeoutSeconds = 0
			return r
		},
		"timeout too high": func(r model.CreateCheckRequest) model.CreateCheckRequest {
			r.TimeoutSeconds = 6
			return r
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.checks.Create(ctx, mutate(validCheckRequest()), token.ID)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestCheckService_Create_Unauthorized(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	_, err := env.checks.Create(ctx, validCheckRequest(), "nosuchtoken1234567ab")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckService_Create_Quota(t *testing.T) {
	env := newTestEnv(t, 1)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")

	_, err := env.checks.Create(ctx, validCheckRequest(), token.ID)
	require.NoError(t, err)

	_, err = env.checks.Create(ctx, validCheckRequest(), token.ID)
	assert.ErrorIs(t, err, ErrMaxChecksReached)

	user, err := env.userRepo.FindByPhone(ctx, "1234567890")
	require.NoError(t, err)
	assert.Len(t, user.Checks, 1)
}

// failingUserRepo makes every user update fail, to exercise the
// compensating cleanup in check creation.
type failingUserRepo struct {
	repository.UserRepository
}

func (r *failingUserRepo) Update(ctx context.Context, user *model.User) error {
	return errors.New("disk full")
}

func TestCheckService_Create_CompensatesFailedUserUpdate(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")

	checks := NewCheckService(env.checkRepo, &failingUserRepo{env.userRepo}, env.tokenRepo, env.tokens, 5)
	_, err := checks.Create(ctx, validCheckRequest(), token.ID)
	require.Error(t, err)

	// No orphaned check record may survive the partial failure.
	entries, err := os.ReadDir(filepath.Join(env.baseDir, "checks"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	user, err := env.userRepo.FindByPhone(ctx, "1234567890")
	require.NoError(t, err)
	assert.Empty(t, user.Checks)
}

func TestCheckService_Get_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	env.registerUser(t, "0987654321", "other")
	ownerToken := env.login(t, "1234567890", "secret")
	otherToken := env.login(t, "0987654321", "other")

	check, err := env.checks.Create(ctx, validCheckRequest(), ownerToken.ID)
	require.NoError(t, err)

	got, err := env.checks.Get(ctx, check.ID, ownerToken.ID)
	require.NoError(t, err)
	assert.Equal(t, check, got)

	// A valid token for a different user is denied.
	_, err = env.checks.Get(ctx, check.ID, otherToken.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.checks.Get(ctx, "nosuchcheck1234567ab", ownerToken.ID)
	assert.ErrorIs(t, err, ErrCheckNotFound)

	_, err = env.checks.Get(ctx, "short", ownerToken.ID)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCheckService_Update(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")
	check, err := env.checks.Create(ctx, validCheckRequest(), token.ID)
	require.NoError(t, err)

	err = env.checks.Update(ctx, model.UpdateCheckRequest{
		ID:             check.ID,
		URL:            "other.example.com",
		TimeoutSeconds: 5,
	}, token.ID)
	require.NoError(t, err)

	got, err := env.checks.Get(ctx, check.ID, token.ID)
	require.NoError(t, err)
	assert.Equal(t, "other.example.com", got.URL)
	assert.Equal(t, 5, got.TimeoutSeconds)
	assert.Equal(t, "https", got.Protocol) // untouched
	assert.Equal(t, "get", got.Method)     // untouched
}

func TestCheckService_Update_NothingToUpdate(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")
	check, err := env.checks.Create(ctx, validCheckRequest(), token.ID)
	require.NoError(t, err)

	err = env.checks.Update(ctx, model.UpdateCheckRequest{ID: check.ID}, token.ID)
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	// An out-of-range timeout counts as absent, not as an update.
	err = env.checks.Update(ctx, model.UpdateCheckRequest{ID: check.ID, TimeoutSeconds: 9}, token.ID)
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestCheckService_Update_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	env.registerUser(t, "0987654321", "other")
	ownerToken := env.login(t, "1234567890", "secret")
	otherToken := env.login(t, "0987654321", "other")

	check, err := env.checks.Create(ctx, validCheckRequest(), ownerToken.ID)
	require.NoError(t, err)

	err = env.checks.Update(ctx, model.UpdateCheckRequest{ID: check.ID, URL: "x.example.com"}, otherToken.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckService_Delete(t *testing.T) {
	env := newTestEnv(t, 5)
	ctx := context.Background()

	env.registerUser(t, "1234567890", "secret")
	token := env.login(t, "1234567890", "secret")
	check, err := env.checks.Create(ctx, validCheckRequest(), token.ID)
	require.NoError(t, err)

	require.NoError(t, env.checks.Delete(ctx, check.ID, token.ID))

	_, err = env.checks.Get(ctx, check.ID, token.ID)
	assert.ErrorIs(t, err, ErrCheckNotFound)

	// The id is removed from the owner's checks list.
	user, err := env.userRepo.FindByPhone(ctx, "1234567890")
	require.NoError(t, err)
	assert.Empty(t, user.Checks)

	assert.ErrorIs(t, env.checks.Delete(ctx, check.ID, token.ID), ErrCheckNotFound)
}
