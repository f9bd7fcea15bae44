package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/repository"
	"uptime_monitor/internal/utils"
)

const (
	tokenIDLength = 20
	tokenTTL      = time.Hour
)

// TokenService issues, reads, extends and revokes time-limited
// authentication tokens. Verify is the sole authorization gate used by
// the user and check services.
type TokenService interface {
	Create(ctx context.Context, req model.CreateTokenRequest) (*model.Token, error)
	Get(ctx context.Context, id string) (*model.Token, error)
	Extend(ctx context.Context, req model.ExtendTokenRequest) error
	Delete(ctx context.Context, id string) error
	Verify(ctx context.Context, id, phone string) bool
}

type tokenService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
}

// NewTokenService creates a new TokenService
func NewTokenService(tokenRepo repository.TokenRepository, userRepo repository.UserRepository) TokenService {
	return &tokenService{tokenRepo: tokenRepo, userRepo: userRepo}
}

// validRecordID reports whether id has the shape the generator
// produces: exactly 20 lowercase alphanumeric characters. Anything
// else, notably ids smuggling path separators, is rejected before it
// reaches storage.
func validRecordID(id string) bool {
	if len(id) != tokenIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Create checks the supplied credentials against the stored user and,
// on a match, issues a token valid for one hour.
func (s *tokenService) Create(ctx context.Context, req model.CreateTokenRequest) (*model.Token, error) {
	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	if !validPhone(phone) || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !utils.CheckPasswordHash(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	id, err := utils.RandomString(tokenIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	token := &model.Token{
		ID:      id,
		Phone:   phone,
		Expires: time.Now().Add(tokenTTL).UnixMilli(),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Get retrieves a token record by id
func (s *tokenService) Get(ctx context.Context, id string) (*model.Token, error) {
	id = strings.TrimSpace(id)
	if !validRecordID(id) {
		return nil, ErrMissingFields
	}

	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if token == nil {
		return nil, ErrTokenNotFound
	}
	return token, nil
}

// Extend resets the expiration of a still-active token to one hour from
// now. An already-expired token is rejected, never resurrected.
func (s *tokenService) Extend(ctx context.Context, req model.ExtendTokenRequest) error {
	id := strings.TrimSpace(req.ID)
	if !validRecordID(id) || !req.Extend {
		return ErrMissingFields
	}

	unlock := s.tokenRepo.Lock(id)
	defer unlock()

	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up token: %w", err)
	}
	if token == nil {
		return ErrTokenNotFound
	}
	if token.Expires <= time.Now().UnixMilli() {
		return ErrTokenExpired
	}

	token.Expires = time.Now().Add(tokenTTL).UnixMilli()
	if err := s.tokenRepo.Update(ctx, token); err != nil {
		return fmt.Errorf("failed to update token expiration: %w", err)
	}
	return nil
}

// Delete revokes a token by removing its record
func (s *tokenService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if !validRecordID(id) {
		return ErrMissingFields
	}

	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up token: %w", err)
	}
	if token == nil {
		return ErrTokenNotFound
	}

	if err := s.tokenRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Verify reports whether the token exists, is bound to the given phone
// and has not expired. Expired tokens stay on disk until explicitly
// deleted; they simply stop verifying.
func (s *tokenService) Verify(ctx context.Context, id, phone string) bool {
	if id == "" {
		return false
	}
	token, err := s.tokenRepo.FindByID(ctx, id)
	if err != nil || token == nil {
		return false
	}
	return token.Phone == phone && token.Expires > time.Now().UnixMilli()
}
