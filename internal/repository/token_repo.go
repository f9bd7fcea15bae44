package repository

import (
	"context"
	"errors"
	"fmt"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/storage"
)

// TokenRepository defines operations for token records
type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	FindByID(ctx context.Context, id string) (*model.Token, error)
	Update(ctx context.Context, token *model.Token) error
	Delete(ctx context.Context, id string) error
	Lock(id string) func()
}

type tokenRepository struct {
	store *storage.Store
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(store *storage.Store) TokenRepository {
	return &tokenRepository{store: store}
}

// Create stores a new token record, keyed by id
func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	if err := r.store.Create(storage.CollectionTokens, token.ID, token); err != nil {
		return fmt.Errorf("failed to create token record: %w", err)
	}
	return nil
}

// FindByID retrieves a token by its id
func (r *tokenRepository) FindByID(ctx context.Context, id string) (*model.Token, error) {
	token := &model.Token{}
	err := r.store.Read(storage.CollectionTokens, id, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil // Token not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to read token record: %w", err)
	}
	return token, nil
}

// Update replaces the whole stored token record
func (r *tokenRepository) Update(ctx context.Context, token *model.Token) error {
	if err := r.store.Update(storage.CollectionTokens, token.ID, token); err != nil {
		return fmt.Errorf("failed to update token record: %w", err)
	}
	return nil
}

// Delete removes a token record
func (r *tokenRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(storage.CollectionTokens, id); err != nil {
		return fmt.Errorf("failed to delete token record: %w", err)
	}
	return nil
}

// Lock serializes read-modify-write sequences on a single token record
func (r *tokenRepository) Lock(id string) func() {
	return r.store.Lock(storage.CollectionTokens, id)
}
