package repository

import (
	"context"
	"errors"
	"fmt"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/storage"
)

// UserRepository defines operations for user records
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, phone string) error
	Lock(phone string) func()
}

type userRepository struct {
	store *storage.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *storage.Store) UserRepository {
	return &userRepository{store: store}
}

// Create stores a new user record, keyed by phone. The store's
// exclusive create reports a duplicate phone as storage.ErrAlreadyExists.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.store.Create(storage.CollectionUsers, user.Phone, user); err != nil {
		return fmt.Errorf("failed to create user record: %w", err)
	}
	return nil
}

// FindByPhone retrieves a user by their phone number
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	user := &model.User{}
	err := r.store.Read(storage.CollectionUsers, phone, user)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}
	return user, nil
}

// Update replaces the whole stored user record
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.store.Update(storage.CollectionUsers, user.Phone, user); err != nil {
		return fmt.Errorf("failed to update user record: %w", err)
	}
	return nil
}

// Delete removes a user record
func (r *userRepository) Delete(ctx context.Context, phone string) error {
	if err := r.store.Delete(storage.CollectionUsers, phone); err != nil {
		return fmt.Errorf("failed to delete user record: %w", err)
	}
	return nil
}

// Lock serializes read-modify-write sequences on a single user record
func (r *userRepository) Lock(phone string) func() {
	return r.store.Lock(storage.CollectionUsers, phone)
}
