package repository

import (
	"context"
	"errors"
	"fmt"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/storage"
)

// CheckRepository defines operations for check records
type CheckRepository interface {
	Create(ctx context.Context, check *model.Check) error
	FindByID(ctx context.Context, id string) (*model.Check, error)
	Update(ctx context.Context, check *model.Check) error
	Delete(ctx context.Context, id string) error
	Lock(id string) func()
}

type checkRepository struct {
	store *storage.Store
}

// NewCheckRepository creates a new CheckRepository
func NewCheckRepository(store *storage.Store) CheckRepository {
	return &checkRepository{store: store}
}

// Create stores a new check record, keyed by id
func (r *checkRepository) Create(ctx context.Context, check *model.Check) error {
	if err := r.store.Create(storage.CollectionChecks, check.ID, check); err != nil {
		return fmt.Errorf("failed to create check record: %w", err)
	}
	return nil
}

// FindByID retrieves a check by its id
func (r *checkRepository) FindByID(ctx context.Context, id string) (*model.Check, error) {
	check := &model.Check{}
	err := r.store.Read(storage.CollectionChecks, id, check)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil // Check not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to read check record: %w", err)
	}
	return check, nil
}

// Update replaces the whole stored check record
func (r *checkRepository) Update(ctx context.Context, check *model.Check) error {
	if err := r.store.Update(storage.CollectionChecks, check.ID, check); err != nil {
		return fmt.Errorf("failed to update check record: %w", err)
	}
	return nil
}

// Delete removes a check record
func (r *checkRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(storage.CollectionChecks, id); err != nil {
		return fmt.Errorf("failed to delete check record: %w", err)
	}
	return nil
}

// Lock serializes read-modify-write sequences on a single check record
func (r *checkRepository) Lock(id string) func() {
	return r.store.Lock(storage.CollectionChecks, id)
}
