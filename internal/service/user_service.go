package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/repository"
	"uptime_monitor/internal/storage"
	"uptime_monitor/internal/utils"
)

const phoneLength = 10

// validPhone reports whether phone is exactly ten digits. Phones key
// user records on disk, so nothing looser may reach storage.
func validPhone(phone string) bool {
	if len(phone) != phoneLength {
		return false
	}
	for i := 0; i < len(phone); i++ {
		if phone[i] < '0' || phone[i] > '9' {
			return false
		}
	}
	return true
}

// UserService validates and manages user records. Every operation
// except Create requires a token bound to the phone being acted on.
type UserService interface {
	Create(ctx context.Context, req model.CreateUserRequest) error
	Get(ctx context.Context, phone, tokenID string) (*model.UserView, error)
	Update(ctx context.Context, req model.UpdateUserRequest, tokenID string) error
	Delete(ctx context.Context, phone, tokenID string) error
}

type userService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, tokens TokenService) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

// Create registers a new user. Duplicate phones are detected by the
// store's exclusive create, not by a read-then-create sequence, so two
// concurrent registrations for the same phone resolve to one winner.
func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) error {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)

	if firstName == "" || lastName == "" || !validPhone(phone) || password == "" || !req.TOSAgreement {
		return ErrMissingFields
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		HashedPassword: hashedPassword,
		TOSAgreement:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get returns the stored user with the password hash stripped
func (s *userService) Get(ctx context.Context, phone, tokenID string) (*model.UserView, error) {
	phone = strings.TrimSpace(phone)
	if !validPhone(phone) {
		return nil, ErrMissingFields
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	view := user.View()
	return &view, nil
}

// Update merges the supplied fields into the stored record. The merge
// is performed in memory under the record's key lock and written back
// as a whole document; a supplied password is re-hashed.
func (s *userService) Update(ctx context.Context, req model.UpdateUserRequest, tokenID string) error {
	phone := strings.TrimSpace(req.Phone)
	if !validPhone(phone) {
		return ErrMissingFields
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	password := strings.TrimSpace(req.Password)
	if firstName == "" && lastName == "" && password == "" {
		return ErrNothingToUpdate
	}

	if !s.tokens.Verify(ctx, tokenID, phone) {
		return ErrUnauthorized
	}

	unlock := s.userRepo.Lock(phone)
	defer unlock()

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if password != "" {
		hashedPassword, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes the user record. Tokens and checks owned by the user
// are left behind; tokens stop verifying once expired and checks become
// unreachable through the user.
func (s *userService) Delete(ctx context.Context, phone, tokenID string) error {
	phone = strings.TrimSpace(phone)
	if !validPhone(phone) {
		return ErrMissingFields
	}
	if !s.tokens.Verify(ctx, tokenID, phone) {
		return ErrUnauthorized
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, phone); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
