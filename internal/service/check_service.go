package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"uptime_monitor/internal/model"
	"uptime_monitor/internal/repository"
	"uptime_monitor/internal/utils"
)

const checkIDLength = 20

// CheckService validates and manages uptime-check definitions,
// enforcing the per-user check quota and maintaining the owner's
// back-reference list of check IDs.
type CheckService interface {
	Create(ctx context.Context, req model.CreateCheckRequest, tokenID string) (*model.Check, error)
	Get(ctx context.Context, id, tokenID string) (*model.Check, error)
	Update(ctx context.Context, req model.UpdateCheckRequest, tokenID string) error
	Delete(ctx context.Context, id, tokenID string) error
}

type checkService struct {
	checkRepo repository.CheckRepository
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    TokenService
	maxChecks int
}

// NewCheckService creates a new CheckService
func NewCheckService(checkRepo repository.CheckRepository, userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokens TokenService, maxChecks int) CheckService {
	return &checkService{
		checkRepo: checkRepo,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		maxChecks: maxChecks,
	}
}

func validProtocol(protocol string) bool {
	return protocol == model.ProtocolHTTP || protocol == model.ProtocolHTTPS
}

func validMethod(method string) bool {
	switch method {
	case "post", "get", "put", "delete":
		return true
	}
	return false
}

func validTimeout(seconds int) bool {
	return seconds >= 1 && seconds <= 5
}

// Create persists a new check for the user the token is bound to. The
// owning phone is discovered by reading the token record; the check is
// written first and the owner's checks list is appended under the user
// key lock. If the user update fails the check record is deleted again
// so a partial failure cannot leave an orphaned check behind.
func (s *checkService) Create(ctx context.Context, req model.CreateCheckRequest, tokenID string) (*model.Check, error) {
	url := strings.TrimSpace(req.URL)
	if !validProtocol(req.Protocol) || url == "" || !validMethod(req.Method) ||
		len(req.SuccessCodes) == 0 || !validTimeout(req.TimeoutSeconds) {
		return nil, ErrMissingFields
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if token == nil {
		return nil, ErrUnauthorized
	}

	unlock := s.userRepo.Lock(token.Phone)
	defer unlock()

	user, err := s.userRepo.FindByPhone(ctx, token.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if len(user.Checks) >= s.maxChecks {
		return nil, ErrMaxChecksReached
	}

	id, err := utils.RandomString(checkIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate check id: %w", err)
	}

	check := &model.Check{
		ID:             id,
		UserPhone:      user.Phone,
		Protocol:       req.Protocol,
		URL:            url,
		Method:         req.Method,
		SuccessCodes:   req.SuccessCodes,
		TimeoutSeconds: req.TimeoutSeconds,
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to create check: %w", err)
	}

	user.Checks = append(user.Checks, check.ID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Compensating cleanup: without it a failed user update would
		// leave a check record no user references.
		_ = s.checkRepo.Delete(ctx, check.ID)
		return nil, fmt.Errorf("failed to update user with new check: %w", err)
	}
	return check, nil
}

// Get returns a check to its owner. Ownership is enforced against the
// check's own userPhone, not just the token's bound user.
func (s *checkService) Get(ctx context.Context, id, tokenID string) (*model.Check, error) {
	id = strings.TrimSpace(id)
	if !validRecordID(id) {
		return nil, ErrMissingFields
	}

	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up check: %w", err)
	}
	if check == nil {
		return nil, ErrCheckNotFound
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return nil, ErrUnauthorized
	}
	return check, nil
}

// Update merges the supplied fields into the stored check. A field is
// considered supplied only when it passes the same validation as
// create; at least one field must be supplied.
func (s *checkService) Update(ctx context.Context, req model.UpdateCheckRequest, tokenID string) error {
	id := strings.TrimSpace(req.ID)
	if !validRecordID(id) {
		return ErrMissingFields
	}

	url := strings.TrimSpace(req.URL)
	protocolOK := validProtocol(req.Protocol)
	methodOK := validMethod(req.Method)
	codesOK := len(req.SuccessCodes) > 0
	timeoutOK := validTimeout(req.TimeoutSeconds)
	if !protocolOK && url == "" && !methodOK && !codesOK && !timeoutOK {
		return ErrNothingToUpdate
	}

	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up check: %w", err)
	}
	if check == nil {
		return ErrCheckNotFound
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return ErrUnauthorized
	}

	unlock := s.checkRepo.Lock(id)
	defer unlock()

	// Re-read under the lock so a concurrent update is not overwritten.
	check, err = s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up check: %w", err)
	}
	if check == nil {
		return ErrCheckNotFound
	}

	if protocolOK {
		check.Protocol = req.Protocol
	}
	if url != "" {
		check.URL = url
	}
	if methodOK {
		check.Method = req.Method
	}
	if codesOK {
		check.SuccessCodes = req.SuccessCodes
	}
	if timeoutOK {
		check.TimeoutSeconds = req.TimeoutSeconds
	}

	if err := s.checkRepo.Update(ctx, check); err != nil {
		return fmt.Errorf("failed to update check: %w", err)
	}
	return nil
}

// Delete removes a check and drops its id from the owner's checks list
func (s *checkService) Delete(ctx context.Context, id, tokenID string) error {
	id = strings.TrimSpace(id)
	if !validRecordID(id) {
		return ErrMissingFields
	}

	check, err := s.checkRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up check: %w", err)
	}
	if check == nil {
		return ErrCheckNotFound
	}
	if !s.tokens.Verify(ctx, tokenID, check.UserPhone) {
		return ErrUnauthorized
	}

	if err := s.checkRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete check: %w", err)
	}

	unlock := s.userRepo.Lock(check.UserPhone)
	defer unlock()

	user, err := s.userRepo.FindByPhone(ctx, check.UserPhone)
	if err != nil {
		return fmt.Errorf("failed to look up user who owns the check: %w", err)
	}
	if user == nil {
		return fmt.Errorf("could not find the user who owns check %s", id)
	}

	user.Checks = slices.DeleteFunc(user.Checks, func(checkID string) bool {
		return checkID == id
	})
	if len(user.Checks) == 0 {
		user.Checks = nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to remove check from user: %w", err)
	}
	return nil
}
