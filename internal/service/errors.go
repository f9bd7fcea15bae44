package service

import "errors"

var (
	// validation errors
	ErrMissingFields   = errors.New("missing required fields, or fields are invalid")
	ErrNothingToUpdate = errors.New("missing fields to update")

	// user-specific errors
	ErrUserAlreadyExists  = errors.New("a user with that phone number already exists")
	ErrUserNotFound       = errors.New("could not find the specified user")
	ErrInvalidCredentials = errors.New("password did not match the specified user's stored password")

	// token-specific errors
	ErrUnauthorized  = errors.New("missing required token in header, or token is invalid")
	ErrTokenNotFound = errors.New("specified token does not exist")
	ErrTokenExpired  = errors.New("the token has already expired and cannot be extended")

	// check-specific errors
	ErrCheckNotFound    = errors.New("specified check does not exist")
	ErrMaxChecksReached = errors.New("the user already has the maximum number of checks")
)
