package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingToken       = errors.New("Missing bearer token")
	ErrInvalidToken       = errors.New("Invalid or expired token")
)
