// Package service contains the core operations behind the HTTP layer:
// accounts, posts, engagement, media sync, visibility and search.
package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate
// these into HTTP statuses with errors.Is, so every failure path wraps
// one of them with %w.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrAlreadyExists      = errors.New("already exists")
	ErrExternalStorage    = errors.New("external storage failure")
)
