// Package common defines shared constants and sentinel errors used across
// the bot, its storage layer and the import tools. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Workflow errors.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyReason       = errors.New("rejection reason is required")
)
