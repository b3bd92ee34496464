package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Identity errors
	ErrMsgNoActiveUser = "no active user"

	// Catalog errors
	ErrMsgCategoryNotFound  = "category not found"
	ErrMsgChallengeNotFound = "challenge not found"
	ErrMsgInvalidCatalog    = "invalid catalog"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
// Expected user outcomes (wrong flag, underfunded hint, locked challenge) are
// not errors; they are modeled as progression refusal values.
var (
	ErrNoActiveUser      = errors.New(ErrMsgNoActiveUser)
	ErrCategoryNotFound  = errors.New(ErrMsgCategoryNotFound)
	ErrChallengeNotFound = errors.New(ErrMsgChallengeNotFound)
	ErrInvalidCatalog    = errors.New(ErrMsgInvalidCatalog)
)
