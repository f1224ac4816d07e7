package model

import "errors"

// Error kinds surfaced by the engine. Operations wrap them with context, so
// callers match with errors.Is.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidSplit       = errors.New("invalid split")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrNotFound           = errors.New("not found")
	ErrNoBudgetConfigured = errors.New("no budget configured")
	ErrEmptyInput         = errors.New("empty input")
	ErrInsufficientData   = errors.New("insufficient data")

	ErrBuiltinCategory = errors.New("built-in category cannot be removed")
	ErrCategoryInUse   = errors.New("category in use")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidDate     = errors.New("invalid date")
	ErrMissingField    = errors.New("missing required field")
)
