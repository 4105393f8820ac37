// Package errors provides error handling for enumgen.
//
// This package re-exports github.com/cockroachdb/errors so every package
// wraps, annotates and inspects errors the same way, and declares the
// sentinel errors the generator reports.
//
// Usage:
//
//	// Wrap with context
//	if err := schema.Load(path); err != nil {
//	    return errors.Wrapf(err, "failed to load %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "rename one of the duplicated entries")
//
//	// Check errors
//	if errors.Is(err, errors.ErrInvalidSchema) {
//	    // malformed document
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Combining
var (
	CombineErrors = crdb.CombineErrors
)

// Sentinel errors reported by the generator.
// Use these with errors.Is() and wrap them with errors.Wrap() to add context.
var (
	// ErrInvalidSchema indicates a schema document or record could not be understood
	ErrInvalidSchema = New("invalid schema")

	// ErrDuplicateEntry indicates two entries of one definition normalize to the same name
	ErrDuplicateEntry = Wrap(ErrInvalidSchema, "duplicate entry")

	// ErrSearchFoldMismatch indicates stored strings can never match probes folded by the search modifier
	ErrSearchFoldMismatch = Wrap(ErrInvalidSchema, "search fold mismatch")

	// ErrIncompatibleSchema indicates a document requires a different generator version
	ErrIncompatibleSchema = New("incompatible schema")

	// ErrNotFound indicates a requested definition or file does not exist
	ErrNotFound = New("not found")

	// ErrStale indicates generated outputs differ from what the schemas produce
	ErrStale = New("generated output is stale")
)

// IsInvalidSchemaError checks if an error is or wraps ErrInvalidSchema
func IsInvalidSchemaError(err error) bool {
	return err != nil && Is(err, ErrInvalidSchema)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewSchemaError creates an invalid-schema error with a formatted message
func NewSchemaError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidSchema, format, args...)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}
