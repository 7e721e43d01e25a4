// Package errors provides error handling for shopplan.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := loadSnapshot(); err != nil {
//	    return errors.Wrap(err, "load snapshot")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNoWorkingHours) {
//	    // calendar has no rule for this team/weekday
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	Mark          = crdb.Mark
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the scheduling engine and its storage layer.
// Use these with errors.Is() for type-safe checking; wrap them with
// errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrNoWorkingHours indicates no active working-hours rule is
	// configured for a team and weekday; the calendar treats such days
	// as non-working
	ErrNoWorkingHours = New("no working hours configured")

	// ErrUnschedulable indicates no feasible employee/time combination
	// exists within the search horizon for a task
	ErrUnschedulable = New("task unschedulable within horizon")

	// ErrPersistFailed indicates the full-replace write of schedule
	// records did not complete; the prior result set remains
	// authoritative
	ErrPersistFailed = New("schedule persistence failed")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsUnschedulableError checks if an error is or wraps ErrUnschedulable
func IsUnschedulableError(err error) bool {
	return err != nil && Is(err, ErrUnschedulable)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
