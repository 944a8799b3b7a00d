// Package errors provides error handling for kpnadi.
//
// This package re-exports github.com/cockroachdb/errors so every engine
// package gets stack traces, hints and details from one import:
//
//	// Wrap with context
//	if err := provider.Load(ctx, path); err != nil {
//	    return errors.Wrap(err, "failed to load chart")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "retry with a larger --horizon")
//
// Domain failures are expressed as wrapped sentinels so callers can branch
// with errors.Is without string matching.
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
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors shared by the engine packages.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested item does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrOutOfRange indicates an instant outside a generated period tree
	ErrOutOfRange = New("out of range")

	// ErrInvalidDomainValue indicates an unknown body, sign or house name
	ErrInvalidDomainValue = New("invalid domain value")

	// ErrInvalidChart indicates malformed upstream chart data
	ErrInvalidChart = New("invalid chart")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsOutOfRangeError checks if an error is or wraps ErrOutOfRange.
func IsOutOfRangeError(err error) bool {
	return err != nil && Is(err, ErrOutOfRange)
}

// IsInvalidChartError checks if an error is or wraps ErrInvalidChart.
// The CLI uses it to tell bad input apart from engine failures.
func IsInvalidChartError(err error) bool {
	return err != nil && Is(err, ErrInvalidChart)
}

// IsInvalidDomainValueError checks if an error is or wraps ErrInvalidDomainValue
func IsInvalidDomainValueError(err error) bool {
	return err != nil && Is(err, ErrInvalidDomainValue)
}

// NewOutOfRangeError creates an out-of-range error with a formatted message
func NewOutOfRangeError(format string, args ...interface{}) error {
	return Wrap(ErrOutOfRange, Newf(format, args...).Error())
}

// NewInvalidDomainValueError creates an invalid-domain-value error with a formatted message
func NewInvalidDomainValueError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidDomainValue, Newf(format, args...).Error())
}

// NewInvalidChartError creates an invalid-chart error with a formatted message
func NewInvalidChartError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidChart, Newf(format, args...).Error())
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest.
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}
