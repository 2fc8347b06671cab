package main

import (
	"strings"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

const (
	exitSuccess    = 0
	exitUsage      = 1
	exitValidation = 2
	exitModelIO    = 3
)

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	return &usageError{err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}

	var usage *usageError
	if errors.As(err, &usage) ||
		strings.HasPrefix(err.Error(), "unknown command") ||
		strings.HasPrefix(err.Error(), "required flag") {
		return exitUsage
	}

	var (
		missing *errors.MissingFieldsError
		invalid *errors.ValidationError
		dim     *errors.DimensionError
	)
	switch {
	case errors.As(err, &missing), errors.As(err, &invalid), errors.As(err, &dim):
		return exitValidation
	default:
		return exitModelIO
	}
}
