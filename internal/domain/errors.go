package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// UnrecognizedOrderKindError is raised when payment metadata carries an unknown tokenizerType.
type UnrecognizedOrderKindError struct {
	Kind string
}

func (e UnrecognizedOrderKindError) Error() string {
	if e.Kind == "" {
		return "order kind kosong"
	}
	return fmt.Sprintf("order kind tidak dikenal: %s", e.Kind)
}

// PersistFailedError means money has moved but the order could not be recorded.
type PersistFailedError struct {
	OrderID string
	Err     error
}

func (e PersistFailedError) Error() string {
	return fmt.Sprintf("gagal menyimpan order %s: %v", e.OrderID, e.Err)
}

func (e PersistFailedError) Unwrap() error { return e.Err }

func IsUnrecognizedOrderKind(err error) bool {
	var target UnrecognizedOrderKindError
	return errors.As(err, &target)
}

func IsPersistFailed(err error) bool {
	var target PersistFailedError
	return errors.As(err, &target)
}
