package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in lakhbronze.
// These errors can be checked with errors.Is.
var (
	// ErrEntryUnavailable marks an archive member with no extractable content.
	// Readers skip such members; it is never returned to callers of Next.
	ErrEntryUnavailable = errors.New("lakhbronze: entry unavailable")

	// ErrContainerRead is returned when one container entry cannot be walked.
	ErrContainerRead = errors.New("lakhbronze: container read failed")

	// ErrDecode is returned when fixed-width bytes are not valid UTF-8.
	ErrDecode = errors.New("lakhbronze: invalid utf-8")

	// ErrUnsupportedType is returned for container values with no portable form.
	ErrUnsupportedType = errors.New("lakhbronze: unsupported value type")

	// ErrMalformedAssociation is returned when an association file violates its shape.
	ErrMalformedAssociation = errors.New("lakhbronze: malformed association")

	// ErrInvalidBatchSize is returned when a batch size is not positive.
	ErrInvalidBatchSize = errors.New("lakhbronze: batch size must be positive")

	// ErrClosed is returned by readers used after Close.
	ErrClosed = errors.New("lakhbronze: reader closed")

	// ErrInvalidTransition is returned for a resource state change that is not allowed.
	ErrInvalidTransition = errors.New("lakhbronze: invalid state transition")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("lakhbronze: invalid configuration")
)

// DecodeError reports a field whose bytes could not be decoded as text.
type DecodeError struct {
	Field string
	Bytes []byte
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %q", ErrDecode, e.Bytes)
	}
	return fmt.Sprintf("%v: field %s: %q", ErrDecode, e.Field, e.Bytes)
}

// Unwrap lets errors.Is match ErrDecode.
func (e *DecodeError) Unwrap() error { return ErrDecode }

// WithField returns a copy of the error attributed to field. An error that
// already names a field keeps it.
func (e *DecodeError) WithField(field string) *DecodeError {
	if e.Field != "" {
		return e
	}
	return &DecodeError{Field: field, Bytes: e.Bytes}
}

// ContainerReadError reports a single container entry that failed to walk.
type ContainerReadError struct {
	Path string
	ID   string
	Err  error
}

func (e *ContainerReadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrContainerRead, e.Path, e.Err)
}

// Unwrap exposes both ErrContainerRead and the underlying cause.
func (e *ContainerReadError) Unwrap() []error { return []error{ErrContainerRead, e.Err} }

// MalformedAssociationError reports a structural violation in an association file.
type MalformedAssociationError struct {
	Key    string
	Reason string
}

func (e *MalformedAssociationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %s", ErrMalformedAssociation, e.Reason)
	}
	return fmt.Sprintf("%v: key %q: %s", ErrMalformedAssociation, e.Key, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedAssociation.
func (e *MalformedAssociationError) Unwrap() error { return ErrMalformedAssociation }
