package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError collects per-field problems found in a request.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records the first reason reported for a field.
func (ve *ValidationError) Add(field, reason string) {
	if _, ok := ve.Fields[field]; ok {
		return
	}
	ve.Fields[field] = reason
}

func (ve *ValidationError) Empty() bool {
	return len(ve.Fields) == 0
}

// OrNil returns nil when nothing was recorded, so callers can return it directly.
func (ve *ValidationError) OrNil() error {
	if ve.Empty() {
		return nil
	}
	return ve
}

func (ve *ValidationError) Error() string {
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, ve.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", nfe.Entity, nfe.ID)
}

// ConflictError represents a request that contradicts the current state of an entity
type ConflictError struct {
	Entity string
	ID     interface{}
	Reason string
}

func (ce *ConflictError) Error() string {
	if ce.ID == nil {
		return fmt.Sprintf("%s conflict: %s", ce.Entity, ce.Reason)
	}
	return fmt.Sprintf("%s %v conflict: %s", ce.Entity, ce.ID, ce.Reason)
}

// IsNotFound checks if an error is or wraps a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsConflict checks if an error is or wraps a ConflictError
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation checks if an error is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
