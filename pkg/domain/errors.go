package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the persistence gateway and service layer. Every typed
// error below matches exactly one of them through errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrConstraintConflict = errors.New("constraint conflict")
)

// NotFoundError is returned when an identifier has no corresponding row.
type NotFoundError struct {
	Entity EntityType
	ID     int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// Is matches ErrNotFound.
func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PreconditionError is returned when a referenced id does not resolve to an
// existing row of the expected type.
type PreconditionError struct {
	Entity EntityType
	Field  string
	Target EntityType
	ID     int64
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s.%s references missing %s %d", e.Entity, e.Field, e.Target, e.ID)
}

// Is matches ErrPreconditionFailed.
func (e PreconditionError) Is(target error) bool { return target == ErrPreconditionFailed }

// ValidationError is returned when a scalar field fails boundary validation,
// including enum values outside their closed set.
type ValidationError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

// Is matches ErrPreconditionFailed.
func (e ValidationError) Is(target error) bool { return target == ErrPreconditionFailed }

// ConflictError is returned when a uniqueness constraint would be violated.
type ConflictError struct {
	Entity EntityType
	Field  string
	Value  string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// Is matches ErrConstraintConflict.
func (e ConflictError) Is(target error) bool { return target == ErrConstraintConflict }

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	if len(e.Result.Violations) == 0 {
		return "transaction blocked by rules"
	}
	msgs := make([]string, 0, len(e.Result.Violations))
	for _, v := range e.Result.Violations {
		if v.Severity != SeverityBlock {
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Rule, v.Message))
	}
	return "transaction blocked by rules: " + strings.Join(msgs, "; ")
}

// Is matches ErrInvariantViolation.
func (e RuleViolationError) Is(target error) bool { return target == ErrInvariantViolation }

// Violations returns the blocking violations carried by err, if any.
func Violations(err error) []Violation {
	var rv RuleViolationError
	if !errors.As(err, &rv) {
		return nil
	}
	out := make([]Violation, 0, len(rv.Result.Violations))
	for _, v := range rv.Result.Violations {
		if v.Severity == SeverityBlock {
			out = append(out, v)
		}
	}
	return out
}
