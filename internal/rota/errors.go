package rota

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicateAssignment is returned when an assignment for the same
// (member, task) pair already exists, regardless of its completion state.
var ErrDuplicateAssignment = errors.New("this assignment already exists")

// NotFoundError reports an unknown member, task, or assignment id.
type NotFoundError struct {
	Resource string // "Member", "Task", "Assignment"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFoundErr(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
