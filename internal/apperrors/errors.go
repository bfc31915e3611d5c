package apperrors

import "fmt"

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an absent referenced resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func NotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// ItemUnavailableError reports a menu item or variation that exists but is
// not currently orderable.
type ItemUnavailableError struct {
	Item string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("%q is currently unavailable", e.Item)
}

func ItemUnavailable(item string) *ItemUnavailableError {
	return &ItemUnavailableError{Item: item}
}

// ConflictError reports a transient uniqueness conflict that survived
// internal retries.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// PersistenceError reports a failed unit of work. The transaction has been
// rolled back; no partial state is visible.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}
