// Package apperr defines the typed error taxonomy shared by all services.
// Handlers translate these into HTTP status codes; services never map or
// swallow them.
package apperr

// ValidationError indicates malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation returns a new ValidationError with the given message.
func Validation(msg string) *ValidationError { return &ValidationError{Msg: msg} }

// ForbiddenError indicates the caller is authenticated but not authorized
// for this entity instance (wrong assignee, wrong owner).
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// Forbidden returns a new ForbiddenError with the given message.
func Forbidden(msg string) *ForbiddenError { return &ForbiddenError{Msg: msg} }

// NotFoundError indicates a referenced entity is absent and the operation
// cannot proceed. Lookups whose direct subject is missing return nil
// instead of this error.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound returns a new NotFoundError with the given message.
func NotFound(msg string) *NotFoundError { return &NotFoundError{Msg: msg} }

// ConflictError indicates the operation conflicts with current state, such
// as starting a second timer or stopping an already stopped entry.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// Conflict returns a new ConflictError with the given message.
func Conflict(msg string) *ConflictError { return &ConflictError{Msg: msg} }
