package apperrors

import (
	"errors"
	"fmt"
)

// Kind - закрытый набор видов ошибок сервисного слоя.
// The transport layer maps kinds to HTTP status codes and never
// inspects error strings.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidOperation Kind = "invalid_operation"
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field validation detail, keyed by the JSON
	// field name, so the client can render all problems at once.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func InvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// Validation - ошибка валидации с детализацией по полям
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: "ошибка валидации",
		Fields:  fields,
	}
}

func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Internal wraps a store/unexpected failure. The original cause is kept
// for logging and never leaks to the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "внутренняя ошибка сервера", Err: err}
}

// KindOf returns the kind of err, or KindInternal for any error
// outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FieldsOf returns the validation detail map, if err carries one.
func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
