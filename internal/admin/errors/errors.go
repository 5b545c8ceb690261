// Package errors defines the failure taxonomy shared by every layer of the
// admin service. A failed operation returns a *Failure carrying its
// ErrorType and every Error that caused it; success is a nil error.
package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors returned by the storage layer.
var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrDuplicate    = fmt.Errorf("duplicate record")
	ErrInvalidInput = fmt.Errorf("invalid input")
)

// ErrorType classifies a failure for callers and the transport layer.
type ErrorType int

const (
	None ErrorType = iota
	Validation
	NotFound
	Conflict
	Unauthorized
	Internal
	Aggregate
)

var errorTypeNames = map[ErrorType]string{
	None:         "None",
	Validation:   "Validation",
	NotFound:     "NotFound",
	Conflict:     "Conflict",
	Unauthorized: "Unauthorized",
	Internal:     "Internal",
	Aggregate:    "Aggregate",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Error is a single coded failure reason.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError builds an Error. It panics when code or message is blank.
func NewError(code, message string) Error {
	if strings.TrimSpace(code) == "" {
		panic("error code cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		panic("error message cannot be empty")
	}
	return Error{Code: code, Message: message}
}

func (e Error) String() string {
	return e.Code + ": " + e.Message
}

// Failure is the error value of a failed operation.
type Failure struct {
	Type   ErrorType
	Errors []Error
}

// NewFailure builds a Failure. A None type or an empty error list is a
// programming error and panics.
func NewFailure(t ErrorType, errs ...Error) *Failure {
	if t == None {
		panic("invalid error type")
	}
	if len(errs) == 0 {
		panic("error list cannot be empty")
	}
	for _, err := range errs {
		if strings.TrimSpace(err.Code) == "" || strings.TrimSpace(err.Message) == "" {
			panic("error code and message are required")
		}
	}
	out := make([]Error, len(errs))
	copy(out, errs)
	return &Failure{Type: t, Errors: out}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	parts := make([]string, 0, len(f.Errors))
	for _, err := range f.Errors {
		parts = append(parts, err.String())
	}
	return fmt.Sprintf("%s: %s", f.Type, strings.Join(parts, "; "))
}

// Is lets errors.Is match a Failure against the storage sentinels.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return f.Type == NotFound
	case ErrDuplicate:
		return f.Type == Conflict
	case ErrInvalidInput:
		return f.Type == Validation || f.Type == Aggregate
	}
	return false
}

// WithType returns a copy of f reclassified as t.
func (f *Failure) WithType(t ErrorType) *Failure {
	return NewFailure(t, f.Errors...)
}

// Codes lists the error codes of f in order.
func (f *Failure) Codes() []string {
	codes := make([]string, 0, len(f.Errors))
	for _, err := range f.Errors {
		codes = append(codes, err.Code)
	}
	return codes
}

// Validationf is shorthand for a single-error Validation failure.
func Validationf(code, format string, args ...any) *Failure {
	return NewFailure(Validation, NewError(code, fmt.Sprintf(format, args...)))
}

// NotFoundf is shorthand for a single-error NotFound failure.
func NotFoundf(format string, args ...any) *Failure {
	return NewFailure(NotFound, NewError("NotFound", fmt.Sprintf(format, args...)))
}

// Conflictf is shorthand for a single-error Conflict failure.
func Conflictf(code, format string, args ...any) *Failure {
	return NewFailure(Conflict, NewError(code, fmt.Sprintf(format, args...)))
}

// Unauthorizedf is shorthand for a single-error Unauthorized failure.
func Unauthorizedf(format string, args ...any) *Failure {
	return NewFailure(Unauthorized, NewError("Unauthorized", fmt.Sprintf(format, args...)))
}

// coder is implemented by errors that carry their own code.
type coder interface {
	Code() string
}

// FromError classifies err. Failures are returned as they are, storage
// sentinels keep their meaning and anything else becomes Internal.
func FromError(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewFailure(NotFound, NewError("NotFound", err.Error()))
	case errors.Is(err, ErrDuplicate):
		return NewFailure(Conflict, NewError("Conflict", err.Error()))
	case errors.Is(err, ErrInvalidInput):
		return NewFailure(Validation, NewError("Validation", err.Error()))
	}
	return NewFailure(Internal, NewError(errorCode(err), err.Error()))
}

func errorCode(err error) string {
	var c coder
	if errors.As(err, &c) && strings.TrimSpace(c.Code()) != "" {
		return c.Code()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "Internal"
	}
	return t.Name()
}

// Combine merges every failing input into one Aggregate failure, keeping
// input order. It returns nil when all inputs are nil.
func Combine(errs ...error) error {
	var collected []Error
	for _, err := range errs {
		if err == nil {
			continue
		}
		collected = append(collected, FromError(err).Errors...)
	}
	if len(collected) == 0 {
		return nil
	}
	return NewFailure(Aggregate, collected...)
}

// TypeOf reports the ErrorType of err, None for nil.
func TypeOf(err error) ErrorType {
	if err == nil {
		return None
	}
	return FromError(err).Type
}
