package types

import "fmt"

// ErrorCode represents a goexpr error code.
type ErrorCode string

// Error codes.
const (
	// D0xxx: Evaluation errors
	ErrInvalidExpression ErrorCode = "D1000"

	// U0xxx: Runtime errors
	ErrUndefinedVariable ErrorCode = "U1001"

	// W0xxx: WebAssembly backend errors
	ErrCompileModule ErrorCode = "W0001"
	ErrExecuteModule ErrorCode = "W0002"
)

// Error represents a structured goexpr error.
type Error struct {
	Code    ErrorCode
	Message string
	Token   string
	Err     error
}

// NewError creates a new goexpr error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Token)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// UndefinedVariableError is returned when a Variable node is evaluated
// against a context that has no binding for its name. It is never produced
// while building or rendering a tree.
type UndefinedVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: undefined variable %q", ErrUndefinedVariable, e.Name)
}

// Code returns ErrUndefinedVariable.
func (e *UndefinedVariableError) Code() ErrorCode {
	return ErrUndefinedVariable
}
