// Package errs defines the closed error taxonomy of the talc language.
//
// Every fallible operation in the core returns either a value or one of
// these coded errors; there is no separate exception channel. Two codes,
// UnhandledBreak and UnhandledEnd, are reserved for non-local control flow
// and travel the same channel as real failures.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies one failure kind. Codes are partitioned by numeric range:
// 1xx parse, 2xx expression kind, 3xx function, 4xx variable, 5xx numeric,
// 6xx control-flow signals.
type Code int

const (
	// Parse errors.
	ParseEmpty          Code = 101
	ParseMalformedToken Code = 102
	ParseIncomplete     Code = 103
	ParseInvalidName    Code = 104
	ParseInvalidNumber  Code = 105

	// Expression kind errors.
	KindMismatch Code = 201

	// Function errors.
	FunctionUnknown Code = 301
	FunctionUsage   Code = 302

	// Variable errors.
	VariableUnbound Code = 401

	// Numeric errors.
	NumericDivideByZero Code = 501

	// Control-flow signals, only ever produced by break/end.
	UnhandledBreak Code = 601
	UnhandledEnd   Code = 602
)

// Category returns the range name of the code.
func (c Code) Category() string {
	switch {
	case c >= 100 && c < 200:
		return "parse"
	case c >= 200 && c < 300:
		return "expression"
	case c >= 300 && c < 400:
		return "function"
	case c >= 400 && c < 500:
		return "variable"
	case c >= 500 && c < 600:
		return "numeric"
	case c >= 600 && c < 700:
		return "signal"
	default:
		return "unknown"
	}
}

// Error is a coded failure with an optional free-text message.
type Error struct {
	Code    Code
	Message string
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error renders the full "what" text: category, code and message.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s:%d", e.Code.Category(), e.Code)
	}
	return fmt.Sprintf("%s:%d: %s", e.Code.Category(), e.Code, e.Message)
}

func (e *Error) Category() string {
	return e.Code.Category()
}

// Coded is satisfied by any error carrying a taxonomy code. Both *Error and
// the evaluator's control-flow signals implement it.
type Coded interface {
	error
	ErrCode() Code
}

func (e *Error) ErrCode() Code { return e.Code }

var _ Coded = (*Error)(nil)

// CodeOf extracts the taxonomy code from an error chain, or 0 when the
// error carries none.
func CodeOf(err error) Code {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrCode()
	}
	return 0
}
