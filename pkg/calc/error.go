package calc

import (
	"errors"
	"fmt"
)

// Reason classifies an evaluation failure.
type Reason string

const (
	// ReasonSyntax covers malformed or out-of-grammar input.
	ReasonSyntax Reason = "syntax error"
	// ReasonDivisionByZero covers division by a zero-valued divisor.
	ReasonDivisionByZero Reason = "division by zero"
)

// EvalError reports why an expression could not be evaluated.
type EvalError struct {
	Reason Reason
	Detail string
}

func (e *EvalError) Error() string {
	if e == nil {
		return "evaluation error"
	}
	if e.Detail != "" && e.Detail != string(e.Reason) {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return string(e.Reason)
}

// IsSyntaxError reports whether err is a syntax failure.
func IsSyntaxError(err error) bool {
	var evalErr *EvalError
	return errors.As(err, &evalErr) && evalErr.Reason == ReasonSyntax
}

// IsDivisionByZero reports whether err is a division-by-zero failure.
func IsDivisionByZero(err error) bool {
	var evalErr *EvalError
	return errors.As(err, &evalErr) && evalErr.Reason == ReasonDivisionByZero
}

func syntaxError(detail string) *EvalError {
	return &EvalError{Reason: ReasonSyntax, Detail: detail}
}
