package fold

import (
	"fmt"
	"strings"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

// Kind identifies the cause of a fold failure.
type Kind int

const (
	_ Kind = iota
	KindOverflow
	KindUnderflow
	KindDivisionByZero
	KindInvalidOperation
	KindUnsupportedExpression
	KindTypeMismatch
)

func (k Kind) String() string {
	switch k {
	case KindOverflow:
		return "overflow"
	case KindUnderflow:
		return "underflow"
	case KindDivisionByZero:
		return "division-by-zero"
	case KindInvalidOperation:
		return "invalid-operation"
	case KindUnsupportedExpression:
		return "unsupported-expression"
	case KindTypeMismatch:
		return "type-mismatch"
	default:
		return "unknown"
	}
}

// Error is a failure raised while folding a single expression.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind     Kind
	Message  string         // KindInvalidOperation
	Expr     ast.Expression // KindUnsupportedExpression
	Expected string         // KindTypeMismatch
	Found    string         // KindTypeMismatch
}

var (
	ErrOverflow       = &Error{Kind: KindOverflow}
	ErrUnderflow      = &Error{Kind: KindUnderflow}
	ErrDivisionByZero = &Error{Kind: KindDivisionByZero}
)

// InvalidOperation reports an operation that cannot be carried out.
func InvalidOperation(msg string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: msg}
}

// FromString wraps a lower-level failure message as an invalid operation.
func FromString(msg string) *Error {
	return InvalidOperation(msg)
}

// UnsupportedExpression reports an expression the folder does not handle.
func UnsupportedExpression(expr ast.Expression) *Error {
	return &Error{Kind: KindUnsupportedExpression, Expr: expr}
}

// TypeMismatch reports an operand of the wrong shape or width.
func TypeMismatch(expected, found string) *Error {
	return &Error{Kind: KindTypeMismatch, Expected: expected, Found: found}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOverflow:
		return "Overflow occurred during operation"
	case KindUnderflow:
		return "Underflow occurred during operation"
	case KindDivisionByZero:
		return "Division by zero"
	case KindInvalidOperation:
		return "Invalid operation: " + e.Message
	case KindUnsupportedExpression:
		found := "<nil>"
		if e.Expr != nil {
			found = e.Expr.Debug()
		}
		return "Unsupported expression: " + found
	case KindTypeMismatch:
		return fmt.Sprintf("Type mismatch: expected %s, but found %s", e.Expected, e.Found)
	default:
		return "unknown fold error"
	}
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrOverflow)
// holds for every overflow.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// StatementError ties a fold failure to the statement it came from.
type StatementError struct {
	Index int // position in Program.Statements
	Name  string
	Line  int
	Err   *Error
}

func (e *StatementError) Error() string {
	return e.Err.Error()
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Errors lists the failed statements of one program, in statement order.
// A returned Errors value is never empty.
type Errors []*StatementError

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (es Errors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}
