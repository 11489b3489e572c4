// Package ast defines the program tree consumed and rewritten by the
// constant folding pass.
//
// A Program is a named function holding typed inputs and an ordered list of
// assignment statements. Expressions are right-heavy: a binary expression
// always has a bare Value on the left and a full Expression on the right, so
// `a + b * c` is represented as `a + (b * c)`.
package ast

import (
	"fmt"
	"strings"
)

// IntType is the declared width of an unsigned integer literal.
type IntType int

const (
	_ IntType = iota
	U8
	U16
	U32
	U64
)

// DefaultIntType is the width given to literals written without a suffix.
const DefaultIntType = U8

func (t IntType) String() string {
	switch t {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return "?"
	}
}

// Max returns the largest value representable by the type.
func (t IntType) Max() uint64 {
	switch t {
	case U8:
		return 1<<8 - 1
	case U16:
		return 1<<16 - 1
	case U32:
		return 1<<32 - 1
	case U64:
		return 1<<64 - 1
	default:
		return 0
	}
}

// ParseIntType maps a literal suffix such as "u8" to its IntType.
func ParseIntType(s string) (IntType, bool) {
	switch s {
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	}
	return 0, false
}

// Operator is one of the four arithmetic operators.
type Operator int

const (
	_ Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Name returns the operator's variant name, as used in debug output.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Subtract"
	case OpMul:
		return "Multiply"
	case OpDiv:
		return "Divide"
	default:
		return "Unknown"
	}
}

// Value is an operand: an integer literal, an identifier, or a
// parenthesized expression.
type Value interface {
	isValue()
	String() string
	Debug() string
}

// IntegerValue is an unsigned integer literal of a fixed width.
type IntegerValue struct {
	Val  uint64
	Type IntType
}

func (IntegerValue) isValue() {}
func (v IntegerValue) String() string {
	return fmt.Sprintf("%d%s", v.Val, v.Type)
}

func (v IntegerValue) Debug() string {
	return fmt.Sprintf("Integer(%d)", v.Val)
}

// IdentifierValue is an unresolved reference to a name.
type IdentifierValue struct {
	Name string
}

func (IdentifierValue) isValue() {}
func (v IdentifierValue) String() string {
	return v.Name
}

func (v IdentifierValue) Debug() string {
	return fmt.Sprintf("Identifier(%q)", v.Name)
}

// ExpressionValue wraps a parenthesized sub-expression.
type ExpressionValue struct {
	Expr Expression
}

func (ExpressionValue) isValue() {}
func (v ExpressionValue) String() string {
	return "(" + v.Expr.String() + ")"
}

func (v ExpressionValue) Debug() string {
	return "Expression(" + v.Expr.Debug() + ")"
}

// Expression is either a single Value or a binary operation.
type Expression interface {
	isExpression()
	String() string
	Debug() string
}

// ValueExpr is an expression consisting of exactly one value.
type ValueExpr struct {
	Val Value
}

func (ValueExpr) isExpression() {}
func (e ValueExpr) String() string {
	return e.Val.String()
}

func (e ValueExpr) Debug() string {
	return "Value(" + e.Val.Debug() + ")"
}

// BinaryExpr applies Op to a value on the left and an expression on the right.
type BinaryExpr struct {
	Left  Value
	Op    Operator
	Right Expression
}

func (BinaryExpr) isExpression() {}
func (e BinaryExpr) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

func (e BinaryExpr) Debug() string {
	return fmt.Sprintf("Binary { left: %s, operator: %s, right: %s }",
		e.Left.Debug(), e.Op.Name(), e.Right.Debug())
}

// Statement is a single statement of a program body.
type Statement interface {
	isStatement()
	String() string
}

// AssignStmt binds Name to the value of Expr: `let name = expr;`
type AssignStmt struct {
	Name string
	Expr Expression
	Line int // 1-based source line, zero when unknown
}

func (*AssignStmt) isStatement() {}
func (s *AssignStmt) String() string {
	return "let " + s.Name + " = " + s.Expr.String() + ";"
}

// Input is a typed function parameter.
type Input struct {
	Name string
	Type string
}

func (in Input) String() string {
	return in.Name + ": " + in.Type
}

// Program is a named function with inputs and a body of statements.
type Program struct {
	Name       string
	Inputs     []Input
	Statements []Statement
}

// String renders the program back to source form.
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(p.Name)
	b.WriteString("(")
	for i, in := range p.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.String())
	}
	b.WriteString(") {\n")
	for _, stmt := range p.Statements {
		b.WriteString("    ")
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
