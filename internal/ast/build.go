package ast

// Helper functions to construct AST nodes

// Int creates an integer literal value of the given width.
func Int(v uint64, t IntType) Value {
	return IntegerValue{Val: v, Type: t}
}

// Lit8 creates a u8 literal value.
func Lit8(v uint8) Value {
	return IntegerValue{Val: uint64(v), Type: U8}
}

// Ident creates an identifier value.
func Ident(name string) Value {
	return IdentifierValue{Name: name}
}

// Paren wraps an expression as a parenthesized value.
func Paren(e Expression) Value {
	return ExpressionValue{Expr: e}
}

// Val creates a single-value expression.
func Val(v Value) Expression {
	return ValueExpr{Val: v}
}

// Bin creates a binary expression.
func Bin(left Value, op Operator, right Expression) Expression {
	return BinaryExpr{Left: left, Op: op, Right: right}
}

// Let creates an assignment statement.
func Let(name string, e Expression) *AssignStmt {
	return &AssignStmt{Name: name, Expr: e}
}

// Equal reports whether two expressions are structurally identical.
func Equal(a, b Expression) bool {
	switch x := a.(type) {
	case ValueExpr:
		y, ok := b.(ValueExpr)
		return ok && ValueEqual(x.Val, y.Val)
	case BinaryExpr:
		y, ok := b.(BinaryExpr)
		return ok && x.Op == y.Op && ValueEqual(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return a == nil && b == nil
	}
}

// ValueEqual reports whether two values are structurally identical.
func ValueEqual(a, b Value) bool {
	switch x := a.(type) {
	case IntegerValue:
		y, ok := b.(IntegerValue)
		return ok && x == y
	case IdentifierValue:
		y, ok := b.(IdentifierValue)
		return ok && x == y
	case ExpressionValue:
		y, ok := b.(ExpressionValue)
		return ok && Equal(x.Expr, y.Expr)
	default:
		return a == nil && b == nil
	}
}

// ProgramEqual compares name, inputs and statements of two programs.
// Source lines are ignored.
func ProgramEqual(a, b *Program) bool {
	if a.Name != b.Name || len(a.Inputs) != len(b.Inputs) || len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Inputs {
		if a.Inputs[i] != b.Inputs[i] {
			return false
		}
	}
	for i := range a.Statements {
		sa, okA := a.Statements[i].(*AssignStmt)
		sb, okB := b.Statements[i].(*AssignStmt)
		if !okA || !okB || sa.Name != sb.Name || !Equal(sa.Expr, sb.Expr) {
			return false
		}
	}
	return true
}
