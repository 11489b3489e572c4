package fold

import (
	"fmt"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

// Program folds the expression of every statement in p.
//
// Statements are folded independently and in order. A statement whose fold
// succeeds has its expression replaced; a statement whose fold fails keeps
// its original expression and contributes one entry to the returned Errors.
// Program returns nil when every statement folded.
func Program(p *ast.Program) error {
	var errs Errors

	for i, stmt := range p.Statements {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			folded, err := foldExpression(s.Expr)
			if err != nil {
				errs = append(errs, &StatementError{Index: i, Name: s.Name, Line: s.Line, Err: err})
				continue
			}
			s.Expr = folded
		default:
			errs = append(errs, &StatementError{
				Index: i,
				Err:   InvalidOperation(fmt.Sprintf("cannot fold statement %T", stmt)),
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Expression returns a folded copy of expr. The input is not modified.
func Expression(expr ast.Expression) (ast.Expression, error) {
	folded, err := foldExpression(expr)
	if err != nil {
		return nil, err
	}
	return folded, nil
}

// Value returns a folded copy of v. The input is not modified.
func Value(v ast.Value) (ast.Value, error) {
	folded, err := foldValue(v)
	if err != nil {
		return nil, err
	}
	return folded, nil
}

func foldExpression(expr ast.Expression) (ast.Expression, *Error) {
	switch e := expr.(type) {
	case ast.ValueExpr:
		v, err := foldValue(e.Val)
		if err != nil {
			return nil, err
		}
		return ast.ValueExpr{Val: v}, nil

	case ast.BinaryExpr:
		left, err := foldValue(e.Left)
		if err != nil {
			return nil, err
		}
		// the right side is folded even when the left is not a constant
		right, err := foldExpression(e.Right)
		if err != nil {
			return nil, err
		}

		if l, ok := left.(ast.IntegerValue); ok {
			if rv, ok := right.(ast.ValueExpr); ok {
				r, ok := rv.Val.(ast.IntegerValue)
				if !ok {
					return nil, TypeMismatch("Integer", rv.Val.Debug())
				}
				result, err := evalInteger(e.Op, l, r)
				if err != nil {
					return nil, err
				}
				return ast.ValueExpr{Val: result}, nil
			}
		}

		return ast.BinaryExpr{Left: left, Op: e.Op, Right: right}, nil

	default:
		return nil, UnsupportedExpression(expr)
	}
}

func foldValue(v ast.Value) (ast.Value, *Error) {
	switch val := v.(type) {
	case ast.IntegerValue, ast.IdentifierValue:
		return val, nil

	case ast.ExpressionValue:
		inner, err := foldExpression(val.Expr)
		if err != nil {
			return nil, err
		}
		if ve, ok := inner.(ast.ValueExpr); ok {
			return ve.Val, nil
		}
		return ast.ExpressionValue{Expr: inner}, nil

	default:
		return nil, UnsupportedExpression(ast.ValueExpr{Val: v})
	}
}
