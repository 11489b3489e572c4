package fold

import (
	"fmt"
	"math/bits"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

// Eval applies op to two integer literals of the same width using checked
// arithmetic. Results never wrap: anything outside [0, Type.Max()] fails.
func Eval(op ast.Operator, left, right ast.IntegerValue) (ast.IntegerValue, error) {
	result, err := evalInteger(op, left, right)
	if err != nil {
		return ast.IntegerValue{}, err
	}
	return result, nil
}

func evalInteger(op ast.Operator, left, right ast.IntegerValue) (ast.IntegerValue, *Error) {
	if left.Type != right.Type {
		return ast.IntegerValue{}, TypeMismatch(left.Type.String(), right.Type.String())
	}
	limit := left.Type.Max()

	var val uint64
	switch op {
	case ast.OpAdd:
		sum, carry := bits.Add64(left.Val, right.Val, 0)
		if carry != 0 || sum > limit {
			return ast.IntegerValue{}, ErrOverflow
		}
		val = sum

	case ast.OpSub:
		if right.Val > left.Val {
			return ast.IntegerValue{}, ErrUnderflow
		}
		val = left.Val - right.Val

	case ast.OpMul:
		hi, lo := bits.Mul64(left.Val, right.Val)
		if hi != 0 || lo > limit {
			return ast.IntegerValue{}, ErrOverflow
		}
		val = lo

	case ast.OpDiv:
		if right.Val == 0 {
			return ast.IntegerValue{}, ErrDivisionByZero
		}
		val = left.Val / right.Val

	default:
		return ast.IntegerValue{}, InvalidOperation(fmt.Sprintf("unknown operator %d", int(op)))
	}

	return ast.IntegerValue{Val: val, Type: left.Type}, nil
}
