package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

// every u8 operand pair, every operator
func TestEvalU8Exhaustive(t *testing.T) {
	t.Parallel()
	for a := 0; a <= 255; a++ {
		for b := 0; b <= 255; b++ {
			l := ast.IntegerValue{Val: uint64(a), Type: ast.U8}
			r := ast.IntegerValue{Val: uint64(b), Type: ast.U8}

			sum, err := Eval(ast.OpAdd, l, r)
			if a+b <= 255 {
				require.NoError(t, err)
				require.Equal(t, uint64(a+b), sum.Val)
			} else {
				require.ErrorIs(t, err, ErrOverflow, "%d + %d", a, b)
			}

			diff, err := Eval(ast.OpSub, l, r)
			if a >= b {
				require.NoError(t, err)
				require.Equal(t, uint64(a-b), diff.Val)
			} else {
				require.ErrorIs(t, err, ErrUnderflow, "%d - %d", a, b)
			}

			prod, err := Eval(ast.OpMul, l, r)
			if a*b <= 255 {
				require.NoError(t, err)
				require.Equal(t, uint64(a*b), prod.Val)
			} else {
				require.ErrorIs(t, err, ErrOverflow, "%d * %d", a, b)
			}

			quot, err := Eval(ast.OpDiv, l, r)
			if b == 0 {
				require.ErrorIs(t, err, ErrDivisionByZero, "%d / %d", a, b)
			} else {
				require.NoError(t, err)
				require.Equal(t, uint64(a/b), quot.Val)
				require.Equal(t, ast.U8, quot.Type)
			}
		}
	}
}

func TestEvalWideTypes(t *testing.T) {
	t.Parallel()
	maxU64 := ast.IntegerValue{Val: ast.U64.Max(), Type: ast.U64}
	one := ast.IntegerValue{Val: 1, Type: ast.U64}
	two := ast.IntegerValue{Val: 2, Type: ast.U64}

	_, err := Eval(ast.OpAdd, maxU64, one)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Eval(ast.OpMul, maxU64, two)
	assert.ErrorIs(t, err, ErrOverflow)

	res, err := Eval(ast.OpDiv, maxU64, maxU64)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Val)

	u32 := ast.IntegerValue{Val: 1 << 16, Type: ast.U32}
	_, err = Eval(ast.OpMul, u32, u32)
	assert.ErrorIs(t, err, ErrOverflow)

	res, err = Eval(ast.OpMul, u32, ast.IntegerValue{Val: 1<<16 - 1, Type: ast.U32})
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<32-1<<16), res.Val)
}

func TestEvalUnknownOperator(t *testing.T) {
	t.Parallel()
	one := ast.IntegerValue{Val: 1, Type: ast.U8}
	_, err := Eval(ast.Operator(42), one, one)
	assert.EqualError(t, err, "Invalid operation: unknown operator 42")
}
