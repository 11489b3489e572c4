// Package fold implements constant folding over ast programs.
//
// Any sub-expression whose operands are all integer literals is replaced by
// its computed literal. Sub-expressions that involve identifiers are folded
// as deeply as possible and otherwise left in place.
//
// Arithmetic is checked against the literal's declared width:
//   - overflow on + and * fails with ErrOverflow
//   - a negative result of - fails with ErrUnderflow
//   - division by a zero literal fails with ErrDivisionByZero
//
// Within a statement the first failure aborts that statement's fold and the
// original expression is kept. Across statements failures are collected, so
// one call always visits the whole program.
//
// Out of scope:
//   - propagating constants between statements
//   - dead-code elimination
//   - algebraic identities such as x * 1
//   - repeating the pass until a fixpoint is reached
package fold
