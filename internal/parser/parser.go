// Package parser turns program source text into an ast.Program.
//
//	program    = "function" ident "(" [input {"," input}] ")" "{" {statement} "}"
//	input      = ident ":" ident
//	statement  = "let" ident "=" expression ";"
//	expression = value [operator expression]
//	value      = integer | ident | "(" expression ")"
//
// Binary expressions nest to the right, so `7u8 + 3u8 * 2u8` is
// `7u8 + (3u8 * 2u8)`.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

const (
	keywordFunction = "function"
	keywordLet      = "let"

	// maxDepth bounds parenthesis nesting so recursion stays shallow.
	maxDepth = 256
)

// Error is a syntax error at a source position.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parser consumes tokens produced by the lexer and builds a Program.
type Parser struct {
	tokens      []Token
	current     int
	depth       int
	defaultType ast.IntType
}

// Parse parses src, giving unsuffixed literals the default u8 width.
func Parse(src string) (*ast.Program, error) {
	return ParseWithType(src, ast.DefaultIntType)
}

// ParseWithType parses src, giving unsuffixed literals the width defaultType.
func ParseWithType(src string, defaultType ast.IntType) (*ast.Program, error) {
	p := &Parser{
		tokens:      NewLexer(src).Tokenize(),
		defaultType: defaultType,
	}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	if _, err := p.expectKeyword(keywordFunction); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	program := &ast.Program{Name: name.Value}

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	if !p.check(TokenRParen) {
		for {
			in, err := p.parseInput()
			if err != nil {
				return nil, err
			}
			program.Inputs = append(program.Inputs, in)
			if !p.check(TokenComma) {
				break
			}
			p.current++
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	for !p.check(TokenRBrace) {
		if p.check(TokenEOF) {
			return nil, p.errorf(p.peek(), "expected '}' before end of input")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	p.current++

	if !p.check(TokenEOF) {
		return nil, p.errorf(p.peek(), "unexpected %s after function body", p.peek().Type)
	}
	return program, nil
}

func (p *Parser) parseInput() (ast.Input, error) {
	name, err := p.expectIdent()
	if err != nil {
		return ast.Input{}, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return ast.Input{}, err
	}
	typ, err := p.expectIdent()
	if err != nil {
		return ast.Input{}, err
	}
	return ast.Input{Name: name.Value, Type: typ.Value}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	let, err := p.expectKeyword(keywordLet)
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenAssign); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Name: name.Value, Expr: expr, Line: let.Line}, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	var (
		values []ast.Value
		ops    []ast.Operator
	)
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		op, ok := operatorFor(p.peek().Type)
		if !ok {
			break
		}
		p.current++
		ops = append(ops, op)
	}

	// a flat chain nests to the right: a + b * c is a + (b * c)
	var expr ast.Expression = ast.ValueExpr{Val: values[len(values)-1]}
	for i := len(ops) - 1; i >= 0; i-- {
		expr = ast.BinaryExpr{Left: values[i], Op: ops[i], Right: expr}
	}
	return expr, nil
}

func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenInteger:
		p.current++
		return p.parseInteger(tok)
	case TokenIdent:
		if isKeyword(tok.Value) {
			return nil, p.errorf(tok, "unexpected keyword %q", tok.Value)
		}
		p.current++
		return ast.IdentifierValue{Name: tok.Value}, nil
	case TokenLParen:
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxDepth {
			return nil, p.errorf(tok, "expression nested too deeply")
		}
		p.current++
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return ast.ExpressionValue{Expr: inner}, nil
	default:
		return nil, p.errorf(tok, "expected value, found %s", describe(tok))
	}
}

func (p *Parser) parseInteger(tok Token) (ast.Value, error) {
	digits := tok.Value
	suffix := ""
	if i := strings.IndexFunc(tok.Value, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits, suffix = tok.Value[:i], tok.Value[i:]
	}

	typ := p.defaultType
	if suffix != "" {
		t, ok := ast.ParseIntType(suffix)
		if !ok {
			return nil, p.errorf(tok, "unknown integer type %q", suffix)
		}
		typ = t
	}

	val, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || val > typ.Max() {
		return nil, p.errorf(tok, "integer literal %s out of range for %s", tok.Value, typ)
	}
	return ast.IntegerValue{Val: val, Type: typ}, nil
}

func operatorFor(t TokenType) (ast.Operator, bool) {
	switch t {
	case TokenPlus:
		return ast.OpAdd, true
	case TokenMinus:
		return ast.OpSub, true
	case TokenStar:
		return ast.OpMul, true
	case TokenSlash:
		return ast.OpDiv, true
	}
	return 0, false
}

func isKeyword(s string) bool {
	return s == keywordFunction || s == keywordLet
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) check(t TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, p.errorf(tok, "expected %s, found %s", t, describe(tok))
	}
	p.current++
	return tok, nil
}

func (p *Parser) expectIdent() (Token, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return tok, err
	}
	if isKeyword(tok.Value) {
		return tok, p.errorf(tok, "unexpected keyword %q", tok.Value)
	}
	return tok, nil
}

func (p *Parser) expectKeyword(kw string) (Token, error) {
	tok := p.peek()
	if tok.Type != TokenIdent || tok.Value != kw {
		return tok, p.errorf(tok, "expected %q, found %s", kw, describe(tok))
	}
	p.current++
	return tok, nil
}

func (p *Parser) errorf(tok Token, format string, args ...any) *Error {
	return &Error{Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf(format, args...)}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return tok.Type.String()
	case TokenIdent, TokenInteger, TokenIllegal:
		return fmt.Sprintf("%s %q", tok.Type, tok.Value)
	default:
		return tok.Type.String()
	}
}
