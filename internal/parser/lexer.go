package parser

import (
	"fmt"
	"unicode/utf8"
)

// TokenType defines the kinds of tokens produced by the lexer.
type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenIllegal            // unrecognized character
	TokenIdent              // identifier or keyword
	TokenInteger            // integer literal, optionally suffixed (1u8)
	TokenLParen             // (
	TokenRParen             // )
	TokenLBrace             // {
	TokenRBrace             // }
	TokenComma              // ,
	TokenColon              // :
	TokenSemicolon          // ;
	TokenAssign             // =
	TokenPlus               // +
	TokenMinus              // -
	TokenStar               // *
	TokenSlash              // /
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIllegal:
		return "illegal character"
	case TokenIdent:
		return "identifier"
	case TokenInteger:
		return "integer"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	case TokenSemicolon:
		return "';'"
	case TokenAssign:
		return "'='"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token is a lexical token with its 1-based source position.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// Lexer scans source text into tokens.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

// NewLexer returns a Lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
	}
}

var punctuation = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
	'=': TokenAssign,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
}

// Tokenize scans the whole input. The last token is always TokenEOF.
func (l *Lexer) Tokenize() []Token {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case isWhitespace(c):
			l.advance()
		case c == '/' && l.peek(1) == '/':
			// line comment
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		case isDigit(c):
			l.lexWhile(TokenInteger, isIdentChar)
		case isIdentStart(c):
			l.lexWhile(TokenIdent, isIdentChar)
		default:
			if typ, ok := punctuation[c]; ok {
				l.addToken(typ, string(c), l.line, l.column)
				l.advance()
				continue
			}
			l.lexIllegal()
		}
	}

	l.addToken(TokenEOF, "", l.line, l.column)
	return l.tokens
}

// lexWhile consumes characters while accept holds. Integer tokens keep any
// trailing letters so that the suffix ("u8") travels with the digits.
func (l *Lexer) lexWhile(typ TokenType, accept func(byte) bool) {
	line, col := l.line, l.column
	start := l.pos
	for l.pos < len(l.input) && accept(l.input[l.pos]) {
		l.advance()
	}
	l.addToken(typ, l.input[start:l.pos], line, col)
}

// lexIllegal consumes one whole rune, or a single byte of invalid UTF-8,
// as a TokenIllegal.
func (l *Lexer) lexIllegal() {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	value := string(r)
	if r == utf8.RuneError && size == 1 {
		value = fmt.Sprintf("\\x%02x", l.input[l.pos])
	}
	l.addToken(TokenIllegal, value, l.line, l.column)
	l.pos += size
	l.column++
}

func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) addToken(typ TokenType, value string, line, col int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Line: line, Column: col})
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
