// Package cqltext parses the CQL2 text encoding into a pkg/ir Expression
// tree: a hand-written lexer over pkg/token feeding a recursive-descent
// parser that climbs CQL2's operator-precedence ladder (OR, AND, NOT,
// predicates, arithmetic, power, unary, primary) directly, the way the
// standard library's own expression parsers (go/parser, text/template)
// are structured.
package cqltext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/geocql/cql2/pkg/cql2err"
	"github.com/geocql/cql2/pkg/token"
)

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			toks = append(toks, token.Token{Type: token.EOF, Pos: l.position()})
			return toks, nil
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func (l *lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// skipSpace consumes ASCII and the CQL2-grammar's extended Unicode
// whitespace set between tokens.
func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isCQLSpace(r) {
			return
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
}

func isCQLSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u0085', '\u00A0':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func (l *lexer) next() (token.Token, error) {
	start := l.position()
	b := l.peekByte()

	switch {
	case b == '\'':
		return l.stringLiteral(start)
	case b == '"':
		return l.quotedIdent(start)
	case isDigit(b):
		return l.number(start)
	case b == '.' && isDigit(l.peekAt(1)):
		return l.number(start)
	case isIdentStart(rune(b)) || b >= 0x80:
		return l.ident(start)
	default:
		return l.punct(start)
	}
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}

func (l *lexer) stringLiteral(start token.Position) (token.Token, error) {
	l.advance() // opening '
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, cql2err.At(cql2err.KindSyntax, start, "unterminated string literal")
		}
		if l.peekByte() == '\'' {
			l.advance()
			if l.peekByte() == '\'' { // '' escapes a literal quote
				l.advance()
				b.WriteByte('\'')
				continue
			}
			return token.Token{Type: token.STRING, Literal: b.String(), Pos: start}, nil
		}
		if l.peekByte() == '\\' && l.peekAt(1) == '\'' {
			l.advance()
			l.advance()
			b.WriteByte('\'')
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		for i := 0; i < size; i++ {
			l.advance()
		}
		b.WriteRune(r)
	}
}

func (l *lexer) quotedIdent(start token.Position) (token.Token, error) {
	l.advance() // opening "
	var b strings.Builder
	b.WriteByte('"')
	for {
		if l.pos >= len(l.src) {
			return token.Token{}, cql2err.At(cql2err.KindSyntax, start, "unterminated quoted identifier")
		}
		if l.peekByte() == '"' {
			l.advance()
			b.WriteByte('"')
			return token.Token{Type: token.IDENT, Literal: b.String(), Pos: start}, nil
		}
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		for i := 0; i < size; i++ {
			l.advance()
		}
		b.WriteRune(r)
	}
}

func (l *lexer) number(start token.Position) (token.Token, error) {
	var b strings.Builder
	for isDigit(l.peekByte()) {
		b.WriteByte(l.advance())
	}
	if l.peekByte() == '.' {
		b.WriteByte(l.advance())
		for isDigit(l.peekByte()) {
			b.WriteByte(l.advance())
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		b.WriteByte(l.advance())
		if l.peekByte() == '+' || l.peekByte() == '-' {
			b.WriteByte(l.advance())
		}
		for isDigit(l.peekByte()) {
			b.WriteByte(l.advance())
		}
	}
	return token.Token{Type: token.NUMBER, Literal: b.String(), Pos: start}, nil
}

func (l *lexer) ident(start token.Position) (token.Token, error) {
	var b strings.Builder
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentCont(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
		b.WriteRune(r)
	}
	lit := b.String()
	if kw, ok := token.LookupKeyword(strings.ToUpper(lit)); ok {
		return token.Token{Type: kw, Literal: lit, Pos: start}, nil
	}
	return token.Token{Type: token.IDENT, Literal: lit, Pos: start}, nil
}

func (l *lexer) punct(start token.Position) (token.Token, error) {
	b := l.advance()
	switch b {
	case '(':
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: start}, nil
	case ')':
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: start}, nil
	case '[':
		return token.Token{Type: token.LBRACKET, Literal: "[", Pos: start}, nil
	case ']':
		return token.Token{Type: token.RBRACKET, Literal: "]", Pos: start}, nil
	case ',':
		return token.Token{Type: token.COMMA, Literal: ",", Pos: start}, nil
	case '+':
		return token.Token{Type: token.PLUS, Literal: "+", Pos: start}, nil
	case '-':
		return token.Token{Type: token.MINUS, Literal: "-", Pos: start}, nil
	case '*':
		return token.Token{Type: token.STAR, Literal: "*", Pos: start}, nil
	case '/':
		return token.Token{Type: token.SLASH, Literal: "/", Pos: start}, nil
	case '%':
		return token.Token{Type: token.PERCENT, Literal: "%", Pos: start}, nil
	case '^':
		return token.Token{Type: token.CARET, Literal: "^", Pos: start}, nil
	case '=':
		return token.Token{Type: token.EQ, Literal: "=", Pos: start}, nil
	case '.':
		return token.Token{Type: token.DOT, Literal: ".", Pos: start}, nil
	case '<':
		if l.peekByte() == '=' {
			l.advance()
			return token.Token{Type: token.LTE, Literal: "<=", Pos: start}, nil
		}
		if l.peekByte() == '>' {
			l.advance()
			return token.Token{Type: token.NEQ, Literal: "<>", Pos: start}, nil
		}
		return token.Token{Type: token.LT, Literal: "<", Pos: start}, nil
	case '>':
		if l.peekByte() == '=' {
			l.advance()
			return token.Token{Type: token.GTE, Literal: ">=", Pos: start}, nil
		}
		return token.Token{Type: token.GT, Literal: ">", Pos: start}, nil
	default:
		return token.Token{}, cql2err.At(cql2err.KindSyntax, start, "unexpected character %q", b)
	}
}
