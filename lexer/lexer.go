// Package lexer turns Axiom source text into a token.Token stream.
//
// The scanning style is a rune cursor with an explicit (line, column)
// position, a strings.Builder for accumulating multi-character lexemes, and
// a lookup table for deciding keyword-vs-identifier after the fact. Axiom's
// token set is small enough that hand-written scanning reads more plainly
// than a table-driven approach.
package lexer

import (
	"strings"
	"unicode"

	"github.com/axiomlang/axiom/source"
	"github.com/axiomlang/axiom/token"
)

// Lex scans s in full and returns every token found, including Unknown
// tokens for unrecognized characters. Lexing never fails; callers treat
// Unknown tokens as syntax errors.
func Lex(s string) []token.Token {
	l := &lexer{
		runes: []rune(s),
		line:  0,
		col:   0,
	}
	return l.run()
}

type lexer struct {
	runes []rune
	cur   int

	// zero-based.
	line uint32
	col  uint32
}

func (l *lexer) run() []token.Token {
	var toks []token.Token
	for {
		l.skipWhitespace()
		if l.atEnd() {
			break
		}

		start := l.pos()
		c := l.peek()

		switch {
		case unicode.IsDigit(c):
			toks = append(toks, l.lexNumber(start))
		case isIdentStart(c):
			toks = append(toks, l.lexIdentOrKeyword(start))
		case c == '(' || c == ')' || c == '{' || c == '}':
			toks = append(toks, l.lexParen(start))
		case c == ',' || c == ':' || c == '?':
			toks = append(toks, l.lexPunct(start))
		default:
			if tok, ok := l.lexOperator(start); ok {
				toks = append(toks, tok)
			} else {
				ch := l.advance()
				toks = append(toks, token.Token{
					Kind:  token.Unknown,
					Range: source.NewRange(start),
					Char:  ch,
				})
			}
		}
	}
	return toks
}

func (l *lexer) atEnd() bool {
	return l.cur >= len(l.runes)
}

func (l *lexer) pos() source.Position {
	return source.Position{Line: l.line, Column: l.col}
}

func (l *lexer) peek() rune {
	return l.runes[l.cur]
}

func (l *lexer) peekAt(offset int) (rune, bool) {
	i := l.cur + offset
	if i < 0 || i >= len(l.runes) {
		return 0, false
	}
	return l.runes[i], true
}

// advance consumes and returns the current rune, updating line/column.
// Column resets to 0 after a newline is consumed, i.e. the reset happens
// *after* the '\n' itself is consumed, not before.
func (l *lexer) advance() rune {
	c := l.runes[l.cur]
	l.cur++
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c)
}

func isIdentBody(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (l *lexer) lexNumber(start source.Position) token.Token {
	var sb strings.Builder
	for !l.atEnd() && unicode.IsDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	return token.Token{
		Kind:  token.Number,
		Range: source.Range{Start: start, End: l.lastPos()},
		Text:  sb.String(),
	}
}

func (l *lexer) lexIdentOrKeyword(start source.Position) token.Token {
	var sb strings.Builder
	for !l.atEnd() && isIdentBody(l.peek()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	rng := source.Range{Start: start, End: l.lastPos()}

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: token.Keyword, Range: rng, KeywordKind: kw}
	}
	return token.Token{Kind: token.Identifier, Range: rng, Text: text}
}

func (l *lexer) lexParen(start source.Position) token.Token {
	c := l.advance()
	shape := token.Round
	state := token.Opening
	switch c {
	case '(':
		shape, state = token.Round, token.Opening
	case ')':
		shape, state = token.Round, token.Closing
	case '{':
		shape, state = token.Curly, token.Opening
	case '}':
		shape, state = token.Curly, token.Closing
	}
	return token.Token{
		Kind:       token.Parenthesis,
		Range:      source.NewRange(start),
		ParenShape: shape,
		ParenState: state,
	}
}

func (l *lexer) lexPunct(start source.Position) token.Token {
	c := l.advance()
	var kind token.PunctKind
	switch c {
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '?':
		kind = token.QuestionMark
	}
	return token.Token{
		Kind:      token.Punctuation,
		Range:     source.NewRange(start),
		PunctKind: kind,
	}
}

// lastPos returns the position just consumed, i.e. the end of the lexeme
// that ends at l.cur. Numbers and identifiers are maximal runs, so the end
// of their Range is the position of the last rune actually consumed.
func (l *lexer) lastPos() source.Position {
	col := l.col
	if col > 0 {
		col--
	}
	return source.Position{Line: l.line, Column: col}
}

// lexOperator performs single-character lookahead with at most two
// continuation characters (for "<<=" and ">>="-shaped operators). It
// returns false if c does not begin any operator, leaving the cursor
// untouched so the caller can fall through to Unknown.
func (l *lexer) lexOperator(start source.Position) (token.Token, bool) {
	c := l.peek()

	mk := func(k token.OpKind, width int) token.Token {
		for i := 0; i < width; i++ {
			l.advance()
		}
		return token.Token{
			Kind:       token.Operator,
			Range:      source.Range{Start: start, End: l.lastPos()},
			OpCategory: k.Category(),
			OpKind:     k,
		}
	}

	next, hasNext := l.peekAt(1)

	switch c {
	case '+':
		if hasNext && next == '=' {
			return mk(token.OpAddAssign, 2), true
		}
		if hasNext && next == '+' {
			return mk(token.OpIncrement, 2), true
		}
		return mk(token.OpAdd, 1), true
	case '-':
		if hasNext && next == '=' {
			return mk(token.OpSubAssign, 2), true
		}
		if hasNext && next == '-' {
			return mk(token.OpDecrement, 2), true
		}
		return mk(token.OpSub, 1), true
	case '*':
		if hasNext && next == '=' {
			return mk(token.OpMulAssign, 2), true
		}
		return mk(token.OpMul, 1), true
	case '/':
		if hasNext && next == '=' {
			return mk(token.OpDivAssign, 2), true
		}
		return mk(token.OpDiv, 1), true
	case '=':
		if hasNext && next == '=' {
			return mk(token.OpEqual, 2), true
		}
		return mk(token.OpAssign, 1), true
	case '!':
		if hasNext && next == '=' {
			return mk(token.OpNotEqual, 2), true
		}
		return mk(token.OpNot, 1), true
	case '>':
		if hasNext && next == '=' {
			return mk(token.OpGreaterEqual, 2), true
		}
		if hasNext && next == '>' {
			third, hasThird := l.peekAt(2)
			if hasThird && third == '=' {
				return mk(token.OpShrAssign, 3), true
			}
			return mk(token.OpShr, 2), true
		}
		return mk(token.OpGreater, 1), true
	case '<':
		if hasNext && next == '=' {
			return mk(token.OpLessEqual, 2), true
		}
		if hasNext && next == '<' {
			third, hasThird := l.peekAt(2)
			if hasThird && third == '=' {
				return mk(token.OpShlAssign, 3), true
			}
			return mk(token.OpShl, 2), true
		}
		return mk(token.OpLess, 1), true
	case '|':
		if hasNext && next == '|' {
			third, hasThird := l.peekAt(2)
			if hasThird && third == '=' {
				return mk(token.OpLogicalOrAssign, 3), true
			}
			return mk(token.OpLogicalOr, 2), true
		}
		if hasNext && next == '=' {
			return mk(token.OpBitOrAssign, 2), true
		}
		return mk(token.OpBitOr, 1), true
	case '&':
		if hasNext && next == '&' {
			third, hasThird := l.peekAt(2)
			if hasThird && third == '=' {
				return mk(token.OpLogicalAndAssign, 3), true
			}
			return mk(token.OpLogicalAnd, 2), true
		}
		if hasNext && next == '=' {
			return mk(token.OpBitAndAssign, 2), true
		}
		return mk(token.OpBitAnd, 1), true
	default:
		return token.Token{}, false
	}
}
