// Package parser implements Axiom's hand-written recursive-descent parser
// with explicit precedence climbing. Its shape is a cursor over a token
// slice exposing Peek/Next, with syntax errors built from the offending
// token's range, and one function per precedence level rather than a
// Pratt-style table.
package parser

import (
	"fmt"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/axiomerr"
	"github.com/axiomlang/axiom/source"
	"github.com/axiomlang/axiom/token"
	"github.com/axiomlang/axiom/types"
)

// Parse consumes the full token stream and returns the File root, or the
// first syntax error encountered. The parser fails fast with no error
// recovery.
func Parse(toks []token.Token) (*ast.File, error) {
	p := &parser{toks: toks}
	return p.parseFile()
}

type parser struct {
	toks []token.Token
	cur  int
}

func (p *parser) atEnd() bool {
	return p.cur >= len(p.toks)
}

func (p *parser) peek() (token.Token, bool) {
	if p.atEnd() {
		return token.Token{}, false
	}
	return p.toks[p.cur], true
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.cur++
	}
	return t, ok
}

func (p *parser) lastEnd() source.Position {
	if p.cur == 0 {
		return source.Position{}
	}
	return p.toks[p.cur-1].Range.End
}

func (p *parser) eofError() error {
	return axiomerr.UnexpectedEOF{At: p.lastEnd()}
}

func (p *parser) syntaxErrorAt(rng source.Range, format string, a ...any) error {
	return axiomerr.SyntaxError{Range: rng, Message: fmt.Sprintf(format, a...)}
}

// expectKeyword consumes the next token and requires it to be the given
// keyword.
func (p *parser) expectKeyword(kw token.KeywordKind) (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, p.eofError()
	}
	if t.Kind != token.Keyword || t.KeywordKind != kw {
		return token.Token{}, p.syntaxErrorAt(t.Range, "expected keyword %q, got %q", kw, t.Lexeme())
	}
	return t, nil
}

func (p *parser) expectIdentifier() (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, p.eofError()
	}
	if t.Kind != token.Identifier {
		return token.Token{}, p.syntaxErrorAt(t.Range, "expected identifier, got %q", t.Lexeme())
	}
	return t, nil
}

func (p *parser) expectPunct(kind token.PunctKind) (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, p.eofError()
	}
	if t.Kind != token.Punctuation || t.PunctKind != kind {
		return token.Token{}, p.syntaxErrorAt(t.Range, "expected %q, got %q", punctText(kind), t.Lexeme())
	}
	return t, nil
}

func punctText(k token.PunctKind) string {
	switch k {
	case token.Comma:
		return ","
	case token.Colon:
		return ":"
	default:
		return "?"
	}
}

func (p *parser) expectParen(shape token.ParenShape, state token.ParenState) (token.Token, error) {
	t, ok := p.next()
	if !ok {
		return token.Token{}, p.eofError()
	}
	if t.Kind != token.Parenthesis || t.ParenShape != shape || t.ParenState != state {
		return token.Token{}, p.syntaxErrorAt(t.Range, "expected %q, got %q", parenText(shape, state), t.Lexeme())
	}
	return t, nil
}

func parenText(shape token.ParenShape, state token.ParenState) string {
	switch {
	case shape == token.Round && state == token.Opening:
		return "("
	case shape == token.Round && state == token.Closing:
		return ")"
	case shape == token.Curly && state == token.Opening:
		return "{"
	default:
		return "}"
	}
}

// checkParen reports (without consuming) whether the next token is the
// given parenthesis, used for the single piece of lookahead the grammar
// needs: distinguishing a call from a bare identifier.
func (p *parser) checkParen(shape token.ParenShape, state token.ParenState) bool {
	t, ok := p.peek()
	if !ok {
		return false
	}
	return t.Kind == token.Parenthesis && t.ParenShape == shape && t.ParenState == state
}

func (p *parser) checkOperator(op token.OpKind) bool {
	t, ok := p.peek()
	if !ok {
		return false
	}
	return t.Kind == token.Operator && t.OpKind == op
}

func (p *parser) checkKeyword(kw token.KeywordKind) bool {
	t, ok := p.peek()
	if !ok {
		return false
	}
	return t.Kind == token.Keyword && t.KeywordKind == kw
}

// --- grammar: file / function / parameter / scope ---------------------

func (p *parser) parseFile() (*ast.File, error) {
	var fns []*ast.Function
	for !p.atEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	if len(fns) == 0 {
		return &ast.File{Functions: nil}, nil
	}
	rng := fns[0].Range()
	for _, fn := range fns[1:] {
		rng = rng.Union(fn.Range())
	}
	return &ast.File{R: rng, Functions: fns}, nil
}

func (p *parser) parseFunction() (*ast.Function, error) {
	kwTok, err := p.expectKeyword(token.Function)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectParen(token.Round, token.Opening); err != nil {
		return nil, err
	}

	var params []*ast.Parameter
	if !p.checkParen(token.Round, token.Closing) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			t, ok := p.peek()
			if ok && t.Kind == token.Punctuation && t.PunctKind == token.Comma {
				p.next()
				continue
			}
			break
		}
	}
	closeParen, err := p.expectParen(token.Round, token.Closing)
	if err != nil {
		return nil, err
	}

	var returnName string
	var returnTok token.Token
	if t, ok := p.peek(); ok && t.Kind == token.Punctuation && t.PunctKind == token.Colon {
		p.next()
		rt, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		returnName = rt.Text
		returnTok = rt
	}

	body, err := p.parseScope()
	if err != nil {
		return nil, err
	}

	rng := kwTok.Range.Union(closeParen.Range, body.Range())
	return &ast.Function{
		R:          rng,
		Name:       nameTok.Text,
		NameTok:    nameTok,
		Params:     params,
		ReturnName: returnName,
		ReturnTok:  returnTok,
		Body:       body,
		DataType:   types.ToBeInferredType,
	}, nil
}

func (p *parser) parseParameter() (*ast.Parameter, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.Colon); err != nil {
		return nil, err
	}
	typeTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Parameter{
		R:        nameTok.Range.Union(typeTok.Range),
		Name:     nameTok.Text,
		NameTok:  nameTok,
		TypeName: typeTok.Text,
		TypeTok:  typeTok,
		DataType: types.ToBeInferredType,
	}, nil
}

func (p *parser) parseScope() (*ast.Scope, error) {
	open, err := p.expectParen(token.Curly, token.Opening)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Node
	for !p.checkParen(token.Curly, token.Closing) {
		if p.atEnd() {
			return nil, p.eofError()
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	close, err := p.expectParen(token.Curly, token.Closing)
	if err != nil {
		return nil, err
	}
	return &ast.Scope{R: open.Range.Union(close.Range), Statements: stmts}, nil
}

// --- grammar: statements -------------------------------------------------

func (p *parser) parseStatement() (ast.Node, error) {
	if p.checkKeyword(token.Let) {
		return p.parseLetDecl()
	}
	if p.checkKeyword(token.Return) {
		return p.parseReturn()
	}
	if p.checkKeyword(token.If) {
		return p.parseIfElse()
	}

	t, ok := p.peek()
	if !ok {
		return nil, p.eofError()
	}
	if t.Kind != token.Identifier {
		return nil, p.syntaxErrorAt(t.Range, "expected a statement, got %q", t.Lexeme())
	}
	return p.parseIdentifierStatement()
}

func (p *parser) parseLetDecl() (*ast.Declaration, error) {
	kwTok, err := p.expectKeyword(token.Let)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if ok := p.checkOperator(token.OpAssign); !ok {
		t, _ := p.peek()
		return nil, p.syntaxErrorAt(t.Range, "expected '=' in let declaration")
	}
	p.next()

	init, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Declaration{
		R:       kwTok.Range.Union(init.Range()),
		Name:    nameTok.Text,
		NameTok: nameTok,
		Init:    init,
	}, nil
}

func (p *parser) parseReturn() (*ast.Return, error) {
	kwTok, err := p.expectKeyword(token.Return)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{R: kwTok.Range.Union(expr.Range()), Expr: expr}, nil
}

func (p *parser) parseIfElse() (*ast.IfElse, error) {
	ifTok, err := p.expectKeyword(token.If)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseScope()
	if err != nil {
		return nil, err
	}

	rng := ifTok.Range.Union(body.Range())
	node := &ast.IfElse{R: rng, Condition: cond, Consequent: body}

	for p.checkKeyword(token.Else) {
		p.next()
		if p.checkKeyword(token.If) {
			p.next()
			elifCond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elifBody, err := p.parseScope()
			if err != nil {
				return nil, err
			}
			node.ElseIfs = append(node.ElseIfs, ast.ElseIf{Condition: elifCond, Body: elifBody})
			node.R = node.R.Union(elifBody.Range())
			continue
		}
		elseBody, err := p.parseScope()
		if err != nil {
			return nil, err
		}
		node.Else = elseBody
		node.R = node.R.Union(elseBody.Range())
		break
	}

	return node, nil
}

// parseIdentifierStatement handles the four statement forms that start with
// a bare identifier: `x++`/`x--`, a call used as a statement, and the
// assignment family (`=`, and the compound-assignment operators, which
// desugar to a plain Assignment wrapping a Binary here).
func (p *parser) parseIdentifierStatement() (ast.Node, error) {
	nameTok, _ := p.next()
	ident := &ast.Identifier{R: nameTok.Range, Name: nameTok.Text, DataType: types.ToBeInferredType}

	if p.checkOperator(token.OpIncrement) {
		opTok, _ := p.next()
		return &ast.Unary{
			R:        nameTok.Range.Union(opTok.Range),
			Operand:  ident,
			Op:       ast.UPostInc,
			DataType: types.ToBeInferredType,
		}, nil
	}
	if p.checkOperator(token.OpDecrement) {
		opTok, _ := p.next()
		return &ast.Unary{
			R:        nameTok.Range.Union(opTok.Range),
			Operand:  ident,
			Op:       ast.UPostDec,
			DataType: types.ToBeInferredType,
		}, nil
	}
	if p.checkParen(token.Round, token.Opening) {
		return p.parseCallTail(nameTok)
	}

	if op, desugar, ok := compoundAssignOp(p); ok {
		opTok, _ := p.next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !desugar {
			return &ast.Assignment{
				R:       nameTok.Range.Union(rhs.Range()),
				Name:    nameTok.Text,
				NameTok: nameTok,
				RHS:     rhs,
			}, nil
		}
		lhsRef := &ast.Identifier{R: nameTok.Range, Name: nameTok.Text, DataType: types.ToBeInferredType}
		binary := &ast.Binary{
			R:        nameTok.Range.Union(rhs.Range()),
			Left:     lhsRef,
			Right:    rhs,
			Op:       op,
			DataType: types.ToBeInferredType,
		}
		return &ast.Assignment{
			R:       nameTok.Range.Union(opTok.Range, rhs.Range()),
			Name:    nameTok.Text,
			NameTok: nameTok,
			RHS:     binary,
		}, nil
	}

	t, _ := p.peek()
	return nil, p.syntaxErrorAt(t.Range, "expected '++', '--', '(', or an assignment operator after identifier %q", nameTok.Text)
}

// compoundAssignOp reports whether the next token is an assignment-family
// operator, and if so, the BinaryOp it desugars to (ignored for plain '=').
func compoundAssignOp(p *parser) (ast.BinaryOp, bool, bool) {
	t, ok := p.peek()
	if !ok || t.Kind != token.Operator {
		return 0, false, false
	}
	switch t.OpKind {
	case token.OpAssign:
		return 0, false, true
	case token.OpAddAssign:
		return ast.BAdd, true, true
	case token.OpSubAssign:
		return ast.BSub, true, true
	case token.OpMulAssign:
		return ast.BMul, true, true
	case token.OpDivAssign:
		return ast.BDiv, true, true
	case token.OpShlAssign:
		return ast.BShl, true, true
	case token.OpShrAssign:
		return ast.BShr, true, true
	case token.OpBitOrAssign:
		return ast.BBitOr, true, true
	case token.OpBitAndAssign:
		return ast.BBitAnd, true, true
	case token.OpLogicalOrAssign:
		return ast.BLogicalOr, true, true
	case token.OpLogicalAndAssign:
		return ast.BLogicalAnd, true, true
	default:
		return 0, false, false
	}
}

func (p *parser) parseCallTail(nameTok token.Token) (*ast.Call, error) {
	if _, err := p.expectParen(token.Round, token.Opening); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.checkParen(token.Round, token.Closing) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			t, ok := p.peek()
			if ok && t.Kind == token.Punctuation && t.PunctKind == token.Comma {
				p.next()
				continue
			}
			break
		}
	}
	closeTok, err := p.expectParen(token.Round, token.Closing)
	if err != nil {
		return nil, err
	}
	return &ast.Call{
		R:         nameTok.Range.Union(closeTok.Range),
		Callee:    nameTok.Text,
		CalleeTok: nameTok,
		Args:      args,
		DataType:  types.ToBeInferredType,
	}, nil
}

// --- grammar: expressions, lowest to highest precedence -----------------

func (p *parser) parseExpr() (ast.Node, error) {
	return p.parseTernary()
}

func (p *parser) parseTernary() (ast.Node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok || t.Kind != token.Punctuation || t.PunctKind != token.QuestionMark {
		return cond, nil
	}
	p.next()
	consequent, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(token.Colon); err != nil {
		return nil, err
	}
	alternative, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{
		R:           cond.Range().Union(alternative.Range()),
		Condition:   cond,
		Consequent:  consequent,
		Alternative: alternative,
		DataType:    types.ToBeInferredType,
	}, nil
}

// binaryLevel parses one left-associative precedence level: next() builds
// the operand one level down, and match reports (op, matched) for the
// current token, consuming it when matched.
func (p *parser) binaryLevel(next func() (ast.Node, error), match func(token.Token) (ast.BinaryOp, bool)) (ast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}
		op, matched := match(t)
		if !matched {
			return left, nil
		}
		p.next()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			R:        left.Range().Union(right.Range()),
			Left:     left,
			Right:    right,
			Op:       op,
			DataType: types.ToBeInferredType,
		}
	}
}

func matchOp(t token.Token, ops map[token.OpKind]ast.BinaryOp) (ast.BinaryOp, bool) {
	if t.Kind != token.Operator {
		return 0, false
	}
	op, ok := ops[t.OpKind]
	return op, ok
}

func (p *parser) parseOr() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{token.OpLogicalOr: ast.BLogicalOr}
	return p.binaryLevel(p.parseAnd, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseAnd() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{token.OpLogicalAnd: ast.BLogicalAnd}
	return p.binaryLevel(p.parseEquality, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseEquality() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{
		token.OpEqual:        ast.BEqual,
		token.OpNotEqual:     ast.BNotEqual,
		token.OpGreater:      ast.BGreater,
		token.OpGreaterEqual: ast.BGreaterEqual,
		token.OpLess:         ast.BLess,
		token.OpLessEqual:    ast.BLessEqual,
	}
	return p.binaryLevel(p.parseBitwise, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseBitwise() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{
		token.OpBitOr:  ast.BBitOr,
		token.OpBitAnd: ast.BBitAnd,
	}
	return p.binaryLevel(p.parseShift, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseShift() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{
		token.OpShl: ast.BShl,
		token.OpShr: ast.BShr,
	}
	return p.binaryLevel(p.parseAdditive, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseAdditive() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{
		token.OpAdd: ast.BAdd,
		token.OpSub: ast.BSub,
	}
	return p.binaryLevel(p.parseMultiplicative, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

func (p *parser) parseMultiplicative() (ast.Node, error) {
	ops := map[token.OpKind]ast.BinaryOp{
		token.OpMul: ast.BMul,
		token.OpDiv: ast.BDiv,
	}
	return p.binaryLevel(p.parsePreUnary, func(t token.Token) (ast.BinaryOp, bool) { return matchOp(t, ops) })
}

// parsePreUnary handles the prefix unary operators. A leading '+' is
// absolute value (not identity) and '-' is arithmetic negation.
func (p *parser) parsePreUnary() (ast.Node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.eofError()
	}
	if t.Kind == token.Operator {
		var op ast.UnaryOp
		matched := true
		switch t.OpKind {
		case token.OpIncrement:
			op = ast.UPreInc
		case token.OpDecrement:
			op = ast.UPreDec
		case token.OpAdd:
			op = ast.UAbsolute
		case token.OpSub:
			op = ast.UMinus
		case token.OpNot:
			op = ast.UNot
		default:
			matched = false
		}
		if matched {
			p.next()
			operand, err := p.parsePreUnary()
			if err != nil {
				return nil, err
			}
			return &ast.Unary{
				R:        t.Range.Union(operand.Range()),
				Operand:  operand,
				Op:       op,
				DataType: types.ToBeInferredType,
			}, nil
		}
	}
	return p.parsePostUnary()
}

func (p *parser) parsePostUnary() (ast.Node, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.checkOperator(token.OpIncrement) {
		opTok, _ := p.next()
		return &ast.Unary{
			R:        primary.Range().Union(opTok.Range),
			Operand:  primary,
			Op:       ast.UPostInc,
			DataType: types.ToBeInferredType,
		}, nil
	}
	if p.checkOperator(token.OpDecrement) {
		opTok, _ := p.next()
		return &ast.Unary{
			R:        primary.Range().Union(opTok.Range),
			Operand:  primary,
			Op:       ast.UPostDec,
			DataType: types.ToBeInferredType,
		}, nil
	}
	return primary, nil
}

func (p *parser) parsePrimary() (ast.Node, error) {
	t, ok := p.next()
	if !ok {
		return nil, p.eofError()
	}

	switch t.Kind {
	case token.Number:
		return &ast.Number{R: t.Range, Text: t.Text, DataType: types.I32Type}, nil
	case token.Identifier:
		if p.checkParen(token.Round, token.Opening) {
			return p.parseCallTail(t)
		}
		return &ast.Identifier{R: t.Range, Name: t.Text, DataType: types.ToBeInferredType}, nil
	case token.Parenthesis:
		if t.ParenShape == token.Round && t.ParenState == token.Opening {
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectParen(token.Round, token.Closing); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}

	return nil, p.syntaxErrorAt(t.Range, "unexpected %q in expression", t.Lexeme())
}
