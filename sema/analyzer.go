// Package sema implements Axiom's semantic analyzer: a single in-order walk
// of the AST that mutates each typed node's DataType in place and
// accumulates errors rather than aborting on the first one. Its shape is
// one method per node kind, with errors appended to a running slice
// instead of returned.
package sema

import (
	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/axiomerr"
	"github.com/axiomlang/axiom/symtab"
	"github.com/axiomlang/axiom/token"
	"github.com/axiomlang/axiom/types"
)

// returnSlot is the synthetic symbol-table name bound to a function's return
// type for the duration of analyzing its body.
const returnSlot = "return"

// Analyzer walks an *ast.File once, mutating DataType fields in place and
// collecting every problem it finds.
type Analyzer struct {
	syms *symtab.Table[types.DataType]
	errs axiomerr.List
}

// Analyze runs the full pass and returns the accumulated error list. An
// empty list means f is well-typed and ready for IR emission.
func Analyze(f *ast.File) axiomerr.List {
	a := &Analyzer{syms: symtab.New[types.DataType]()}
	a.syms.Add("i32", types.NewType(types.I32Type))
	a.syms.Add("bool", types.NewType(types.BoolType))
	a.analyzeFile(f)
	return a.errs
}

func (a *Analyzer) errorf(e axiomerr.Error) {
	a.errs = append(a.errs, e)
}

func (a *Analyzer) analyzeFile(f *ast.File) {
	for _, fn := range f.Functions {
		a.analyzeFunction(fn)
	}
}

// analyzeFunction declares fn's name in the outer scope before analyzing its
// body, so that a call to fn from within its own body resolves (recursion).
// Mutual recursion is restricted: a function can only call another already
// declared before it, which falls out naturally here since File analyzes
// functions strictly in source order.
func (a *Analyzer) analyzeFunction(fn *ast.Function) {
	paramTypes := make([]types.DataType, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = a.resolveType(p.TypeTok, p.TypeName)
		p.DataType = paramTypes[i]
	}

	returnType := types.NoneType
	if fn.ReturnName != "" {
		returnType = a.resolveType(fn.ReturnTok, fn.ReturnName)
	}

	fn.DataType = types.NewFunction(paramTypes, returnType)

	if a.syms.Has(fn.Name) {
		a.errorf(axiomerr.DuplicatedIdentifier{Range: fn.NameTok.Range, Name: fn.Name})
	}
	a.syms.Add(fn.Name, fn.DataType)

	a.syms.Push()
	for i, p := range fn.Params {
		if a.syms.Has(p.Name) {
			a.errorf(axiomerr.DuplicatedIdentifier{Range: p.NameTok.Range, Name: p.Name})
		}
		a.syms.Add(p.Name, paramTypes[i])
	}
	a.syms.Add(returnSlot, returnType)
	a.analyzeScope(fn.Body)
	a.syms.Pop()
}

// resolveType looks tok/name up as a type-naming binding ("i32" ->
// Type(I32), and so on) and unwraps it, raising NotAType if the name either
// doesn't resolve or resolves to something other than a Type(...).
func (a *Analyzer) resolveType(tok token.Token, name string) types.DataType {
	bound, ok := a.syms.Get(name)
	if !ok || bound.Tag != types.Type || bound.Underlying == nil {
		a.errorf(axiomerr.NotAType{Range: tok.Range, Name: name})
		return types.NoneType
	}
	return *bound.Underlying
}

func (a *Analyzer) analyzeScope(s *ast.Scope) {
	a.syms.Push()
	for _, stmt := range s.Statements {
		a.analyzeStatement(stmt)
	}
	a.syms.Pop()
}

func (a *Analyzer) analyzeStatement(n ast.Node) {
	switch v := n.(type) {
	case *ast.Declaration:
		a.analyzeDeclaration(v)
	case *ast.Assignment:
		a.analyzeAssignment(v)
	case *ast.Return:
		a.analyzeReturn(v)
	case *ast.IfElse:
		a.analyzeIfElse(v)
	case *ast.Scope:
		a.analyzeScope(v)
	default:
		// Remaining statement forms are expressions used as statements
		// (a bare call, or a bare x++/x--): evaluate for their error side
		// effects and discard the resulting type.
		a.analyzeExpr(n)
	}
}

func (a *Analyzer) analyzeDeclaration(d *ast.Declaration) {
	initType := a.analyzeExpr(d.Init)
	if a.syms.Has(d.Name) {
		a.errorf(axiomerr.DuplicatedIdentifier{Range: d.NameTok.Range, Name: d.Name})
	}
	a.syms.Add(d.Name, initType)
}

func (a *Analyzer) analyzeAssignment(asn *ast.Assignment) {
	rhsType := a.analyzeExpr(asn.RHS)
	bound, ok := a.syms.Get(asn.Name)
	if !ok {
		a.errorf(axiomerr.IdentifierUsedBeforeDeclaration{Range: asn.NameTok.Range, Name: asn.Name})
		return
	}
	if !bound.Equal(rhsType) {
		a.errorf(axiomerr.WrongDataType{Range: asn.R, Expected: bound, Received: rhsType})
	}
}

func (a *Analyzer) analyzeReturn(ret *ast.Return) {
	exprType := a.analyzeExpr(ret.Expr)
	bound, ok := a.syms.Get(returnSlot)
	if !ok {
		return
	}
	if !bound.Equal(exprType) {
		a.errorf(axiomerr.WrongDataType{Range: ret.R, Expected: bound, Received: exprType})
	}
}

func (a *Analyzer) analyzeIfElse(ie *ast.IfElse) {
	a.checkBool(ie.Condition, a.analyzeExpr(ie.Condition))
	a.analyzeScope(ie.Consequent)
	for _, elif := range ie.ElseIfs {
		a.checkBool(elif.Condition, a.analyzeExpr(elif.Condition))
		a.analyzeScope(elif.Body)
	}
	if ie.Else != nil {
		a.analyzeScope(ie.Else)
	}
}

func (a *Analyzer) checkBool(cond ast.Node, got types.DataType) {
	if !got.Equal(types.BoolType) {
		a.errorf(axiomerr.WrongDataType{Range: cond.Range(), Expected: types.BoolType, Received: got})
	}
}

// analyzeExpr dispatches over every expression node kind, sets its DataType,
// and returns the resolved type so the caller can use it without a second
// lookup.
func (a *Analyzer) analyzeExpr(n ast.Node) types.DataType {
	switch v := n.(type) {
	case *ast.Number:
		v.DataType = types.I32Type
		return v.DataType
	case *ast.Identifier:
		bound, ok := a.syms.Get(v.Name)
		if !ok {
			a.errorf(axiomerr.IdentifierUsedBeforeDeclaration{Range: v.R, Name: v.Name})
			v.DataType = types.NoneType
			return v.DataType
		}
		v.DataType = bound
		return v.DataType
	case *ast.Binary:
		return a.analyzeBinary(v)
	case *ast.Unary:
		return a.analyzeUnary(v)
	case *ast.Ternary:
		return a.analyzeTernary(v)
	case *ast.Call:
		return a.analyzeCall(v)
	default:
		return types.NoneType
	}
}

func (a *Analyzer) analyzeBinary(b *ast.Binary) types.DataType {
	left := a.analyzeExpr(b.Left)
	right := a.analyzeExpr(b.Right)
	if !left.Equal(right) {
		a.errorf(axiomerr.WrongDataType{Range: b.R, Expected: left, Received: right})
	}
	if b.Op.IsComparison() {
		b.DataType = types.BoolType
	} else {
		b.DataType = left
	}
	return b.DataType
}

func (a *Analyzer) analyzeUnary(u *ast.Unary) types.DataType {
	u.DataType = a.analyzeExpr(u.Operand)
	return u.DataType
}

func (a *Analyzer) analyzeTernary(t *ast.Ternary) types.DataType {
	condType := a.analyzeExpr(t.Condition)
	a.checkBool(t.Condition, condType)
	consType := a.analyzeExpr(t.Consequent)
	altType := a.analyzeExpr(t.Alternative)
	if !consType.Equal(altType) {
		a.errorf(axiomerr.WrongDataType{Range: t.R, Expected: consType, Received: altType})
	}
	t.DataType = consType
	return t.DataType
}

func (a *Analyzer) analyzeCall(c *ast.Call) types.DataType {
	argTypes := make([]types.DataType, len(c.Args))
	for i, arg := range c.Args {
		argTypes[i] = a.analyzeExpr(arg)
	}

	bound, ok := a.syms.Get(c.Callee)
	if !ok {
		a.errorf(axiomerr.IdentifierUsedBeforeDeclaration{Range: c.CalleeTok.Range, Name: c.Callee})
		c.DataType = types.NoneType
		return c.DataType
	}
	if bound.Tag != types.Function {
		a.errorf(axiomerr.NotAFunction{Range: c.CalleeTok.Range, Name: c.Callee})
		c.DataType = types.NoneType
		return c.DataType
	}
	if len(bound.Params) != len(argTypes) {
		a.errorf(axiomerr.MismatchedNumberOfParameters{
			Range: c.R, Name: c.Callee, Expected: len(bound.Params), Got: len(argTypes),
		})
	} else {
		for i, want := range bound.Params {
			if !want.Equal(argTypes[i]) {
				a.errorf(axiomerr.WrongDataType{Range: c.Args[i].Range(), Expected: want, Received: argTypes[i]})
			}
		}
	}
	c.DataType = bound.Returns
	return c.DataType
}
