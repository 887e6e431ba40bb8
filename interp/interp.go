// Package interp provides a tree-walking evaluator over an analyzed AST.
// The `run` command calls for compiling and then executing the
// entrypoint named "main"; no pure-Go LLVM execution engine is available
// to JIT the emitted module (github.com/llir/llvm only constructs and
// prints IR), so `run` instead evaluates the analyzed AST directly to
// produce the same integer result executing the emitted module would,
// while the IR is still built and available for inspection (see
// cmd/axiomc). This is a deliberate substitution, not a silent gap.
package interp

import (
	"fmt"
	"strconv"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/symtab"
)

// Value is the runtime value an Axiom expression reduces to: either an I32
// or a Bool, tracked by which field is meaningful rather than by a tagged
// union, since the interpreter only ever runs on an already analyzed (and
// therefore already type-checked) AST.
type Value struct {
	I32  int32
	Bool bool
	// IsBool is false for I32 values and true for Bool values.
	IsBool bool
}

func intVal(v int32) Value  { return Value{I32: v} }
func boolVal(b bool) Value  { return Value{Bool: b, IsBool: true} }
func (v Value) asI32() int32 {
	if v.IsBool {
		if v.Bool {
			return 1
		}
		return 0
	}
	return v.I32
}

// Interp runs functions from one analyzed file. Functions may call each
// other and recurse; there is no surrounding global mutable state beyond
// each call's own local frame.
type Interp struct {
	funcs map[string]*ast.Function
}

// New builds an Interp over every function in f, keyed by name.
func New(f *ast.File) *Interp {
	it := &Interp{funcs: make(map[string]*ast.Function, len(f.Functions))}
	for _, fn := range f.Functions {
		it.funcs[fn.Name] = fn
	}
	return it
}

// returnSignal unwinds a call stack up to its owning Call when a Return
// statement executes, carrying the returned value.
type returnSignal struct {
	value Value
}

// RunMain evaluates the zero-argument entrypoint named "main" and returns
// its I32 result.
func (it *Interp) RunMain() (int32, error) {
	fn, ok := it.funcs["main"]
	if !ok {
		return 0, fmt.Errorf("no function named \"main\"")
	}
	if len(fn.Params) != 0 {
		return 0, fmt.Errorf("\"main\" must take no parameters to be run")
	}
	v, err := it.call(fn, nil)
	if err != nil {
		return 0, err
	}
	return v.asI32(), nil
}

func (it *Interp) call(fn *ast.Function, args []Value) (result Value, err error) {
	syms := symtab.New[Value]()
	for i, p := range fn.Params {
		syms.Add(p.Name, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(returnSignal); ok {
				result = rs.value
				err = nil
				return
			}
			panic(r)
		}
	}()

	it.execScope(fn.Body, syms)
	return Value{}, fmt.Errorf("function %q fell off its body without returning", fn.Name)
}

func (it *Interp) execScope(s *ast.Scope, syms *symtab.Table[Value]) {
	syms.Push()
	defer syms.Pop()
	for _, stmt := range s.Statements {
		it.execStatement(stmt, syms)
	}
}

func (it *Interp) execStatement(n ast.Node, syms *symtab.Table[Value]) {
	switch v := n.(type) {
	case *ast.Declaration:
		syms.Add(v.Name, it.eval(v.Init, syms))
	case *ast.Assignment:
		if !syms.Set(v.Name, it.eval(v.RHS, syms)) {
			panic(fmt.Sprintf("interp: fatal: assignment to unresolved identifier %q", v.Name))
		}
	case *ast.Return:
		panic(returnSignal{value: it.eval(v.Expr, syms)})
	case *ast.IfElse:
		it.execIfElse(v, syms)
	case *ast.Scope:
		it.execScope(v, syms)
	default:
		it.eval(n, syms)
	}
}

func (it *Interp) execIfElse(ie *ast.IfElse, syms *symtab.Table[Value]) {
	if it.eval(ie.Condition, syms).Bool {
		it.execScope(ie.Consequent, syms)
		return
	}
	for _, elif := range ie.ElseIfs {
		if it.eval(elif.Condition, syms).Bool {
			it.execScope(elif.Body, syms)
			return
		}
	}
	if ie.Else != nil {
		it.execScope(ie.Else, syms)
	}
}

func (it *Interp) eval(n ast.Node, syms *symtab.Table[Value]) Value {
	switch v := n.(type) {
	case *ast.Number:
		x, err := strconv.ParseInt(v.Text, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("interp: fatal: malformed integer literal %q", v.Text))
		}
		return intVal(int32(x))
	case *ast.Identifier:
		val, ok := syms.Get(v.Name)
		if !ok {
			panic(fmt.Sprintf("interp: fatal: identifier %q unresolved", v.Name))
		}
		return val
	case *ast.Binary:
		return it.evalBinary(v, syms)
	case *ast.Unary:
		return it.evalUnary(v, syms)
	case *ast.Ternary:
		if it.eval(v.Condition, syms).Bool {
			return it.eval(v.Consequent, syms)
		}
		return it.eval(v.Alternative, syms)
	case *ast.Call:
		return it.evalCall(v, syms)
	default:
		panic("interp: fatal: unhandled expression node")
	}
}

func (it *Interp) evalBinary(b *ast.Binary, syms *symtab.Table[Value]) Value {
	left := it.eval(b.Left, syms)
	right := it.eval(b.Right, syms)
	switch b.Op {
	case ast.BAdd:
		return intVal(left.asI32() + right.asI32())
	case ast.BSub:
		return intVal(left.asI32() - right.asI32())
	case ast.BMul:
		return intVal(left.asI32() * right.asI32())
	case ast.BDiv:
		return intVal(left.asI32() / right.asI32())
	case ast.BEqual:
		return boolVal(left.asI32() == right.asI32())
	case ast.BNotEqual:
		return boolVal(left.asI32() != right.asI32())
	case ast.BGreater:
		return boolVal(uint32(left.asI32()) > uint32(right.asI32()))
	case ast.BGreaterEqual:
		return boolVal(uint32(left.asI32()) >= uint32(right.asI32()))
	case ast.BLess:
		return boolVal(uint32(left.asI32()) < uint32(right.asI32()))
	case ast.BLessEqual:
		return boolVal(uint32(left.asI32()) <= uint32(right.asI32()))
	case ast.BShl:
		return intVal(left.asI32() << uint32(right.asI32()))
	case ast.BShr:
		return intVal(int32(uint32(left.asI32()) >> uint32(right.asI32())))
	case ast.BBitOr, ast.BLogicalOr:
		x := left.asI32() | right.asI32()
		if left.IsBool {
			return boolVal(x != 0)
		}
		return intVal(x)
	case ast.BBitAnd, ast.BLogicalAnd:
		x := left.asI32() & right.asI32()
		if left.IsBool {
			return boolVal(x != 0)
		}
		return intVal(x)
	default:
		panic("interp: fatal: unhandled binary operator")
	}
}

func (it *Interp) evalUnary(u *ast.Unary, syms *symtab.Table[Value]) Value {
	switch u.Op {
	case ast.UPreInc, ast.UPostInc, ast.UPreDec, ast.UPostDec:
		return it.evalIncDec(u, syms)
	case ast.UMinus:
		return intVal(-it.eval(u.Operand, syms).asI32())
	case ast.UAbsolute:
		x := it.eval(u.Operand, syms).asI32()
		if x < 0 {
			x = -x
		}
		return intVal(x)
	case ast.UNot:
		v := it.eval(u.Operand, syms)
		if v.IsBool {
			return boolVal(!v.Bool)
		}
		return intVal(v.I32 ^ 1)
	default:
		panic("interp: fatal: unhandled unary operator")
	}
}

func (it *Interp) evalIncDec(u *ast.Unary, syms *symtab.Table[Value]) Value {
	ident, ok := u.Operand.(*ast.Identifier)
	if !ok {
		v := it.eval(u.Operand, syms).asI32()
		switch u.Op {
		case ast.UPreInc:
			return intVal(v + 1)
		case ast.UPreDec:
			return intVal(v - 1)
		}
		return intVal(v)
	}
	old, _ := syms.Get(ident.Name)
	delta := int32(1)
	if u.Op == ast.UPreDec || u.Op == ast.UPostDec {
		delta = -1
	}
	newVal := intVal(old.asI32() + delta)
	syms.Set(ident.Name, newVal)
	if u.Op == ast.UPreInc || u.Op == ast.UPreDec {
		return newVal
	}
	return old
}

func (it *Interp) evalCall(c *ast.Call, syms *symtab.Table[Value]) Value {
	fn, ok := it.funcs[c.Callee]
	if !ok {
		panic(fmt.Sprintf("interp: fatal: call to undeclared function %q", c.Callee))
	}
	args := make([]Value, len(c.Args))
	for i, arg := range c.Args {
		args[i] = it.eval(arg, syms)
	}
	v, err := it.call(fn, args)
	if err != nil {
		panic(err.Error())
	}
	return v
}
