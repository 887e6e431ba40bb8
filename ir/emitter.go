// Package ir lowers a fully analyzed *ast.File into LLVM IR using
// github.com/llir/llvm. The emitter assumes its input is well-typed
// (sema.Analyze returned no errors) and panics on a node that still
// carries types.ToBeInferred, since that is a fatal internal invariant
// violation at this stage rather than something recoverable.
//
// Its shape is a current basic block, a scoped symbol table from name to
// storage handle, and one method per node kind, following the same walk
// discipline as sema.Analyzer, swapped from a type lattice to address-taken
// local slots.
package ir

import (
	"fmt"
	"strconv"

	lir "github.com/llir/llvm/ir"
	llconstant "github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	llvalue "github.com/llir/llvm/ir/value"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/symtab"
	"github.com/axiomlang/axiom/types"
)

// Emitter walks an analyzed AST and builds a single lir.Module. Create one
// with NewEmitter per compile; it is not safe for reuse across files.
type Emitter struct {
	mod     *lir.Module
	funcs   map[string]*lir.Func
	syms    *symtab.Table[llvalue.Value]
	cur     *lir.Block
	curFunc *lir.Func
}

// NewEmitter returns an Emitter with a fresh, empty module.
func NewEmitter() *Emitter {
	return &Emitter{
		mod:   lir.NewModule(),
		funcs: make(map[string]*lir.Func),
		syms:  symtab.New[llvalue.Value](),
	}
}

// EmitModule lowers every function in f and returns the resulting module.
// Functions are declared (signature only) in a first pass so that a call to
// a function anywhere in f — including itself — resolves regardless of
// emission order, then bodies are emitted in a second pass.
func EmitModule(f *ast.File) *lir.Module {
	e := NewEmitter()
	for _, fn := range f.Functions {
		e.declareFunc(fn)
	}
	for _, fn := range f.Functions {
		e.emitFunction(fn)
	}
	return e.mod
}

func (e *Emitter) declareFunc(fn *ast.Function) {
	params := make([]*lir.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = lir.NewParam(p.Name, toLLVMType(p.DataType))
	}
	retTy := toLLVMType(fn.DataType.Returns)
	llFn := e.mod.NewFunc(fn.Name, retTy, params...)
	e.funcs[fn.Name] = llFn
}

// emitFunction materializes fn's entry block, copies its parameters into
// freshly allocated slots (so parameters and locals share one addressing
// scheme), and emits the body.
func (e *Emitter) emitFunction(fn *ast.Function) {
	llFn := e.funcs[fn.Name]
	e.curFunc = llFn
	e.cur = llFn.NewBlock("entry")

	e.syms.Push()
	for i, p := range fn.Params {
		slot := e.cur.NewAlloca(toLLVMType(p.DataType))
		e.cur.NewStore(llFn.Params[i], slot)
		e.syms.Add(p.Name, slot)
	}
	e.emitScope(fn.Body)
	e.syms.Pop()
}

func (e *Emitter) emitScope(s *ast.Scope) {
	e.syms.Push()
	for _, stmt := range s.Statements {
		e.emitStatement(stmt)
	}
	e.syms.Pop()
}

func (e *Emitter) emitStatement(n ast.Node) {
	switch v := n.(type) {
	case *ast.Declaration:
		e.emitDeclaration(v)
	case *ast.Assignment:
		e.emitAssignment(v)
	case *ast.Return:
		e.emitReturn(v)
	case *ast.IfElse:
		e.emitIfElse(v)
	case *ast.Scope:
		e.emitScope(v)
	default:
		// A bare call or x++/x-- used as a statement: emit for effect,
		// discard the produced value.
		e.emitExpr(n)
	}
}

func (e *Emitter) emitDeclaration(d *ast.Declaration) {
	rhs := e.emitExpr(d.Init)
	slot := e.cur.NewAlloca(toLLVMType(dataTypeOf(d.Init)))
	e.cur.NewStore(rhs, slot)
	e.syms.Add(d.Name, slot)
}

func (e *Emitter) emitAssignment(asn *ast.Assignment) {
	rhs := e.emitExpr(asn.RHS)
	slot, ok := e.syms.Get(asn.Name)
	if !ok {
		panic(fmt.Sprintf("ir: fatal: assignment to unresolved slot %q reached the emitter", asn.Name))
	}
	e.cur.NewStore(rhs, slot)
}

func (e *Emitter) emitReturn(ret *ast.Return) {
	v := e.emitExpr(ret.Expr)
	e.cur.NewRet(v)
}

// emitIfElse builds one merge block shared by the whole chain, then walks
// the primary arm and each else-if arm identically: evaluate the condition
// in the current block, branch to a fresh then/else pair, emit the
// consequent in then and an unconditional branch to merge, and continue
// building in else. Any trailing else is emitted in the final else block
// before it too branches to merge.
func (e *Emitter) emitIfElse(ie *ast.IfElse) {
	type arm struct {
		cond ast.Node
		body *ast.Scope
	}
	arms := make([]arm, 0, 1+len(ie.ElseIfs))
	arms = append(arms, arm{ie.Condition, ie.Consequent})
	for _, ei := range ie.ElseIfs {
		arms = append(arms, arm{ei.Condition, ei.Body})
	}

	merge := e.curFunc.NewBlock("")
	for _, a := range arms {
		cond := e.emitExpr(a.cond)
		thenBlk := e.curFunc.NewBlock("")
		elseBlk := e.curFunc.NewBlock("")
		e.cur.NewCondBr(cond, thenBlk, elseBlk)

		e.cur = thenBlk
		e.emitScope(a.body)
		e.cur.NewBr(merge)

		e.cur = elseBlk
	}
	if ie.Else != nil {
		e.emitScope(ie.Else)
	}
	e.cur.NewBr(merge)
	e.cur = merge
}

func (e *Emitter) emitTernary(t *ast.Ternary) llvalue.Value {
	cond := e.emitExpr(t.Condition)
	thenBlk := e.curFunc.NewBlock("")
	elseBlk := e.curFunc.NewBlock("")
	merge := e.curFunc.NewBlock("")
	e.cur.NewCondBr(cond, thenBlk, elseBlk)

	e.cur = thenBlk
	consVal := e.emitExpr(t.Consequent)
	thenEnd := e.cur
	e.cur.NewBr(merge)

	e.cur = elseBlk
	altVal := e.emitExpr(t.Alternative)
	elseEnd := e.cur
	e.cur.NewBr(merge)

	e.cur = merge
	return e.cur.NewPhi(
		lir.NewIncoming(consVal, thenEnd),
		lir.NewIncoming(altVal, elseEnd),
	)
}

// emitExpr dispatches every expression node kind and returns its computed
// value.Value.
func (e *Emitter) emitExpr(n ast.Node) llvalue.Value {
	switch v := n.(type) {
	case *ast.Number:
		x, err := strconv.ParseInt(v.Text, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("ir: fatal: malformed integer literal %q reached the emitter", v.Text))
		}
		return llconstant.NewInt(lltypes.I32, x)
	case *ast.Identifier:
		slot, ok := e.syms.Get(v.Name)
		if !ok {
			panic(fmt.Sprintf("ir: fatal: identifier %q unresolved at emission", v.Name))
		}
		return e.cur.NewLoad(toLLVMType(v.DataType), slot)
	case *ast.Binary:
		return e.emitBinary(v)
	case *ast.Unary:
		return e.emitUnary(v)
	case *ast.Ternary:
		return e.emitTernary(v)
	case *ast.Call:
		return e.emitCall(v)
	default:
		panic("ir: fatal: unhandled expression node reached the emitter")
	}
}

// emitBinary lowers the operator directly to its integer-instruction
// counterpart. The ordered comparisons use *unsigned* predicates regardless
// of the operand type's signedness, and the logical operators are
// implemented identically to their bitwise counterparts with no
// short-circuit evaluation: both operands are always computed.
func (e *Emitter) emitBinary(b *ast.Binary) llvalue.Value {
	left := e.emitExpr(b.Left)
	right := e.emitExpr(b.Right)
	switch b.Op {
	case ast.BAdd:
		return e.cur.NewAdd(left, right)
	case ast.BSub:
		return e.cur.NewSub(left, right)
	case ast.BMul:
		return e.cur.NewMul(left, right)
	case ast.BDiv:
		return e.cur.NewSDiv(left, right)
	case ast.BEqual:
		return e.cur.NewICmp(enum.IPredEQ, left, right)
	case ast.BNotEqual:
		return e.cur.NewICmp(enum.IPredNE, left, right)
	case ast.BGreater:
		return e.cur.NewICmp(enum.IPredUGT, left, right)
	case ast.BGreaterEqual:
		return e.cur.NewICmp(enum.IPredUGE, left, right)
	case ast.BLess:
		return e.cur.NewICmp(enum.IPredULT, left, right)
	case ast.BLessEqual:
		return e.cur.NewICmp(enum.IPredULE, left, right)
	case ast.BShl:
		return e.cur.NewShl(left, right)
	case ast.BShr:
		return e.cur.NewLShr(left, right)
	case ast.BBitOr, ast.BLogicalOr:
		return e.cur.NewOr(left, right)
	case ast.BBitAnd, ast.BLogicalAnd:
		return e.cur.NewAnd(left, right)
	default:
		panic("ir: fatal: unhandled binary operator reached the emitter")
	}
}

func (e *Emitter) emitUnary(u *ast.Unary) llvalue.Value {
	switch u.Op {
	case ast.UPreInc, ast.UPreDec:
		return e.emitPreIncDec(u)
	case ast.UPostInc, ast.UPostDec:
		return e.emitPostIncDec(u)
	case ast.UMinus:
		v := e.emitExpr(u.Operand)
		zero := llconstant.NewInt(intType(u.DataType), 0)
		return e.cur.NewSub(zero, v)
	case ast.UAbsolute:
		v := e.emitExpr(u.Operand)
		zero := llconstant.NewInt(intType(u.DataType), 0)
		isNeg := e.cur.NewICmp(enum.IPredSLT, v, zero)
		neg := e.cur.NewSub(zero, v)
		return e.cur.NewSelect(isNeg, neg, v)
	case ast.UNot:
		v := e.emitExpr(u.Operand)
		one := llconstant.NewInt(intType(u.DataType), 1)
		return e.cur.NewXor(v, one)
	default:
		panic("ir: fatal: unhandled unary operator reached the emitter")
	}
}

// emitPreIncDec implements the PreInc/PreDec policy: when the operand is an
// identifier, load/increment-or-decrement/store and expose the new value;
// otherwise compute the operand's value and expose the adjusted result
// without a store (there is no slot to write back to).
func (e *Emitter) emitPreIncDec(u *ast.Unary) llvalue.Value {
	delta := int64(1)
	if ident, ok := u.Operand.(*ast.Identifier); ok {
		slot, found := e.syms.Get(ident.Name)
		if !found {
			panic(fmt.Sprintf("ir: fatal: identifier %q unresolved at emission", ident.Name))
		}
		loaded := e.cur.NewLoad(toLLVMType(ident.DataType), slot)
		newVal := e.adjust(u.Op, loaded, delta)
		e.cur.NewStore(newVal, slot)
		return newVal
	}
	v := e.emitExpr(u.Operand)
	return e.adjust(u.Op, v, delta)
}

// emitPostIncDec implements the PostInc/PostDec policy: expose the old
// value, then store the adjusted one. When the operand is not an
// identifier there is no slot to write back to, so the store is silently
// omitted and the operation becomes an identity on the computed value.
func (e *Emitter) emitPostIncDec(u *ast.Unary) llvalue.Value {
	ident, ok := u.Operand.(*ast.Identifier)
	if !ok {
		return e.emitExpr(u.Operand)
	}
	slot, found := e.syms.Get(ident.Name)
	if !found {
		panic(fmt.Sprintf("ir: fatal: identifier %q unresolved at emission", ident.Name))
	}
	old := e.cur.NewLoad(toLLVMType(ident.DataType), slot)
	newVal := e.adjust(u.Op, old, 1)
	e.cur.NewStore(newVal, slot)
	return old
}

func (e *Emitter) adjust(op ast.UnaryOp, v llvalue.Value, delta int64) llvalue.Value {
	one := llconstant.NewInt(lltypes.I32, delta)
	switch op {
	case ast.UPreInc, ast.UPostInc:
		return e.cur.NewAdd(v, one)
	default:
		return e.cur.NewSub(v, one)
	}
}

func (e *Emitter) emitCall(c *ast.Call) llvalue.Value {
	callee, ok := e.funcs[c.Callee]
	if !ok {
		panic(fmt.Sprintf("ir: fatal: call to undeclared function %q reached the emitter", c.Callee))
	}
	args := make([]llvalue.Value, len(c.Args))
	for i, arg := range c.Args {
		args[i] = e.emitExpr(arg)
	}
	return e.cur.NewCall(callee, args...)
}

// dataTypeOf extracts the already-resolved DataType of an expression node.
// Only the analyzer mutates these fields; the emitter only ever reads them.
func dataTypeOf(n ast.Node) types.DataType {
	switch v := n.(type) {
	case *ast.Number:
		return v.DataType
	case *ast.Identifier:
		return v.DataType
	case *ast.Binary:
		return v.DataType
	case *ast.Unary:
		return v.DataType
	case *ast.Ternary:
		return v.DataType
	case *ast.Call:
		return v.DataType
	default:
		panic("ir: fatal: unhandled expression node reached the emitter")
	}
}

// toLLVMType maps the language's DataType lattice onto the handful of LLVM
// types the emitter ever needs. Any other tag reaching here — most notably
// ToBeInferred — is a fatal internal invariant violation: the analyzer is
// required to have eliminated it first.
func toLLVMType(t types.DataType) lltypes.Type {
	switch t.Tag {
	case types.I32:
		return lltypes.I32
	case types.Bool:
		return lltypes.I1
	case types.None:
		return lltypes.Void
	default:
		panic(fmt.Sprintf("ir: fatal: type %s reached the emitter unresolved", t))
	}
}

func intType(t types.DataType) *lltypes.IntType {
	if t.Tag == types.Bool {
		return lltypes.I1
	}
	return lltypes.I32
}
