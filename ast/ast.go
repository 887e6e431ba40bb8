// Package ast defines the abstract syntax tree produced by the parser and
// mutated in place by the analyzer. Every node carries a source.Range;
// every node that holds a runtime value additionally carries a DataType
// field initialized to types.ToBeInferredType by the parser (Number starts
// as types.I32Type) and finalized by the analyzer.
//
// Node variants are plain structs rather than an interface hierarchy with
// per-node virtual methods: every pass (analyzer, emitter, hover lookup)
// performs one exhaustive type switch over the concrete pointer types
// instead of dynamic dispatch.
package ast

import (
	"github.com/axiomlang/axiom/source"
	"github.com/axiomlang/axiom/token"
	"github.com/axiomlang/axiom/types"
)

// Node is the marker interface every AST node satisfies. It exists purely
// so containers (Scope.Statements, File.Functions, Call.Args) can hold
// heterogeneous node pointers; apart from reading a node's Range, passes
// switch on the concrete type rather than calling through Node.
type Node interface {
	Range() source.Range
}

// File is the root of a compiled unit: an ordered list of functions. There
// is no cross-file resolution, so a File is always the entire compiled
// program.
type File struct {
	R         source.Range
	Functions []*Function
}

func (n *File) Range() source.Range { return n.R }

// Parameter is a single (binding, type) pair in a function's parameter
// list.
type Parameter struct {
	R        source.Range
	Name     string
	NameTok  token.Token
	TypeName string
	TypeTok  token.Token

	// DataType is the resolved parameter type, filled in by the analyzer
	// from TypeName.
	DataType types.DataType
}

func (n *Parameter) Range() source.Range { return n.R }

// Function is a top-level function definition. DataType is always
// Function(params, returns) once resolved.
type Function struct {
	R          source.Range
	Name       string
	NameTok    token.Token
	Params     []*Parameter
	ReturnName string // "" if no return-type identifier was given
	ReturnTok  token.Token
	Body       *Scope

	DataType types.DataType
}

func (n *Function) Range() source.Range { return n.R }

// Scope is an ordered, braced statement list. Scopes do not themselves
// carry a DataType; they are control structure, not an expression.
type Scope struct {
	R          source.Range
	Statements []Node
}

func (n *Scope) Range() source.Range { return n.R }

// ElseIf is one (condition, scope) pair in an if/else-if chain.
type ElseIf struct {
	Condition Node
	Body      *Scope
}

// IfElse is a full if / else-if* / else? chain, kept as one node (rather
// than desugared into nested binary ifs) so that its Range and the source
// ordering of its arms are preserved exactly as written.
type IfElse struct {
	R          source.Range
	Condition  Node
	Consequent *Scope
	ElseIfs    []ElseIf
	Else       *Scope // nil if no trailing else
}

func (n *IfElse) Range() source.Range { return n.R }

// Return is a mandatory-expression return statement; the grammar has no
// bare "return;" form.
type Return struct {
	R    source.Range
	Expr Node
}

func (n *Return) Range() source.Range { return n.R }

// Declaration is a `let` binding with a mandatory initializer.
type Declaration struct {
	R       source.Range
	Name    string
	NameTok token.Token
	Init    Node
}

func (n *Declaration) Range() source.Range { return n.R }

// Assignment covers both `x = e` and desugared compound assignment. For
// `x += e`, the parser desugars to Assignment{Name: x, RHS: Binary{+, x, e}};
// this node never itself carries an operator.
type Assignment struct {
	R       source.Range
	Name    string
	NameTok token.Token
	RHS     Node
}

func (n *Assignment) Range() source.Range { return n.R }

// Ternary is `cond ? consequent : alternative`. Its DataType after analysis
// equals the consequent's.
type Ternary struct {
	R                        source.Range
	Condition                Node
	Consequent, Alternative  Node
	DataType                 types.DataType
}

func (n *Ternary) Range() source.Range { return n.R }

// BinaryOp is the specific operator of a Binary node.
type BinaryOp int

const (
	BAdd BinaryOp = iota
	BSub
	BMul
	BDiv
	BEqual
	BNotEqual
	BGreater
	BGreaterEqual
	BLess
	BLessEqual
	BShl
	BShr
	BBitOr
	BBitAnd
	BLogicalOr
	BLogicalAnd
)

func (op BinaryOp) IsComparison() bool {
	switch op {
	case BEqual, BNotEqual, BGreater, BGreaterEqual, BLess, BLessEqual:
		return true
	default:
		return false
	}
}

// Binary is a left-associative binary expression.
type Binary struct {
	R          source.Range
	Left, Right Node
	Op         BinaryOp
	DataType   types.DataType
}

func (n *Binary) Range() source.Range { return n.R }

// UnaryOp is the specific operator of a Unary node.
type UnaryOp int

const (
	UPreInc UnaryOp = iota
	UPreDec
	UPostInc
	UPostDec
	UMinus
	UAbsolute
	UNot
)

// Unary is a prefix or postfix unary expression.
type Unary struct {
	R        source.Range
	Operand  Node
	Op       UnaryOp
	DataType types.DataType
}

func (n *Unary) Range() source.Range { return n.R }

// Call is a function invocation `callee(args...)`.
type Call struct {
	R        source.Range
	Callee   string
	CalleeTok token.Token
	Args     []Node
	DataType types.DataType
}

func (n *Call) Range() source.Range { return n.R }

// Identifier is a bare name reference.
type Identifier struct {
	R        source.Range
	Name     string
	DataType types.DataType
}

func (n *Identifier) Range() source.Range { return n.R }

// Number is an integer literal. Its DataType is always I32; there are no
// literal suffixes and no floating-point literals.
type Number struct {
	R        source.Range
	Text     string
	DataType types.DataType
}

func (n *Number) Range() source.Range { return n.R }
