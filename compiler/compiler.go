// Package compiler wires the lexer, parser, analyzer, and emitter into a
// single synchronous pipeline: a compile is a pure function
// source -> Result<IRModule, ErrorList>, with no suspension points and no
// data structure shared across calls.
package compiler

import (
	lir "github.com/llir/llvm/ir"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/axiomerr"
	"github.com/axiomlang/axiom/ir"
	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/parser"
	"github.com/axiomlang/axiom/sema"
)

// Result is everything a single compile produces: the parsed (and, on
// success, analyzed) AST, the accumulated analyzer errors, and the emitted
// module. Module is nil whenever Errs is non-empty: the pipeline halts on a
// non-empty error list before IR emission.
type Result struct {
	File   *ast.File
	Errs   axiomerr.List
	Module *lir.Module
}

// Compile runs the full pipeline over src. A lexer/parser failure is
// reported as a single-element Errs list (the lexer and parser fail fast;
// only the analyzer accumulates).
func Compile(src string) Result {
	toks := lexer.Lex(src)
	file, err := parser.Parse(toks)
	if err != nil {
		axErr, ok := err.(axiomerr.Error)
		if !ok {
			axErr = axiomerr.SyntaxError{Message: err.Error()}
		}
		return Result{Errs: axiomerr.List{axErr}}
	}

	errs := sema.Analyze(file)
	if errs.HasErrors() {
		return Result{File: file, Errs: errs}
	}

	mod := ir.EmitModule(file)
	return Result{File: file, Module: mod}
}
