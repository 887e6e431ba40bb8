// Package axiomerr holds the Axiom error taxonomy: one type per kind, each
// carrying the source.Range (or bare source.Position, for UnexpectedEOF) of
// the offending code, plus a FullMessage rendering with the offending
// source line and a cursor underneath it.
package axiomerr

import (
	"fmt"
	"strings"

	"github.com/axiomlang/axiom/source"
	"github.com/axiomlang/axiom/types"
)

// Error is the common interface every Axiom diagnostic satisfies, on top of
// the standard error interface: it always has a position to report and a
// one-line technical message independent of any source-line context.
type Error interface {
	error
	// Pos returns the single point this error is best anchored to (a
	// Range's Start for range-carrying kinds, or the bare position for
	// UnexpectedEOF).
	Pos() source.Position
}

// UnexpectedEOF is raised by the parser when a production needs at least
// one more token than remains in the stream.
type UnexpectedEOF struct {
	At source.Position
}

func (e UnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input at %s", e.At)
}

func (e UnexpectedEOF) Pos() source.Position { return e.At }

// SyntaxError is raised by the parser on a token mismatch, and by the
// pipeline when the lexer has produced an Unknown token, which is treated
// as a lex-time syntax error surfaced downstream.
type SyntaxError struct {
	Range   source.Range
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: around %s: %s", e.Range.Start, e.Message)
}

func (e SyntaxError) Pos() source.Position { return e.Range.Start }

// DuplicatedIdentifier is raised by the analyzer when a function, parameter
// or let-declared name collides with one already visible per
// symtab.Table.Has.
type DuplicatedIdentifier struct {
	Range source.Range
	Name  string
}

func (e DuplicatedIdentifier) Error() string {
	return fmt.Sprintf("%q is already declared", e.Name)
}

func (e DuplicatedIdentifier) Pos() source.Position { return e.Range.Start }

// IdentifierUsedBeforeDeclaration is raised when a name fails to resolve in
// the symbol table at all.
type IdentifierUsedBeforeDeclaration struct {
	Range source.Range
	Name  string
}

func (e IdentifierUsedBeforeDeclaration) Error() string {
	return fmt.Sprintf("%q is used before it is declared", e.Name)
}

func (e IdentifierUsedBeforeDeclaration) Pos() source.Position { return e.Range.Start }

// WrongDataType is raised by every type check in the analyzer.
type WrongDataType struct {
	Range    source.Range
	Expected types.DataType
	Received types.DataType
}

func (e WrongDataType) Error() string {
	return fmt.Sprintf("expected type %s, got %s", e.Expected, e.Received)
}

func (e WrongDataType) Pos() source.Position { return e.Range.Start }

// NotAFunction is raised when a call's callee resolves to something other
// than a Function(...) DataType.
type NotAFunction struct {
	Range source.Range
	Name  string
}

func (e NotAFunction) Error() string {
	return fmt.Sprintf("%q is not a function", e.Name)
}

func (e NotAFunction) Pos() source.Position { return e.Range.Start }

// MismatchedNumberOfParameters is raised on call-site arity mismatches.
type MismatchedNumberOfParameters struct {
	Range    source.Range
	Name     string
	Expected int
	Got      int
}

func (e MismatchedNumberOfParameters) Error() string {
	return fmt.Sprintf("%q expects %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

func (e MismatchedNumberOfParameters) Pos() source.Position { return e.Range.Start }

// NotAType is raised when a parameter or return-type identifier resolves to
// something other than a Type(...) DataType.
type NotAType struct {
	Range source.Range
	Name  string
}

func (e NotAType) Error() string {
	return fmt.Sprintf("%q is not a type", e.Name)
}

func (e NotAType) Pos() source.Position { return e.Range.Start }

// List is an ordered collection of analyzer errors. It is not itself the
// failure path for the lexer or parser (those fail immediately with a
// single Error); it exists for the analyzer's accumulate-everything pass,
// which keeps checking the rest of the program after the first mistake
// instead of stopping at it.
type List []Error

// HasErrors reports whether any errors were accumulated. The pipeline halts
// before IR emission iff this is true.
func (l List) HasErrors() bool {
	return len(l) > 0
}

func (l List) Error() string {
	var sb strings.Builder
	for i, e := range l {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Lines returns one rendered line per error, the form the CLI prints to
// standard error.
func (l List) Lines() []string {
	lines := make([]string, len(l))
	for i, e := range l {
		lines[i] = e.Error()
	}
	return lines
}
