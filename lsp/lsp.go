// Package lsp provides the data-shape half of Axiom's language-server
// integration: a per-document store keyed by URI, diagnostic and hover
// construction against go.lsp.dev/protocol's wire types, and the
// Range-to-protocol-Range mapping rule. The jsonrpc2 transport loop and
// textDocument/* dispatch themselves are an outer collaborator and are not
// implemented here; a server binary drives this store from its own message
// loop rather than embedding transport concerns in this package.
package lsp

import (
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/protocol"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/axiomerr"
	"github.com/axiomlang/axiom/compiler"
	"github.com/axiomlang/axiom/source"
	"github.com/axiomlang/axiom/types"
)

// Document is one open text document's latest known state: its text, the
// compile result against that text, and a revision identifier that changes
// on every edit so a caller can tell a stale async result apart from the
// current one.
type Document struct {
	URI      string
	Text     string
	Revision uuid.UUID
	Result   compiler.Result
}

// Store holds every currently open document, keyed by URI. It is safe for
// concurrent use, since didOpen/didChange notifications and hover requests
// may arrive from different goroutines in a real server loop.
type Store struct {
	mu   sync.Mutex
	docs map[string]*Document
}

// NewStore returns an empty document store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Open records a newly opened document and compiles it, per
// textDocument/didOpen.
func (s *Store) Open(uri, text string) *Document {
	return s.put(uri, text)
}

// Change replaces a document's text with newly received content and
// recompiles it, per textDocument/didChange. The previous revision's
// result is discarded outright: a result for a stale revision must never
// be allowed to overwrite a newer one.
func (s *Store) Change(uri, text string) *Document {
	return s.put(uri, text)
}

func (s *Store) put(uri, text string) *Document {
	doc := &Document{
		URI:      uri,
		Text:     text,
		Revision: uuid.New(),
		Result:   compiler.Compile(text),
	}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Get returns the last known document state for uri, if any document with
// that URI is currently open.
func (s *Store) Get(uri string) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Close drops a document from the store, per textDocument/didClose.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// ToRange maps a source.Range onto a protocol.Range: the source end is
// inclusive, the protocol end is exclusive, so end.character is advanced
// by one.
func ToRange(r source.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: r.Start.Line, Character: r.Start.Column},
		End:   protocol.Position{Line: r.End.Line, Character: r.End.Column + 1},
	}
}

// Diagnostics renders one protocol.Diagnostic per accumulated analyzer
// error, all at severity Error, for textDocument/publishDiagnostics. An
// axiomerr.Error only guarantees a single anchoring Pos(), not a full
// Range, so each diagnostic covers exactly the one character at that
// position.
func Diagnostics(errs axiomerr.List) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, len(errs))
	for i, e := range errs {
		pointRange := source.NewRange(e.Pos())
		diags[i] = protocol.Diagnostic{
			Range:    ToRange(pointRange),
			Severity: protocol.DiagnosticSeverityError,
			Message:  e.Error(),
		}
	}
	return diags
}

// Hover resolves the data-type string of the AST node enclosing pos. It
// returns ok=false if the document failed to compile into an AST at all,
// or if pos does not fall within any typed node.
func Hover(doc *Document, pos source.Position) (protocol.Hover, bool) {
	if doc.Result.File == nil {
		return protocol.Hover{}, false
	}
	dt, rng, found := enclosingDataType(doc.Result.File, pos)
	if !found {
		return protocol.Hover{}, false
	}
	protoRange := ToRange(rng)
	return protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.PlainText, Value: dt.String()},
		Range:    &protoRange,
	}, true
}

// enclosingDataType finds the smallest typed node whose Range contains pos,
// descending into every statement and expression kind the AST defines.
func enclosingDataType(f *ast.File, pos source.Position) (types.DataType, source.Range, bool) {
	var best types.DataType
	var bestRange source.Range
	found := false

	consider := func(dt types.DataType, r source.Range) {
		if !within(r, pos) {
			return
		}
		if !found || narrower(r, bestRange) {
			best, bestRange, found = dt, r, true
		}
	}

	var walkNode func(n ast.Node)
	walkNode = func(n ast.Node) {
		if n == nil || !within(n.Range(), pos) {
			return
		}
		switch v := n.(type) {
		case *ast.Scope:
			for _, stmt := range v.Statements {
				walkNode(stmt)
			}
		case *ast.IfElse:
			walkNode(v.Condition)
			walkNode(v.Consequent)
			for _, elif := range v.ElseIfs {
				walkNode(elif.Condition)
				walkNode(elif.Body)
			}
			if v.Else != nil {
				walkNode(v.Else)
			}
		case *ast.Return:
			walkNode(v.Expr)
		case *ast.Declaration:
			walkNode(v.Init)
		case *ast.Assignment:
			walkNode(v.RHS)
		case *ast.Ternary:
			consider(v.DataType, v.R)
			walkNode(v.Condition)
			walkNode(v.Consequent)
			walkNode(v.Alternative)
		case *ast.Binary:
			consider(v.DataType, v.R)
			walkNode(v.Left)
			walkNode(v.Right)
		case *ast.Unary:
			consider(v.DataType, v.R)
			walkNode(v.Operand)
		case *ast.Call:
			consider(v.DataType, v.R)
			for _, arg := range v.Args {
				walkNode(arg)
			}
		case *ast.Identifier:
			consider(v.DataType, v.R)
		case *ast.Number:
			consider(v.DataType, v.R)
		}
	}

	for _, fn := range f.Functions {
		if !within(fn.Range(), pos) {
			continue
		}
		for _, p := range fn.Params {
			if within(p.Range(), pos) {
				consider(p.DataType, p.R)
			}
		}
		walkNode(fn.Body)
	}

	return best, bestRange, found
}

func within(r source.Range, pos source.Position) bool {
	return r.Start.LessEqual(pos) && pos.LessEqual(r.End)
}

// narrower reports whether a spans strictly less source text than b, used
// to prefer the innermost enclosing node when ranges nest.
func narrower(a, b source.Range) bool {
	if a.Start.Before(b.Start) {
		return false
	}
	if b.End.Before(a.End) {
		return false
	}
	return a.Start != b.Start || a.End != b.End
}
