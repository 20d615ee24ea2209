// Package css is the public facade over this module's CSS Syntax Level 3
// lexer, cursor-based CST parser and lossless serializer: Parse,
// Serialize and Visit (spec.md §6's "External Interfaces").
package css

import (
	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/lexer"
	"github.com/csstreelang/csscore/internal/parser"
	"github.com/csstreelang/csscore/internal/printer"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/visitor"
)

// Features selects optional, non-standard lexer behaviors. It is a
// type alias for the lexer's own FeatureSet so callers never need to
// import internal/lexer directly.
type Features = lexer.FeatureSet

// SerializeOptions mirrors internal/printer.Options.
type SerializeOptions = printer.Options

// DefaultSerializeOptions returns the byte-identical round-trip
// configuration (spec.md §8's default testable property).
func DefaultSerializeOptions() SerializeOptions { return printer.Default() }

// Diagnostic is one parse error or warning, reported in source order.
type Diagnostic = diag.Error

// Cursor re-exports internal/cursor.Cursor for callers that want to walk
// the raw trivia list (e.g. a debug dump), without importing internal
// packages directly.
type Cursor = cursor.Cursor

// Visitor and MutVisitor re-export internal/visitor's traversal
// interfaces so callers implement a single, public type.
type Visitor = visitor.Visitor
type MutVisitor = visitor.MutVisitor
type BaseVisitor = visitor.Base
type BaseMutVisitor = visitor.MutBase

// StyleSheet is a parsed CSS document: the CST root plus everything
// needed to re-serialize or re-diagnose it (the source buffer, the
// recorded trivia list, and any diagnostics collected during parsing).
type StyleSheet struct {
	buf    *source.Buffer
	tree   *ast.StyleSheet
	arena  *ast.Arena
	trivia []cursor.Cursor
	errs   []diag.Error
}

// Root returns the parsed AST root. Exposed for callers that need direct
// tree access beyond Visit/Serialize.
func (s *StyleSheet) Root() *ast.StyleSheet { return s.tree }

// Arena returns the arena owning every node in Root(). The arena, and
// therefore every cursor and AST pointer derived from this StyleSheet,
// stays valid only as long as the caller keeps this StyleSheet (or its
// Arena) reachable.
func (s *StyleSheet) Arena() *ast.Arena { return s.arena }

// Diagnostics returns every error or recovered-from condition collected
// while parsing, in source order. A non-empty result does not mean
// parsing failed: this parser never aborts (spec.md §7), it always
// produces a full, round-trippable tree.
func (s *StyleSheet) Diagnostics() []diag.Error { return s.errs }

// Trivia returns every whitespace, comment, stray-semicolon and CDO/CDC
// cursor sunk during parsing, in source order. Exposed for tooling that
// wants to render the raw lexical stream alongside the tree (e.g. a
// debug dump) rather than just the round-tripped text Serialize produces.
func (s *StyleSheet) Trivia() []Cursor { return s.trivia }

// Text returns the raw source bytes spanned by c. c must have been
// produced from this StyleSheet (its Root(), Trivia() or Diagnostics()).
func (s *StyleSheet) Text(c Cursor) string { return c.Text(s.buf) }

// Parse lexes and parses source text into a StyleSheet. It never
// returns an error: malformed input is recovered from node-by-node and
// surfaced through Diagnostics instead (spec.md §7's "diagnostics, not
// exceptions" error model).
func Parse(path, contents string, features Features) *StyleSheet {
	buf := source.New(path, contents)
	p := parser.New(buf, features)
	tree := parser.ParseStyleSheet(p)
	return &StyleSheet{
		buf:    buf,
		tree:   tree,
		arena:  p.Arena(),
		trivia: p.Trivia(),
		errs:   p.Errors(),
	}
}

// Serialize renders s back to text under opts.
func Serialize(s *StyleSheet, opts SerializeOptions) string {
	return printer.Serialize(s.buf, s.tree, s.trivia, opts)
}

// String serializes s with DefaultSerializeOptions, reproducing the
// original source exactly when no visitor has mutated the tree.
func (s *StyleSheet) String() string {
	return Serialize(s, DefaultSerializeOptions())
}

// Visit runs a read-only traversal over s (spec.md §4.5's "accept").
func Visit(s *StyleSheet, v Visitor) {
	visitor.Walk(s.tree, v)
}

// VisitMut runs a mutating traversal over s (spec.md §4.5's
// "accept_mut"), rewriting s's rule lists in place.
func VisitMut(s *StyleSheet, v MutVisitor) {
	visitor.WalkMut(s.tree, v)
}

// ComponentValue re-exports internal/ast.ComponentValue, the node shape
// ReparseRange produces.
type ComponentValue = ast.ComponentValue

// ReparseRange re-lexes and re-parses just the component-value sequence
// spanning [start, end) of s's original source, without touching the rest
// of the document (spec.md §3: the CST "supports incremental re-lex"). It
// is meant for a caller, such as an LSP, that knows an edit was confined
// to a single declaration's value or a single rule's prelude: splice the
// returned values into the surrounding tree in place of the stale ones.
// s's own Root()/Trivia()/Diagnostics() are left untouched; the returned
// diagnostics and trivia describe only the reparsed range.
func ReparseRange(s *StyleSheet, start, end uint32, features Features) ([]ComponentValue, []Diagnostic, []Cursor) {
	return parser.ReparseRange(s.buf, features, source.Offset(start), source.Offset(end))
}
