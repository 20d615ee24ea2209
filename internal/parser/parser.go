// Package parser implements the recursive-descent CSS parser: a
// cursor-peeking front end over internal/lexer, and the grammar
// combinators (spec.md §4.4) built on top of it that produce an
// internal/ast tree plus a flat, source-ordered diagnostics and trivia
// list.
package parser

import (
	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/lexer"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// Parser holds everything a single parse needs: the lexer it peeks/reads
// from, the arena every node is allocated into, scoped skip/stop sets,
// and the flat accumulated errors/trivia lists spec.md §4.3 describes.
type Parser struct {
	buf   *source.Buffer
	arena *ast.Arena
	lex   *lexer.Lexer

	skipStack []token.KindSet
	stopStack []token.KindSet

	// nested is true while parsing inside a block; it changes how
	// QualifiedRule's at-EOF-or-at-"}" guard behaves (spec.md §4.4 step 1).
	nested bool

	errors diag.List
	trivia []cursor.Cursor
}

// New creates a Parser over buf. The skip set starts at {Whitespace,
// Comment} and the stop set starts empty, matching spec.md §4.3's
// defaults.
func New(buf *source.Buffer, features lexer.FeatureSet) *Parser {
	return &Parser{
		buf:       buf,
		arena:     ast.NewArena(),
		lex:       lexer.New(buf, features),
		skipStack: []token.KindSet{token.TRIVIA},
		stopStack: []token.KindSet{token.NONE},
	}
}

func (p *Parser) Arena() *ast.Arena   { return p.arena }
func (p *Parser) Errors() []diag.Error { return p.errors.Errors() }
func (p *Parser) Trivia() []cursor.Cursor { return p.trivia }
func (p *Parser) Buffer() *source.Buffer { return p.buf }

func (p *Parser) skip() token.KindSet { return p.skipStack[len(p.skipStack)-1] }
func (p *Parser) stop() token.KindSet { return p.stopStack[len(p.stopStack)-1] }

// PushSkip/PopSkip and PushStop/PopStop implement the scoped dynamic
// extent spec.md §4.3 and §9 ("Skip/stop as dynamic scope") call for.
// Callers must pair every push with a deferred pop; an unbalanced stack
// leaks one scope's kinds into its caller, which spec.md §9 calls a
// correctness bug.
func (p *Parser) PushSkip(s token.KindSet) { p.skipStack = append(p.skipStack, s) }
func (p *Parser) PopSkip()                 { p.skipStack = p.skipStack[:len(p.skipStack)-1] }
func (p *Parser) PushStop(s token.KindSet) { p.stopStack = append(p.stopStack, s) }
func (p *Parser) PopStop()                 { p.stopStack = p.stopStack[:len(p.stopStack)-1] }

// Checkpoint is an opaque, rewindable parser position: the underlying
// lexer position plus how much of the trivia and error lists had been
// produced at that point.
type Checkpoint struct {
	lex        lexer.Checkpoint
	triviaLen  int
	errorsLen  int
}

func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{lex: p.lex.Checkpoint(), triviaLen: len(p.trivia), errorsLen: p.errors.Len()}
}

// Rewind restores a Checkpoint, discarding any trivia/errors recorded
// since it was taken. try_parse-style speculative parsing relies on this
// to leave the parser byte-for-byte unchanged on failure (spec.md §8,
// "try_parse leaves the parser unchanged on failure").
func (p *Parser) Rewind(cp Checkpoint) {
	p.lex.Rewind(cp.lex)
	p.trivia = p.trivia[:cp.triviaLen]
	p.errors.Truncate(cp.errorsLen)
}

// Next consumes and returns the next meaningful cursor, sinking every
// skip-kind cursor encountered along the way into the trivia list in
// source order.
func (p *Parser) Next() cursor.Cursor {
	skip := p.skip()
	for {
		c := p.lex.Advance()
		if c.Kind() != token.EOF && skip.Has(c.Kind()) {
			p.trivia = append(p.trivia, c)
			continue
		}
		return c
	}
}

// PeekN returns the n-th (1-indexed) upcoming meaningful cursor without
// committing the lexer past its current position or recording any
// trivia, by checkpointing the lexer, scanning ahead, and rewinding.
func (p *Parser) PeekN(n int) cursor.Cursor {
	cp := p.lex.Checkpoint()
	defer p.lex.Rewind(cp)

	skip := p.skip()
	var result cursor.Cursor
	count := 0
	for {
		c := p.lex.Advance()
		if c.Kind() != token.EOF && skip.Has(c.Kind()) {
			continue
		}
		count++
		if count == n || c.Kind() == token.EOF {
			result = c
			break
		}
	}
	return result
}

func (p *Parser) PeekNext() cursor.Cursor { return p.PeekN(1) }

// NextIsStop reports whether the upcoming meaningful cursor's kind is in
// the current stop set.
func (p *Parser) NextIsStop() bool { return p.stop().Has(p.PeekNext().Kind()) }

func (p *Parser) AtEOF() bool { return p.PeekNext().Kind() == token.EOF }

func (p *Parser) errorf(code diag.Code, span source.Span, text string) {
	p.errors.Add(diag.New(code, span, text))
}

func (p *Parser) decoded(c cursor.Cursor) string {
	return lexer.DecodedText(c, p.buf)
}

// discard records a cursor that was consumed but belongs to no AST node
// (e.g. an optional ";" accepted as a rule-list separator) into the
// trivia sink, so the printer's cursor-and-trivia merge still accounts
// for every source byte (spec.md §8, "trivia completeness").
func (p *Parser) discard(c cursor.Cursor) { p.trivia = append(p.trivia, c) }

// ReparseRange re-lexes and re-parses the component-value sequence
// occupying [start, end) of buf without touching the rest of the document
// -- the minimum surface spec.md §3's "supports incremental re-lex" asks
// the CST to provide. It is meant for a caller (typically an LSP, an
// external collaborator per spec.md §1) that knows an edit was confined to
// a single declaration's value or a single rule's prelude: it re-parses
// just that byte range and hands back a fresh component-value list the
// caller splices back into the surrounding (unmodified) tree in place of
// the stale one, plus whatever diagnostics and trivia the narrow reparse
// produced.
//
// end bounds the reparse the same way the outer parse's stop set would:
// parsing continues until AtEOF() is true or the next meaningful cursor
// starts at or past end. Passing source.Offset(len(buf.Contents)) reparses
// to the real end of the document.
func ReparseRange(buf *source.Buffer, features lexer.FeatureSet, start, end source.Offset) ([]ast.ComponentValue, []diag.Error, []cursor.Cursor) {
	p := &Parser{
		buf:       buf,
		arena:     ast.NewArena(),
		lex:       lexer.NewAt(buf, features, start),
		skipStack: []token.KindSet{token.TRIVIA},
		stopStack: []token.KindSet{token.NONE},
	}
	var values []ast.ComponentValue
	for !p.AtEOF() && p.PeekNext().Offset < end {
		values = append(values, parseComponentValue(p))
	}
	return values, p.Errors(), p.Trivia()
}
