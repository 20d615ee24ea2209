package parser

import (
	"strings"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// ParseStyleSheet implements parse_entirely::<StyleSheet>(): a top-level
// rule list with no enclosing braces, followed by a trailing-input check.
func ParseStyleSheet(p *Parser) *ast.StyleSheet {
	sheet := &ast.StyleSheet{} // the sheet root itself isn't arena-pooled: there is exactly one per parse
	for {
		if p.AtEOF() {
			break
		}
		next := p.PeekNext()
		if next.Kind() == token.CDO || next.Kind() == token.CDC {
			p.discard(p.Next()) // top-level CDO/CDC is ignored per the CSS parsing model
			continue
		}
		sheet.Rules = append(sheet.Rules, parseTopLevelChild(p))
	}
	// parse_entirely's trailing-input check: AtEOF() being true is exactly
	// "the next meaningful cursor is EOF", so reaching here always
	// satisfies it -- any stray input was already consumed as a rule or
	// recovered bad declaration above. Consuming the EOF records any
	// trailing whitespace/comments in the trivia list.
	p.Next()
	return sheet
}

// ParseRuleEntirely implements parse_entirely::<T>() (spec.md §4.3) for a
// single top-level rule: parse exactly one rule, then require EOF. Unlike
// ParseStyleSheet (whose loop runs until EOF by construction, so trailing
// input is never possible), a caller asking for one rule genuinely can be
// left with unconsumed input -- e.g. a second rule, or stray tokens after
// it -- which is recorded as ExpectedEnd rather than silently dropped or
// folded into the returned rule.
func ParseRuleEntirely(p *Parser) ast.R {
	if p.PeekNext().Kind() == token.CDO || p.PeekNext().Kind() == token.CDC {
		p.discard(p.Next())
	}
	rule := parseTopLevelChild(p)
	if !p.AtEOF() {
		trailing := p.PeekNext()
		p.errorf(diag.ExpectedEnd, p.span(trailing), "expected end of input after rule")
		for !p.AtEOF() {
			p.discard(p.Next())
		}
	}
	return rule
}

func parseTopLevelChild(p *Parser) ast.R {
	if p.PeekNext().Kind() == token.AtKeyword {
		return parseAtRule(p)
	}
	return parseQualifiedRule(p)
}

// parseBlock implements the shared RuleList/DeclarationList/
// DeclarationRuleList algorithm: read '{', then repeatedly skip trivia,
// accept an optional ';', bail on '}' or EOF, else parse one child via
// parseChild.
func parseBlock(p *Parser, openCurly cursor.Cursor, parseChild func(*Parser) ast.R) *ast.Block {
	block := p.arena.newBlock(ast.Block{OpenCurly: openCurly})
	wasNested := p.nested
	p.nested = true
	defer func() { p.nested = wasNested }()

	for {
		if p.AtEOF() {
			block.Closed = false
			p.errorf(diag.UnexpectedEnd, p.span(p.PeekNext()), "unexpected end of input inside block")
			return block
		}
		next := p.PeekNext()
		if next.Kind() == token.RightCurly {
			block.CloseCurly = p.Next()
			block.Closed = true
			return block
		}
		if next.Kind() == token.Semicolon {
			p.discard(p.Next())
			continue
		}
		block.Children = append(block.Children, parseChild(p))
	}
}

// parseRuleListBody parses a block whose children are always rules (used
// by @media, @supports, the stylesheet's @layer block, and any other
// at-rule whose block is a rule list rather than a declaration list).
func parseRuleListBody(p *Parser, openCurly cursor.Cursor) *ast.Block {
	return parseBlock(p, openCurly, func(p *Parser) ast.R {
		if p.PeekNext().Kind() == token.AtKeyword {
			return parseAtRule(p)
		}
		return parseQualifiedRule(p)
	})
}

// parseDeclarationRuleListBody parses a block whose children may be
// declarations or, per CSS Nesting, nested rules: dispatch on AtKeyword
// for a nested at-rule, otherwise try a declaration, falling back to a
// nested qualified (selector) rule when the declaration shape doesn't
// match.
func parseDeclarationRuleListBody(p *Parser, openCurly cursor.Cursor) *ast.Block {
	return parseBlock(p, openCurly, parseStyleBlockChild)
}

func parseStyleBlockChild(p *Parser) ast.R {
	if p.PeekNext().Kind() == token.AtKeyword {
		return parseAtRule(p)
	}
	if looksLikeDeclaration(p) {
		return parseDeclarationOrRecover(p)
	}
	return parseQualifiedRule(p)
}

// looksLikeDeclaration peeks for the "Ident Colon" shape that starts a
// declaration, without consuming anything.
func looksLikeDeclaration(p *Parser) bool {
	first := p.PeekN(1)
	if first.Kind() != token.Ident {
		return false
	}
	return p.PeekN(2).Kind() == token.Colon
}

func isDashedIdent(p *Parser, c cursor.Cursor) bool {
	return c.Kind() == token.Ident && strings.HasPrefix(p.decoded(c), "--")
}

// parseAtRule implements the AtRule<Prelude, Block> combinator: consume
// "@ident", an optional prelude, then a ";" or a block.
func parseAtRule(p *Parser) *ast.AtRule {
	atKeyword := p.Next() // caller already peeked an AtKeyword
	name := p.decoded(atKeyword)

	rule := p.arena.newAtRule(ast.AtRule{AtKeyword: atKeyword, Name: name})

	next := p.PeekNext()
	if next.Kind() != token.LeftCurly && next.Kind() != token.Semicolon {
		rule.HasPrelude = true
		p.PushStop(token.LeftCurlyOrSemicolon)
		rule.Prelude = parseComponentValueListUntilStop(p)
		p.PopStop()
	}

	switch p.PeekNext().Kind() {
	case token.Semicolon:
		rule.Semicolon = p.Next()
	case token.LeftCurly:
		open := p.Next()
		rule.Block = dispatchAtRuleBlock(p, name, open)
	default:
		p.errorf(diag.MissingAtRuleBlock, p.span(atKeyword), "expected \"{\" or \";\" to end \"@"+name+"\"")
	}

	attachTypedAtRule(p, rule)
	return rule
}

// parseQualifiedRule implements QualifiedRule<Prelude, Block,
// BadDeclaration>.
func parseQualifiedRule(p *Parser) ast.R {
	if p.AtEOF() {
		eof := p.PeekNext()
		p.errorf(diag.UnexpectedEnd, p.span(eof), "unexpected end of input")
		return p.arena.newBadDeclaration(ast.BadDeclaration{})
	}
	if p.nested && p.PeekNext().Kind() == token.RightCurly {
		rc := p.PeekNext()
		p.errorf(diag.UnexpectedCloseCurly, p.span(rc), "unexpected \"}\"")
		return p.arena.newBadDeclaration(ast.BadDeclaration{})
	}

	// A dashed-ident ':' shape at rule position is a custom-property-like
	// declaration leaked where a rule was expected (spec.md §4.4 step 2).
	// This never succeeds as a real declaration, nested or not: recover by
	// capturing to the next top-level ';' or matching '}' and record
	// BadDeclaration, matching the original implementation's
	// parse_qualified_rule (which returns Err(diagnostics::BadDeclaration)
	// unconditionally on this shape rather than a parsed declaration).
	first := p.PeekN(1)
	if isDashedIdent(p, first) && p.PeekN(2).Kind() == token.Colon {
		tail := recoverCapture(p)
		p.errorf(diag.BadDeclaration, p.span(first), "custom property syntax is not allowed in rule position")
		return p.arena.newBadDeclaration(ast.BadDeclaration{Tokens: tail})
	}

	p.PushStop(p.stop().With(token.LeftCurly))
	prelude := parseComponentValueListUntilStop(p)
	p.PopStop()

	if p.PeekNext().Kind() != token.LeftCurly {
		tail := recoverCapture(p)
		p.errorf(diag.BadDeclaration, preludeSpan(prelude), "expected a rule's block")
		return p.arena.newBadDeclaration(ast.BadDeclaration{Tokens: append(prelude, tail...)})
	}

	open := p.Next()
	rule := p.arena.newQualifiedRule(ast.QualifiedRule{Prelude: prelude})
	rule.Block = parseDeclarationRuleListBody(p, open)
	rule.Selectors = tryParseSelectorListFromPrelude(p, prelude)
	return rule
}

// parseDeclarationOrRecover implements Declaration<Value>, recovering to
// a BadDeclaration on malformed input per the standard recovery policy.
func parseDeclarationOrRecover(p *Parser) ast.R {
	name := p.Next() // an Ident, guaranteed by the caller's lookahead
	if p.PeekNext().Kind() != token.Colon {
		tail := recoverCapture(p)
		p.errorf(diag.BadDeclaration, p.span(name), "expected \":\"")
		return p.arena.newBadDeclaration(ast.BadDeclaration{Tokens: append([]ast.ComponentValue{{Cursor: name}}, tail...)})
	}
	colon := p.Next()

	p.PushStop(token.DeclarationValueStop)
	values := parseComponentValueListUntilStop(p)
	p.PopStop()

	values, important, bang, importantIdent := p.splitImportantTrailer(values)

	decl := p.arena.newDeclaration(ast.Declaration{
		Name:           name,
		Colon:          colon,
		Value:          values,
		Important:      important,
		Bang:           bang,
		ImportantIdent: importantIdent,
	})

	if p.PeekNext().Kind() == token.BadString {
		bad := p.Next()
		p.errorf(diag.BadDeclaration, p.span(bad), "unterminated string in declaration value")
		return p.arena.newBadDeclaration(ast.BadDeclaration{Tokens: append(append([]ast.ComponentValue{{Cursor: name}, {Cursor: colon}}, values...), ast.ComponentValue{Cursor: bad})})
	}
	return decl
}

// splitImportantTrailer detects and strips a trailing "!important" (with
// any trivia already absorbed by Next, so the two tokens are always
// adjacent in the value list) from a parsed declaration value.
func (p *Parser) splitImportantTrailer(values []ast.ComponentValue) (rest []ast.ComponentValue, important bool, bang, importantIdent cursor.Cursor) {
	n := len(values)
	if n < 2 {
		return values, false, cursor.Cursor{}, cursor.Cursor{}
	}
	maybeBang := values[n-2]
	maybeImportant := values[n-1]
	if maybeBang.Cursor.Kind() != token.Delim || p.textOf(maybeBang.Cursor) != "!" {
		return values, false, cursor.Cursor{}, cursor.Cursor{}
	}
	if maybeImportant.Cursor.Kind() != token.Ident || !strings.EqualFold(p.decoded(maybeImportant.Cursor), "important") {
		return values, false, cursor.Cursor{}, cursor.Cursor{}
	}
	return values[:n-2], true, maybeBang.Cursor, maybeImportant.Cursor
}

func (p *Parser) textOf(c cursor.Cursor) string { return c.Text(p.buf) }

func (p *Parser) span(c cursor.Cursor) source.Span { return c.Span() }

func preludeSpan(prelude []ast.ComponentValue) source.Span {
	if len(prelude) == 0 {
		return source.Span{}
	}
	first := prelude[0].Cursor
	last := prelude[len(prelude)-1]
	end := last.Cursor.End()
	if last.Closed {
		end = last.Close.End()
	}
	return source.Span{Start: first.Offset, End: end}
}
