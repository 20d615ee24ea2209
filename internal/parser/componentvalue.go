package parser

import (
	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/token"
)

// matchingClose returns the token kind that closes a simple block or
// function block opened by open, or token.EOF if open does not open one.
func matchingClose(open token.Kind) token.Kind {
	switch open {
	case token.LeftCurly:
		return token.RightCurly
	case token.LeftParen, token.Function:
		return token.RightParen
	case token.LeftSquare:
		return token.RightSquare
	default:
		return token.EOF
	}
}

func opensBlock(k token.Kind) bool {
	switch k {
	case token.LeftCurly, token.LeftParen, token.LeftSquare, token.Function:
		return true
	default:
		return false
	}
}

// parseComponentValue consumes exactly one component value: a single
// token, or a token that opens a simple block / function block together
// with everything up to (and including, when present) its matching
// closing token. This is the generic fallback node shape used for any
// prelude or value this repo does not give a more specific typed shape.
func parseComponentValue(p *Parser) ast.ComponentValue {
	c := p.Next()
	cv := ast.ComponentValue{Cursor: c}
	if !opensBlock(c.Kind()) {
		return cv
	}
	closeKind := matchingClose(c.Kind())
	for {
		if p.AtEOF() {
			return cv
		}
		if p.PeekNext().Kind() == closeKind {
			cv.Close = p.Next()
			cv.Closed = true
			return cv
		}
		cv.Children = append(cv.Children, parseComponentValue(p))
	}
}

// parseComponentValueListUntilStop greedily parses component values until
// EOF or the current stop set is matched; used for at-rule preludes and,
// with DeclarationValueStop pushed, for declaration values.
func parseComponentValueListUntilStop(p *Parser) []ast.ComponentValue {
	var out []ast.ComponentValue
	for !p.AtEOF() && !p.NextIsStop() {
		out = append(out, parseComponentValue(p))
	}
	return out
}

// recoverCapture implements the error recovery policy inside rule/decl
// lists: consume tokens (honoring nested block structure) up to and
// including the next top-level ';', or up to (but not including) the
// next top-level '}', or to EOF -- capturing every consumed cursor so the
// erroring span still round-trips byte-identically.
func recoverCapture(p *Parser) []ast.ComponentValue {
	var out []ast.ComponentValue
	for {
		if p.AtEOF() {
			return out
		}
		if p.PeekNext().Kind() == token.RightCurly {
			return out
		}
		cv := parseComponentValue(p)
		wasSemicolon := cv.Cursor.Kind() == token.Semicolon
		out = append(out, cv)
		if wasSemicolon {
			return out
		}
	}
}
