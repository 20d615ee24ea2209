package parser

import (
	"strings"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/diag"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// parseMediaQueryListFromComponents interprets an @media/@import prelude's
// already-captured component values as a MediaQueryList (boolean/
// discrete/ranged feature grammar). Like the selector interpreter, it
// works purely over the []ast.ComponentValue snapshot -- the tokens were
// already consumed from the live stream once, by the generic prelude
// parse, and a paren group's Children were already grouped by that pass.
// p is threaded through only to report malformed-feature diagnostics
// (e.g. UnexpectedMediaRangeComparisonEqualsTwice); this second pass never
// advances p's lexer/trivia.
func parseMediaQueryListFromComponents(p *Parser, comps []ast.ComponentValue) ast.MediaQueryList {
	groups, commas := splitOnTopLevelComma(comps)
	queries := make([]ast.MediaQuery, 0, len(groups))
	for _, g := range groups {
		queries = append(queries, parseMediaQueryFromComponents(p, trimLeadingWhitespace(g)))
	}
	return ast.MediaQueryList{Queries: queries, Commas: commas}
}

func parseMediaQueryFromComponents(p *Parser, comps []ast.ComponentValue) ast.MediaQuery {
	buf := p.buf
	var q ast.MediaQuery
	i := 0
	i = skipWS(comps, i)

	if i < len(comps) && comps[i].Cursor.Kind() == token.Ident {
		word := strings.ToLower(comps[i].Cursor.Text(buf))
		if word == "not" || word == "only" {
			q.HasModifier = true
			q.Modifier = comps[i].Cursor
			i++
			i = skipWS(comps, i)
		}
	}

	if i < len(comps) && comps[i].Cursor.Kind() == token.Ident && !isConditionStart(comps, i) {
		q.HasType = true
		q.Type = comps[i].Cursor
		i++
		i = skipWS(comps, i)
	}

	for i < len(comps) {
		if comps[i].Cursor.Kind() == token.Ident {
			word := strings.ToLower(comps[i].Cursor.Text(buf))
			if word == "and" || word == "or" {
				q.Combinators = append(q.Combinators, comps[i].Cursor)
				i++
				i = skipWS(comps, i)
				continue
			}
		}
		if i < len(comps) && comps[i].Cursor.Kind() == token.LeftParen {
			q.Conditions = append(q.Conditions, parseMediaConditionInParens(p, comps[i]))
			i++
			i = skipWS(comps, i)
			continue
		}
		break
	}
	return q
}

// isConditionStart reports whether the Ident at comps[i] is actually the
// start of an "and"/"or"-joined condition list rather than a media type,
// recognized by it being immediately followed by "(".
func isConditionStart(comps []ast.ComponentValue, i int) bool {
	return i+1 < len(comps) && comps[i+1].Cursor.Kind() == token.LeftParen
}

func skipWS(comps []ast.ComponentValue, i int) int {
	for i < len(comps) && comps[i].Cursor.Kind() == token.Whitespace {
		i++
	}
	return i
}

func parseMediaConditionInParens(p *Parser, cv ast.ComponentValue) ast.MediaConditionInParens {
	buf := p.buf
	cond := ast.MediaConditionInParens{Open: cv.Cursor, Close: cv.Close}
	inner := trimLeadingWhitespace(cv.Children)
	if len(inner) > 0 && inner[0].Cursor.Kind() == token.Ident && strings.EqualFold(inner[0].Cursor.Text(buf), "not") {
		cond.HasNot = true
		cond.Not = inner[0].Cursor
		inner = trimLeadingWhitespace(inner[1:])
	}
	if feature, ok := parseMediaFeature(p, inner); ok {
		cond.Feature = &feature
	} else {
		cond.Raw = inner
	}
	return cond
}

func parseMediaFeature(p *Parser, comps []ast.ComponentValue) (ast.MediaFeature, bool) {
	buf := p.buf
	comps = trimRightWhitespace(trimLeadingWhitespace(comps))
	if len(comps) == 0 {
		return ast.MediaFeature{}, false
	}

	if comps[0].Cursor.Kind() == token.Ident && len(comps) == 1 {
		return ast.MediaFeature{Shape: ast.MediaFeatureBoolean, Name: comps[0].Cursor}, true
	}

	if comps[0].Cursor.Kind() == token.Ident && len(comps) >= 2 && comps[1].Cursor.Kind() == token.Colon {
		value := trimLeadingWhitespace(comps[2:])
		shape := ast.MediaFeatureDiscrete
		name := strings.ToLower(comps[0].Cursor.Text(buf))
		if strings.HasPrefix(name, "min-") || strings.HasPrefix(name, "max-") {
			shape = ast.MediaFeatureRangedLegacy
		}
		return ast.MediaFeature{Shape: shape, Name: comps[0].Cursor, Colon: comps[1].Cursor, Value: value}, true
	}

	// Ranged comparison forms: "<name> <cmp> <value>", "<value> <cmp>
	// <name>", or "<value> <cmp> <name> <cmp> <value>". Having failed the
	// discrete/legacy checks above, comps[0] being an Ident here means
	// the single-bound "<name> <cmp> <value>" form; otherwise the name
	// is found further in, bounded on the left by a value.
	if comps[0].Cursor.Kind() == token.Ident {
		name := comps[0].Cursor
		cmp, adv, ok := parseComparator(buf, comps, 1)
		if !ok {
			return ast.MediaFeature{}, false
		}
		rightVal := trimLeadingWhitespace(comps[1+adv:])
		return ast.MediaFeature{Shape: ast.MediaFeatureRangedSingleBound, Name: name, RightCmp: &cmp, RightValue: rightVal}, true
	}

	idx, name, ok := findFeatureNameIdent(comps)
	if !ok {
		return ast.MediaFeature{}, false
	}
	// The comparator left of the name is one Delim ("<" / ">" / "=") or
	// two ("<=" / ">="); step back over a "<"/">" that precedes an "=" so
	// parseComparator sees the whole two-token form.
	leftCmpIdx := idx - 1
	if leftCmpIdx >= 1 && comps[leftCmpIdx].Cursor.Kind() == token.Delim && comps[leftCmpIdx].Cursor.Text(buf) == "=" {
		if prev := comps[leftCmpIdx-1]; prev.Cursor.Kind() == token.Delim && (prev.Cursor.Text(buf) == "<" || prev.Cursor.Text(buf) == ">") {
			leftCmpIdx--
		}
	}
	cmp, _, ok := parseComparator(buf, comps, leftCmpIdx)
	if !ok {
		return ast.MediaFeature{}, false
	}
	leftVal := trimRightWhitespace(comps[:leftCmpIdx])
	rest := trimLeadingWhitespace(comps[idx+1:])
	if len(rest) == 0 {
		return ast.MediaFeature{Shape: ast.MediaFeatureRangedSingleBound, Name: name, LeftValue: leftVal, LeftCmp: &cmp}, true
	}
	rightCmp, rightAdv, ok := parseComparator(buf, rest, 0)
	if !ok {
		return ast.MediaFeature{}, false
	}
	rightVal := trimLeadingWhitespace(rest[rightAdv:])
	// spec.md §4.4: a ranged-between feature ("V <cmp> name <cmp> V")
	// forbids "=" appearing on both sides, e.g. "300px = width = 900px".
	if cmp.Kind == ast.CompareEq && rightCmp.Kind == ast.CompareEq {
		p.errorf(diag.UnexpectedMediaRangeComparisonEqualsTwice, p.span(name),
			"media feature range cannot use \"=\" on both sides")
	}
	return ast.MediaFeature{Shape: ast.MediaFeatureRangedBetween, Name: name, LeftValue: leftVal, LeftCmp: &cmp, RightCmp: &rightCmp, RightValue: rightVal}, true
}

func findFeatureNameIdent(comps []ast.ComponentValue) (int, cursor.Cursor, bool) {
	for i, c := range comps {
		if c.Cursor.Kind() == token.Ident {
			return i, c.Cursor, true
		}
	}
	return 0, cursor.Cursor{}, false
}

func parseComparator(buf *source.Buffer, comps []ast.ComponentValue, i int) (ast.Comparator, int, bool) {
	if i >= len(comps) || comps[i].Cursor.Kind() != token.Delim {
		return ast.Comparator{}, 0, false
	}
	text := comps[i].Cursor.Text(buf)
	switch text {
	case "=":
		return ast.Comparator{Kind: ast.CompareEq, First: comps[i].Cursor}, 1, true
	case "<", ">":
		kind := ast.CompareLt
		if text == ">" {
			kind = ast.CompareGt
		}
		if i+1 < len(comps) && comps[i+1].Cursor.Kind() == token.Delim && comps[i+1].Cursor.Text(buf) == "=" {
			if text == "<" {
				kind = ast.CompareLe
			} else {
				kind = ast.CompareGe
			}
			return ast.Comparator{Kind: kind, First: comps[i].Cursor, Second: comps[i+1].Cursor}, 2, true
		}
		return ast.Comparator{Kind: kind, First: comps[i].Cursor}, 1, true
	}
	return ast.Comparator{}, 0, false
}

func trimRightWhitespace(comps []ast.ComponentValue) []ast.ComponentValue {
	n := len(comps)
	for n > 0 && comps[n-1].Cursor.Kind() == token.Whitespace {
		n--
	}
	return comps[:n]
}
