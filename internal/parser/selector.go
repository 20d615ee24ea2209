package parser

import (
	"strings"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// tryParseSelectorListFromPrelude gives a qualified rule's raw prelude a
// typed SelectorList view when it matches the selector grammar; it
// operates on the already captured component values (the prelude's
// tokens were consumed from the live stream exactly once, by
// parseComponentValueListUntilStop), so a shape this repo doesn't
// recognize -- e.g. an @keyframes keyframe selector's percentages --
// simply leaves the typed view nil without reporting an error.
func tryParseSelectorListFromPrelude(p *Parser, prelude []ast.ComponentValue) *ast.SelectorList {
	list, ok := buildSelectorListFromComponents(p.buf, prelude)
	if !ok {
		return nil
	}
	return p.arena.newSelectorList(list)
}

// parseSelectorListFromComponents backs PseudoSelector.InnerSelectors
// (:not(), :is(), :where(), :has(), :slotted()). It is plain-allocated,
// not arena-pooled, since the whole selector-subcomponent call chain
// (parseCompoundSelectorFromComponents -> parsePseudoFromComponents)
// only ever threads a *source.Buffer, not a *Parser/*ast.Arena -- see
// DESIGN.md's arena scope note.
func parseSelectorListFromComponents(buf *source.Buffer, comps []ast.ComponentValue) *ast.SelectorList {
	list, ok := buildSelectorListFromComponents(buf, comps)
	if !ok {
		return nil
	}
	return &list
}

func buildSelectorListFromComponents(buf *source.Buffer, comps []ast.ComponentValue) (ast.SelectorList, bool) {
	if len(comps) == 0 {
		return ast.SelectorList{}, false
	}
	groups, commas := splitOnTopLevelComma(comps)
	selectors := make([]ast.ComplexSelector, 0, len(groups))
	for _, g := range groups {
		cs, ok := parseComplexSelectorFromComponents(buf, trimLeadingWhitespace(g))
		if !ok {
			return ast.SelectorList{}, false
		}
		selectors = append(selectors, cs)
	}
	return ast.SelectorList{Selectors: selectors, Commas: commas}, true
}

func splitOnTopLevelComma(comps []ast.ComponentValue) (groups [][]ast.ComponentValue, commas []cursor.Cursor) {
	var cur []ast.ComponentValue
	for _, c := range comps {
		if c.Cursor.Kind() == token.Comma {
			groups = append(groups, cur)
			commas = append(commas, c.Cursor)
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	groups = append(groups, cur)
	return groups, commas
}

func trimLeadingWhitespace(comps []ast.ComponentValue) []ast.ComponentValue {
	for len(comps) > 0 && comps[0].Cursor.Kind() == token.Whitespace {
		comps = comps[1:]
	}
	return comps
}

func parseComplexSelectorFromComponents(buf *source.Buffer, comps []ast.ComponentValue) (ast.ComplexSelector, bool) {
	var result ast.ComplexSelector
	i := 0
	var pendingCombinator *ast.Combinator

	for i < len(comps) {
		c := comps[i]
		switch c.Cursor.Kind() {
		case token.Whitespace:
			// A whitespace run is a descendant combinator unless it's
			// immediately followed by an explicit combinator delim, in
			// which case that explicit combinator wins and the
			// whitespace is just separating trivia around it.
			if pendingCombinator == nil {
				pendingCombinator = &ast.Combinator{Kind: ast.CombinatorDescendant, First: c.Cursor}
			}
			i++
			continue
		case token.Delim:
			text := c.Cursor.Text(buf)
			switch text {
			case ">":
				pendingCombinator = &ast.Combinator{Kind: ast.CombinatorChild, First: c.Cursor}
				i++
				continue
			case "+":
				pendingCombinator = &ast.Combinator{Kind: ast.CombinatorNextSibling, First: c.Cursor}
				i++
				continue
			case "~":
				pendingCombinator = &ast.Combinator{Kind: ast.CombinatorSubsequentSibling, First: c.Cursor}
				i++
				continue
			case "|":
				if i+1 < len(comps) && comps[i+1].Cursor.Kind() == token.Delim && comps[i+1].Cursor.Text(buf) == "|" {
					pendingCombinator = &ast.Combinator{Kind: ast.CombinatorColumn, First: c.Cursor, Second: comps[i+1].Cursor}
					i += 2
					continue
				}
			}
		}
		compound, consumed, ok := parseCompoundSelectorFromComponents(buf, comps[i:])
		if !ok {
			return ast.ComplexSelector{}, false
		}
		compound.Combinator = pendingCombinator
		pendingCombinator = nil
		result.Compounds = append(result.Compounds, compound)
		i += consumed
	}
	if len(result.Compounds) == 0 {
		return ast.ComplexSelector{}, false
	}
	return result, true
}

// parseCompoundSelectorFromComponents consumes one compound selector
// (type/nesting prefix plus subclass/pseudo components) from the front of
// comps, stopping at the next combinator or end of input.
func parseCompoundSelectorFromComponents(buf *source.Buffer, comps []ast.ComponentValue) (ast.CompoundSelector, int, bool) {
	var cs ast.CompoundSelector
	i := 0

	if i < len(comps) {
		switch comps[i].Cursor.Kind() {
		case token.Delim:
			if comps[i].Cursor.Text(buf) == "&" {
				cs.HasNesting = true
				cs.Nesting = comps[i].Cursor
				i++
			} else if comps[i].Cursor.Text(buf) == "*" {
				name, adv := parseNamespacedNameFrom(buf, comps, i)
				cs.HasType = true
				cs.Type = name
				i += adv
			}
		case token.Ident:
			name, adv := parseNamespacedNameFrom(buf, comps, i)
			cs.HasType = true
			cs.Type = name
			i += adv
		}
	}

	for i < len(comps) {
		c := comps[i]
		switch c.Cursor.Kind() {
		case token.Whitespace:
			return cs, i, len(cs.Components) > 0 || cs.HasType || cs.HasNesting
		case token.Delim:
			text := c.Cursor.Text(buf)
			if text == "." {
				if i+1 < len(comps) && comps[i+1].Cursor.Kind() == token.Ident {
					cs.Components = append(cs.Components, &ast.ClassSelector{Dot: c.Cursor, Name: comps[i+1].Cursor})
					i += 2
					continue
				}
				return cs, i, false
			}
			return cs, i, len(cs.Components) > 0 || cs.HasType || cs.HasNesting
		case token.Hash:
			cs.Components = append(cs.Components, &ast.IDSelector{Hash: c.Cursor})
			i++
			continue
		case token.LeftSquare:
			attr, ok := parseAttributeSelectorFromCV(buf, c)
			if !ok {
				return cs, i, false
			}
			cs.Components = append(cs.Components, attr)
			i++
			continue
		case token.Colon:
			pseudo, adv, ok := parsePseudoFromComponents(buf, comps[i:])
			if !ok {
				return cs, i, false
			}
			cs.Components = append(cs.Components, pseudo)
			i += adv
			continue
		default:
			return cs, i, len(cs.Components) > 0 || cs.HasType || cs.HasNesting
		}
	}
	return cs, i, len(cs.Components) > 0 || cs.HasType || cs.HasNesting
}

func parseNamespacedNameFrom(buf *source.Buffer, comps []ast.ComponentValue, i int) (ast.NamespacedName, int) {
	first := comps[i]
	if i+1 < len(comps) && comps[i+1].Cursor.Kind() == token.Delim && comps[i+1].Cursor.Text(buf) == "|" && i+2 < len(comps) &&
		(comps[i+2].Cursor.Kind() == token.Ident || (comps[i+2].Cursor.Kind() == token.Delim && comps[i+2].Cursor.Text(buf) == "*")) {
		name := comps[i+2]
		return ast.NamespacedName{HasPrefix: true, Prefix: first.Cursor, Bar: comps[i+1].Cursor, Name: name.Cursor}, 3
	}
	return ast.NamespacedName{Name: first.Cursor}, 1
}

func parseAttributeSelectorFromCV(buf *source.Buffer, cv ast.ComponentValue) (*ast.AttributeSelector, bool) {
	inner := trimLeadingWhitespace(cv.Children)
	if len(inner) == 0 {
		return nil, false
	}
	name, adv := parseNamespacedNameFrom(buf, inner, 0)
	attr := &ast.AttributeSelector{Open: cv.Cursor, Name: name, Close: cv.Close, Closed: cv.Closed}
	rest := trimLeadingWhitespace(inner[adv:])
	if len(rest) == 0 {
		return attr, true
	}
	op, adv2, ok := parseAttrOp(buf, rest)
	if !ok {
		return attr, true
	}
	attr.HasOp = true
	attr.Op = op
	rest = trimLeadingWhitespace(rest[adv2:])
	if len(rest) == 0 {
		return attr, true
	}
	attr.Value = rest[0].Cursor
	rest = trimLeadingWhitespace(rest[1:])
	if len(rest) > 0 && rest[0].Cursor.Kind() == token.Ident {
		attr.HasModifier = true
		attr.Modifier = rest[0].Cursor
	}
	return attr, true
}

func parseAttrOp(buf *source.Buffer, comps []ast.ComponentValue) (ast.AttrOp, int, bool) {
	if len(comps) == 0 || comps[0].Cursor.Kind() != token.Delim {
		return ast.AttrOp{}, 0, false
	}
	first := comps[0].Cursor.Text(buf)
	if first == "=" {
		return ast.AttrOp{Kind: ast.AttrOpEquals, First: comps[0].Cursor}, 1, true
	}
	kinds := map[string]ast.AttrOpKind{
		"~": ast.AttrOpIncludes,
		"|": ast.AttrOpDashMatch,
		"^": ast.AttrOpPrefixMatch,
		"$": ast.AttrOpSuffixMatch,
		"*": ast.AttrOpSubstringMatch,
	}
	kind, ok := kinds[first]
	if !ok || len(comps) < 2 || comps[1].Cursor.Kind() != token.Delim || comps[1].Cursor.Text(buf) != "=" {
		return ast.AttrOp{}, 0, false
	}
	return ast.AttrOp{Kind: kind, First: comps[0].Cursor, Second: comps[1].Cursor, Compound: true}, 2, true
}

// legacyPseudoElements are the single-colon pseudo-elements CSS2.1 allows
// without "::".
var legacyPseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-letter": true,
	"first-line":   true,
}

// selectorListPseudos take a selector list as their functional argument;
// this is a small, closed set rather than an open grammar.
var selectorListPseudos = map[string]bool{
	"not":     true,
	"is":      true,
	"where":   true,
	"has":     true,
	"slotted": true,
}

func parsePseudoFromComponents(buf *source.Buffer, comps []ast.ComponentValue) (*ast.PseudoSelector, int, bool) {
	i := 0
	if comps[i].Cursor.Kind() != token.Colon {
		return nil, 0, false
	}
	colons := []cursor.Cursor{comps[i].Cursor}
	i++
	if i < len(comps) && comps[i].Cursor.Kind() == token.Colon {
		colons = append(colons, comps[i].Cursor)
		i++
	}
	if i >= len(comps) {
		return nil, 0, false
	}
	nameCV := comps[i]
	switch nameCV.Cursor.Kind() {
	case token.Ident:
		// A single colon is either an ordinary pseudo-class or one of
		// the four legacy pseudo-elements CSS2.1 allows without "::";
		// this repo doesn't need to tell them apart structurally, only
		// preserve the colon count for round-trip.
		return &ast.PseudoSelector{Colons: colons, Name: nameCV.Cursor}, i + 1, true
	case token.Function:
		i++
		fnName := strings.ToLower(strings.TrimSuffix(nameCV.Cursor.Text(buf), "("))
		pseudo := &ast.PseudoSelector{Colons: colons, Name: nameCV.Cursor, IsFunction: true, Close: nameCV.Close, Closed: nameCV.Closed}
		if selectorListPseudos[fnName] {
			pseudo.InnerSelectors = parseSelectorListFromComponents(buf, nameCV.Children)
		}
		pseudo.Args = nameCV.Children
		return pseudo, i, true
	}
	return nil, 0, false
}
