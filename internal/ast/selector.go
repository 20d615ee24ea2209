package ast

import "github.com/csstreelang/csscore/internal/cursor"

// SelectorList is a comma-separated list of complex selectors, the typed
// shape a QualifiedRule's prelude parses into when it is an ordinary style
// rule (spec.md §4.4, "SelectorList").
type SelectorList struct {
	Selectors []ComplexSelector
	Commas    []cursor.Cursor // len(Commas) == len(Selectors)-1 when fully parsed
}

// CombinatorKind distinguishes the five combinators between compound
// selectors in a complex selector.
type CombinatorKind uint8

const (
	CombinatorDescendant CombinatorKind = iota // whitespace
	CombinatorChild                            // '>'
	CombinatorNextSibling                      // '+'
	CombinatorSubsequentSibling                // '~'
	CombinatorColumn                           // '||'
)

// Combinator is the (possibly whitespace-only) connective before a compound
// selector other than the first in a complex selector.
type Combinator struct {
	Kind  CombinatorKind
	First cursor.Cursor // the Whitespace or Delim cursor
	// Second is set only for CombinatorColumn, whose two '|' delims are two
	// separate tokens at the CSS Syntax Level 3 tokenizer level.
	Second cursor.Cursor
}

// ComplexSelector is a sequence of compound selectors joined by
// combinators, e.g. "div > p.intro ~ span".
type ComplexSelector struct {
	Compounds []CompoundSelector
}

// NamespacedName is an optional namespace prefix plus a name, used for both
// type selectors ("svg|rect") and attribute selector names.
type NamespacedName struct {
	HasPrefix bool
	Prefix    cursor.Cursor // Ident or Delim('*'); zero if HasPrefix is false
	Bar       cursor.Cursor // the '|' delim; zero if HasPrefix is false
	Name      cursor.Cursor // Ident or Delim('*')
}

// CompoundSelector is a type selector and/or nesting selector followed by
// zero or more subclass/pseudo selectors, with no combinator inside it.
type CompoundSelector struct {
	// Combinator is nil for the first compound in a ComplexSelector.
	Combinator *Combinator

	HasNesting bool
	Nesting    cursor.Cursor // the '&' delim; zero if HasNesting is false

	HasType bool
	Type    NamespacedName // valid only if HasType

	Components []SelectorComponent
}

// SelectorComponent is the sum type of subclass and pseudo selectors that
// can follow a compound selector's type/nesting prefix.
type SelectorComponent interface{ isSelectorComponent() }

func (*IDSelector) isSelectorComponent()        {}
func (*ClassSelector) isSelectorComponent()     {}
func (*AttributeSelector) isSelectorComponent() {}
func (*PseudoSelector) isSelectorComponent()    {}

type IDSelector struct {
	Hash cursor.Cursor
}

type ClassSelector struct {
	Dot  cursor.Cursor
	Name cursor.Cursor // Ident
}

// AttrOpKind is the attribute-selector matcher, spelled as one or two Delim
// tokens in the raw token stream (CSS Syntax Level 3 has no single token
// kind for "~=" etc.).
type AttrOpKind uint8

const (
	AttrOpEquals AttrOpKind = iota
	AttrOpIncludes
	AttrOpDashMatch
	AttrOpPrefixMatch
	AttrOpSuffixMatch
	AttrOpSubstringMatch
)

type AttrOp struct {
	Kind    AttrOpKind
	First   cursor.Cursor
	Second  cursor.Cursor // '=' for every two-character operator
	Compound bool
}

// AttributeSelector is "[" NamespacedName (AttrOp (String|Ident) Modifier?)? "]".
type AttributeSelector struct {
	Open  cursor.Cursor
	Name  NamespacedName
	HasOp bool
	Op    AttrOp
	Value cursor.Cursor // String or Ident, valid only if HasOp
	// HasModifier covers the case-sensitivity modifiers from Selectors-4,
	// e.g. "[attr=val i]" / "[attr=val s]".
	HasModifier bool
	Modifier    cursor.Cursor // Ident, valid only if HasModifier
	Close       cursor.Cursor
	Closed      bool
}

// PseudoSelector is a simple (":name") or functional (":name(...)")
// pseudo-class, or a pseudo-element (one or two leading colons followed by
// a name). The parser does not distinguish pseudo-class from
// pseudo-element by name; it only records how many colons introduced it.
type PseudoSelector struct {
	Colons []cursor.Cursor // one or two cursors
	Name   cursor.Cursor   // Ident or Function

	IsFunction bool

	// InnerSelectors is populated when IsFunction and Name is one of the
	// selector-list-taking pseudos (:not, :is, :where, :has, ::slotted), per
	// spec.md's supplemented selector grammar.
	InnerSelectors *SelectorList

	// Args holds the raw function argument tokens for every other
	// functional pseudo (:nth-child(2n+1), :lang(en), ...), and is also
	// populated as a lossless fallback alongside InnerSelectors.
	Args []ComponentValue

	Close  cursor.Cursor // ')' for functional pseudos
	Closed bool
}
