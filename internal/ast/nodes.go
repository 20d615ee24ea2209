// Package ast is the concrete syntax tree produced by internal/parser. Every
// node holds cursors into the source instead of copied text (spec.md §9,
// "Cursors over AST offsets"), so that concatenating a successfully parsed
// subtree's cursors -- plus the trivia cursors recorded around it -- always
// reproduces the original bytes exactly.
package ast

import "github.com/csstreelang/csscore/internal/cursor"

// Tree is the result of one parse: the root node plus the arena that owns
// every node reachable from it.
type Tree struct {
	Arena       *Arena
	StyleSheet  *StyleSheet
}

// StyleSheet is the parse root: a RuleList with no enclosing braces.
type StyleSheet struct {
	Rules    []R
	// Trailing is emitted by the printer after the last rule. The parser
	// leaves it empty: trivia after the last rule goes to the parser's
	// trivia list like all other trivia.
	Trailing []cursor.Cursor
}

// R is the sum type of anything that can appear in a rule list or a
// declaration block: at-rules, qualified (style) rules, declarations, and
// recovered bad declarations. Mirrors the teacher's css_ast.R interface
// (see DESIGN.md), adapted to hold cursors instead of copied token slices.
type R interface{ isRule() }

func (*AtRule) isRule()         {}
func (*QualifiedRule) isRule()  {}
func (*Declaration) isRule()    {}
func (*BadDeclaration) isRule() {}

// Block is the shared shape behind RuleList, DeclarationList and
// DeclarationRuleList (spec.md §4.4): a '{', an ordered sequence of
// children, and a possibly-absent '}' (an unclosed block at EOF is
// accepted for error recovery, with Closed left false).
type Block struct {
	OpenCurly  cursor.Cursor
	Children   []R
	CloseCurly cursor.Cursor
	Closed     bool
}

// AtRule is "@" <name> <prelude>? ( ";" | Block ).
type AtRule struct {
	AtKeyword cursor.Cursor
	// Name is the decoded (escape-resolved, not case-folded) text of the
	// at-keyword, cached here because dispatch on it is the parser's most
	// common operation on an AtRule.
	Name string

	HasPrelude bool
	Prelude    []ComponentValue

	// Exactly one of Semicolon.IsZero() or Block == nil is false: the rule
	// ends either in ";" or in a block, never both, never neither (an
	// unterminated at-rule at EOF still gets a synthesized, unclosed Block
	// or is recorded as MissingAtRuleBlock).
	Semicolon cursor.Cursor
	Block     *Block

	// Typed views of well-known at-rules, populated in addition to the
	// generic Prelude/Block above so a caller can dispatch without
	// re-parsing component values. Exactly one of these (or none, for an
	// at-rule this repo doesn't have a typed shape for) is set.
	Charset   *AtCharset
	Import    *AtImport
	Namespace *AtNamespace
	Media     *AtMedia
	Supports  *AtSupports
	Layer     *AtLayer
	Keyframes *AtKeyframes
	FontFace  *AtFontFace
	Page      *AtPage
	Property  *AtProperty
	Container *AtContainer
}

type AtCharset struct {
	Encoding cursor.Cursor // String token
}

type AtImport struct {
	URLOrString cursor.Cursor // URL or String token
	Layer       *cursor.Cursor
	Queries     *MediaQueryList
}

type AtNamespace struct {
	Prefix      *cursor.Cursor // Ident, if a prefixed namespace
	URLOrString cursor.Cursor
}

type AtMedia struct {
	Queries MediaQueryList
}

type AtSupports struct {
	// @supports conditions are not given a typed boolean-expression tree;
	// they are kept as raw component values, which still round-trip
	// exactly. See DESIGN.md for the scoping rationale.
	Condition []ComponentValue
}

type AtLayer struct {
	// Each inner slice is one dotted layer name (Ident (Dot Ident)*); the
	// outer slice holds one or more comma-separated names, as in
	// "@layer foo.bar, baz.bing.baz;".
	Names  [][]cursor.Cursor
	Commas []cursor.Cursor
}

type AtKeyframes struct {
	Name cursor.Cursor // Ident or String
}

type AtFontFace struct{}

type AtPage struct {
	// e.g. ":first" in "@page :first { ... }"; empty when absent.
	Selector []ComponentValue
}

type AtProperty struct {
	Name cursor.Cursor // the custom property name, a dashed Ident
}

type AtContainer struct {
	Name      *cursor.Cursor
	Condition []ComponentValue
}

// QualifiedRule is <prelude> Block, typically a style rule whose prelude is
// a SelectorList.
type QualifiedRule struct {
	Prelude []ComponentValue // the raw prelude tokens, always populated
	Block   *Block

	// Selectors is populated whenever the prelude parses as a
	// SelectorList (true for ordinary style rules); nil for qualified
	// rules whose prelude this repo does not give a typed shape (e.g. an
	// @keyframes keyframe selector list of percentages/from/to, which is
	// left as raw Prelude component values).
	Selectors *SelectorList
}

// Declaration is <ident> ":" <value> ("!" "important")?.
type Declaration struct {
	Name      cursor.Cursor // Ident
	Colon     cursor.Cursor
	Value     []ComponentValue
	Important bool
	Bang      cursor.Cursor // the "!" delim, zero if not Important
	ImportantIdent cursor.Cursor // the "important" ident, zero if not Important
}

// BadDeclaration records a custom-property-like ident ":" sequence or other
// malformed child that a rule/declaration list recovered from; it still
// carries every consumed cursor so the tree round-trips.
type BadDeclaration struct {
	Tokens []ComponentValue
}

// ComponentValue is the generic "one token, or one token plus the children
// of the simple block or function block it opens" fallback representation
// used for preludes and values this repo does not give a more specific
// shape (spec.md §4.5 node model; grounded on the teacher's Token.Children
// design, see DESIGN.md).
type ComponentValue struct {
	Cursor   cursor.Cursor
	Children []ComponentValue
	Close    cursor.Cursor
	Closed   bool
}
