package ast

import "github.com/csstreelang/csscore/internal/cursor"

// MediaQueryList is the typed shape an "@media" or "@import" media
// condition parses into (spec.md §4.4's boolean/discrete/ranged media
// feature grammar).
type MediaQueryList struct {
	Queries []MediaQuery
	Commas  []cursor.Cursor
}

// MediaQuery is ( "not" | "only" )? <media-type> ( "and" <condition> )*
// | <condition> ( ( "and" | "or" ) <condition> )*.
type MediaQuery struct {
	HasModifier bool
	Modifier    cursor.Cursor // "not" or "only" Ident

	HasType bool
	Type    cursor.Cursor // Ident

	Conditions  []MediaConditionInParens
	Combinators []cursor.Cursor // "and"/"or" Idents, len == len(Conditions)-1 (or len(Conditions) if Type is present)
}

// MediaConditionInParens is one parenthesized feature test. When its
// contents parse as a recognized <mf-boolean>/<mf-plain>/<mf-range>
// feature, Feature is populated; otherwise Raw keeps the tokens for a
// lossless round-trip (this repo does not attempt the full nested
// "(cond and (cond or cond))" boolean-group grammar, see DESIGN.md).
type MediaConditionInParens struct {
	HasNot bool
	Not    cursor.Cursor // leading "not" Ident, valid only if HasNot

	Open  cursor.Cursor
	Close cursor.Cursor

	Feature *MediaFeature
	Raw     []ComponentValue
}

// MediaFeatureShape is which of the five media-feature surface forms a
// MediaFeature was written in.
type MediaFeatureShape uint8

const (
	MediaFeatureBoolean MediaFeatureShape = iota
	MediaFeatureDiscrete
	MediaFeatureRangedLegacy       // (min-width: 300px)
	MediaFeatureRangedSingleBound  // (width < 300px)
	MediaFeatureRangedBetween      // (300px < width < 900px)
)

// CompareKind is a range comparator: "<", ">", "<=", ">=", or "=".
type CompareKind uint8

const (
	CompareLt CompareKind = iota
	CompareGt
	CompareLe
	CompareGe
	CompareEq
)

// Comparator is a range comparison operator, spelled as one or two Delim
// tokens.
type Comparator struct {
	Kind   CompareKind
	First  cursor.Cursor
	Second cursor.Cursor // '=' for "<=" / ">="; zero otherwise
}

// MediaFeature is a single feature test inside a MediaConditionInParens,
// covering all five shapes from spec.md §4.4.
type MediaFeature struct {
	Shape MediaFeatureShape
	Name  cursor.Cursor // feature name Ident, e.g. "width" or "min-width"

	// Boolean: no further fields set.
	// Discrete / RangedLegacy: Colon and Value are set.
	Colon cursor.Cursor
	Value []ComponentValue

	// RangedSingleBound: LeftValue+LeftCmp (a "<value> <cmp> name" form)
	// or RightCmp+RightValue (a "name <cmp> <value>" form) is set,
	// whichever side the feature name appeared on.
	LeftValue []ComponentValue
	LeftCmp   *Comparator

	RightCmp   *Comparator
	RightValue []ComponentValue
}
