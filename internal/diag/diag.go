// Package diag defines the stable diagnostic taxonomy shared by the
// parser, the serializer and the CLI: a closed Code enum and the Error
// sum type that pairs one with a source Span and optional captured text.
package diag

import (
	"fmt"

	"github.com/csstreelang/csscore/internal/source"
)

// Code is the closed set of diagnostic identifiers a parse can report.
// Names and meanings match the stable identifiers this repo's error list
// is keyed on; callers that match on Code rather than on Error.Error()'s
// text stay stable across wording changes.
type Code uint8

const (
	UnexpectedEnd Code = iota
	Unexpected
	UnexpectedIdent
	UnexpectedIdentSuggest
	UnexpectedAtRule
	UnexpectedFunction
	UnexpectedPseudoClass
	UnexpectedPseudoElement
	UnexpectedCloseCurly
	UnexpectedDimension
	UnexpectedTag
	UnexpectedId
	ExpectedIdent
	ExpectedIdentOf
	ExpectedEnd
	MissingAtRulePrelude
	MissingAtRuleBlock
	DisallowedImportant
	DisallowedLayerBlockWithMultipleNames
	BadDeclaration
	BadHexColor
	NumberNotNegative
	UnknownColor
	UnknownRule
	UnexpectedMediaRangeComparisonEqualsTwice
	Unimplemented
)

var codeNames = [...]string{
	UnexpectedEnd:                              "UnexpectedEnd",
	Unexpected:                                 "Unexpected",
	UnexpectedIdent:                            "UnexpectedIdent",
	UnexpectedIdentSuggest:                     "UnexpectedIdentSuggest",
	UnexpectedAtRule:                           "UnexpectedAtRule",
	UnexpectedFunction:                         "UnexpectedFunction",
	UnexpectedPseudoClass:                      "UnexpectedPseudoClass",
	UnexpectedPseudoElement:                    "UnexpectedPseudoElement",
	UnexpectedCloseCurly:                       "UnexpectedCloseCurly",
	UnexpectedDimension:                        "UnexpectedDimension",
	UnexpectedTag:                              "UnexpectedTag",
	UnexpectedId:                               "UnexpectedId",
	ExpectedIdent:                              "ExpectedIdent",
	ExpectedIdentOf:                            "ExpectedIdentOf",
	ExpectedEnd:                                "ExpectedEnd",
	MissingAtRulePrelude:                       "MissingAtRulePrelude",
	MissingAtRuleBlock:                         "MissingAtRuleBlock",
	DisallowedImportant:                        "DisallowedImportant",
	DisallowedLayerBlockWithMultipleNames:      "DisallowedLayerBlockWithMultipleNames",
	BadDeclaration:                             "BadDeclaration",
	BadHexColor:                                "BadHexColor",
	NumberNotNegative:                          "NumberNotNegative",
	UnknownColor:                               "UnknownColor",
	UnknownRule:                                "UnknownRule",
	UnexpectedMediaRangeComparisonEqualsTwice:  "UnexpectedMediaRangeComparisonEqualsTwice",
	Unimplemented:                              "Unimplemented",
}

func (c Code) String() string {
	if int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is the single diagnostic sum type: a Code, the Span it applies to,
// a rendered message, and optional captured atoms used to build that
// message (kept separately so a caller building their own message catalog
// can match on Code + Got/Expected rather than parsing Text).
type Error struct {
	Code Code
	Span source.Span
	Text string

	// Got/Expected are populated for codes that compare two token kinds
	// or identifiers (ExpectedIdentOf, Unexpected, ...); both are empty
	// otherwise.
	Got, Expected string
}

func (e Error) Error() string { return e.Text }

// New builds an Error, storing the exact rendered message.
func New(code Code, span source.Span, text string) Error {
	return Error{Code: code, Span: span, Text: text}
}

// List is the accumulated diagnostics for one parse. No error aborts a
// parse; everything encountered is appended here in the order recovery
// found it, matching spec.md §7's "all collected, same order" guarantee.
type List struct {
	errors []Error
}

func (l *List) Add(e Error) { l.errors = append(l.errors, e) }

func (l *List) Errors() []Error { return l.errors }

func (l *List) Len() int { return len(l.errors) }

// Truncate discards every error recorded after index n, used when
// rewinding a speculative parse back to a checkpoint.
func (l *List) Truncate(n int) { l.errors = l.errors[:n] }
