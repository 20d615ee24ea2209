// Package printer serializes an internal/ast tree back to source text by
// streaming cursors to an output sink (spec.md §4.5). The CST never
// stores trivia inline on nodes -- the parser sinks every skipped or
// discarded cursor into one flat, already source-ordered list alongside
// the tree -- so serialization is a merge of two source-ordered cursor
// sequences: the tree's leaf cursors (walked in parse order, which is
// source order) and the trivia list.
package printer

import (
	"strings"

	"github.com/csstreelang/csscore/internal/ast"
	"github.com/csstreelang/csscore/internal/cursor"
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// Options gates which cursors reach the output, per spec.md §6's
// serializer output options table. Minification-style rewrites
// (dropping redundant declarations/rules/shorthand sides, flattening
// nesting) are out of scope per spec.md §1's Non-goals ("code
// generation / minification transformations beyond the serialization
// contract"); Nesting, RedundantDeclarations, RedundantShorthandValues
// and RedundantRules are accepted for API-compatibility with that table
// but this serializer always retains everything they would otherwise
// drop -- there is no lossy rewrite path to gate.
type Options struct {
	Whitespace             bool
	Comments               bool
	Trailing               bool
	Nesting                bool
	InconsistentQuotes     bool
	QuotedIdentLikeStrings bool
	RedundantDeclarations  bool
	RedundantShorthandValues bool
	RedundantRules         bool
}

// Default preserves everything: the byte-identical round-trip
// configuration spec.md §8 tests against.
func Default() Options {
	return Options{
		Whitespace:               true,
		Comments:                 true,
		Trailing:                 true,
		Nesting:                  true,
		InconsistentQuotes:       true,
		QuotedIdentLikeStrings:   true,
		RedundantDeclarations:    true,
		RedundantShorthandValues: true,
		RedundantRules:           true,
	}
}

// Serialize renders sheet back to text. trivia is the parser's recorded
// trivia/discard list (Parser.Trivia()).
func Serialize(buf *source.Buffer, sheet *ast.StyleSheet, trivia []cursor.Cursor, opts Options) string {
	leaves := collectStyleSheet(sheet)
	kept := filterTrivia(trivia, opts)
	merged := mergeByOffset(leaves, kept)

	var sb strings.Builder
	for _, c := range merged {
		sb.WriteString(c.Text(buf))
	}
	return sb.String()
}

func filterTrivia(trivia []cursor.Cursor, opts Options) []cursor.Cursor {
	if opts.Whitespace && opts.Comments && opts.Trailing {
		return trivia
	}
	out := make([]cursor.Cursor, 0, len(trivia))
	for _, c := range trivia {
		switch c.Kind() {
		case token.Whitespace:
			if !opts.Whitespace {
				continue
			}
		case token.Comment:
			if !opts.Comments {
				continue
			}
		case token.Semicolon, token.CDO, token.CDC:
			if !opts.Trailing {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// mergeByOffset merges two already offset-ascending cursor sequences.
// Both leaves (a pre-order walk of the tree, which visits cursors in the
// order the parser consumed them) and trivia (appended only as the
// parser advances, never re-sorted) are individually sorted by Offset,
// so a single two-pointer pass reconstructs the original interleaving.
func mergeByOffset(a, b []cursor.Cursor) []cursor.Cursor {
	out := make([]cursor.Cursor, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Offset <= b[j].Offset {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func collectStyleSheet(sheet *ast.StyleSheet) []cursor.Cursor {
	var out []cursor.Cursor
	for _, r := range sheet.Rules {
		out = appendRule(out, r)
	}
	out = append(out, sheet.Trailing...)
	return out
}

func appendRule(out []cursor.Cursor, r ast.R) []cursor.Cursor {
	switch n := r.(type) {
	case *ast.AtRule:
		out = append(out, n.AtKeyword)
		out = appendComponentValues(out, n.Prelude)
		if !n.Semicolon.IsZero() {
			out = append(out, n.Semicolon)
		}
		if n.Block != nil {
			out = appendBlock(out, n.Block)
		}
	case *ast.QualifiedRule:
		out = appendComponentValues(out, n.Prelude)
		if n.Block != nil {
			out = appendBlock(out, n.Block)
		}
	case *ast.Declaration:
		out = append(out, n.Name, n.Colon)
		out = appendComponentValues(out, n.Value)
		if n.Important {
			out = append(out, n.Bang, n.ImportantIdent)
		}
	case *ast.BadDeclaration:
		out = appendComponentValues(out, n.Tokens)
	}
	return out
}

func appendBlock(out []cursor.Cursor, b *ast.Block) []cursor.Cursor {
	out = append(out, b.OpenCurly)
	for _, child := range b.Children {
		out = appendRule(out, child)
	}
	if b.Closed {
		out = append(out, b.CloseCurly)
	}
	return out
}

func appendComponentValues(out []cursor.Cursor, cvs []ast.ComponentValue) []cursor.Cursor {
	for _, cv := range cvs {
		out = appendComponentValue(out, cv)
	}
	return out
}

func appendComponentValue(out []cursor.Cursor, cv ast.ComponentValue) []cursor.Cursor {
	out = append(out, cv.Cursor)
	out = appendComponentValues(out, cv.Children)
	if cv.Closed {
		out = append(out, cv.Close)
	}
	return out
}
