// Package cursor defines Cursor, the canonical addressable handle for any
// lexical item: a Token paired with the absolute byte offset it was read
// from. Cursors are comparable and hashable, so they can be compared with
// == and used as map keys.
package cursor

import (
	"github.com/csstreelang/csscore/internal/source"
	"github.com/csstreelang/csscore/internal/token"
)

// Cursor is (Token, absolute source offset). It is the reference every CST
// node holds instead of a raw pointer or a copy of the underlying text.
type Cursor struct {
	Token  token.Token
	Offset source.Offset
}

// End returns the offset one past the last byte of the token.
func (c Cursor) End() source.Offset {
	return c.Offset + source.Offset(c.Token.Length)
}

// Span returns the [Offset, End) byte range of the token.
func (c Cursor) Span() source.Span {
	return source.Span{Start: c.Offset, End: c.End()}
}

// Text returns the raw source bytes spanned by the cursor.
func (c Cursor) Text(buf *source.Buffer) string {
	return buf.Slice(c.Span())
}

// IsZero reports whether this is the unset Cursor value. token.EOF is
// Kind 0, so an EOF cursor at offset 0 (empty input) also compares equal
// to the zero value; any other token has a nonzero Length, which is why
// this works as an "unset/optional" sentinel for fields like a rule's
// closing brace.
func (c Cursor) IsZero() bool {
	return c == Cursor{}
}

// Kind is a convenience accessor for c.Token.Kind.
func (c Cursor) Kind() token.Kind { return c.Token.Kind }
