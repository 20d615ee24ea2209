// Package source owns the raw bytes of a CSS document and hands out byte
// offsets and substring views into it. It is the leaf of the dependency
// order described by the system overview: every other package in this
// module borrows from a Buffer without copying the underlying text.
package source

import "fmt"

// Offset is a 32-bit unsigned byte index into a Buffer's contents.
type Offset uint32

// Span is a half-open byte range [Start, End) into a Buffer.
type Span struct {
	Start Offset
	End   Offset
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return int(s.End - s.Start)
}

// Add composes two spans into the smallest span covering both.
func (s Span) Add(o Span) Span {
	start := s.Start
	if o.Start < start {
		start = o.Start
	}
	end := s.End
	if o.End > end {
		end = o.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Buffer owns the source text for one parse. All Cursors, Tokens and CST
// nodes produced from it borrow into this text and must not outlive it.
type Buffer struct {
	Path     string
	Contents string
}

// New wraps a source string. Path is used only for diagnostics.
func New(path, contents string) *Buffer {
	return &Buffer{Path: path, Contents: contents}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.Contents) }

// At returns the byte at the given offset, or 0 (an invalid CSS byte) if
// the offset is out of range.
func (b *Buffer) At(o Offset) byte {
	if int(o) >= len(b.Contents) {
		return 0
	}
	return b.Contents[o]
}

// Slice returns the substring covered by span. Callers must ensure the
// span was produced against this buffer; out-of-range spans are clamped.
func (b *Buffer) Slice(span Span) string {
	start := int(span.Start)
	end := int(span.End)
	if start < 0 {
		start = 0
	}
	if end > len(b.Contents) {
		end = len(b.Contents)
	}
	if start > end {
		start = end
	}
	return b.Contents[start:end]
}

// LineColumn converts a byte offset into a 1-based line and 0-based byte
// column, for diagnostics. It is O(n) and is only ever called when
// rendering an error, never on the parse hot path.
func (b *Buffer) LineColumn(o Offset) (line, column int) {
	line = 1
	lineStart := 0
	limit := int(o)
	if limit > len(b.Contents) {
		limit = len(b.Contents)
	}
	for i := 0; i < limit; i++ {
		if b.Contents[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, limit - lineStart
}
