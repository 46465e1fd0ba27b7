// Package text holds the byte-offset vocabulary the rest of the front end
// is built on: lexer.Token.Span, itemtree.Item.Span/NameSpan, and
// hir.Body.Provenance all name a source range as a text.Span, and
// LineIndex (line_index.go) is how a CLI or editor host turns one back
// into a displayable line/column.
package text

import "fmt"

// ByteOffset is a byte index into a UTF-8 source buffer.
type ByteOffset int

// IsValid reports whether the offset is non-negative.
func (o ByteOffset) IsValid() bool {
	return o >= 0
}

// Span is a half-open byte range [Start, End) into the source a token or
// syntax node was lexed or parsed from.
type Span struct {
	Start ByteOffset // inclusive
	End   ByteOffset // exclusive
}

// NewSpan constructs a validated span.
func NewSpan(start, end ByteOffset) (Span, error) {
	s := Span{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Span{}, err
	}
	return s, nil
}

// Validate reports an error if the span is invalid.
func (s Span) Validate() error {
	if !s.Start.IsValid() {
		return fmt.Errorf("invalid span start: %d", s.Start)
	}
	if !s.End.IsValid() {
		return fmt.Errorf("invalid span end: %d", s.End)
	}
	if s.End < s.Start {
		return fmt.Errorf("invalid span bounds: end (%d) < start (%d)", s.End, s.Start)
	}
	return nil
}

// IsValid reports whether the span bounds are well-formed.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && s.End >= s.Start
}

// IsEmpty reports whether the span covers zero bytes, as the span of a
// zero-width node the parser synthesizes for missing input does.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of bytes covered by the span.
// For invalid spans, the result is undefined.
func (s Span) Len() ByteOffset {
	return s.End - s.Start
}

// Contains reports whether off is within the half-open span [Start, End).
func (s Span) Contains(off ByteOffset) bool {
	if !s.IsValid() || !off.IsValid() {
		return false
	}
	return s.Start <= off && off < s.End
}

// ContainsSpan reports whether other is fully contained within s.
func (s Span) ContainsSpan(other Span) bool {
	if !s.IsValid() || !other.IsValid() {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether two spans overlap by at least one byte.
// Spans that only touch at a boundary do not intersect.
func (s Span) Intersects(other Span) bool {
	if !s.IsValid() || !other.IsValid() {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Point is a byte-column source location within one line, as produced by
// LineIndex.OffsetToPoint for diagnostic and structure-outline display.
type Point struct {
	Line   int // 0-based
	Column int // byte column
}
