package text

import (
	"errors"
	"fmt"
	"slices"
)

// LineIndex maps byte offsets in one file's text to 0-based line and
// byte-column positions. emberctl builds one per snapshotted file
// (query.LineIndex) purely to turn diag.Diagnostic and
// analysis.StructureNode byte spans into the line numbers it prints; the
// query layer itself only ever reasons in ByteOffset.
type LineIndex struct {
	src        []byte
	lineStarts []ByteOffset
}

var errNilLineIndex = errors.New("nil LineIndex")

// NewLineIndex builds an index over src by recording the byte offset just
// past every '\n'.
func NewLineIndex(src []byte) *LineIndex {
	starts := []ByteOffset{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return &LineIndex{
		src:        src,
		lineStarts: starts,
	}
}

// SourceLen returns the source length in bytes.
func (li *LineIndex) SourceLen() ByteOffset {
	if li == nil {
		return 0
	}
	return ByteOffset(len(li.src))
}

// LineCount returns the number of logical lines in the source.
func (li *LineIndex) LineCount() int {
	if li == nil {
		return 0
	}
	return len(li.lineStarts)
}

// OffsetToPoint converts a byte offset to a line/column point.
func (li *LineIndex) OffsetToPoint(off ByteOffset) (Point, error) {
	if li == nil {
		return Point{}, errNilLineIndex
	}
	if err := li.validateOffset(off); err != nil {
		return Point{}, err
	}

	line := li.lineForOffset(off)
	start := li.lineStarts[line]
	return Point{
		Line:   line,
		Column: int(off - start),
	}, nil
}

func (li *LineIndex) validateOffset(off ByteOffset) error {
	if !off.IsValid() {
		return fmt.Errorf("offset out of range: %d", off)
	}
	if off > ByteOffset(len(li.src)) {
		return fmt.Errorf("offset out of range: %d > %d", off, len(li.src))
	}
	return nil
}

func (li *LineIndex) lineForOffset(off ByteOffset) int {
	// largest i such that lineStarts[i] <= off
	i, found := slices.BinarySearch(li.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}
