package layout

import (
	"fmt"
)

type Range struct {
	Starts Position
	Ends   Position
}

// NewRange builds the normalized range covering both corners.
func NewRange(starts, ends Position) Range {
	r := Range{
		Starts: starts,
		Ends:   ends,
	}
	return r.Normalize()
}

func SingleRange(pos Position) Range {
	return NewRange(pos, pos)
}

func (r Range) Normalize() Range {
	x := r
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	x.Ends.Sheet = x.Starts.Sheet
	return x
}

func (r Range) Single() bool {
	return r.Starts == r.Ends
}

func (r Range) Sheet() string {
	return r.Starts.Sheet
}

func (r Range) Contains(pos Position) bool {
	if pos.Sheet != r.Starts.Sheet {
		return false
	}
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

func (r Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

func (r Range) Dimension() Dimension {
	return Dimension{
		Lines:   r.Height(),
		Columns: r.Width(),
	}
}

func (r Range) Size() int64 {
	return r.Width() * r.Height()
}

// Cells expands the range into every position it covers, row by row.
func (r Range) Cells() []Position {
	list := make([]Position, 0, r.Size())
	for line := r.Starts.Line; line <= r.Ends.Line; line++ {
		for col := r.Starts.Column; col <= r.Ends.Column; col++ {
			pos := Position{
				Sheet:  r.Starts.Sheet,
				Line:   line,
				Column: col,
			}
			list = append(list, pos)
		}
	}
	return list
}

// Intersect returns the rectangle shared by both ranges.
func (r Range) Intersect(other Range) (Range, bool) {
	if r.Starts.Sheet != other.Starts.Sheet {
		return Range{}, false
	}
	x := Range{
		Starts: Position{
			Sheet:  r.Starts.Sheet,
			Line:   max(r.Starts.Line, other.Starts.Line),
			Column: max(r.Starts.Column, other.Starts.Column),
		},
		Ends: Position{
			Sheet:  r.Starts.Sheet,
			Line:   min(r.Ends.Line, other.Ends.Line),
			Column: min(r.Ends.Column, other.Ends.Column),
		},
	}
	if x.Starts.Line > x.Ends.Line || x.Starts.Column > x.Ends.Column {
		return Range{}, false
	}
	return x, true
}

func (r Range) String() string {
	if r.Single() {
		return r.Starts.String()
	}
	return fmt.Sprintf("%s:%s", r.Starts.String(), r.Ends.Addr())
}
