package layout

import (
	"errors"
	"slices"
	"testing"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		Input string
		Want  Range
	}{
		{
			Input: "A1",
			Want:  SingleRange(Position{Sheet: "Sheet1", Line: 1, Column: 1}),
		},
		{
			Input: "$B$12",
			Want:  SingleRange(Position{Sheet: "Sheet1", Line: 12, Column: 2}),
		},
		{
			Input: "Data!AA3",
			Want:  SingleRange(Position{Sheet: "Data", Line: 3, Column: 27}),
		},
		{
			Input: "'My ''Sheet'''!c$4",
			Want:  SingleRange(Position{Sheet: "My 'Sheet'", Line: 4, Column: 3}),
		},
		{
			Input: "My Sheet!A1:B2",
			Want: Range{
				Starts: Position{Sheet: "My Sheet", Line: 1, Column: 1},
				Ends:   Position{Sheet: "My Sheet", Line: 2, Column: 2},
			},
		},
		{
			Input: "B3:A1",
			Want: Range{
				Starts: Position{Sheet: "Sheet1", Line: 1, Column: 1},
				Ends:   Position{Sheet: "Sheet1", Line: 3, Column: 2},
			},
		},
		{
			Input: "XFD1048576",
			Want:  SingleRange(Position{Sheet: "Sheet1", Line: MaxLines, Column: MaxColumns}),
		},
	}
	for _, c := range tests {
		ref, err := ParseReference(c.Input, "Sheet1")
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if ref.Range != c.Want {
			t.Errorf("%s: want %s, got %s", c.Input, c.Want, ref.Range)
		}
		if ref.Text != c.Input {
			t.Errorf("%s: text not kept, got %s", c.Input, ref.Text)
		}
	}
}

func TestParseReferenceError(t *testing.T) {
	tests := []string{
		"",
		"A",
		"12",
		"A0",
		"A01",
		"XFE1",
		"A1048577",
		"A1:B2:C3",
		"!A1",
		"'Sheet1!A1",
		"Sheet1!A1:Sheet2!B2",
		"A1B",
	}
	for _, str := range tests {
		_, err := ParseReference(str, "Sheet1")
		if err == nil {
			t.Errorf("%s: expected error", str)
			continue
		}
		var rerr *ReferenceError
		if !errors.As(err, &rerr) || !errors.Is(err, ErrReference) {
			t.Errorf("%s: expected reference error, got %s", str, err)
		}
	}
}

func TestRangeCells(t *testing.T) {
	ref, err := ParseReference("B2:A1", "S")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var got []string
	for _, p := range ref.Cells() {
		got = append(got, p.String())
	}
	want := []string{"S!A1", "S!B1", "S!A2", "S!B2"}
	if !slices.Equal(got, want) {
		t.Errorf("cells mismatched: want %v, got %v", want, got)
	}
	if dim := ref.Range.Dimension(); dim.Lines != 2 || dim.Columns != 2 {
		t.Errorf("dimension mismatched: got %s", dim)
	}
}

func TestRangeIntersect(t *testing.T) {
	tests := []struct {
		Left  string
		Right string
		Want  string
		Empty bool
	}{
		{Left: "A1:C3", Right: "B2:D4", Want: "Sheet1!B2:C3"},
		{Left: "A1:A5", Right: "A3:C3", Want: "Sheet1!A3"},
		{Left: "A1:B2", Right: "C3:D4", Empty: true},
		{Left: "A1:B2", Right: "Other!A1:B2", Empty: true},
	}
	for _, c := range tests {
		left, _ := ParseReference(c.Left, "Sheet1")
		right, _ := ParseReference(c.Right, "Sheet1")
		got, ok := left.Range.Intersect(right.Range)
		if c.Empty {
			if ok {
				t.Errorf("%s %s: expected empty intersection, got %s", c.Left, c.Right, got)
			}
			continue
		}
		if !ok || got.String() != c.Want {
			t.Errorf("%s %s: want %s, got %s", c.Left, c.Right, c.Want, got)
		}
	}
}

func TestShiftReference(t *testing.T) {
	tests := []struct {
		Input   string
		Lines   int64
		Columns int64
		Want    string
	}{
		{Input: "A1", Lines: 1, Columns: 1, Want: "B2"},
		{Input: "$A1", Lines: 2, Columns: 3, Want: "$A3"},
		{Input: "A$1", Lines: 2, Columns: 3, Want: "D$1"},
		{Input: "$A$1", Lines: 2, Columns: 3, Want: "$A$1"},
		{Input: "Data!A1:B2", Lines: 1, Want: "Data!A2:B3"},
		{Input: "A1", Lines: -1, Want: "#REF!"},
	}
	for _, c := range tests {
		got := ShiftReference(c.Input, c.Lines, c.Columns)
		if got != c.Want {
			t.Errorf("%s: want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestPositionCompare(t *testing.T) {
	list := []Position{
		{Sheet: "B", Line: 1, Column: 1},
		{Sheet: "A", Line: 2, Column: 1},
		{Sheet: "A", Line: 1, Column: 2},
		{Sheet: "A", Line: 1, Column: 1},
	}
	slices.SortFunc(list, Position.Compare)
	want := []string{"A!A1", "A!B1", "A!A2", "B!A1"}
	for i, p := range list {
		if p.String() != want[i] {
			t.Errorf("position %d: want %s, got %s", i, want[i], p)
		}
	}
}

func TestFormatSheet(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "Sheet1", Want: "Sheet1"},
		{Input: "My Sheet", Want: "'My Sheet'"},
		{Input: "2024", Want: "'2024'"},
		{Input: "it's", Want: "'it''s'"},
	}
	for _, c := range tests {
		if got := FormatSheet(c.Input); got != c.Want {
			t.Errorf("%s: want %s, got %s", c.Input, c.Want, got)
		}
	}
}
