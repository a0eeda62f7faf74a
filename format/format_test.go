package format

import (
	"errors"
	"testing"

	"github.com/midbel/sheetcalc/value"
)

func TestNumberFormatter(t *testing.T) {
	tests := []struct {
		Pattern string
		Input   float64
		Want    string
	}{
		{Pattern: "#.##", Input: 42, Want: "42"},
		{Pattern: "#.##", Input: 3.14159, Want: "3.14"},
		{Pattern: "#.##", Input: 0.5, Want: ".5"},
		{Pattern: "0.00", Input: 0.5, Want: "0.50"},
		{Pattern: "000", Input: 7, Want: "007"},
		{Pattern: "+0.0", Input: 2.25, Want: "+2.3"},
		{Pattern: "#,##0.00", Input: 1234567.891, Want: "1,234,567.89"},
		{Pattern: "#,##0.00", Input: -1234.5, Want: "-1,234.50"},
		{Pattern: "#,##0", Input: 999, Want: "999"},
		{Pattern: "#.##", Input: -0.001, Want: "0"},
	}
	for _, c := range tests {
		f, err := ParseNumberFormatter(c.Pattern)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Pattern, err)
			continue
		}
		got, err := f.Format(value.Float(c.Input))
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Pattern, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s(%v): want %s, got %s", c.Pattern, c.Input, c.Want, got)
		}
	}
}

func TestNumberPatternInvalid(t *testing.T) {
	for _, str := range []string{"", ".00", "+", "a.00", "0.0a", "0.#0"} {
		_, err := ParseNumberFormatter(str)
		if !errors.Is(err, ErrPattern) {
			t.Errorf("%q: want ErrPattern, got %v", str, err)
		}
	}
}

func TestValueFormatter(t *testing.T) {
	tests := []struct {
		Input value.ScalarValue
		Want  string
	}{
		{Input: value.Float(3.14159), Want: "3.14"},
		{Input: value.Text("foobar"), Want: "foobar"},
		{Input: value.Boolean(true), Want: "yes"},
		{Input: value.Boolean(false), Want: "no"},
		{Input: value.ErrDiv0, Want: "#DIV/0!"},
	}
	vf := FormatValue()
	if err := vf.Number("0.00"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	vf.Set(value.TypeBoolean, FormatBool("yes", "no"))
	for _, c := range tests {
		got, err := vf.Format(c.Input)
		if err != nil {
			t.Errorf("%v: unexpected error: %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%v: want %s, got %s", c.Input, c.Want, got)
		}
	}
}
