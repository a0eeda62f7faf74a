package value

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		Input string
		Want  ScalarValue
	}{
		{Input: "", Want: Blank{}},
		{Input: "42", Want: Float(42)},
		{Input: "-1.5e2", Want: Float(-150)},
		{Input: "TRUE", Want: Boolean(true)},
		{Input: "false", Want: Boolean(false)},
		{Input: "#DIV/0!", Want: ErrDiv0},
		{Input: "#N/A", Want: ErrNA},
		{Input: "inf", Want: Text("inf")},
		{Input: "foobar", Want: Text("foobar")},
	}
	for _, c := range tests {
		got := Parse(c.Input)
		if got.Type() != c.Want.Type() || got.String() != c.Want.String() {
			t.Errorf("%s: want %s(%s), got %s(%s)", c.Input, c.Want.Type(), c.Want, got.Type(), got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		Name  string
		Left  ScalarValue
		Right ScalarValue
		Want  int
	}{
		{Name: "numbers", Left: Float(1), Right: Float(2), Want: -1},
		{Name: "number before text", Left: Float(100), Right: Text("a"), Want: -1},
		{Name: "text before boolean", Left: Text("z"), Right: Boolean(false), Want: -1},
		{Name: "text ignores case", Left: Text("ABC"), Right: Text("abc"), Want: 0},
		{Name: "booleans", Left: Boolean(true), Right: Boolean(false), Want: 1},
		{Name: "blank as zero", Left: Blank{}, Right: Float(0), Want: 0},
		{Name: "blank as empty text", Left: Text(""), Right: Blank{}, Want: 0},
		{Name: "blank as false", Left: Blank{}, Right: Boolean(true), Want: -1},
	}
	for _, c := range tests {
		got := Compare(c.Left, c.Right)
		if got != c.Want {
			t.Errorf("%s: want %d, got %d", c.Name, c.Want, got)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		Name string
		Got  Value
		Want Value
	}{
		{Name: "add", Got: Add(Float(1), Float(2)), Want: Float(3)},
		{Name: "add text number", Got: Add(Text("1"), Float(2)), Want: Float(3)},
		{Name: "add bad text", Got: Add(Text("a"), Float(2)), Want: ErrValue},
		{Name: "add boolean", Got: Add(Boolean(true), Blank{}), Want: Float(1)},
		{Name: "div zero", Got: Div(Float(1), Float(0)), Want: ErrDiv0},
		{Name: "left error first", Got: Add(ErrDiv0, ErrNA), Want: ErrDiv0},
		{Name: "right error", Got: Mul(Float(2), ErrNA), Want: ErrNA},
		{Name: "pow", Got: Pow(Float(2), Float(10)), Want: Float(1024)},
		{Name: "pow zero negative", Got: Pow(Float(0), Float(-1)), Want: ErrDiv0},
		{Name: "pow complex", Got: Pow(Float(-8), Float(0.5)), Want: ErrNum},
		{Name: "mod", Got: Mod(Float(-3), Float(2)), Want: Float(1)},
		{Name: "mod negative divisor", Got: Mod(Float(3), Float(-2)), Want: Float(-1)},
		{Name: "mod zero", Got: Mod(Float(3), Float(0)), Want: ErrDiv0},
		{Name: "concat", Got: Concat(Text("a"), Float(1)), Want: Text("a1")},
		{Name: "concat boolean", Got: Concat(Boolean(true), Blank{}), Want: Text("TRUE")},
		{Name: "eq case", Got: Eq(Text("A"), Text("a")), Want: Boolean(true)},
		{Name: "lt mixed", Got: Lt(Float(9), Text("1")), Want: Boolean(true)},
		{Name: "gt boolean", Got: Gt(Boolean(false), Float(1000)), Want: Boolean(true)},
		{Name: "ne error", Got: Ne(ErrRef, Float(1)), Want: ErrRef},
		{Name: "negate", Got: Negate(Float(2)), Want: Float(-2)},
		{Name: "negate text", Got: Negate(Text("x")), Want: ErrValue},
		{Name: "percent", Got: Percent(Float(5)), Want: Float(0.05)},
	}
	for _, c := range tests {
		if c.Got.Type() != c.Want.Type() || c.Got.String() != c.Want.String() {
			t.Errorf("%s: want %s, got %s", c.Name, c.Want, c.Got)
		}
	}
}

func TestArrayBroadcast(t *testing.T) {
	var (
		col = NewArray([][]ScalarValue{{Float(1)}, {Float(2)}})
		row = Vector([]ScalarValue{Float(10), Float(20), Float(30)})
	)
	tests := []struct {
		Name string
		Got  Value
		Want string
	}{
		{Name: "scalar left", Got: Add(Float(1), row), Want: "{11,21,31}"},
		{Name: "scalar right", Got: Mul(col, Float(3)), Want: "{3;6}"},
		{Name: "outer", Got: Add(col, row), Want: "{11,21,31;12,22,32}"},
		{Name: "mismatch", Got: Add(row, Vector([]ScalarValue{Float(1), Float(2)})), Want: "{11,22,#N/A}"},
		{Name: "negate", Got: Negate(col), Want: "{-1;-2}"},
	}
	for _, c := range tests {
		if got := c.Got.String(); got != c.Want {
			t.Errorf("%s: want %s, got %s", c.Name, c.Want, got)
		}
	}
}

func TestFirstError(t *testing.T) {
	arr := Vector([]ScalarValue{Float(1), ErrNum, ErrNA})
	err, ok := FirstError(Float(1), Text("x"), arr, ErrDiv0)
	if !ok {
		t.Fatalf("error expected")
	}
	if err.Code() != ErrNum.Code() {
		t.Errorf("want %s, got %s", ErrNum, err)
	}
	if _, ok := FirstError(Float(1), Blank{}); ok {
		t.Errorf("no error expected")
	}
}
