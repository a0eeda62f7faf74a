package builtins

import (
	"errors"
	"strings"
	"testing"

	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

func vector(list ...value.ScalarValue) value.Array {
	return value.Vector(list)
}

func column(list ...value.ScalarValue) value.Array {
	var data [][]value.ScalarValue
	for _, v := range list {
		data = append(data, []value.ScalarValue{v})
	}
	return value.NewArray(data)
}

func table() value.Array {
	return value.NewArray([][]value.ScalarValue{
		{value.Float(1), value.Text("one"), value.Boolean(true)},
		{value.Float(2), value.Text("two"), value.Boolean(false)},
		{value.Float(3), value.Text("three"), value.Boolean(true)},
	})
}

func ref(t *testing.T, addr string, v value.Value) Arg {
	t.Helper()
	r, err := layout.ParseReference(addr, "Sheet1")
	if err != nil {
		t.Fatalf("%s: invalid reference: %s", addr, err)
	}
	return Arg{
		Value:  v,
		Ranges: []layout.Range{r.Range},
	}
}

func apply(fn Func, args []value.Value) value.Value {
	list := make([]Arg, 0, len(args))
	for _, a := range args {
		list = append(list, Arg{Value: a})
	}
	return fn.Apply(layout.Position{}, list).Value
}

func TestCall(t *testing.T) {
	lib := Default()
	tests := []struct {
		Name string
		Args []value.Value
		Want string
	}{
		{Name: "sum", Args: []value.Value{value.Float(1), vector(value.Float(2), value.Text("x"), value.Boolean(true))}, Want: "3"},
		{Name: "sum", Args: []value.Value{vector(value.Float(1), value.ErrNA)}, Want: "#N/A"},
		{Name: "sum", Args: []value.Value{vector(value.Text("x"))}, Want: "0"},
		{Name: "average", Args: []value.Value{vector(value.Float(1), value.Float(2), value.Blank{})}, Want: "1.5"},
		{Name: "average", Args: []value.Value{vector(value.Text("x"))}, Want: "#DIV/0!"},
		{Name: "min", Args: []value.Value{vector(value.Float(4), value.Float(-1))}, Want: "-1"},
		{Name: "max", Args: []value.Value{vector(value.Text("x"))}, Want: "0"},
		{Name: "count", Args: []value.Value{vector(value.Float(1), value.ErrDiv0, value.Text("2"), value.Float(3))}, Want: "2"},
		{Name: "abs", Args: []value.Value{value.Float(-2)}, Want: "2"},
		{Name: "int", Args: []value.Value{value.Float(-1.5)}, Want: "-2"},
		{Name: "sqrt", Args: []value.Value{value.Float(-1)}, Want: "#NUM!"},
		{Name: "mod", Args: []value.Value{value.Float(-3), value.Float(2)}, Want: "1"},
		{Name: "mod", Args: []value.Value{value.Float(3), value.Float(0)}, Want: "#DIV/0!"},
		{Name: "power", Args: []value.Value{value.Float(2), value.Float(3)}, Want: "8"},
		{Name: "round", Args: []value.Value{value.Float(2.675), value.Float(2)}, Want: "2.68"},
		{Name: "round", Args: []value.Value{value.Float(-2.5)}, Want: "-3"},
		{Name: "round", Args: []value.Value{value.Float(9.995), value.Float(2)}, Want: "10"},
		{Name: "round", Args: []value.Value{value.Float(1234.5678), value.Float(-2)}, Want: "1200"},
		{Name: "roundup", Args: []value.Value{value.Float(3.2), value.Float(0)}, Want: "4"},
		{Name: "roundup", Args: []value.Value{value.Float(-3.14159), value.Float(1)}, Want: "-3.2"},
		{Name: "roundup", Args: []value.Value{value.Float(31415.92654), value.Float(-2)}, Want: "31500"},
		{Name: "roundup", Args: []value.Value{value.Float(0.1 + 0.2), value.Float(1)}, Want: "0.3"},
		{Name: "rounddown", Args: []value.Value{value.Float(3.99), value.Float(1)}, Want: "3.9"},
		{Name: "trunc", Args: []value.Value{value.Float(-1.7)}, Want: "-1"},
		{Name: "trunc", Args: []value.Value{value.Float(8.567), value.Float(2)}, Want: "8.56"},
		{Name: "ceiling", Args: []value.Value{value.Float(2.5), value.Float(1)}, Want: "3"},
		{Name: "ceiling", Args: []value.Value{value.Float(-2.5), value.Float(-2)}, Want: "-4"},
		{Name: "ceiling", Args: []value.Value{value.Float(1.5), value.Float(-1)}, Want: "#NUM!"},
		{Name: "floor", Args: []value.Value{value.Float(3.7), value.Float(2)}, Want: "2"},
		{Name: "floor", Args: []value.Value{value.Float(-2.5), value.Float(2)}, Want: "-4"},
		{Name: "floor", Args: []value.Value{value.Float(1), value.Float(0)}, Want: "#DIV/0!"},
		{Name: "sign", Args: []value.Value{value.Float(-4)}, Want: "-1"},
		{Name: "sign", Args: []value.Value{vector(value.Float(0), value.Float(3))}, Want: "{0,1}"},
		{Name: "ln", Args: []value.Value{value.Float(1)}, Want: "0"},
		{Name: "ln", Args: []value.Value{value.Float(0)}, Want: "#NUM!"},
		{Name: "log", Args: []value.Value{value.Float(100)}, Want: "2"},
		{Name: "log", Args: []value.Value{value.Float(8), value.Float(2)}, Want: "3"},
		{Name: "log", Args: []value.Value{value.Float(8), value.Float(1)}, Want: "#DIV/0!"},
		{Name: "sumproduct", Args: []value.Value{column(value.Float(1), value.Float(2), value.Float(3)), column(value.Float(4), value.Float(5), value.Float(6))}, Want: "32"},
		{Name: "sumproduct", Args: []value.Value{vector(value.Float(1), value.Text("x")), vector(value.Float(2), value.Float(3))}, Want: "2"},
		{Name: "sumproduct", Args: []value.Value{vector(value.Float(1), value.Float(2)), vector(value.Float(1))}, Want: "#VALUE!"},
		{Name: "sumproduct", Args: []value.Value{vector(value.Float(1), value.ErrNA)}, Want: "#N/A"},
		{Name: "sumif", Args: []value.Value{column(value.Float(1), value.Float(2), value.Float(3), value.Float(4)), value.Text(">2")}, Want: "7"},
		{Name: "sumif", Args: []value.Value{column(value.Text("a"), value.Text("b"), value.Text("A")), value.Text("a"), column(value.Float(1), value.Float(2), value.Float(3))}, Want: "4"},
		{Name: "sumif", Args: []value.Value{vector(value.Text("apple"), value.Text("banana"), value.Text("apricot")), value.Text("ap*"), vector(value.Float(1), value.Float(2), value.Float(3))}, Want: "4"},
		{Name: "sumif", Args: []value.Value{vector(value.Float(1), value.Float(2)), value.Text(">1"), vector(value.Float(1), value.ErrDiv0)}, Want: "#DIV/0!"},
		{Name: "sumif", Args: []value.Value{vector(value.Float(1), value.Float(2)), value.Text("<2"), vector(value.Float(1), value.ErrDiv0)}, Want: "1"},
		{Name: "sumifs", Args: []value.Value{column(value.Float(1), value.Float(2), value.Float(3)), column(value.Text("a"), value.Text("b"), value.Text("a")), value.Text("a"), column(value.Float(1), value.Float(5), value.Float(9)), value.Text(">=5")}, Want: "3"},
		{Name: "sumifs", Args: []value.Value{column(value.Float(1), value.Float(2)), column(value.Text("a"), value.Text("b"), value.Text("c")), value.Text("a")}, Want: "#VALUE!"},
		{Name: "countif", Args: []value.Value{vector(value.Float(1), value.Text("x"), value.Blank{}, value.Float(3)), value.Text("<>")}, Want: "3"},
		{Name: "countif", Args: []value.Value{vector(value.Float(1), value.Float(2), value.Text("2")), value.Float(2)}, Want: "1"},
		{Name: "countif", Args: []value.Value{vector(value.Float(1), value.Blank{}, value.Text("")), value.Text("")}, Want: "2"},
		{Name: "countif", Args: []value.Value{vector(value.Text("apple"), value.Text("pear"), value.Float(5)), value.Text(">b")}, Want: "1"},
		{Name: "countif", Args: []value.Value{vector(value.Text("a*"), value.Text("ab")), value.Text("a~*")}, Want: "1"},
		{Name: "countif", Args: []value.Value{vector(value.Float(1)), value.ErrNA}, Want: "#N/A"},
		{Name: "countifs", Args: []value.Value{vector(value.Float(1), value.Float(2), value.Float(3)), value.Text(">1"), vector(value.Text("a"), value.Text("b"), value.Text("b")), value.Text("b")}, Want: "2"},
		{Name: "countifs", Args: []value.Value{vector(value.Float(1)), value.Text(">1"), vector(value.Float(1))}, Want: "#VALUE!"},
		{Name: "averageif", Args: []value.Value{vector(value.Float(1), value.Float(2), value.Float(3), value.Float(4)), value.Text(">1")}, Want: "3"},
		{Name: "averageif", Args: []value.Value{vector(value.Float(1)), value.Text(">5")}, Want: "#DIV/0!"},
		{Name: "averageifs", Args: []value.Value{vector(value.Float(10), value.Float(20), value.Float(30)), vector(value.Text("a"), value.Text("b"), value.Text("a")), value.Text("a")}, Want: "20"},
		{Name: "minifs", Args: []value.Value{vector(value.Float(5), value.Float(1), value.Float(7)), vector(value.Text("a"), value.Text("b"), value.Text("a")), value.Text("a")}, Want: "5"},
		{Name: "maxifs", Args: []value.Value{vector(value.Float(5), value.Float(1), value.Float(7)), vector(value.Text("a"), value.Text("b"), value.Text("a")), value.Text("a")}, Want: "7"},
		{Name: "maxifs", Args: []value.Value{vector(value.Float(5)), vector(value.Text("a")), value.Text("z")}, Want: "0"},
		{Name: "if", Args: []value.Value{value.Boolean(true), value.Float(1), value.Float(2)}, Want: "1"},
		{Name: "if", Args: []value.Value{value.Boolean(false), value.Float(1), value.Float(2)}, Want: "2"},
		{Name: "if", Args: []value.Value{value.Boolean(false), value.Float(1)}, Want: "FALSE"},
		{Name: "if", Args: []value.Value{value.ErrNA, value.Float(1), value.Float(2)}, Want: "#N/A"},
		{Name: "if", Args: []value.Value{value.Boolean(true), value.Float(1), value.ErrDiv0}, Want: "1"},
		{Name: "if", Args: []value.Value{value.Boolean(false), value.ErrDiv0, value.Float(2)}, Want: "2"},
		{Name: "if", Args: []value.Value{value.Float(0), value.Float(1)}, Want: "FALSE"},
		{Name: "if", Args: []value.Value{value.Text("x"), value.Float(1)}, Want: "#VALUE!"},
		{Name: "and", Args: []value.Value{value.Boolean(true), vector(value.Float(1), value.Text("x"))}, Want: "TRUE"},
		{Name: "or", Args: []value.Value{vector(value.Text("x"))}, Want: "#VALUE!"},
		{Name: "not", Args: []value.Value{value.Float(0)}, Want: "TRUE"},
		{Name: "iferror", Args: []value.Value{value.ErrDiv0, value.Text("alt")}, Want: "alt"},
		{Name: "iserror", Args: []value.Value{value.ErrNA}, Want: "TRUE"},
		{Name: "iserr", Args: []value.Value{value.ErrNA}, Want: "FALSE"},
		{Name: "isna", Args: []value.Value{value.ErrNA}, Want: "TRUE"},
		{Name: "isnumber", Args: []value.Value{value.Text("1")}, Want: "FALSE"},
		{Name: "istext", Args: []value.Value{value.Text("1")}, Want: "TRUE"},
		{Name: "isblank", Args: []value.Value{value.Blank{}}, Want: "TRUE"},
		{Name: "type", Args: []value.Value{table()}, Want: "64"},
		{Name: "concatenate", Args: []value.Value{value.Text("a"), value.Float(1), value.Boolean(false)}, Want: "a1FALSE"},
		{Name: "len", Args: []value.Value{value.Text("héllo")}, Want: "5"},
		{Name: "upper", Args: []value.Value{value.Text("abc")}, Want: "ABC"},
		{Name: "_xlfn.lower", Args: []value.Value{value.Text("ABC")}, Want: "abc"},
		{Name: "index", Args: []value.Value{table(), value.Float(2), value.Float(2)}, Want: "two"},
		{Name: "index", Args: []value.Value{column(value.Float(5), value.Float(6)), value.Float(2)}, Want: "6"},
		{Name: "index", Args: []value.Value{table(), value.Float(2)}, Want: "{2,\"two\",FALSE}"},
		{Name: "index", Args: []value.Value{table(), value.Float(0), value.Float(3)}, Want: "{TRUE;FALSE;TRUE}"},
		{Name: "index", Args: []value.Value{table(), value.Float(4), value.Float(1)}, Want: "#REF!"},
		{Name: "vlookup", Args: []value.Value{value.Float(2.5), table(), value.Float(2)}, Want: "two"},
		{Name: "vlookup", Args: []value.Value{value.Float(2.5), table(), value.Float(2), value.Boolean(false)}, Want: "#N/A"},
		{Name: "vlookup", Args: []value.Value{value.Float(3), table(), value.Float(4)}, Want: "#REF!"},
		{Name: "hlookup", Args: []value.Value{value.Text("TWO"), value.NewArray([][]value.ScalarValue{{value.Text("one"), value.Text("two")}, {value.Float(1), value.Float(2)}}), value.Float(2), value.Boolean(false)}, Want: "2"},
		{Name: "lookup", Args: []value.Value{value.Float(2), column(value.Float(1), value.Float(2), value.Float(3)), vector(value.Text("a"), value.Text("b"), value.Text("c"))}, Want: "b"},
		{Name: "lookup", Args: []value.Value{value.Float(3), table()}, Want: "TRUE"},
		{Name: "rows", Args: []value.Value{table()}, Want: "3"},
		{Name: "columns", Args: []value.Value{value.Float(1)}, Want: "1"},
		{Name: "choose", Args: []value.Value{value.Float(2), value.Text("a"), value.Text("b"), value.ErrDiv0}, Want: "b"},
		{Name: "choose", Args: []value.Value{value.Float(3), value.Text("a"), value.Text("b"), value.ErrDiv0}, Want: "#DIV/0!"},
		{Name: "choose", Args: []value.Value{value.Float(4), value.Text("a"), value.Text("b")}, Want: "#VALUE!"},
		{Name: "array", Args: []value.Value{vector(value.Float(1), value.Float(2)), vector(value.Float(3))}, Want: "{1,2;3,#N/A}"},
		{Name: "arrayrow", Args: []value.Value{value.Float(1), value.ErrDiv0}, Want: "{1,#DIV/0!}"},
	}
	for _, c := range tests {
		fn, ok := lib.Resolve(c.Name)
		if !ok {
			t.Errorf("%s: function not found", c.Name)
			continue
		}
		if err := fn.Check(len(c.Args)); err != nil {
			t.Errorf("%s: unexpected arity error: %s", c.Name, err)
			continue
		}
		got := apply(fn, c.Args)
		if got.String() != c.Want {
			t.Errorf("%s: want %s, got %s", c.Name, c.Want, got)
		}
	}
}

func TestRefer(t *testing.T) {
	lib := Default()
	at, _ := layout.ParsePosition("C5")
	at = at.Qualify("Sheet1")

	tests := []struct {
		Name  string
		Args  []Arg
		Want  string
		Range string
	}{
		{Name: "row", Want: "5"},
		{Name: "column", Want: "3"},
		{Name: "row", Args: []Arg{ref(t, "B2:D4", table())}, Want: "{2;3;4}"},
		{Name: "column", Args: []Arg{ref(t, "B2:D4", table())}, Want: "{2,3,4}"},
		{Name: "column", Args: []Arg{ref(t, "AA7", value.ErrDiv0)}, Want: "27"},
		{Name: "row", Args: []Arg{{Value: value.Float(1)}}, Want: "#VALUE!"},
		{
			Name: "row",
			Args: []Arg{{Value: vector(value.Float(1), value.Float(2)), Ranges: []layout.Range{ref(t, "A1", nil).Ranges[0], ref(t, "B2", nil).Ranges[0]}}},
			Want: "#REF!",
		},
		{
			Name:  "index",
			Args:  []Arg{ref(t, "B2:D4", table()), {Value: value.Float(2)}, {Value: value.Float(3)}},
			Want:  "FALSE",
			Range: "Sheet1!D3",
		},
		{
			Name:  "index",
			Args:  []Arg{ref(t, "B2:D4", table()), {Value: value.Float(2)}},
			Want:  "{2,\"two\",FALSE}",
			Range: "Sheet1!B3:D3",
		},
		{
			Name:  "index",
			Args:  []Arg{ref(t, "B2:D4", table()), {Value: value.Float(0)}, {Value: value.Float(2)}},
			Want:  "{\"one\";\"two\";\"three\"}",
			Range: "Sheet1!C2:C4",
		},
		{
			Name:  "index",
			Args:  []Arg{ref(t, "A1:A3", column(value.Float(1), value.Float(2), value.Float(3))), {Value: value.Float(2)}},
			Want:  "2",
			Range: "Sheet1!A2",
		},
		{
			Name: "index",
			Args: []Arg{ref(t, "B2:D4", table()), {Value: value.Float(5)}, {Value: value.Float(1)}},
			Want: "#REF!",
		},
		{
			Name: "index",
			Args: []Arg{{Value: table()}, {Value: value.Float(1)}, {Value: value.Float(1)}},
			Want: "1",
		},
	}
	for _, c := range tests {
		fn, ok := lib.Resolve(c.Name)
		if !ok {
			t.Errorf("%s: function not found", c.Name)
			continue
		}
		if err := fn.Check(len(c.Args)); err != nil {
			t.Errorf("%s: unexpected arity error: %s", c.Name, err)
			continue
		}
		got := fn.Apply(at, c.Args)
		if got.Value.String() != c.Want {
			t.Errorf("%s: want %s, got %s", c.Name, c.Want, got.Value)
		}
		var ranges []string
		for _, r := range got.Ranges {
			ranges = append(ranges, r.String())
		}
		if str := strings.Join(ranges, ","); str != c.Range {
			t.Errorf("%s: range mismatched! want %q, got %q", c.Name, c.Range, str)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		Name   string
		Lookup value.ScalarValue
		List   value.Array
		Mode   value.Value
		Want   string
	}{
		{
			Name:   "ascending",
			Lookup: value.Float(3),
			List:   vector(value.Float(-1.1), value.Float(2.1), value.Float(3.1), value.Float(4.1)),
			Want:   "2",
		},
		{
			Name:   "exact",
			Lookup: value.Float(4.1),
			List:   vector(value.Float(4.1), value.Text("b"), value.Text("a"), value.Float(1.1)),
			Mode:   value.Float(0),
			Want:   "1",
		},
		{
			Name:   "descending",
			Lookup: value.Float(2),
			List:   vector(value.Float(4.1), value.Float(2.1), value.Float(3.1), value.Float(1.1)),
			Mode:   value.Float(-1),
			Want:   "3",
		},
		{
			Name:   "ascending before first",
			Lookup: value.Float(-5),
			List:   vector(value.Float(-1.1), value.Float(2.1)),
			Want:   "#N/A",
		},
		{
			Name:   "ascending mixed types",
			Lookup: value.Float(10),
			List:   vector(value.Float(1), value.Float(2), value.Text("a"), value.Text("b")),
			Want:   "2",
		},
		{
			Name:   "exact ignores case",
			Lookup: value.Text("B"),
			List:   column(value.Text("a"), value.Text("b")),
			Mode:   value.Float(0),
			Want:   "2",
		},
		{
			Name:   "wildcard",
			Lookup: value.Text("t?o*"),
			List:   vector(value.Text("one"), value.Text("Twofold"), value.Text("two")),
			Mode:   value.Float(0),
			Want:   "2",
		},
		{
			Name:   "escaped wildcard",
			Lookup: value.Text("a~*"),
			List:   vector(value.Text("ab"), value.Text("a*")),
			Mode:   value.Float(0),
			Want:   "2",
		},
		{
			Name:   "several rows and columns",
			Lookup: value.Float(2),
			List:   table(),
			Mode:   value.Float(0),
			Want:   "#N/A",
		},
		{
			Name:   "exact missing",
			Lookup: value.Float(7),
			List:   vector(value.Float(1), value.Text("7")),
			Mode:   value.Float(0),
			Want:   "#N/A",
		},
	}
	for _, c := range tests {
		args := []value.Value{c.Lookup, c.List}
		if c.Mode != nil {
			args = append(args, c.Mode)
		}
		got := Match(args)
		if got.String() != c.Want {
			t.Errorf("%s: want %s, got %s", c.Name, c.Want, got)
		}
	}
}

func TestResolve(t *testing.T) {
	lib := Default()
	if _, ok := lib.Resolve("NOSUCHFUNC"); ok {
		t.Errorf("unknown function resolved")
	}
	fn, ok := lib.Resolve("_xlfn.sum")
	if !ok || fn.Name != "SUM" {
		t.Fatalf("sum not resolved")
	}
	if err := fn.Check(0); !errors.Is(err, ErrArity) {
		t.Errorf("expected arity error, got %v", err)
	}
	fn, _ = lib.Resolve("if")
	for _, n := range []int{1, 4} {
		if err := fn.Check(n); !errors.Is(err, ErrArity) {
			t.Errorf("if/%d: expected arity error, got %v", n, err)
		}
	}
}
