package builtins

import (
	"regexp"
	"strings"

	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var lookupFuncs = []Func{
	{Name: "MATCH", Min: 2, Max: 3, Call: Match},
	{Name: "INDEX", Min: 2, Max: 3, Call: Index, Refer: IndexRef},
	{Name: "CHOOSE", Min: 2, Max: Variadic, Aware: true, Call: Choose},
	{Name: "LOOKUP", Min: 2, Max: 3, Call: Lookup},
	{Name: "VLOOKUP", Min: 3, Max: 4, Call: VLookup},
	{Name: "HLOOKUP", Min: 3, Max: 4, Call: HLookup},
	{Name: "ROWS", Min: 1, Max: 1, Call: Rows},
	{Name: "COLUMNS", Min: 1, Max: 1, Call: Columns},
}

// Match gives the position of a value in a vector. An array with several
// rows and columns has no position to give. With a positive type the
// vector is expected in ascending order and the largest value lower or equal
// is selected; a negative type expects descending order and selects the
// smallest value greater or equal; zero requires an exact match.
func Match(args []value.Value) value.Value {
	var (
		lookup = toScalar(args[0])
		arr    = toArray(args[1])
		mode   = 1
	)
	if len(args) > 2 {
		f, err := value.CastToFloat(toScalar(args[2]))
		if err != nil {
			return value.AsError(err)
		}
		switch {
		case f > 0:
			mode = 1
		case f < 0:
			mode = -1
		default:
			mode = 0
		}
	}
	var list []value.ScalarValue
	switch dim := arr.Dimension(); {
	case dim.Lines == 1:
		list = arr.Data[0]
	case dim.Columns == 1:
		list = arr.Column(0).Values()
	default:
		return value.ErrNA
	}
	return matchIndex(lookup, list, mode)
}

func matchIndex(lookup value.ScalarValue, list []value.ScalarValue, mode int) value.ScalarValue {
	rank := value.Rank(lookup)
	switch {
	case mode > 0:
		lo, hi := 0, len(list)
		for lo < hi {
			mid := (lo + hi) / 2
			if value.Compare(lookup, list[mid]) < 0 {
				hi = mid
			} else {
				lo = mid + 1
			}
		}
		for lo > 0 && value.Rank(list[lo-1]) != rank {
			lo--
		}
		if lo == 0 {
			return value.ErrNA
		}
		return value.Float(lo)
	case mode == 0:
		var re *regexp.Regexp
		if t, ok := lookup.(value.Text); ok {
			re = wildcard(string(t))
		}
		for i, v := range list {
			if value.IsError(v) || value.Rank(v) != rank {
				continue
			}
			if re != nil {
				if re.MatchString(v.String()) {
					return value.Float(i + 1)
				}
				continue
			}
			if value.Equal(v, lookup) {
				return value.Float(i + 1)
			}
		}
		return value.ErrNA
	default:
		var res value.ScalarValue = value.ErrNA
		for i, v := range list {
			if value.IsError(v) || value.Rank(v) != rank {
				continue
			}
			c := value.Compare(v, lookup)
			if c < 0 {
				break
			}
			res = value.Float(i + 1)
			if c == 0 {
				break
			}
		}
		return res
	}
}

// wildcard compiles a pattern where * matches any sequence, ? any character
// and ~ escapes the next character. It returns nil when the pattern has no
// special character.
func wildcard(pattern string) *regexp.Regexp {
	if !strings.ContainsAny(pattern, "*?~") {
		return nil
	}
	var (
		str  strings.Builder
		list = []rune(pattern)
	)
	str.WriteString("(?is)^")
	for i := 0; i < len(list); i++ {
		switch c := list[i]; c {
		case '~':
			if i+1 < len(list) {
				i++
				str.WriteString(regexp.QuoteMeta(string(list[i])))
				break
			}
			str.WriteString(regexp.QuoteMeta(string(c)))
		case '*':
			str.WriteString(".*")
		case '?':
			str.WriteString(".")
		default:
			str.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	str.WriteString("$")
	re, err := regexp.Compile(str.String())
	if err != nil {
		return nil
	}
	return re
}

// Index selects an element, a row or a column of an array. A zero index
// selects the whole dimension.
func Index(args []value.Value) value.Value {
	arr := toArray(args[0])
	row, col, err := indexArgs(args)
	if err != nil {
		return err
	}
	var (
		dim   = arr.Dimension()
		lines = int(dim.Lines)
		cols  = int(dim.Columns)
	)
	at := func(r, c int) value.Value {
		if v := arr.At(r, c); v != nil {
			return v
		}
		return value.ErrRef
	}
	switch {
	case row > 0 && col > 0:
		return at(row-1, col-1)
	case row > 0:
		if cols == 1 {
			return at(row-1, 0)
		}
		if lines == 1 {
			return at(0, row-1)
		}
		if row > lines {
			return value.ErrRef
		}
		return arr.Row(row - 1)
	case col > 0:
		if lines == 1 {
			return at(0, col-1)
		}
		if cols == 1 {
			return at(col-1, 0)
		}
		if col > cols {
			return value.ErrRef
		}
		return arr.Column(col - 1)
	default:
		return arr
	}
}

// IndexRef is Index for an array read from cells: the result remembers the
// range of the selected cells.
func IndexRef(_ layout.Position, args []Arg) Arg {
	values := make([]value.Value, 0, len(args))
	for _, a := range args {
		values = append(values, a.Value)
	}
	res := Arg{
		Value: Index(values),
	}
	rg, ok := args[0].Range()
	if !ok {
		return res
	}
	row, col, err := indexArgs(values)
	if err != nil {
		return res
	}
	if sel, ok := selectRange(rg, row, col); ok {
		res.Ranges = []layout.Range{sel}
	}
	return res
}

func indexArgs(args []value.Value) (int, int, value.Value) {
	row, err := toInt(args[1])
	if err != nil {
		return 0, 0, err
	}
	var col int
	if len(args) > 2 && !isBlank(args[2]) {
		col, err = toInt(args[2])
		if err != nil {
			return 0, 0, err
		}
	}
	if row < 0 || col < 0 {
		return 0, 0, value.ErrValue
	}
	return row, col, nil
}

// selectRange gives the part of rg selected by Index with the same row and
// column.
func selectRange(rg layout.Range, row, col int) (layout.Range, bool) {
	var (
		lines = int(rg.Height())
		cols  = int(rg.Width())
	)
	cell := func(r, c int) (layout.Range, bool) {
		if r > lines || c > cols {
			return layout.Range{}, false
		}
		pos := layout.Position{
			Sheet:  rg.Sheet(),
			Line:   rg.Starts.Line + int64(r) - 1,
			Column: rg.Starts.Column + int64(c) - 1,
		}
		return layout.SingleRange(pos), true
	}
	switch {
	case row > 0 && col > 0:
		return cell(row, col)
	case row > 0:
		if cols == 1 {
			return cell(row, 1)
		}
		if lines == 1 {
			return cell(1, row)
		}
		if row > lines {
			return layout.Range{}, false
		}
		starts := rg.Starts
		starts.Line += int64(row) - 1
		ends := starts
		ends.Column = rg.Ends.Column
		return layout.NewRange(starts, ends), true
	case col > 0:
		if lines == 1 {
			return cell(1, col)
		}
		if cols == 1 {
			return cell(col, 1)
		}
		if col > cols {
			return layout.Range{}, false
		}
		starts := rg.Starts
		starts.Column += int64(col) - 1
		ends := starts
		ends.Line = rg.Ends.Line
		return layout.NewRange(starts, ends), true
	default:
		return rg, true
	}
}

// Choose gives the argument at the position given by its first argument.
// Only the selected argument may hold an error.
func Choose(args []value.Value) value.Value {
	cond := toScalar(args[0])
	if e, ok := cond.(value.Error); ok {
		return e
	}
	ix, err := toInt(cond)
	if err != nil {
		return err
	}
	if ix < 1 || ix >= len(args) {
		return value.ErrValue
	}
	return args[ix]
}

// Lookup searches the first row or column of an array, along its longest
// dimension, and returns the matching element of the last one or of the
// result vector.
func Lookup(args []value.Value) value.Value {
	var (
		lookup = toScalar(args[0])
		arr    = toArray(args[1])
		dim    = arr.Dimension()
		keys   []value.ScalarValue
		result []value.ScalarValue
	)
	if dim.Columns <= dim.Lines {
		keys = arr.Column(0).Values()
		result = arr.Column(int(dim.Columns) - 1).Values()
	} else {
		keys = arr.Row(0).Values()
		result = arr.Row(int(dim.Lines) - 1).Values()
	}
	if len(args) > 2 && arr.Vector() {
		res := toArray(args[2])
		if rd := res.Dimension(); rd.Lines > rd.Columns {
			result = res.Column(0).Values()
		} else {
			result = res.Row(0).Values()
		}
	}
	ix := matchIndex(lookup, keys, 1)
	pos, ok := ix.(value.Float)
	if !ok {
		return ix
	}
	if int(pos) > len(result) {
		return value.ErrNA
	}
	return result[int(pos)-1]
}

func VLookup(args []value.Value) value.Value {
	table := toArray(args[1])
	col, err := toInt(args[2])
	if err != nil {
		return err
	}
	if col < 1 {
		return value.ErrValue
	}
	if col > int(table.Dimension().Columns) {
		return value.ErrRef
	}
	ix := matchIndex(toScalar(args[0]), table.Column(0).Values(), lookupMode(args))
	pos, ok := ix.(value.Float)
	if !ok {
		return ix
	}
	return table.At(int(pos)-1, col-1)
}

func HLookup(args []value.Value) value.Value {
	table := toArray(args[1])
	row, err := toInt(args[2])
	if err != nil {
		return err
	}
	if row < 1 {
		return value.ErrValue
	}
	if row > int(table.Dimension().Lines) {
		return value.ErrRef
	}
	ix := matchIndex(toScalar(args[0]), table.Row(0).Values(), lookupMode(args))
	pos, ok := ix.(value.Float)
	if !ok {
		return ix
	}
	return table.At(row-1, int(pos)-1)
}

func lookupMode(args []value.Value) int {
	if len(args) < 4 || value.True(toScalar(args[3])) {
		return 1
	}
	return 0
}

func Rows(args []value.Value) value.Value {
	return value.Float(toArray(args[0]).Dimension().Lines)
}

func Columns(args []value.Value) value.Value {
	return value.Float(toArray(args[0]).Dimension().Columns)
}
