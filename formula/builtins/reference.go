package builtins

import (
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var referenceFuncs = []Func{
	{Name: "ROW", Min: 0, Max: 1, Aware: true, Refer: Row},
	{Name: "COLUMN", Min: 0, Max: 1, Aware: true, Refer: Column},
}

// Row gives the line number of a reference, or of the cell holding the
// formula without argument. A range gives one number per line.
func Row(at layout.Position, args []Arg) Arg {
	return locate(at, args, func(rg layout.Range) value.Value {
		if rg.Height() == 1 {
			return value.Float(rg.Starts.Line)
		}
		var data [][]value.ScalarValue
		for line := rg.Starts.Line; line <= rg.Ends.Line; line++ {
			data = append(data, []value.ScalarValue{value.Float(line)})
		}
		return value.NewArray(data)
	})
}

// Column gives the column number of a reference, or of the cell holding
// the formula without argument. A range gives one number per column.
func Column(at layout.Position, args []Arg) Arg {
	return locate(at, args, func(rg layout.Range) value.Value {
		if rg.Width() == 1 {
			return value.Float(rg.Starts.Column)
		}
		var list []value.ScalarValue
		for col := rg.Starts.Column; col <= rg.Ends.Column; col++ {
			list = append(list, value.Float(col))
		}
		return value.Vector(list)
	})
}

func locate(at layout.Position, args []Arg, fn func(layout.Range) value.Value) Arg {
	if len(args) == 0 {
		return Arg{
			Value: fn(layout.SingleRange(at)),
		}
	}
	if len(args[0].Ranges) == 0 {
		if e, ok := args[0].Value.(value.Error); ok {
			return Arg{Value: e}
		}
		return Arg{Value: value.ErrValue}
	}
	rg, ok := args[0].Range()
	if !ok {
		return Arg{Value: value.ErrRef}
	}
	return Arg{
		Value: fn(rg),
	}
}
