package builtins

import (
	"slices"

	"github.com/midbel/sheetcalc/value"
)

var arrayFuncs = []Func{
	{Name: "ARRAY", Min: 1, Max: Variadic, Aware: true, Call: MakeArray},
	{Name: "ARRAYROW", Min: 1, Max: Variadic, Aware: true, Call: MakeArrayRow},
}

// MakeArray stacks its rows into an array. Short rows are padded with #N/A.
func MakeArray(args []value.Value) value.Value {
	var (
		data  [][]value.ScalarValue
		width int
	)
	for _, a := range args {
		for _, row := range toArray(a).Data {
			data = append(data, slices.Clone(row))
			width = max(width, len(row))
		}
	}
	for i := range data {
		for len(data[i]) < width {
			data[i] = append(data[i], value.ErrNA)
		}
	}
	return value.NewArray(data)
}

func MakeArrayRow(args []value.Value) value.Value {
	row := make([]value.ScalarValue, 0, len(args))
	for _, a := range args {
		row = append(row, toScalar(a))
	}
	return value.Vector(row)
}
