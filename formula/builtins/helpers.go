package builtins

import (
	"math"

	"github.com/midbel/sheetcalc/value"
)

// flatten lists the scalars of the arguments, expanding arrays row by row.
func flatten(args []value.Value) []value.ScalarValue {
	var list []value.ScalarValue
	for _, a := range args {
		switch a := a.(type) {
		case value.Array:
			list = append(list, a.Values()...)
		case value.ScalarValue:
			list = append(list, a)
		}
	}
	return list
}

// numerics keeps the numbers of the arguments. Text, booleans and blanks are
// skipped; the first error found is returned instead.
func numerics(args []value.Value) ([]float64, value.Value) {
	var list []float64
	for _, v := range flatten(args) {
		switch v := v.(type) {
		case value.Error:
			return nil, v
		case value.Float:
			list = append(list, float64(v))
		}
	}
	return list, nil
}

func toArray(v value.Value) value.Array {
	if arr, ok := v.(value.Array); ok {
		return arr
	}
	s, ok := v.(value.ScalarValue)
	if !ok {
		s = value.ErrValue
	}
	return value.NewArray([][]value.ScalarValue{{s}})
}

func toScalar(v value.Value) value.ScalarValue {
	switch v := v.(type) {
	case value.Array:
		if s := v.At(0, 0); s != nil {
			return s
		}
		return value.ErrValue
	case value.ScalarValue:
		return v
	default:
		return value.ErrValue
	}
}

func toInt(v value.Value) (int, value.Value) {
	f, err := value.CastToFloat(toScalar(v))
	if err != nil {
		return 0, value.AsError(err)
	}
	return int(math.Trunc(float64(f))), nil
}

func isBlank(v value.Value) bool {
	_, ok := v.(value.Blank)
	return ok
}

// mapNumber applies fn to a number or to each element of an array.
func mapNumber(v value.Value, fn func(float64) value.ScalarValue) value.Value {
	do := func(s value.ScalarValue) value.ScalarValue {
		f, err := value.CastToFloat(s)
		if err != nil {
			return value.AsError(err)
		}
		return fn(float64(f))
	}
	if arr, ok := v.(value.Array); ok {
		return arr.Apply(do)
	}
	return do(toScalar(v))
}

func mapScalar(v value.Value, fn func(value.ScalarValue) value.ScalarValue) value.Value {
	if arr, ok := v.(value.Array); ok {
		return arr.Apply(fn)
	}
	return fn(toScalar(v))
}

func number(f float64) value.ScalarValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value.ErrNum
	}
	return value.Float(f)
}
