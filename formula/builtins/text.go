package builtins

import (
	"strings"
	"unicode/utf8"

	"github.com/midbel/sheetcalc/value"
)

var textFuncs = []Func{
	{Name: "CONCATENATE", Min: 1, Max: Variadic, Call: Concatenate},
	{Name: "LEN", Min: 1, Max: 1, Call: Len},
	{Name: "UPPER", Min: 1, Max: 1, Call: Upper},
	{Name: "LOWER", Min: 1, Max: 1, Call: Lower},
}

func Concatenate(args []value.Value) value.Value {
	var str strings.Builder
	for _, v := range flatten(args) {
		t, err := value.CastToText(v)
		if err != nil {
			return value.AsError(err)
		}
		str.WriteString(string(t))
	}
	return value.Text(str.String())
}

func Len(args []value.Value) value.Value {
	return mapText(args[0], func(str string) value.ScalarValue {
		return value.Float(utf8.RuneCountInString(str))
	})
}

func Upper(args []value.Value) value.Value {
	return mapText(args[0], func(str string) value.ScalarValue {
		return value.Text(strings.ToUpper(str))
	})
}

func Lower(args []value.Value) value.Value {
	return mapText(args[0], func(str string) value.ScalarValue {
		return value.Text(strings.ToLower(str))
	})
}

func mapText(v value.Value, fn func(string) value.ScalarValue) value.Value {
	return mapScalar(v, func(s value.ScalarValue) value.ScalarValue {
		t, err := value.CastToText(s)
		if err != nil {
			return value.AsError(err)
		}
		return fn(string(t))
	})
}
