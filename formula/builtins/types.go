package builtins

import (
	"github.com/midbel/sheetcalc/value"
)

// TypeOf gives the numeric code of the type of its argument.
func TypeOf(args []value.Value) value.Value {
	switch args[0].(type) {
	case value.Float, value.Blank:
		return value.Float(1)
	case value.Text:
		return value.Float(2)
	case value.Boolean:
		return value.Float(4)
	case value.Error:
		return value.Float(16)
	case value.Array:
		return value.Float(64)
	default:
		return value.ErrValue
	}
}
