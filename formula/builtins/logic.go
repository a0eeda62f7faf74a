package builtins

import (
	"github.com/midbel/sheetcalc/value"
)

var logicFuncs = []Func{
	{Name: "IF", Min: 2, Max: 3, Aware: true, Call: If},
	{Name: "AND", Min: 1, Max: Variadic, Call: And},
	{Name: "OR", Min: 1, Max: Variadic, Call: Or},
	{Name: "NOT", Min: 1, Max: 1, Call: Not},
	{Name: "IFERROR", Min: 2, Max: 2, Aware: true, Call: IfError},
	{Name: "ISERROR", Min: 1, Max: 1, Aware: true, Call: IsError},
	{Name: "ISERR", Min: 1, Max: 1, Aware: true, Call: IsErr},
	{Name: "ISNA", Min: 1, Max: 1, Aware: true, Call: IsNA},
	{Name: "ISNUMBER", Min: 1, Max: 1, Aware: true, Call: IsNumber},
	{Name: "ISTEXT", Min: 1, Max: 1, Aware: true, Call: IsText},
	{Name: "ISBLANK", Min: 1, Max: 1, Aware: true, Call: IsBlank},
	{Name: "TYPE", Min: 1, Max: 1, Aware: true, Call: TypeOf},
}

// If only looks at the error of its condition: the branch that is not
// selected may hold an error without affecting the result.
func If(args []value.Value) value.Value {
	cond := toScalar(args[0])
	if e, ok := cond.(value.Error); ok {
		return e
	}
	b, err := value.CastToBool(cond)
	if err != nil {
		return value.AsError(err)
	}
	switch {
	case bool(b):
		return args[1]
	case len(args) > 2:
		return args[2]
	default:
		return value.Boolean(false)
	}
}

func And(args []value.Value) value.Value {
	return reduceBool(args, true, func(acc, b bool) bool {
		return acc && b
	})
}

func Or(args []value.Value) value.Value {
	return reduceBool(args, false, func(acc, b bool) bool {
		return acc || b
	})
}

func reduceBool(args []value.Value, init bool, fn func(bool, bool) bool) value.Value {
	var (
		res   = init
		found bool
	)
	for _, v := range flatten(args) {
		switch v := v.(type) {
		case value.Error:
			return v
		case value.Text, value.Blank:
			continue
		}
		b, err := value.CastToBool(v)
		if err != nil {
			return value.AsError(err)
		}
		res = fn(res, bool(b))
		found = true
	}
	if !found {
		return value.ErrValue
	}
	return value.Boolean(res)
}

func Not(args []value.Value) value.Value {
	return mapScalar(args[0], func(v value.ScalarValue) value.ScalarValue {
		b, err := value.CastToBool(v)
		if err != nil {
			return value.AsError(err)
		}
		return !b
	})
}

func IfError(args []value.Value) value.Value {
	if value.IsError(args[0]) {
		return args[1]
	}
	return args[0]
}

func IsError(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		return value.IsError(v)
	})
}

func IsErr(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		e, ok := v.(value.Error)
		return ok && e != value.ErrNA
	})
}

func IsNA(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		e, ok := v.(value.Error)
		return ok && e == value.ErrNA
	})
}

func IsNumber(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		_, ok := v.(value.Float)
		return ok
	})
}

func IsText(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		_, ok := v.(value.Text)
		return ok
	})
}

func IsBlank(args []value.Value) value.Value {
	return predicate(args[0], func(v value.ScalarValue) bool {
		return isBlank(v)
	})
}

func predicate(v value.Value, fn func(value.ScalarValue) bool) value.Value {
	return mapScalar(v, func(s value.ScalarValue) value.ScalarValue {
		return value.Boolean(fn(s))
	})
}
