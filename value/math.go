package value

import (
	"math"
)

type (
	unaryFunc  func(ScalarValue) ScalarValue
	binaryFunc func(ScalarValue, ScalarValue) ScalarValue
)

var (
	add = arithmetic(func(x, y float64) ScalarValue {
		return checkNumber(x + y)
	})
	sub = arithmetic(func(x, y float64) ScalarValue {
		return checkNumber(x - y)
	})
	mul = arithmetic(func(x, y float64) ScalarValue {
		return checkNumber(x * y)
	})
	div = arithmetic(func(x, y float64) ScalarValue {
		if y == 0 {
			return ErrDiv0
		}
		return checkNumber(x / y)
	})
	pow = arithmetic(func(x, y float64) ScalarValue {
		if x == 0 && y < 0 {
			return ErrDiv0
		}
		if x == 0 && y == 0 {
			return ErrNum
		}
		return checkNumber(math.Pow(x, y))
	})
	mod = arithmetic(func(x, y float64) ScalarValue {
		if y == 0 {
			return ErrDiv0
		}
		return checkNumber(x - y*math.Floor(x/y))
	})
)

func Add(left, right Value) Value {
	return apply(left, right, add)
}

func Sub(left, right Value) Value {
	return apply(left, right, sub)
}

func Mul(left, right Value) Value {
	return apply(left, right, mul)
}

func Div(left, right Value) Value {
	return apply(left, right, div)
}

func Pow(left, right Value) Value {
	return apply(left, right, pow)
}

// Mod returns the remainder of left divided by right with the sign of the
// divisor.
func Mod(left, right Value) Value {
	return apply(left, right, mod)
}

func Concat(left, right Value) Value {
	return apply(left, right, func(a, b ScalarValue) ScalarValue {
		x, err := CastToText(a)
		if err != nil {
			return AsError(err)
		}
		y, err := CastToText(b)
		if err != nil {
			return AsError(err)
		}
		return x + y
	})
}

func Eq(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c == 0 }))
}

func Ne(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c != 0 }))
}

func Lt(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c < 0 }))
}

func Le(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c <= 0 }))
}

func Gt(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c > 0 }))
}

func Ge(left, right Value) Value {
	return apply(left, right, comparison(func(c int) bool { return c >= 0 }))
}

func Negate(val Value) Value {
	return applyUnary(val, func(v ScalarValue) ScalarValue {
		x, err := CastToFloat(v)
		if err != nil {
			return AsError(err)
		}
		return Float(-x)
	})
}

func Percent(val Value) Value {
	return applyUnary(val, func(v ScalarValue) ScalarValue {
		x, err := CastToFloat(v)
		if err != nil {
			return AsError(err)
		}
		return Float(x / 100)
	})
}

func arithmetic(do func(float64, float64) ScalarValue) binaryFunc {
	return func(a, b ScalarValue) ScalarValue {
		x, err := CastToFloat(a)
		if err != nil {
			return AsError(err)
		}
		y, err := CastToFloat(b)
		if err != nil {
			return AsError(err)
		}
		return do(float64(x), float64(y))
	}
}

func comparison(accept func(int) bool) binaryFunc {
	return func(a, b ScalarValue) ScalarValue {
		if e, ok := a.(Error); ok {
			return e
		}
		if e, ok := b.(Error); ok {
			return e
		}
		return Boolean(accept(Compare(a, b)))
	}
}

func apply(left, right Value, do binaryFunc) Value {
	var (
		la, lok = left.(Array)
		ra, rok = right.(Array)
	)
	switch {
	case lok && rok:
		return la.ApplyArray(ra, do)
	case lok:
		other := scalar(right)
		return la.Apply(func(v ScalarValue) ScalarValue {
			return do(v, other)
		})
	case rok:
		other := scalar(left)
		return ra.Apply(func(v ScalarValue) ScalarValue {
			return do(other, v)
		})
	default:
		return do(scalar(left), scalar(right))
	}
}

func applyUnary(val Value, do unaryFunc) Value {
	if arr, ok := val.(Array); ok {
		return arr.Apply(do)
	}
	return do(scalar(val))
}

func scalar(v Value) ScalarValue {
	if s, ok := v.(ScalarValue); ok {
		return s
	}
	return ErrValue
}
