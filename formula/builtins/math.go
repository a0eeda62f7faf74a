package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/midbel/sheetcalc/value"
)

var mathFuncs = []Func{
	{Name: "SUM", Min: 1, Max: Variadic, Call: Sum},
	{Name: "AVERAGE", Min: 1, Max: Variadic, Call: Average},
	{Name: "MIN", Min: 1, Max: Variadic, Call: Min},
	{Name: "MAX", Min: 1, Max: Variadic, Call: Max},
	{Name: "COUNT", Min: 1, Max: Variadic, Aware: true, Call: Count},
	{Name: "ABS", Min: 1, Max: 1, Call: Abs},
	{Name: "INT", Min: 1, Max: 1, Call: Int},
	{Name: "SQRT", Min: 1, Max: 1, Call: Sqrt},
	{Name: "MOD", Min: 2, Max: 2, Call: Mod},
	{Name: "POWER", Min: 2, Max: 2, Call: Power},
	{Name: "ROUND", Min: 1, Max: 2, Call: Round},
	{Name: "ROUNDUP", Min: 2, Max: 2, Call: RoundUp},
	{Name: "ROUNDDOWN", Min: 2, Max: 2, Call: RoundDown},
	{Name: "TRUNC", Min: 1, Max: 2, Call: RoundDown},
	{Name: "CEILING", Min: 2, Max: 2, Call: Ceiling},
	{Name: "FLOOR", Min: 2, Max: 2, Call: Floor},
	{Name: "SIGN", Min: 1, Max: 1, Call: Sign},
	{Name: "LN", Min: 1, Max: 1, Call: Ln},
	{Name: "LOG", Min: 1, Max: 2, Call: Log},
	{Name: "SUMPRODUCT", Min: 1, Max: Variadic, Call: SumProduct},
}

func Sum(args []value.Value) value.Value {
	list, err := numerics(args)
	if err != nil {
		return err
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return number(total)
}

func Average(args []value.Value) value.Value {
	list, err := numerics(args)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return value.ErrDiv0
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return number(total / float64(len(list)))
}

func Min(args []value.Value) value.Value {
	list, err := numerics(args)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return value.Float(0)
	}
	res := list[0]
	for _, f := range list[1:] {
		res = min(res, f)
	}
	return value.Float(res)
}

func Max(args []value.Value) value.Value {
	list, err := numerics(args)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return value.Float(0)
	}
	res := list[0]
	for _, f := range list[1:] {
		res = max(res, f)
	}
	return value.Float(res)
}

// Count gives the number of numeric values among its arguments. Errors are
// not counted.
func Count(args []value.Value) value.Value {
	var n int
	for _, v := range flatten(args) {
		if _, ok := v.(value.Float); ok {
			n++
		}
	}
	return value.Float(n)
}

func Abs(args []value.Value) value.Value {
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		return value.Float(math.Abs(f))
	})
}

func Int(args []value.Value) value.Value {
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		return value.Float(math.Floor(f))
	})
}

func Sqrt(args []value.Value) value.Value {
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		if f < 0 {
			return value.ErrNum
		}
		return value.Float(math.Sqrt(f))
	})
}

func Mod(args []value.Value) value.Value {
	return value.Mod(args[0], args[1])
}

func Power(args []value.Value) value.Value {
	return value.Pow(args[0], args[1])
}

type rounding int8

const (
	roundHalf rounding = iota
	roundUp
	roundDown
)

// Round rounds half away from zero. Positive digits work on the decimal form
// of the number, limited to 15 significant digits, so 2.675 rounds to 2.68.
func Round(args []value.Value) value.Value {
	return roundWith(args, roundHalf)
}

// RoundUp rounds away from zero.
func RoundUp(args []value.Value) value.Value {
	return roundWith(args, roundUp)
}

func RoundDown(args []value.Value) value.Value {
	return roundWith(args, roundDown)
}

func roundWith(args []value.Value, mode rounding) value.Value {
	var digits int
	if len(args) > 1 {
		d, err := toInt(args[1])
		if err != nil {
			return err
		}
		digits = d
	}
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		return number(roundDigits(f, digits, mode))
	})
}

func roundDigits(f float64, digits int, mode rounding) float64 {
	var (
		neg = f < 0
		abs = math.Abs(f)
		res float64
	)
	if digits < 0 {
		factor := math.Pow(10, float64(-digits))
		switch mode {
		case roundUp:
			res = math.Ceil(abs / factor)
		case roundDown:
			res = math.Floor(abs / factor)
		default:
			res = math.Round(abs / factor)
		}
		res *= factor
	} else {
		res = roundDecimal(abs, digits, mode)
	}
	if neg {
		res = -res
	}
	return res
}

func roundDecimal(f float64, digits int, mode rounding) float64 {
	f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', 15, 64), 64)

	ipart, fp := splitDecimal(strconv.FormatFloat(f, 'f', -1, 64))
	if len(fp) <= digits {
		return f
	}
	var bump bool
	switch mode {
	case roundUp:
		bump = strings.Trim(fp[digits:], "0") != ""
	case roundHalf:
		bump = fp[digits] >= '5'
	}
	keep := []byte(ipart + fp[:digits])
	if bump {
		i := len(keep) - 1
		for ; i >= 0; i-- {
			if keep[i] == '9' {
				keep[i] = '0'
				continue
			}
			keep[i]++
			break
		}
		if i < 0 {
			keep = append([]byte{'1'}, keep...)
		}
	}
	n := len(keep) - digits
	res := string(keep[:n])
	if digits > 0 {
		res += "." + string(keep[n:])
	}
	r, _ := strconv.ParseFloat(res, 64)
	return r
}

// Ceiling rounds a number up to a multiple of significance. A negative
// number rounded with a negative significance goes away from zero.
func Ceiling(args []value.Value) value.Value {
	return mapMultiple(args, func(f, sig float64) value.ScalarValue {
		switch {
		case sig == 0:
			return value.Float(0)
		case f > 0 && sig < 0:
			return value.ErrNum
		}
		return number(math.Ceil(f/sig) * sig)
	})
}

func Floor(args []value.Value) value.Value {
	return mapMultiple(args, func(f, sig float64) value.ScalarValue {
		switch {
		case sig == 0:
			return value.ErrDiv0
		case f > 0 && sig < 0:
			return value.ErrNum
		}
		return number(math.Floor(f/sig) * sig)
	})
}

func mapMultiple(args []value.Value, fn func(float64, float64) value.ScalarValue) value.Value {
	sig, err := value.CastToFloat(toScalar(args[1]))
	if err != nil {
		return value.AsError(err)
	}
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		return fn(f, float64(sig))
	})
}

func Sign(args []value.Value) value.Value {
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		switch {
		case f < 0:
			return value.Float(-1)
		case f > 0:
			return value.Float(1)
		default:
			return value.Float(0)
		}
	})
}

func Ln(args []value.Value) value.Value {
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		if f <= 0 {
			return value.ErrNum
		}
		return number(math.Log(f))
	})
}

// Log gives the logarithm of a number in base 10 unless another base is
// given.
func Log(args []value.Value) value.Value {
	base := 10.0
	if len(args) > 1 {
		b, err := value.CastToFloat(toScalar(args[1]))
		if err != nil {
			return value.AsError(err)
		}
		base = float64(b)
	}
	return mapNumber(args[0], func(f float64) value.ScalarValue {
		switch {
		case f <= 0 || base <= 0:
			return value.ErrNum
		case base == 1:
			return value.ErrDiv0
		}
		return number(math.Log(f) / math.Log(base))
	})
}

// SumProduct multiplies the elements at the same place in arrays of the same
// shape and adds the products. Values that are not numbers count as zero.
func SumProduct(args []value.Value) value.Value {
	var (
		dim   = toArray(args[0]).Dimension()
		prods []float64
	)
	for _, a := range args {
		arr := toArray(a)
		if arr.Dimension() != dim {
			return value.ErrValue
		}
		list := arr.Values()
		if prods == nil {
			prods = make([]float64, len(list))
			for i := range prods {
				prods[i] = 1
			}
		}
		for i, v := range list {
			switch v := v.(type) {
			case value.Error:
				return v
			case value.Float:
				prods[i] *= float64(v)
			default:
				prods[i] = 0
			}
		}
	}
	var total float64
	for _, f := range prods {
		total += f
	}
	return number(total)
}

func splitDecimal(str string) (string, string) {
	ipart, fpart, _ := strings.Cut(str, ".")
	return ipart, fpart
}
