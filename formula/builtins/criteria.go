package builtins

import (
	"math"
	"regexp"
	"strings"

	"github.com/midbel/sheetcalc/value"
)

var criteriaFuncs = []Func{
	{Name: "SUMIF", Min: 2, Max: 3, Aware: true, Call: SumIf},
	{Name: "SUMIFS", Min: 3, Max: Variadic, Aware: true, Call: SumIfs},
	{Name: "COUNTIF", Min: 2, Max: 2, Aware: true, Call: CountIf},
	{Name: "COUNTIFS", Min: 2, Max: Variadic, Aware: true, Call: CountIfs},
	{Name: "AVERAGEIF", Min: 2, Max: 3, Aware: true, Call: AverageIf},
	{Name: "AVERAGEIFS", Min: 3, Max: Variadic, Aware: true, Call: AverageIfs},
	{Name: "MINIFS", Min: 3, Max: Variadic, Aware: true, Call: MinIfs},
	{Name: "MAXIFS", Min: 3, Max: Variadic, Aware: true, Call: MaxIfs},
}

// criterion is a condition written like ">=10", "<>done" or "a*". Without
// operator the value is tested for equality. Text is matched without regard
// to case and may use the wildcards of MATCH.
type criterion struct {
	op    string
	value value.ScalarValue
	re    *regexp.Regexp
}

var criterionOps = []string{"<=", ">=", "<>", "<", ">", "="}

func parseCriterion(v value.ScalarValue) criterion {
	t, ok := v.(value.Text)
	if !ok {
		return criterion{
			op:    "=",
			value: v,
		}
	}
	var (
		str = string(t)
		c   = criterion{op: "="}
	)
	for _, op := range criterionOps {
		if strings.HasPrefix(str, op) {
			c.op, str = op, str[len(op):]
			break
		}
	}
	c.value = value.Parse(str)
	if t, ok := c.value.(value.Text); ok && (c.op == "=" || c.op == "<>") {
		c.re = wildcard(string(t))
	}
	return c
}

func (c criterion) match(v value.ScalarValue) bool {
	if isBlank(c.value) {
		empty := isBlank(v) || v == value.Text("")
		switch c.op {
		case "=":
			return empty
		case "<>":
			return !empty
		default:
			return false
		}
	}
	if c.re != nil {
		_, ok := v.(value.Text)
		ok = ok && c.re.MatchString(v.String())
		if c.op == "<>" {
			return !ok
		}
		return ok
	}
	same := value.Rank(v) == value.Rank(c.value)
	switch c.op {
	case "=":
		return same && value.Equal(v, c.value)
	case "<>":
		return !same || !value.Equal(v, c.value)
	}
	if !same {
		return false
	}
	switch cmp := value.Compare(v, c.value); c.op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// selectCells gives the positions, in row order, of the cells matching every
// pair of range and criterion. All ranges must have the same number of
// cells.
func selectCells(pairs []value.Value) ([]int, value.Value) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return nil, value.ErrValue
	}
	var keep []bool
	for i := 0; i < len(pairs); i += 2 {
		var (
			list = toArray(pairs[i]).Values()
			crit = toScalar(pairs[i+1])
		)
		if e, ok := crit.(value.Error); ok {
			return nil, e
		}
		if keep == nil {
			keep = make([]bool, len(list))
			for j := range keep {
				keep[j] = true
			}
		}
		if len(list) != len(keep) {
			return nil, value.ErrValue
		}
		c := parseCriterion(crit)
		for j, v := range list {
			keep[j] = keep[j] && c.match(v)
		}
	}
	var res []int
	for i, ok := range keep {
		if ok {
			res = append(res, i)
		}
	}
	return res, nil
}

// selectNumbers gives the numbers of target at the selected positions. The
// first error met there is returned instead. When strict is set, target must
// have as many cells as the ranges of the criteria.
func selectNumbers(target value.Value, pairs []value.Value, strict bool) ([]float64, value.Value) {
	index, err := selectCells(pairs)
	if err != nil {
		return nil, err
	}
	var (
		list = toArray(target).Values()
		nums []float64
	)
	if strict && len(list) != len(toArray(pairs[0]).Values()) {
		return nil, value.ErrValue
	}
	for _, i := range index {
		if i >= len(list) {
			break
		}
		switch v := list[i].(type) {
		case value.Error:
			return nil, v
		case value.Float:
			nums = append(nums, float64(v))
		}
	}
	return nums, nil
}

func SumIf(args []value.Value) value.Value {
	target := args[0]
	if len(args) > 2 {
		target = args[2]
	}
	return sumOf(selectNumbers(target, args[:2], false))
}

func SumIfs(args []value.Value) value.Value {
	return sumOf(selectNumbers(args[0], args[1:], true))
}

func CountIf(args []value.Value) value.Value {
	return CountIfs(args)
}

func CountIfs(args []value.Value) value.Value {
	index, err := selectCells(args)
	if err != nil {
		return err
	}
	return value.Float(len(index))
}

func AverageIf(args []value.Value) value.Value {
	target := args[0]
	if len(args) > 2 {
		target = args[2]
	}
	return averageOf(selectNumbers(target, args[:2], false))
}

func AverageIfs(args []value.Value) value.Value {
	return averageOf(selectNumbers(args[0], args[1:], true))
}

func MinIfs(args []value.Value) value.Value {
	list, err := selectNumbers(args[0], args[1:], true)
	if err != nil {
		return err
	}
	return extremeOf(list, math.Min)
}

func MaxIfs(args []value.Value) value.Value {
	list, err := selectNumbers(args[0], args[1:], true)
	if err != nil {
		return err
	}
	return extremeOf(list, math.Max)
}

func sumOf(list []float64, err value.Value) value.Value {
	if err != nil {
		return err
	}
	var total float64
	for _, f := range list {
		total += f
	}
	return number(total)
}

func averageOf(list []float64, err value.Value) value.Value {
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

func extremeOf(list []float64, fn func(float64, float64) float64) value.Value {
	if len(list) == 0 {
		return value.Float(0)
	}
	res := list[0]
	for _, f := range list[1:] {
		res = fn(res, f)
	}
	return value.Float(res)
}
