package grid

import (
	"fmt"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/formula/builtins"
	"github.com/midbel/sheetcalc/formula/op"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var binaries = map[op.Op]func(value.Value, value.Value) value.Value{
	op.Add:    value.Add,
	op.Sub:    value.Sub,
	op.Mul:    value.Mul,
	op.Div:    value.Div,
	op.Pow:    value.Pow,
	op.Concat: value.Concat,
	op.Eq:     value.Eq,
	op.Ne:     value.Ne,
	op.Lt:     value.Lt,
	op.Le:     value.Le,
	op.Gt:     value.Gt,
	op.Ge:     value.Ge,
}

var unaries = map[op.Op]func(value.Value) value.Value{
	op.Neg:     value.Negate,
	op.Percent: value.Percent,
}

// rangeValue is a value read from cells. It remembers the ranges it was
// read from so that the reference operators can combine them.
type rangeValue struct {
	value  value.Value
	ranges []layout.Range
}

func literalValue(v value.Value) rangeValue {
	return rangeValue{
		value: v,
	}
}

func (r rangeValue) reference() bool {
	return len(r.ranges) > 0
}

func (w *Workbook) exec(at layout.Position, nodes []formula.Node) (value.Value, error) {
	var stack []rangeValue
	for _, n := range nodes {
		switch n := n.(type) {
		case formula.Literal:
			stack = append(stack, literalValue(n.Value))
		case formula.Reference:
			stack = append(stack, w.load(n.Range))
		case formula.Unary:
			if len(stack) < 1 {
				return nil, fmt.Errorf("%w: missing operand for %s", ErrStack, op.Symbol(n.Op))
			}
			z := len(stack) - 1
			stack[z] = literalValue(evalUnary(n.Op, stack[z].value))
		case formula.Binary:
			if len(stack) < 2 {
				return nil, fmt.Errorf("%w: missing operands for %q", ErrStack, op.Symbol(n.Op))
			}
			z := len(stack) - 2
			stack[z] = w.evalBinary(n.Op, stack[z], stack[z+1])
			stack = stack[:z+1]
		case formula.Call:
			if len(stack) < n.Arity {
				return nil, fmt.Errorf("%w: missing arguments for %s", ErrStack, n.Name)
			}
			z := len(stack) - n.Arity
			res := w.evalCall(at, n, stack[z:])
			stack = append(stack[:z], res)
		default:
			return nil, fmt.Errorf("%w: unexpected instruction %s", ErrStack, n)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d values left", ErrStack, len(stack))
	}
	return stack[0].value, nil
}

func evalUnary(oper op.Op, val value.Value) value.Value {
	fn, ok := unaries[oper]
	if !ok {
		return value.ErrValue
	}
	return fn(val)
}

func (w *Workbook) evalBinary(oper op.Op, left, right rangeValue) rangeValue {
	if op.IsReference(oper) {
		return w.evalReference(oper, left, right)
	}
	fn, ok := binaries[oper]
	if !ok {
		return literalValue(value.ErrValue)
	}
	return literalValue(fn(left.value, right.value))
}

func (w *Workbook) evalReference(oper op.Op, left, right rangeValue) rangeValue {
	if !left.reference() || !right.reference() {
		for _, v := range []rangeValue{left, right} {
			if e, ok := v.value.(value.Error); ok && !v.reference() {
				return literalValue(e)
			}
		}
		return literalValue(value.ErrValue)
	}
	switch oper {
	case op.RangeRef:
		if len(left.ranges) != 1 || len(right.ranges) != 1 {
			return literalValue(value.ErrValue)
		}
		box, ok := formula.BoundingRange(left.ranges[0], right.ranges[0])
		if !ok || box.Size() > w.config.MaxCells {
			return literalValue(value.ErrRef)
		}
		return w.load(box)
	case op.Intersect:
		var list []layout.Range
		for _, a := range left.ranges {
			for _, b := range right.ranges {
				if x, ok := a.Intersect(b); ok {
					list = append(list, x)
				}
			}
		}
		if len(list) == 0 {
			return literalValue(value.ErrNull)
		}
		return w.load(list...)
	case op.Union:
		list := append(append([]layout.Range{}, left.ranges...), right.ranges...)
		return w.load(list...)
	default:
		return literalValue(value.ErrValue)
	}
}

// evalCall gives the result of a function. The result keeps the ranges
// selected by the functions returning references, like INDEX, so that it
// can be an operand of the reference operators.
func (w *Workbook) evalCall(at layout.Position, call formula.Call, args []rangeValue) rangeValue {
	fn, ok := w.config.Library.Resolve(call.Name)
	if !ok {
		return literalValue(value.ErrName)
	}
	if err := fn.Check(len(args)); err != nil {
		w.config.Logger.Debug("invalid call", "function", call.Name, "err", err)
		return literalValue(value.ErrValue)
	}
	list := make([]builtins.Arg, 0, len(args))
	for _, a := range args {
		list = append(list, builtins.Arg{
			Value:  a.value,
			Ranges: a.ranges,
		})
	}
	res := fn.Apply(at, list)
	return rangeValue{
		value:  res.Value,
		ranges: res.Ranges,
	}
}

// load reads the values of the cells covered by the ranges. A single cell
// gives its own value, a single range gives an array with the shape of the
// range and several ranges give one row made of all their cells.
func (w *Workbook) load(ranges ...layout.Range) rangeValue {
	res := rangeValue{
		ranges: ranges,
	}
	if len(ranges) == 1 && ranges[0].Single() {
		res.value = w.read(ranges[0].Starts)
		return res
	}
	if len(ranges) == 1 {
		var (
			rg   = ranges[0]
			data = make([][]value.ScalarValue, 0, rg.Height())
		)
		for line := rg.Starts.Line; line <= rg.Ends.Line; line++ {
			row := make([]value.ScalarValue, 0, rg.Width())
			for col := rg.Starts.Column; col <= rg.Ends.Column; col++ {
				pos := layout.Position{
					Sheet:  rg.Sheet(),
					Line:   line,
					Column: col,
				}
				row = append(row, scalarOf(w.read(pos)))
			}
			data = append(data, row)
		}
		res.value = value.NewArray(data)
		return res
	}
	var list []value.ScalarValue
	for _, rg := range ranges {
		for _, p := range rg.Cells() {
			list = append(list, scalarOf(w.read(p)))
		}
	}
	res.value = value.Vector(list)
	return res
}

// read gives the value of a cell. Precedents are computed before the
// formulas reading them so a dirty cell is only found here for a cell
// already being computed.
func (w *Workbook) read(pos layout.Position) value.Value {
	c, ok := w.cells[pos]
	if !ok {
		return value.Empty()
	}
	if !c.dirty {
		return c.value
	}
	if c.busy {
		return value.ErrCircular
	}
	if err := w.evaluate(pos); err != nil {
		w.config.Logger.Error("cell can not be computed", "cell", pos.String(), "err", err)
		return value.ErrValue
	}
	return c.value
}
