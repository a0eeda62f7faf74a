package value

import (
	"strings"

	"github.com/midbel/sheetcalc/layout"
)

type Array struct {
	Data [][]ScalarValue
}

func NewArray(data [][]ScalarValue) Array {
	return Array{
		Data: data,
	}
}

// Vector builds a single row array.
func Vector(list []ScalarValue) Array {
	return NewArray([][]ScalarValue{list})
}

func (Array) Type() string {
	return TypeArray
}

func (Array) Kind() ValueKind {
	return KindArray
}

func (a Array) String() string {
	var str strings.Builder
	str.WriteRune('{')
	for i, row := range a.Data {
		if i > 0 {
			str.WriteRune(';')
		}
		for j, v := range row {
			if j > 0 {
				str.WriteRune(',')
			}
			if t, ok := v.(Text); ok {
				str.WriteRune('"')
				str.WriteString(strings.ReplaceAll(string(t), `"`, `""`))
				str.WriteRune('"')
				continue
			}
			str.WriteString(v.String())
		}
	}
	str.WriteRune('}')
	return str.String()
}

func (a Array) Dimension() layout.Dimension {
	var (
		d layout.Dimension
		n = len(a.Data)
	)
	if n > 0 {
		d.Lines = int64(n)
		d.Columns = int64(len(a.Data[0]))
	}
	return d
}

func (a Array) At(row, col int) ScalarValue {
	if row < 0 || row >= len(a.Data) {
		return nil
	}
	v := a.Data[row]
	if col < 0 || col >= len(v) {
		return nil
	}
	return v[col]
}

// Values returns the elements of the array in row-major order.
func (a Array) Values() []ScalarValue {
	var list []ScalarValue
	for _, row := range a.Data {
		list = append(list, row...)
	}
	return list
}

// Vector reports whether the array has a single row or a single column.
func (a Array) Vector() bool {
	dim := a.Dimension()
	return dim.Lines == 1 || dim.Columns == 1
}

func (a Array) Row(ix int) Array {
	if ix < 0 || ix >= len(a.Data) {
		return NewArray(nil)
	}
	return Vector(a.Data[ix])
}

func (a Array) Column(ix int) Array {
	var data [][]ScalarValue
	for _, row := range a.Data {
		if ix < 0 || ix >= len(row) {
			return NewArray(nil)
		}
		data = append(data, []ScalarValue{row[ix]})
	}
	return NewArray(data)
}

func (a Array) Apply(do func(ScalarValue) ScalarValue) Array {
	data := make([][]ScalarValue, len(a.Data))
	for i, row := range a.Data {
		data[i] = make([]ScalarValue, len(row))
		for j, v := range row {
			data[i][j] = do(v)
		}
	}
	return NewArray(data)
}

// ApplyArray combines two arrays element-wise. A dimension of size one is
// broadcast; positions that exist in only one operand produce #N/A.
func (a Array) ApplyArray(other Array, do func(ScalarValue, ScalarValue) ScalarValue) Array {
	var (
		dleft  = a.Dimension()
		dright = other.Dimension()
		dim    = dleft.Max(dright)
		data   = make([][]ScalarValue, dim.Lines)
	)
	for i := range data {
		data[i] = make([]ScalarValue, dim.Columns)
		for j := range data[i] {
			var (
				left  = broadcastAt(a, dleft, i, j)
				right = broadcastAt(other, dright, i, j)
			)
			if left == nil || right == nil {
				data[i][j] = ErrNA
				continue
			}
			data[i][j] = do(left, right)
		}
	}
	return NewArray(data)
}

func broadcastAt(a Array, dim layout.Dimension, row, col int) ScalarValue {
	if dim.Lines == 1 {
		row = 0
	}
	if dim.Columns == 1 {
		col = 0
	}
	return a.At(row, col)
}
