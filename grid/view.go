package grid

import (
	"iter"
	"slices"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

type Cell struct {
	pos      layout.Position
	raw      string
	formula  *formula.Formula
	value    value.Value
	dirty    bool
	circular bool
	busy     bool
}

func createCell(pos layout.Position) *Cell {
	return &Cell{
		pos:   pos,
		value: value.Empty(),
	}
}

func (c *Cell) Position() layout.Position {
	return c.pos
}

// Formula gives the text of the formula, empty for a hardcoded cell.
func (c *Cell) Formula() string {
	return c.raw
}

func (c *Cell) Compiled() *formula.Formula {
	return c.formula
}

// Value is the cached value of the cell. It is only meaningful when the cell
// is not dirty.
func (c *Cell) Value() value.Value {
	return c.value
}

func (c *Cell) Dirty() bool {
	return c.dirty
}

// Circular reports whether the cell was selected to break a cycle.
func (c *Cell) Circular() bool {
	return c.circular
}

func (c *Cell) Hardcoded() bool {
	return c.formula == nil
}

func (w *Workbook) Cell(pos layout.Position) (*Cell, bool) {
	c, ok := w.cells[w.qualify(pos)]
	return c, ok
}

// Sheet gives the name of the sheet of the addresses given without sheet.
func (w *Workbook) Sheet() string {
	return w.config.Sheet
}

func (w *Workbook) Sheets() []string {
	var list []string
	for p := range w.cells {
		list = append(list, p.Sheet)
	}
	slices.Sort(list)
	return slices.Compact(list)
}

// Positions lists the cells of a sheet in row-major order. All the cells of
// the workbook are given when sheet is empty.
func (w *Workbook) Positions(sheet string) []layout.Position {
	var list []layout.Position
	for p := range w.cells {
		if sheet == "" || p.Sheet == sheet {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, layout.Position.Compare)
	return list
}

// Bounds gives the range going from A1 to the last line and the last column
// used by a sheet.
func (w *Workbook) Bounds(sheet string) (layout.Range, bool) {
	var (
		ends  = layout.Position{Sheet: sheet}
		found bool
	)
	for p := range w.cells {
		if p.Sheet != sheet {
			continue
		}
		found = true
		ends.Line = max(ends.Line, p.Line)
		ends.Column = max(ends.Column, p.Column)
	}
	if !found {
		return layout.Range{}, false
	}
	starts := layout.Position{
		Sheet:  sheet,
		Line:   1,
		Column: 1,
	}
	return layout.NewRange(starts, ends), true
}

// Rows evaluates the cells of a sheet and yields them line by line. Missing
// cells are blank.
func (w *Workbook) Rows(sheet string) iter.Seq2[[]value.ScalarValue, error] {
	return func(yield func([]value.ScalarValue, error) bool) {
		bounds, ok := w.Bounds(sheet)
		if !ok {
			return
		}
		for line := bounds.Starts.Line; line <= bounds.Ends.Line; line++ {
			row := make([]value.ScalarValue, 0, bounds.Width())
			for col := bounds.Starts.Column; col <= bounds.Ends.Column; col++ {
				pos := layout.Position{
					Sheet:  sheet,
					Line:   line,
					Column: col,
				}
				v, err := w.GetValue(pos)
				if err != nil {
					yield(nil, err)
					return
				}
				row = append(row, scalarOf(v))
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

func scalarOf(v value.Value) value.ScalarValue {
	switch v := v.(type) {
	case value.ScalarValue:
		return v
	case value.Array:
		if s := v.At(0, 0); s != nil {
			return s
		}
		return value.ErrValue
	default:
		return value.ErrValue
	}
}
