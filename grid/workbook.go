package grid

import (
	"fmt"
	"slices"

	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/internal/ds"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// Workbook holds the cells of one or more sheets and the graph of the
// dependencies between them. Values of formula cells are computed lazily:
// a mutation only marks the cells depending on it as dirty.
//
// A Workbook is not safe for concurrent use.
type Workbook struct {
	cells    map[layout.Position]*Cell
	graph    *ds.Graph[layout.Position]
	pending  []layout.Position
	compiler formula.Compiler
	config   Config
	evals    int
}

func New(options ...Option) *Workbook {
	cfg := DefaultConfig()
	for _, o := range options {
		o(&cfg)
	}
	if cfg.Sheet == "" {
		cfg.Sheet = layout.DefaultSheet
	}
	return &Workbook{
		cells: make(map[layout.Position]*Cell),
		graph: ds.NewGraph(layout.Position.Compare),
		compiler: formula.Compiler{
			MaxCells: cfg.MaxCells,
		},
		config: cfg,
	}
}

// Load seeds the workbook with the cells given by loader.
func (w *Workbook) Load(loader Loader) error {
	if err := loader.Load(w); err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return nil
}

// SetFormula compiles text and makes it the formula of the cell at pos. The
// cell and every cell depending on it become dirty; nothing is computed
// unless the workbook is eager.
func (w *Workbook) SetFormula(pos layout.Position, text string) error {
	pos = w.qualify(pos)
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", layout.ErrReference, pos)
	}
	f, err := w.compiler.Compile(text, pos.Sheet)
	if err != nil {
		return err
	}
	w.config.Logger.Debug("formula compiled", "cell", pos.String(), "formula", text, "precedents", len(f.Precedents))

	cell := w.ensure(pos)
	cell.raw = text
	cell.formula = f
	cell.dirty = true
	cell.circular = false
	for _, p := range f.Precedents {
		w.ensure(p)
	}
	w.graph.Replace(pos, f.Precedents)
	return w.touch(pos)
}

// SetValue makes the cell at pos a hardcoded cell holding val. Every cell
// depending on it becomes dirty.
func (w *Workbook) SetValue(pos layout.Position, val value.ScalarValue) error {
	pos = w.qualify(pos)
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", layout.ErrReference, pos)
	}
	if val == nil {
		val = value.Empty()
	}
	cell := w.ensure(pos)
	cell.raw = ""
	cell.formula = nil
	cell.value = val
	cell.dirty = false
	cell.circular = false
	w.graph.Replace(pos, nil)
	return w.touch(pos)
}

// GetValue returns the value of the cell at pos, computing it if needed. A
// cell that does not exist reads as blank.
func (w *Workbook) GetValue(pos layout.Position) (value.Value, error) {
	pos = w.qualify(pos)
	if _, ok := w.cells[pos]; !ok {
		return value.Empty(), nil
	}
	return w.Evaluate(pos)
}

// Evaluate returns the value of the cell at pos. Dirty precedents are
// computed first, then the cell itself. A clean cell is returned as is.
func (w *Workbook) Evaluate(pos layout.Position) (value.Value, error) {
	pos = w.qualify(pos)
	cell, ok := w.cells[pos]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefined, pos)
	}
	w.prepare()
	if !cell.dirty {
		return cell.value, nil
	}
	if err := w.evaluate(pos); err != nil {
		return nil, err
	}
	return cell.value, nil
}

// Recalculate computes every dirty cell of the workbook.
func (w *Workbook) Recalculate() error {
	w.prepare()
	var list []layout.Position
	for p, c := range w.cells {
		if c.dirty {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, layout.Position.Compare)
	w.config.Logger.Debug("recalculation", "dirty", len(list))
	for _, p := range list {
		if !w.cells[p].dirty {
			continue
		}
		if err := w.evaluate(p); err != nil {
			return err
		}
	}
	return nil
}

// DirtyClosure lists the cells that depend directly or not on pos, in the
// order a breadth first walk of the dependents reaches them.
func (w *Workbook) DirtyClosure(pos layout.Position) []layout.Position {
	return w.graph.Closure(w.qualify(pos))
}

func (w *Workbook) Precedents(pos layout.Position) []layout.Position {
	return w.graph.Precedents(w.qualify(pos))
}

func (w *Workbook) Dependents(pos layout.Position) []layout.Position {
	return w.graph.Dependents(w.qualify(pos))
}

// Evaluations counts the formulas computed since the workbook was created.
func (w *Workbook) Evaluations() int {
	return w.evals
}

func (w *Workbook) touch(pos layout.Position) error {
	var count int
	for _, p := range w.graph.Closure(pos) {
		c, ok := w.cells[p]
		if !ok || c.formula == nil {
			continue
		}
		c.dirty = true
		count++
	}
	w.pending = append(w.pending, pos)
	w.config.Logger.Debug("cells marked dirty", "cell", pos.String(), "count", count)
	if w.config.Eager {
		return w.Recalculate()
	}
	return nil
}

// evaluate computes pos after its dirty precedents, walking the graph
// without recursion.
func (w *Workbook) evaluate(pos layout.Position) error {
	dirty := func(p layout.Position) bool {
		c, ok := w.cells[p]
		return ok && c.dirty
	}
	for _, p := range w.graph.PostOrder(pos, dirty) {
		if err := w.compute(w.cells[p]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) compute(c *Cell) error {
	if !c.dirty || c.busy {
		return nil
	}
	if c.formula == nil {
		c.dirty = false
		return nil
	}
	c.busy = true
	defer func() {
		c.busy = false
	}()

	w.evals++
	res, err := w.exec(c.pos, c.formula.Nodes)
	if err != nil {
		return fmt.Errorf("%s: %w", c.pos, err)
	}
	if _, ok := res.(value.Blank); ok {
		res = value.Float(0)
	}
	c.value = res
	c.dirty = false
	return nil
}

func (w *Workbook) ensure(pos layout.Position) *Cell {
	c, ok := w.cells[pos]
	if !ok {
		c = createCell(pos)
		w.cells[pos] = c
	}
	return c
}

func (w *Workbook) qualify(pos layout.Position) layout.Position {
	return pos.Qualify(w.config.Sheet)
}
