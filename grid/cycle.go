package grid

import (
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// prepare breaks the cycles that the pending mutations may have created or
// removed. In every cycle found among the cells reachable from the
// mutations, the lowest cell becomes a sentinel: it holds #CIRC! and is
// never computed until a later mutation reaches it again.
func (w *Workbook) prepare() {
	if len(w.pending) == 0 {
		return
	}
	reach := w.graph.Reachable(w.pending)
	w.pending = w.pending[:0]

	for _, p := range reach {
		c, ok := w.cells[p]
		if !ok || !c.circular {
			continue
		}
		c.circular = false
		c.dirty = c.formula != nil
	}
	for _, p := range w.graph.BreakCycles(reach) {
		c, ok := w.cells[p]
		if !ok {
			continue
		}
		c.circular = true
		c.dirty = false
		c.value = value.ErrCircular
		w.config.Logger.Debug("circular reference", "cell", p.String())
	}
}

// Circulars lists the cells currently used to break cycles.
func (w *Workbook) Circulars() []layout.Position {
	w.prepare()
	var list []layout.Position
	for _, p := range w.Positions("") {
		if w.cells[p].circular {
			list = append(list, p)
		}
	}
	return list
}
