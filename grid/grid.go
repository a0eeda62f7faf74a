package grid

import (
	"errors"

	"github.com/midbel/sheetcalc/formula/builtins"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var (
	ErrUndefined = errors.New("undefined cell")
	ErrStack     = errors.New("invalid evaluation stack")
	ErrLoad      = errors.New("workbook can not be loaded")
)

// Library resolves the functions called by formulas.
type Library interface {
	Resolve(name string) (builtins.Func, bool)
}

// Seeder receives the content of a workbook from a Loader.
type Seeder interface {
	SetFormula(layout.Position, string) error
	SetValue(layout.Position, value.ScalarValue) error
}

// Loader knows how to read cells from a file format.
type Loader interface {
	Load(Seeder) error
}
