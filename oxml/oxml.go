package oxml

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

const (
	FormulaNormal = "normal"
	FormulaShared = "shared"
	FormulaArray  = "array"
)

const (
	TypeSharedStr = "s"
	TypeInlineStr = "inlineStr"
	TypeFormula   = "str"
	TypeDate      = "d"
	TypeError     = "e"
	TypeBool      = "b"
	TypeNumber    = "n"
)

var (
	ErrFile    = errors.New("invalid spreadsheet")
	ErrFound   = errors.New("not found")
	ErrFormula = errors.New("formula can not be loaded")
)

// Loader seeds a workbook with the sheets of an xlsx file. Formulas are
// loaded as formulas and recomputed by the workbook; the values cached in
// the file are only used for cells without formula, or, when Strict is not
// set, for formulas that can not be compiled.
type Loader struct {
	Strict bool

	reader *zip.Reader
	closer io.Closer
}

func Open(file string) (*Loader, error) {
	z, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	l := Loader{
		reader: &z.Reader,
		closer: z,
	}
	return &l, nil
}

func NewLoader(r io.ReaderAt, size int64) (*Loader, error) {
	z, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	l := Loader{
		reader: z,
	}
	return &l, nil
}

func (l *Loader) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Sheets gives the names of the sheets in the order of the workbook.
func (l *Loader) Sheets() ([]string, error) {
	rs := readFile(l.reader)
	var list []string
	for _, s := range rs.ReadSheets() {
		list = append(list, s.Name)
	}
	return list, rs.err
}

// ActiveSheet gives the name of the sheet selected when the file was saved.
func (l *Loader) ActiveSheet() (string, error) {
	rs := readFile(l.reader)
	for _, s := range rs.ReadSheets() {
		if s.Active {
			return s.Name, nil
		}
	}
	if rs.err == nil {
		rs.err = fmt.Errorf("%w: no sheet", ErrFound)
	}
	return "", rs.err
}

func (l *Loader) Load(s grid.Seeder) error {
	rs := readFile(l.reader)
	sheets := rs.ReadSheets()
	if rs.err != nil {
		return rs.err
	}
	for _, sh := range sheets {
		cells, err := rs.ReadCells(sh)
		if err != nil {
			return err
		}
		for _, c := range cells {
			if err := l.seed(s, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) seed(s grid.Seeder, c *Cell) error {
	if c.Formula != "" {
		err := s.SetFormula(c.Position, "="+c.Formula)
		if err == nil || l.Strict {
			if err != nil {
				err = fmt.Errorf("%w: %s: %w", ErrFormula, c.Position, err)
			}
			return err
		}
	}
	if c.Value == nil {
		return nil
	}
	return s.SetValue(c.Position, c.Value)
}

// Cell is a cell as stored in a worksheet.
type Cell struct {
	layout.Position
	Type    string
	Raw     string
	Value   value.ScalarValue
	Formula string

	shared string
	index  string
}

type SheetState int8

const (
	StateVisible SheetState = 1 << iota
	StateHidden
	StateVeryHidden
)

func (s *SheetState) UnmarshalText(str []byte) error {
	switch string(str) {
	case "", "visible":
		*s = StateVisible
	case "hidden":
		*s = StateHidden
	case "veryHidden":
		*s = StateVeryHidden
	default:
		return fmt.Errorf("%s: invalid sheet state", str)
	}
	return nil
}

type Sheet struct {
	Id     string
	Name   string
	Index  int
	State  SheetState
	Active bool

	target string
}

func (s Sheet) Hidden() bool {
	return s.State != StateVisible
}

// OpenFile loads every sheet of the xlsx file into a new workbook.
func OpenFile(file string, options ...grid.Option) (*grid.Workbook, error) {
	l, err := Open(file)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if name, err := l.ActiveSheet(); err == nil {
		options = append([]grid.Option{grid.WithSheet(name)}, options...)
	}
	wb := grid.New(options...)
	if err := wb.Load(l); err != nil {
		return nil, err
	}
	return wb, nil
}
