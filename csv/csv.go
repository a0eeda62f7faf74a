package csv

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// Loader reads the cells of a single sheet from a csv stream. Fields
// starting with = are formulas, other fields are parsed as literals and
// empty fields are skipped.
type Loader struct {
	Sheet string
	Comma byte

	inner io.Reader
}

func NewLoader(r io.Reader, sheet string) *Loader {
	if sheet == "" {
		sheet = layout.DefaultSheet
	}
	return &Loader{
		Sheet: sheet,
		Comma: ',',
		inner: r,
	}
}

func (l *Loader) Load(s grid.Seeder) error {
	rs := NewReader(l.inner)
	rs.Comma = l.Comma
	for line := int64(1); ; line++ {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		for col, f := range fields {
			if f == "" {
				continue
			}
			pos := layout.Position{
				Sheet:  l.Sheet,
				Line:   line,
				Column: int64(col) + 1,
			}
			if strings.HasPrefix(f, "=") && len(f) > 1 {
				err = s.SetFormula(pos, f)
			} else {
				err = s.SetValue(pos, value.Parse(f))
			}
			if err != nil {
				return &ParseError{Line: rs.Line(), Err: err}
			}
		}
	}
	return nil
}

// Open loads the csv file into a new workbook.
func Open(file, sheet string, comma byte, options ...grid.Option) (*grid.Workbook, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	loader := NewLoader(r, sheet)
	if comma != 0 {
		loader.Comma = comma
	}
	options = append(options, grid.WithSheet(loader.Sheet))
	wb := grid.New(options...)
	if err := wb.Load(loader); err != nil {
		return nil, err
	}
	return wb, nil
}

// Export writes the evaluated values of a sheet.
func Export(w io.Writer, wb *grid.Workbook, sheet string, comma byte) error {
	ws := NewWriter(w)
	if comma != 0 {
		ws.Comma = comma
	}
	for row, err := range wb.Rows(sheet) {
		if err != nil {
			return err
		}
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = v.String()
		}
		if err := ws.Write(fields); err != nil {
			return err
		}
	}
	return ws.Flush()
}
