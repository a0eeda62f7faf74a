package oxml

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	sax "github.com/midbel/codecs/xml"
	"github.com/midbel/sheetcalc/formula"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

type reader struct {
	reader *zip.Reader
	base   string
	shared []string

	err error
}

func readFile(z *zip.Reader) *reader {
	return &reader{
		reader: z,
		base:   wbBaseDir,
	}
}

// ReadSheets reads the list of sheets of the workbook and where their
// content is stored.
func (r *reader) ReadSheets() []Sheet {
	addr := r.readWorkbookLocation()
	if r.invalid() {
		return nil
	}
	r.base = path.Dir(addr)

	var root xmlWorkbook
	if err := r.decodeXML(addr, &root); err != nil {
		return nil
	}
	relations := r.readRelationsForSheets()
	if r.invalid() {
		return nil
	}
	var active int
	if len(root.Views) > 0 {
		active = root.Views[0].ActiveTab
	}
	var list []Sheet
	for i, xs := range root.Sheets {
		ix := slices.IndexFunc(relations, func(r xmlRelation) bool {
			return r.Id == xs.Id
		})
		if ix < 0 {
			r.err = fmt.Errorf("%w: no content for sheet %s", ErrFile, xs.Name)
			return nil
		}
		// chartsheets have no cells
		if t := relations[ix].Type; t != typeSheetUrl && !strings.HasSuffix(t, "/worksheet") {
			continue
		}
		s := Sheet{
			Id:     xs.Id,
			Name:   xs.Name,
			Index:  xs.Index,
			State:  xs.State,
			Active: i == active,
			target: relations[ix].Target,
		}
		if s.State == 0 {
			s.State = StateVisible
		}
		list = append(list, s)
	}
	return list
}

// ReadCells reads the cells of a sheet. The formulas of cells sharing the
// formula of another cell are rebuilt from the formula of that cell.
func (r *reader) ReadCells(sheet Sheet) ([]*Cell, error) {
	r.readSharedStrings()
	if r.invalid() {
		return nil, r.err
	}
	z, err := r.openFile(r.resolve(sheet.target))
	if err != nil {
		return nil, err
	}
	defer z.Close()

	rs := readSheet(z, sheet.Name, r.shared)
	if err := rs.Read(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, sheet.Name, err)
	}
	if err := rs.expandShared(); err != nil {
		return nil, err
	}
	return rs.cells, nil
}

func (r *reader) readSharedStrings() {
	if r.invalid() || r.shared != nil {
		return
	}
	name := r.resolve("sharedStrings.xml")
	if !r.exists(name) {
		r.shared = []string{}
		return
	}
	var root xmlSharedStrings
	if err := r.decodeXML(name, &root); err != nil {
		return
	}
	r.shared = make([]string, 0, len(root.Values))
	for _, s := range root.Values {
		r.shared = append(r.shared, s.String())
	}
}

func (r *reader) readWorkbookLocation() string {
	if r.invalid() {
		return ""
	}
	var root xmlRelations
	if err := r.decodeXML("_rels/.rels", &root); err != nil {
		return ""
	}
	ix := slices.IndexFunc(root.Relations, func(r xmlRelation) bool {
		return r.Type == typeDocUrl || strings.HasSuffix(r.Type, "relationships/officeDocument")
	})
	if ix < 0 {
		r.err = fmt.Errorf("%w: workbook not found", ErrFile)
		return ""
	}
	return strings.TrimPrefix(root.Relations[ix].Target, "/")
}

func (r *reader) readRelationsForSheets() []xmlRelation {
	if r.invalid() {
		return nil
	}
	var root xmlRelations
	if err := r.decodeXML(r.resolve("_rels/workbook.xml.rels"), &root); err != nil {
		return nil
	}
	return root.Relations
}

func (r *reader) decodeXML(name string, ptr any) error {
	if r.invalid() {
		return r.err
	}
	rs, err := r.openFile(name)
	if err != nil {
		r.err = err
		return r.err
	}
	defer rs.Close()
	if err := xml.NewDecoder(rs).Decode(ptr); err != nil {
		r.err = fmt.Errorf("%w: fail to read data from %s", ErrFile, name)
	}
	return r.err
}

func (r *reader) exists(name string) bool {
	return slices.ContainsFunc(r.reader.File, func(f *zip.File) bool {
		return f.Name == name
	})
}

func (r *reader) openFile(name string) (io.ReadCloser, error) {
	ix := slices.IndexFunc(r.reader.File, func(f *zip.File) bool {
		return f.Name == name
	})
	if ix < 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrFile, name, ErrFound)
	}
	return r.reader.File[ix].Open()
}

// resolve gives the location of a part in the archive. Relative names are
// relative to the directory of the workbook.
func (r *reader) resolve(name string) string {
	if strings.HasPrefix(name, "/") {
		return strings.TrimPrefix(name, "/")
	}
	return path.Join(r.base, name)
}

func (r *reader) invalid() bool {
	return r.err != nil
}

type sheetReader struct {
	reader *sax.Reader
	sheet  string
	shared []string
	cells  []*Cell
}

func readSheet(r io.Reader, sheet string, shared []string) *sheetReader {
	return &sheetReader{
		reader: sax.NewReader(r),
		sheet:  sheet,
		shared: shared,
	}
}

func (r *sheetReader) Read() error {
	r.reader.Element(sax.LocalName("c"), r.onCell)
	return r.reader.Start()
}

func (r *sheetReader) onCell(rs *sax.Reader, el sax.E) error {
	pos, err := layout.ParsePosition(el.GetAttributeValue("r"))
	if err != nil {
		return err
	}
	pos.Sheet = r.sheet
	cell := &Cell{
		Position: pos,
		Type:     el.GetAttributeValue("t"),
	}
	r.cells = append(r.cells, cell)

	if cell.Type == TypeInlineStr {
		rs.Element(sax.LocalName("is"), func(rs *sax.Reader, _ sax.E) error {
			rs.Element(sax.LocalName("t"), func(rs *sax.Reader, _ sax.E) error {
				rs.OnText(func(_ *sax.Reader, str string) error {
					return r.parseCellValue(cell, str)
				})
				return nil
			})
			return nil
		})
	} else {
		rs.Element(sax.LocalName("v"), func(rs *sax.Reader, _ sax.E) error {
			rs.OnText(func(_ *sax.Reader, str string) error {
				return r.parseCellValue(cell, str)
			})
			return nil
		})
	}
	rs.Element(sax.LocalName("f"), func(rs *sax.Reader, el sax.E) error {
		return r.parseCellFormula(cell, el, rs)
	})
	return nil
}

func (r *sheetReader) parseCellValue(cell *Cell, str string) error {
	cell.Raw = str
	switch cell.Type {
	case TypeSharedStr:
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid shared string index: %s", str)
		}
		if n < 0 || n >= len(r.shared) {
			return fmt.Errorf("shared string index out of bounds")
		}
		cell.Value = value.Text(r.shared[n])
	case TypeInlineStr, TypeFormula:
		cell.Value = value.Text(str)
	case TypeDate:
		when, err := ParseDate(str)
		if err != nil {
			cell.Value = value.Text(str)
			break
		}
		cell.Value = value.Float(Serial(when))
	case TypeBool:
		cell.Value = value.Boolean(str == "1" || strings.EqualFold(str, "true"))
	case TypeError:
		e, ok := value.ParseError(str)
		if !ok {
			e = value.ErrValue
		}
		cell.Value = e
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			cell.Value = value.Text(str)
		} else {
			cell.Value = value.Float(n)
		}
	}
	return nil
}

func (r *sheetReader) parseCellFormula(cell *Cell, el sax.E, rs *sax.Reader) error {
	cell.shared = el.GetAttributeValue("t")
	cell.index = el.GetAttributeValue("si")
	if el.SelfClosed {
		return nil
	}
	rs.OnText(func(_ *sax.Reader, str string) error {
		cell.Formula = str
		return nil
	})
	return nil
}

// expandShared gives to the cells sharing a formula the formula of the cell
// where it is defined, shifted by the distance between both cells.
func (r *sheetReader) expandShared() error {
	anchors := make(map[string]*Cell)
	for _, c := range r.cells {
		if c.shared == FormulaShared && c.Formula != "" {
			anchors[c.index] = c
		}
	}
	for _, c := range r.cells {
		if c.shared != FormulaShared || c.Formula != "" {
			continue
		}
		a, ok := anchors[c.index]
		if !ok {
			return fmt.Errorf("%w: %s: shared formula %s not defined", ErrFile, c.Position, c.index)
		}
		text, err := formula.Shift(a.Formula, c.Line-a.Line, c.Column-a.Column)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFormula, c.Position, err)
		}
		c.Formula = strings.TrimPrefix(text, "=")
	}
	return nil
}
