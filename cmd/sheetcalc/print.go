package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/fatih/color"
	"github.com/midbel/sheetcalc/format"
	"github.com/midbel/sheetcalc/grid"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true)
	numberStyle = cellStyle.Align(lipgloss.Right)

	errorColor    = color.New(color.FgRed)
	circularColor = color.New(color.FgYellow)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return numberStyle
			}
			return cellStyle
		})
}

// printSheet prints the evaluated values of a sheet as a grid with the
// letters of the columns and the numbers of the lines.
func printSheet(w io.Writer, wb *grid.Workbook, sheet string, vf *format.ValueFormatter) error {
	bounds, ok := wb.Bounds(sheet)
	if !ok {
		return nil
	}
	headers := []string{layout.FormatSheet(sheet)}
	for col := bounds.Starts.Column; col <= bounds.Ends.Column; col++ {
		headers = append(headers, layout.ColumnName(col))
	}
	var (
		tbl  = newTable(headers...)
		lino int64
	)
	for row, err := range wb.Rows(sheet) {
		if err != nil {
			return err
		}
		lino++
		line := []string{strconv.FormatInt(lino, 10)}
		for _, v := range row {
			line = append(line, formatValue(vf, v))
		}
		tbl.Row(line...)
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func printCells(w io.Writer, wb *grid.Workbook, list []layout.Position, vf *format.ValueFormatter) error {
	tbl := newTable("cell", "formula", "value")
	for _, pos := range list {
		val, err := wb.GetValue(pos)
		if err != nil {
			return err
		}
		var text string
		if cell, ok := wb.Cell(pos); ok {
			text = cell.Formula()
		}
		tbl.Row(pos.String(), text, formatValue(vf, val))
	}
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func formatValue(vf *format.ValueFormatter, v value.Value) string {
	if v == nil {
		return ""
	}
	str := v.String()
	if s, ok := v.(value.ScalarValue); ok {
		if f, err := vf.Format(s); err == nil {
			str = f
		}
	}
	if value.IsError(v) {
		if str == value.ErrCircular.String() {
			return circularColor.Sprint(str)
		}
		return errorColor.Sprint(str)
	}
	return str
}

func reportCirculars(wb *grid.Workbook) {
	list := wb.Circulars()
	if len(list) == 0 {
		return
	}
	circularColor.Fprintf(color.Error, "circular references broken at %s\n", joinPositions(list))
}

func joinPositions(list []layout.Position) string {
	if len(list) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range list {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

func uniquePositions(list []layout.Position) []layout.Position {
	list = slices.Clone(list)
	slices.SortFunc(list, layout.Position.Compare)
	return slices.CompactFunc(list, layout.Position.Equal)
}
