package layout

import (
	"cmp"
	"strconv"
	"strings"
)

const (
	MaxLines   = 1 << 20
	MaxColumns = 1 << 14
)

const DefaultSheet = "Sheet1"

type Position struct {
	Sheet  string
	Line   int64
	Column int64
}

// ParsePosition parses a single cell address, optionally qualified by a
// sheet name. Absolute markers are accepted and discarded.
func ParsePosition(addr string) (Position, error) {
	sheet, cell, err := SplitSheet(addr)
	if err != nil {
		return Position{}, err
	}
	ref, err := parseCell(cell)
	if err != nil {
		return Position{}, &ReferenceError{
			Ref:    addr,
			Reason: err.Error(),
		}
	}
	pos := ref.Position()
	pos.Sheet = sheet
	return pos, nil
}

func (p Position) Equal(other Position) bool {
	return p == other
}

// Compare orders positions by sheet, then line, then column.
func (p Position) Compare(other Position) int {
	if c := strings.Compare(p.Sheet, other.Sheet); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, other.Column)
}

func (p Position) Valid() bool {
	return p.Line >= 1 && p.Line <= MaxLines && p.Column >= 1 && p.Column <= MaxColumns
}

// Qualify returns p with its sheet set to sheet when p has none.
func (p Position) Qualify(sheet string) Position {
	if p.Sheet == "" {
		p.Sheet = sheet
	}
	return p
}

// Addr gives the cell address without its sheet.
func (p Position) Addr() string {
	return indexToString(p.Column) + strconv.FormatInt(p.Line, 10)
}

func (p Position) String() string {
	if p.Sheet == "" {
		return p.Addr()
	}
	return FormatSheet(p.Sheet) + "!" + p.Addr()
}

// FormatSheet quotes a sheet name when it could not be read back as is.
func FormatSheet(name string) string {
	if name == "" {
		return name
	}
	plain := !isDigit(rune(name[0]))
	for _, c := range name {
		if !isLetter(c) && !isDigit(c) && c != '_' && c != '.' {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ParseIndex reads the column letters at the start of str and returns the
// column index with the number of bytes consumed.
func ParseIndex(str string) (int64, int) {
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		index = index*26 + int64(str[offset]-delta+1)
		offset++
		if index > MaxColumns {
			break
		}
	}
	return index, offset
}

// ColumnName gives the letters of the given column index.
func ColumnName(ix int64) string {
	return indexToString(ix)
}

func indexToString(ix int64) string {
	var result []byte
	for ix > 0 {
		ix--
		result = append(result, byte('A'+ix%26))
		ix /= 26
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
