package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrReference = errors.New("invalid reference")

type ReferenceError struct {
	Ref    string
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrReference, e.Ref, e.Reason)
}

func (e *ReferenceError) Unwrap() error {
	return ErrReference
}

func referenceError(ref, reason string) error {
	return &ReferenceError{
		Ref:    ref,
		Reason: reason,
	}
}

// Reference is a resolved cell or range reference. Text keeps the form it
// was written in.
type Reference struct {
	Text  string
	Range Range
}

func (r Reference) Single() bool {
	return r.Range.Single()
}

func (r Reference) Cells() []Position {
	return r.Range.Cells()
}

// ParseReference resolves a cell (A1, $A$1) or range (A1:B2) reference. A
// reference without sheet belongs to sheet.
func ParseReference(text, sheet string) (Reference, error) {
	ref := Reference{
		Text: text,
	}
	parts := splitRange(text)
	if len(parts) == 0 || len(parts) > 2 {
		return ref, referenceError(text, "expected cell or range")
	}
	var corners []Position
	for i, str := range parts {
		name, addr, err := SplitSheet(str)
		if err != nil {
			return ref, err
		}
		if i > 0 && name != "" && name != corners[0].Sheet {
			return ref, referenceError(text, "range spans multiple sheets")
		}
		cell, err := parseCell(addr)
		if err != nil {
			return ref, referenceError(text, err.Error())
		}
		pos := cell.Position()
		pos.Sheet = name
		if i == 0 {
			pos = pos.Qualify(sheet)
		} else {
			pos.Sheet = corners[0].Sheet
		}
		corners = append(corners, pos)
	}
	if len(corners) == 1 {
		ref.Range = SingleRange(corners[0])
	} else {
		ref.Range = NewRange(corners[0], corners[1])
	}
	return ref, nil
}

// SplitSheet separates the sheet qualifier from a cell address. Quoted
// sheet names are unquoted.
func SplitSheet(text string) (string, string, error) {
	if strings.HasPrefix(text, "'") {
		var (
			name strings.Builder
			i    = 1
		)
		for i < len(text) {
			if text[i] == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					name.WriteByte('\'')
					i += 2
					continue
				}
				break
			}
			name.WriteByte(text[i])
			i++
		}
		if i >= len(text) {
			return "", "", referenceError(text, "unterminated sheet name")
		}
		rest := text[i+1:]
		if !strings.HasPrefix(rest, "!") {
			return "", "", referenceError(text, "missing ! after sheet name")
		}
		if name.Len() == 0 {
			return "", "", referenceError(text, "empty sheet name")
		}
		return name.String(), rest[1:], nil
	}
	ix := strings.LastIndexByte(text, '!')
	if ix < 0 {
		return "", text, nil
	}
	if ix == 0 {
		return "", "", referenceError(text, "empty sheet name")
	}
	return text[:ix], text[ix+1:], nil
}

// ShiftReference moves the relative parts of a reference by the given
// offsets. Absolute parts are left untouched. A reference pushed outside of
// the grid becomes #REF!.
func ShiftReference(text string, lines, columns int64) string {
	var list []string
	for _, part := range splitRange(text) {
		prefix, addr := "", part
		if ix := strings.LastIndexByte(part, '!'); ix >= 0 {
			prefix, addr = part[:ix+1], part[ix+1:]
		}
		cell, err := parseCell(addr)
		if err != nil {
			return text
		}
		if !cell.AbsLine {
			cell.Line += lines
		}
		if !cell.AbsColumn {
			cell.Column += columns
		}
		if !cell.Position().Valid() {
			return "#REF!"
		}
		list = append(list, prefix+cell.String())
	}
	return strings.Join(list, ":")
}

type cellRef struct {
	Line      int64
	Column    int64
	AbsLine   bool
	AbsColumn bool
}

func parseCell(str string) (cellRef, error) {
	var ref cellRef
	if strings.HasPrefix(str, "$") {
		ref.AbsColumn = true
		str = str[1:]
	}
	col, offset := ParseIndex(str)
	if offset == 0 {
		return ref, fmt.Errorf("missing column")
	}
	if col > MaxColumns {
		return ref, fmt.Errorf("column out of bounds")
	}
	str = str[offset:]
	if strings.HasPrefix(str, "$") {
		ref.AbsLine = true
		str = str[1:]
	}
	if str == "" {
		return ref, fmt.Errorf("missing row")
	}
	if str[0] == '0' {
		return ref, fmt.Errorf("invalid row")
	}
	for _, c := range str {
		if !isDigit(c) {
			return ref, fmt.Errorf("invalid row")
		}
	}
	line, err := strconv.ParseInt(str, 10, 64)
	if err != nil || line > MaxLines {
		return ref, fmt.Errorf("row out of bounds")
	}
	ref.Line = line
	ref.Column = col
	return ref, nil
}

func (c cellRef) Position() Position {
	return Position{
		Line:   c.Line,
		Column: c.Column,
	}
}

func (c cellRef) String() string {
	var str strings.Builder
	if c.AbsColumn {
		str.WriteByte('$')
	}
	str.WriteString(indexToString(c.Column))
	if c.AbsLine {
		str.WriteByte('$')
	}
	str.WriteString(strconv.FormatInt(c.Line, 10))
	return str.String()
}

// splitRange cuts text on the colons that are not part of a quoted sheet
// name.
func splitRange(text string) []string {
	var (
		list   []string
		quoted bool
		last   int
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			quoted = !quoted
		case ':':
			if quoted {
				continue
			}
			list = append(list, text[last:i])
			last = i + 1
		}
	}
	return append(list, text[last:])
}
