package csv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	quote = '"'
	nl    = '\n'
	cr    = '\r'
	space = ' '
)

var (
	ErrQuote  = errors.New("bare quote in field")
	ErrFields = errors.New("invalid number of fields")
	ErrSyntax = errors.New("invalid csv")

	errUnterminated = errors.New("unterminated quoted field")
)

type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Reader struct {
	inner *bufio.Reader
	Comma byte
	// FieldsPerLine, when positive, is the number of fields expected on
	// every record.
	FieldsPerLine int

	line  int
	start int
	atEOF bool
}

func NewReader(r io.Reader) *Reader {
	rs := Reader{
		inner: bufio.NewReader(r),
		Comma: ',',
	}
	return &rs
}

// Line gives the line where the last record read starts.
func (r *Reader) Line() int {
	return r.start
}

func (r *Reader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rs, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, rs)
	}
	return all, nil
}

// Read returns the fields of the next record. A quoted field can span
// several lines.
func (r *Reader) Read() ([]string, error) {
	if r.atEOF {
		return nil, io.EOF
	}
	r.line++
	r.start = r.line
	start := r.start

	line, err := r.readLine()
	if len(line) == 0 && errors.Is(err, io.EOF) {
		r.atEOF = true
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	line = trimEOL(line)

	var res []string
	for i := 0; ; {
		var field []byte
		if i < len(line) && line[i] == quote {
			var size int
			for {
				field, size, err = readQuoted(line[i:])
				if err == nil {
					break
				}
				next, err1 := r.readLine()
				if len(next) == 0 {
					return nil, &ParseError{Line: start, Err: err}
				}
				if err1 != nil && !errors.Is(err1, io.EOF) {
					return nil, err1
				}
				r.line++
				line = append(append(line, nl), trimEOL(next)...)
			}
			i += size
		} else {
			ix := bytes.IndexByte(line[i:], r.Comma)
			if ix < 0 {
				ix = len(line) - i
			}
			field = line[i : i+ix]
			if bytes.IndexByte(field, quote) >= 0 {
				return nil, &ParseError{Line: r.line, Err: ErrQuote}
			}
			i += ix
		}
		res = append(res, string(field))
		if i >= len(line) {
			break
		}
		if line[i] != r.Comma {
			return nil, &ParseError{Line: r.line, Err: fmt.Errorf("%w: unexpected character after field", ErrSyntax)}
		}
		i++
	}
	if r.FieldsPerLine > 0 && len(res) != r.FieldsPerLine {
		return nil, &ParseError{Line: start, Err: ErrFields}
	}
	return res, nil
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.inner.ReadBytes(nl)
	if errors.Is(err, io.EOF) {
		r.atEOF = true
	}
	return line, err
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{nl})
	return bytes.TrimSuffix(line, []byte{cr})
}

func readQuoted(line []byte) ([]byte, int, error) {
	var (
		field  []byte
		offset = 1
	)
	for offset < len(line) {
		if line[offset] == quote {
			if offset+1 < len(line) && line[offset+1] == quote {
				field = append(field, quote)
				offset += 2
				continue
			}
			return field, offset + 1, nil
		}
		field = append(field, line[offset])
		offset++
	}
	return nil, 0, errUnterminated
}
