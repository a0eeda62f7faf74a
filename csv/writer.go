package csv

import (
	"bufio"
	"io"
	"strings"
)

type Writer struct {
	inner *bufio.Writer

	ForceQuote bool
	UseCRLF    bool
	Comma      byte
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		inner: bufio.NewWriter(w),
		Comma: ',',
	}
	return &ws
}

func (w *Writer) WriteAll(data [][]string) error {
	for _, d := range data {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (w *Writer) Write(line []string) error {
	for i, str := range line {
		if i > 0 {
			if err := w.inner.WriteByte(w.Comma); err != nil {
				return err
			}
		}
		var err error
		if w.needQuotes(str) {
			err = w.writeQuoted(str)
		} else {
			_, err = w.inner.WriteString(str)
		}
		if err != nil {
			return err
		}
	}
	if w.UseCRLF {
		if err := w.inner.WriteByte(cr); err != nil {
			return err
		}
	}
	return w.inner.WriteByte(nl)
}

func (w *Writer) Flush() error {
	return w.inner.Flush()
}

func (w *Writer) writeQuoted(str string) error {
	var buf strings.Builder
	buf.WriteByte(quote)
	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case quote:
			buf.WriteByte(quote)
			buf.WriteByte(quote)
		case cr:
			if w.UseCRLF {
				buf.WriteByte(c)
			}
		case nl:
			if w.UseCRLF && (i == 0 || str[i-1] != cr) {
				buf.WriteByte(cr)
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(quote)
	_, err := w.inner.WriteString(buf.String())
	return err
}

func (w *Writer) needQuotes(str string) bool {
	if w.ForceQuote {
		return true
	}
	if str == "" {
		return false
	}
	if str[0] == space {
		return true
	}
	return strings.IndexAny(str, string([]byte{w.Comma, quote, cr, nl})) >= 0
}
