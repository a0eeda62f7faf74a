package format

import (
	"github.com/midbel/sheetcalc/value"
)

const DefaultNumberPattern = "#.##"

type Formatter interface {
	Format(value.ScalarValue) (string, error)
}

type FormatterFunc func(value.ScalarValue) (string, error)

func (f FormatterFunc) Format(v value.ScalarValue) (string, error) {
	return f(v)
}

// ValueFormatter picks a formatter according to the type of the value.
// Values of a type without formatter are rendered as is.
type ValueFormatter struct {
	formatters map[string]Formatter
}

func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
	}
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(value.TypeNumber, f)
	}
	return err
}

func (vf *ValueFormatter) Format(v value.ScalarValue) (string, error) {
	if v == nil {
		return "", nil
	}
	if f, ok := vf.formatters[v.Type()]; ok {
		return f.Format(v)
	}
	return v.String(), nil
}

// FormatBool renders booleans with the given words.
func FormatBool(yes, no string) Formatter {
	return FormatterFunc(func(v value.ScalarValue) (string, error) {
		if value.True(v) {
			return yes, nil
		}
		return no, nil
	})
}
