package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/sheetcalc/value"
)

var ErrPattern = errors.New("invalid number pattern")

// numberFormatter renders numbers following a pattern such as "#,##0.00".
// A 0 is a digit always written, a # a digit written only when significant
// and a comma in the integral part turns grouping by thousands on.
type numberFormatter struct {
	minInt int
	minDec int
	maxDec int

	signAlways bool
	grouping   bool

	decimalSep  byte
	thousandSep byte
}

func ParseNumberFormatter(pattern string) (Formatter, error) {
	nf := numberFormatter{
		decimalSep:  '.',
		thousandSep: ',',
	}
	left, right, _ := strings.Cut(pattern, ".")
	if strings.HasPrefix(left, "+") {
		nf.signAlways = true
		left = left[1:]
	}
	if left == "" {
		return nil, fmt.Errorf("%w: %q: missing integral part", ErrPattern, pattern)
	}
	if err := nf.parseIntegral(left); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPattern, pattern, err)
	}
	if err := nf.parseFractional(right); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrPattern, pattern, err)
	}
	return nf, nil
}

func (nf *numberFormatter) parseIntegral(str string) error {
	zeroes := true
	for i := len(str) - 1; i >= 0; i-- {
		switch c := str[i]; {
		case c == ',':
			nf.grouping = true
		case c == '0' && zeroes:
			nf.minInt++
		case c == '#':
			zeroes = false
		default:
			return fmt.Errorf("unexpected character %q in integral part", c)
		}
	}
	return nil
}

func (nf *numberFormatter) parseFractional(str string) error {
	zeroes := true
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == '0' && zeroes:
			nf.minDec++
			nf.maxDec++
		case c == '#':
			zeroes = false
			nf.maxDec++
		default:
			return fmt.Errorf("unexpected character %q in fractional part", c)
		}
	}
	return nil
}

func (nf numberFormatter) Format(v value.ScalarValue) (string, error) {
	f, ok := v.(value.Float)
	if !ok {
		return "", fmt.Errorf("%s: value is not a number", v)
	}
	var (
		scale   = math.Pow10(nf.maxDec)
		rounded = math.Round(float64(f)*scale) / scale
		signed  = rounded < 0
		str     = strconv.FormatFloat(math.Abs(rounded), 'f', nf.maxDec, 64)
	)
	integral, fractional, _ := strings.Cut(str, ".")
	for len(fractional) > nf.minDec && strings.HasSuffix(fractional, "0") {
		fractional = fractional[:len(fractional)-1]
	}
	if integral == "0" && nf.minInt == 0 && fractional != "" {
		integral = ""
	}
	if n := nf.minInt - len(integral); n > 0 {
		integral = strings.Repeat("0", n) + integral
	}
	if nf.grouping {
		integral = nf.group(integral)
	}

	var buf strings.Builder
	if signed {
		buf.WriteByte('-')
	} else if nf.signAlways {
		buf.WriteByte('+')
	}
	buf.WriteString(integral)
	if fractional != "" {
		buf.WriteByte(nf.decimalSep)
		buf.WriteString(fractional)
	}
	if buf.Len() == 0 {
		return "0", nil
	}
	return buf.String(), nil
}

func (nf numberFormatter) group(str string) string {
	if len(str) <= 3 {
		return str
	}
	var (
		buf  strings.Builder
		head = len(str) % 3
	)
	if head > 0 {
		buf.WriteString(str[:head])
	}
	for i := head; i < len(str); i += 3 {
		if buf.Len() > 0 {
			buf.WriteByte(nf.thousandSep)
		}
		buf.WriteString(str[i : i+3])
	}
	return buf.String()
}
