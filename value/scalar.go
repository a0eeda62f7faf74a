package value

import (
	"math"
	"strconv"
	"strings"
)

type Blank struct{}

func Empty() ScalarValue {
	return Blank{}
}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) Kind() ValueKind {
	return KindScalar
}

func (Blank) String() string {
	return ""
}

func (Blank) Scalar() any {
	return nil
}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

func (Float) Kind() ValueKind {
	return KindScalar
}

func (f Float) String() string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(f), 'g', 15, 64)
}

func (f Float) Scalar() any {
	return float64(f)
}

type Text string

func (Text) Type() string {
	return TypeText
}

func (Text) Kind() ValueKind {
	return KindScalar
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Scalar() any {
	return string(t)
}

type Boolean bool

func (Boolean) Type() string {
	return TypeBoolean
}

func (Boolean) Kind() ValueKind {
	return KindScalar
}

func (b Boolean) String() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (b Boolean) Scalar() any {
	return bool(b)
}

// Parse converts raw cell content into the scalar it represents: numbers,
// booleans and error codes are recognized, the empty string gives a blank and
// anything else is kept as text.
func Parse(str string) ScalarValue {
	if str == "" {
		return Empty()
	}
	if e, ok := ParseError(str); ok {
		return e
	}
	switch {
	case strings.EqualFold(str, "true"):
		return Boolean(true)
	case strings.EqualFold(str, "false"):
		return Boolean(false)
	}
	if n, ok := ParseNumber(str); ok {
		return Float(n)
	}
	return Text(str)
}

// ParseNumber accepts decimal numbers with an optional exponent.
func ParseNumber(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	for _, c := range str {
		if !strings.ContainsRune("0123456789.eE+-", c) {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
