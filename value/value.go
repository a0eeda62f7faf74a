package value

import (
	"fmt"

	"github.com/midbel/sheetcalc/layout"
)

type ValueKind int8

const (
	KindScalar ValueKind = 1 << iota
	KindError
	KindArray
)

const (
	TypeBlank   = "blank"
	TypeNumber  = "number"
	TypeText    = "text"
	TypeBoolean = "boolean"
	TypeError   = "error"
	TypeArray   = "array"
)

type Value interface {
	Kind() ValueKind
	Type() string
	fmt.Stringer
}

type ScalarValue interface {
	Value
	Scalar() any
}

type ArrayValue interface {
	Value
	Dimension() layout.Dimension
	At(int, int) ScalarValue
}

func IsScalar(v Value) bool {
	return v != nil && v.Kind() != KindArray
}

func IsArray(v Value) bool {
	return v != nil && v.Kind() == KindArray
}
