package value

import (
	"cmp"
	"strings"
)

const (
	rankBlank = iota - 1
	rankNumber
	rankText
	rankBoolean
	rankError
)

// Rank gives the position of the value's type in the comparison ordering:
// numbers sort before text and text before booleans.
func Rank(v ScalarValue) int {
	switch v.(type) {
	case Float:
		return rankNumber
	case Text:
		return rankText
	case Boolean:
		return rankBoolean
	case Error:
		return rankError
	default:
		return rankBlank
	}
}

// Compare orders two scalars. Values of different types compare by Rank,
// text compares without regard to case and a blank takes the zero value of
// the other operand's type.
func Compare(a, b ScalarValue) int {
	a, b = promoteBlank(a, b)
	ra, rb := Rank(a), Rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch x := a.(type) {
	case Float:
		return cmp.Compare(float64(x), float64(b.(Float)))
	case Text:
		return strings.Compare(strings.ToLower(string(x)), strings.ToLower(string(b.(Text))))
	case Boolean:
		return cmp.Compare(boolIndex(x), boolIndex(b.(Boolean)))
	case Error:
		return strings.Compare(x.code, b.(Error).code)
	default:
		return 0
	}
}

func Equal(a, b ScalarValue) bool {
	return Compare(a, b) == 0
}

func promoteBlank(a, b ScalarValue) (ScalarValue, ScalarValue) {
	_, ba := a.(Blank)
	_, bb := b.(Blank)
	switch {
	case ba && !bb:
		a = zeroOf(b)
	case bb && !ba:
		b = zeroOf(a)
	}
	return a, b
}

func zeroOf(v ScalarValue) ScalarValue {
	switch v.(type) {
	case Float:
		return Float(0)
	case Text:
		return Text("")
	case Boolean:
		return Boolean(false)
	default:
		return Blank{}
	}
}

func boolIndex(b Boolean) int {
	if b {
		return 1
	}
	return 0
}
