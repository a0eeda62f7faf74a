package value

import (
	"math"
	"strings"
)

// CastToFloat applies the numeric coercion used by arithmetic operators. The
// returned error, when not nil, is always an Error value.
func CastToFloat(val Value) (Float, error) {
	switch v := val.(type) {
	case Float:
		return v, nil
	case Boolean:
		if v {
			return 1, nil
		}
		return 0, nil
	case Blank:
		return 0, nil
	case Text:
		n, ok := ParseNumber(string(v))
		if !ok {
			return 0, ErrValue
		}
		return Float(n), nil
	case Error:
		return 0, v
	default:
		return 0, ErrValue
	}
}

func CastToText(val Value) (Text, error) {
	switch v := val.(type) {
	case Text:
		return v, nil
	case Float, Boolean, Blank:
		return Text(v.String()), nil
	case Error:
		return "", v
	default:
		return "", ErrValue
	}
}

func CastToBool(val Value) (Boolean, error) {
	switch v := val.(type) {
	case Boolean:
		return v, nil
	case Float:
		return Boolean(v != 0), nil
	case Blank:
		return false, nil
	case Text:
		switch {
		case strings.EqualFold(string(v), "true"):
			return true, nil
		case strings.EqualFold(string(v), "false"):
			return false, nil
		default:
			return false, ErrValue
		}
	case Error:
		return false, v
	default:
		return false, ErrValue
	}
}

func True(val Value) bool {
	b, err := CastToBool(val)
	return err == nil && bool(b)
}

// AsError turns an error returned by a cast helper back into a value.
func AsError(err error) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return ErrValue
}

func checkNumber(f float64) ScalarValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrNum
	}
	return Float(f)
}
