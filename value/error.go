package value

var (
	ErrNull     = createError("#NULL!")
	ErrDiv0     = createError("#DIV/0!")
	ErrValue    = createError("#VALUE!")
	ErrRef      = createError("#REF!")
	ErrName     = createError("#NAME?")
	ErrNum      = createError("#NUM!")
	ErrNA       = createError("#N/A")
	ErrCircular = createError("#CIRC!")
)

var errorCodes = []Error{
	ErrNull,
	ErrDiv0,
	ErrValue,
	ErrRef,
	ErrName,
	ErrNum,
	ErrNA,
	ErrCircular,
}

// Error is a spreadsheet error code. It travels through formulas as an
// ordinary value; it also satisfies the error interface so that casting
// helpers can return it directly.
type Error struct {
	code string
}

func createError(code string) Error {
	return Error{
		code: code,
	}
}

// ParseError returns the error value whose code matches str.
func ParseError(str string) (Error, bool) {
	for _, e := range errorCodes {
		if e.code == str {
			return e, true
		}
	}
	return Error{}, false
}

func (Error) Type() string {
	return TypeError
}

func (Error) Kind() ValueKind {
	return KindError
}

func (e Error) Code() string {
	return e.code
}

func (e Error) Error() string {
	return e.code
}

func (e Error) String() string {
	return e.code
}

func (e Error) Scalar() any {
	return e.code
}

func IsError(v Value) bool {
	_, ok := v.(Error)
	return ok
}

// FirstError returns the first error found in vs, looking inside arrays.
func FirstError(vs ...Value) (Error, bool) {
	for _, v := range vs {
		switch v := v.(type) {
		case Error:
			return v, true
		case Array:
			for _, s := range v.Values() {
				if e, ok := s.(Error); ok {
					return e, true
				}
			}
		}
	}
	return Error{}, false
}
