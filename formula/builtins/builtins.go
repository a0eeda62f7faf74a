package builtins

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

var ErrArity = errors.New("invalid number of arguments")

const Variadic = -1

// Func describes a function of the library. Max is Variadic when the
// function accepts any number of arguments above Min. An Aware function
// receives error arguments instead of having them propagated.
type Func struct {
	Name  string
	Min   int
	Max   int
	Aware bool
	Call  func([]value.Value) value.Value
	// Refer is set for the functions reading the location of their
	// arguments or of the cell holding the formula. It is used instead of
	// Call and its result may itself be a reference.
	Refer func(layout.Position, []Arg) Arg
}

// Arg is an argument with the ranges it was read from. Ranges is empty when
// the argument is not a reference.
type Arg struct {
	Value  value.Value
	Ranges []layout.Range
}

func (a Arg) Range() (layout.Range, bool) {
	if len(a.Ranges) != 1 {
		return layout.Range{}, false
	}
	return a.Ranges[0], true
}

// Apply calls the function with arguments already checked for arity. at is
// the cell holding the formula.
func (f Func) Apply(at layout.Position, args []Arg) Arg {
	if !f.Aware {
		for _, a := range args {
			if e, ok := a.Value.(value.Error); ok {
				return Arg{Value: e}
			}
		}
	}
	if f.Refer != nil {
		res := f.Refer(at, args)
		if res.Value == nil {
			res.Value = value.ErrValue
		}
		return res
	}
	if f.Call == nil {
		return Arg{Value: value.ErrValue}
	}
	values := make([]value.Value, 0, len(args))
	for _, a := range args {
		values = append(values, a.Value)
	}
	res := f.Call(values)
	if res == nil {
		res = value.ErrValue
	}
	return Arg{Value: res}
}

func (f Func) Check(n int) error {
	if n < f.Min || (f.Max != Variadic && n > f.Max) {
		return fmt.Errorf("%w: %s called with %d argument(s)", ErrArity, f.Name, n)
	}
	return nil
}

type Library struct {
	funcs map[string]Func
}

func New() *Library {
	return &Library{
		funcs: make(map[string]Func),
	}
}

// Default gives a library holding every builtin function.
func Default() *Library {
	lib := New()
	for _, set := range [][]Func{mathFuncs, criteriaFuncs, logicFuncs, textFuncs, lookupFuncs, referenceFuncs, arrayFuncs} {
		for _, fn := range set {
			lib.Register(fn)
		}
	}
	return lib
}

func (b *Library) Register(fn Func) {
	b.funcs[strings.ToUpper(fn.Name)] = fn
}

// Resolve finds a function by name, ignoring case and the prefixes added by
// spreadsheet applications to newer functions.
func (b *Library) Resolve(name string) (Func, bool) {
	name = strings.ToUpper(name)
	for _, prefix := range []string{"_XLFN.", "_XLWS."} {
		name = strings.TrimPrefix(name, prefix)
	}
	fn, ok := b.funcs[name]
	return fn, ok
}

func (b *Library) Names() []string {
	var list []string
	for n := range b.funcs {
		list = append(list, n)
	}
	slices.Sort(list)
	return list
}
