package formula

import (
	"errors"
	"fmt"
)

var ErrSyntax = errors.New("syntax error")

type SyntaxError struct {
	Formula string
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Formula == "" {
		return fmt.Sprintf("%s: %s", ErrSyntax, e.Reason)
	}
	return fmt.Sprintf("%s in %q: %s", ErrSyntax, e.Formula, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxError(reason string, args ...any) error {
	return &SyntaxError{
		Reason: fmt.Sprintf(reason, args...),
	}
}

type Kind int8

const (
	Invalid Kind = iota
	Operand
	OpPrefix
	OpInfix
	OpPostfix
	FuncOpen
	FuncClose
	ParenOpen
	ParenClose
	Separator
	ArrayOpen
	ArrayClose
	ArrayRow
	Whitespace
)

func (k Kind) String() string {
	switch k {
	case Operand:
		return "operand"
	case OpPrefix:
		return "prefix"
	case OpInfix:
		return "infix"
	case OpPostfix:
		return "postfix"
	case FuncOpen:
		return "func-open"
	case FuncClose:
		return "func-close"
	case ParenOpen:
		return "paren-open"
	case ParenClose:
		return "paren-close"
	case Separator:
		return "separator"
	case ArrayOpen:
		return "array-open"
	case ArrayClose:
		return "array-close"
	case ArrayRow:
		return "array-row"
	case Whitespace:
		return "whitespace"
	default:
		return "invalid"
	}
}

func (k Kind) opening() bool {
	return k == FuncOpen || k == ParenOpen || k == ArrayOpen || k == ArrayRow
}

func (k Kind) closing() bool {
	return k == FuncClose || k == ParenClose || k == ArrayClose
}

type SubKind int8

const (
	SubNone SubKind = iota
	SubRange
	SubNumber
	SubText
	SubLogical
	SubError
)

func (s SubKind) String() string {
	switch s {
	case SubRange:
		return "range"
	case SubNumber:
		return "number"
	case SubText:
		return "text"
	case SubLogical:
		return "logical"
	case SubError:
		return "error"
	default:
		return ""
	}
}

type Token struct {
	Literal string
	Kind    Kind
	Sub     SubKind
}

func (t Token) String() string {
	if t.Sub == SubNone {
		return fmt.Sprintf("<%s(%s)>", t.Kind, t.Literal)
	}
	return fmt.Sprintf("<%s:%s(%s)>", t.Kind, t.Sub, t.Literal)
}
