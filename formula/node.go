package formula

import (
	"fmt"

	"github.com/midbel/sheetcalc/formula/op"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

// Node is one instruction of a compiled formula. The set of implementations
// is closed: Literal, Reference, Unary, Binary and Call.
type Node interface {
	fmt.Stringer
	node()
}

type Literal struct {
	Value value.ScalarValue
}

func (Literal) node() {}

func (n Literal) String() string {
	if _, ok := n.Value.(value.Text); ok {
		return fmt.Sprintf("literal(%q)", n.Value.String())
	}
	if _, ok := n.Value.(value.Blank); ok {
		return "literal(<blank>)"
	}
	return fmt.Sprintf("literal(%s)", n.Value)
}

type Reference struct {
	Text  string
	Range layout.Range
	Cells []layout.Position
}

func (Reference) node() {}

func (n Reference) Single() bool {
	return len(n.Cells) == 1
}

func (n Reference) String() string {
	if n.Single() {
		return fmt.Sprintf("ref(%s)", n.Range)
	}
	return fmt.Sprintf("ref(%s, %d cells)", n.Range, len(n.Cells))
}

type Unary struct {
	Op op.Op
}

func (Unary) node() {}

func (n Unary) String() string {
	if n.Op == op.Percent {
		return "postfix(%)"
	}
	return fmt.Sprintf("prefix(%s)", op.Symbol(n.Op))
}

type Binary struct {
	Op op.Op
}

func (Binary) node() {}

func (n Binary) String() string {
	return fmt.Sprintf("binary(%q)", op.Symbol(n.Op))
}

type Call struct {
	Name  string
	Arity int
}

func (Call) node() {}

func (n Call) String() string {
	return fmt.Sprintf("call(%s/%d)", n.Name, n.Arity)
}
