package formula

import (
	"errors"
	"slices"

	"github.com/midbel/sheetcalc/formula/op"
	"github.com/midbel/sheetcalc/layout"
)

const DefaultMaxCells = 1 << 20

// Compiler turns formula text into postfix instructions. MaxCells bounds the
// size of the ranges a formula can reference.
type Compiler struct {
	MaxCells int64
}

type Formula struct {
	Source string
	Sheet  string
	Tokens []Token
	Nodes  []Node
	// Precedents lists every cell read by the formula, sorted and without
	// duplicates.
	Precedents []layout.Position
}

func Compile(text, sheet string) (*Formula, error) {
	var c Compiler
	return c.Compile(text, sheet)
}

func (c Compiler) Compile(text, sheet string) (*Formula, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, withFormula(err, text)
	}
	nodes, err := NewParser(sheet, c.MaxCells).Parse(tokens)
	if err != nil {
		return nil, withFormula(err, text)
	}
	f := Formula{
		Source:     text,
		Sheet:      sheet,
		Tokens:     tokens,
		Nodes:      nodes,
		Precedents: collectPrecedents(nodes, c.maxCells()),
	}
	return &f, nil
}

func (c Compiler) maxCells() int64 {
	if c.MaxCells <= 0 {
		return DefaultMaxCells
	}
	return c.MaxCells
}

func (f *Formula) String() string {
	str, err := Render(f.Nodes)
	if err != nil {
		return f.Source
	}
	return "=" + str
}

// collectPrecedents lists the cells read by the instructions. A range built
// at runtime with the : operator between two references contributes every
// cell of its bounding rectangle. A call to INDEX stands for the range of
// its first argument.
func collectPrecedents(nodes []Node, maxCells int64) []layout.Position {
	var (
		list  []layout.Position
		stack []*layout.Range
	)
	pop := func() *layout.Range {
		if len(stack) == 0 {
			return nil
		}
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return r
	}
	for _, n := range nodes {
		switch n := n.(type) {
		case Reference:
			list = append(list, n.Cells...)
			stack = append(stack, &n.Range)
		case Literal:
			stack = append(stack, nil)
		case Unary:
			pop()
			stack = append(stack, nil)
		case Binary:
			right, left := pop(), pop()
			if n.Op != op.RangeRef || left == nil || right == nil {
				stack = append(stack, nil)
				break
			}
			box, ok := BoundingRange(*left, *right)
			if !ok || box.Size() > maxCells {
				stack = append(stack, nil)
				break
			}
			list = append(list, box.Cells()...)
			stack = append(stack, &box)
		case Call:
			var first *layout.Range
			for range n.Arity {
				first = pop()
			}
			// INDEX selects cells inside its first argument
			if n.Name != "INDEX" {
				first = nil
			}
			stack = append(stack, first)
		}
	}
	slices.SortFunc(list, layout.Position.Compare)
	return slices.Compact(list)
}

// BoundingRange gives the smallest range covering both ranges. Ranges on
// different sheets have none.
func BoundingRange(left, right layout.Range) (layout.Range, bool) {
	if left.Sheet() != right.Sheet() {
		return layout.Range{}, false
	}
	starts := layout.Position{
		Sheet:  left.Sheet(),
		Line:   min(left.Starts.Line, right.Starts.Line),
		Column: min(left.Starts.Column, right.Starts.Column),
	}
	ends := layout.Position{
		Sheet:  left.Sheet(),
		Line:   max(left.Ends.Line, right.Ends.Line),
		Column: max(left.Ends.Column, right.Ends.Column),
	}
	return layout.NewRange(starts, ends), true
}

func withFormula(err error, text string) error {
	var serr *SyntaxError
	if errors.As(err, &serr) && serr.Formula == "" {
		serr.Formula = text
	}
	return err
}
