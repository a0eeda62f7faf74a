package formula

import (
	"strings"

	"github.com/midbel/sheetcalc/formula/op"
	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
)

type entry struct {
	Token
	oper op.Op
}

type Parser struct {
	sheet    string
	maxCells int64

	out      []Node
	stack    []entry
	argCount []int
	hadValue []bool
}

// Parse turns a token stream into postfix instructions. References without
// sheet are attached to sheet.
func Parse(tokens []Token, sheet string) ([]Node, error) {
	p := NewParser(sheet, DefaultMaxCells)
	return p.Parse(tokens)
}

func NewParser(sheet string, maxCells int64) *Parser {
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	return &Parser{
		sheet:    sheet,
		maxCells: maxCells,
	}
}

func (p *Parser) Parse(tokens []Token) ([]Node, error) {
	p.reset()
	for _, tok := range tokens {
		var err error
		switch {
		case tok.Kind == Operand:
			err = p.operand(tok)
		case tok.Kind.opening():
			p.open(tok)
		case tok.Kind.closing():
			err = p.close(tok)
		case tok.Kind == Separator:
			err = p.separate()
		case tok.Kind == OpInfix:
			err = p.infix(tok)
		case tok.Kind == OpPrefix:
			err = p.prefix(tok)
		case tok.Kind == OpPostfix:
			err = p.postfix(tok)
		case tok.Kind == Whitespace:
		default:
			err = syntaxError("unexpected token %s", tok)
		}
		if err != nil {
			return nil, err
		}
	}
	for len(p.stack) > 0 {
		top := p.pop()
		if top.Kind.opening() {
			return nil, syntaxError("missing closing parenthesis")
		}
		p.emitOperator(top)
	}
	if err := validate(p.out); err != nil {
		return nil, err
	}
	return p.out, nil
}

func (p *Parser) reset() {
	p.out = nil
	p.stack = p.stack[:0]
	p.argCount = p.argCount[:0]
	p.hadValue = p.hadValue[:0]
}

func (p *Parser) operand(tok Token) error {
	node, err := p.makeOperand(tok)
	if err != nil {
		return err
	}
	p.out = append(p.out, node)
	p.markValue()
	return nil
}

func (p *Parser) makeOperand(tok Token) (Node, error) {
	switch tok.Sub {
	case SubNumber:
		n, ok := value.ParseNumber(tok.Literal)
		if !ok {
			return nil, syntaxError("invalid number %s", tok.Literal)
		}
		return Literal{Value: value.Float(n)}, nil
	case SubText:
		return Literal{Value: value.Text(tok.Literal)}, nil
	case SubLogical:
		return Literal{Value: value.Boolean(strings.EqualFold(tok.Literal, "true"))}, nil
	case SubError:
		e, ok := value.ParseError(tok.Literal)
		if !ok {
			return nil, syntaxError("unsupported error literal %s", tok.Literal)
		}
		return Literal{Value: e}, nil
	default:
	}
	ref, err := layout.ParseReference(tok.Literal, p.sheet)
	if err != nil {
		if isName(tok.Literal) {
			return Literal{Value: value.ErrName}, nil
		}
		return nil, err
	}
	if ref.Range.Size() > p.maxCells {
		return nil, &layout.ReferenceError{
			Ref:    tok.Literal,
			Reason: "range too large",
		}
	}
	node := Reference{
		Text:  tok.Literal,
		Range: ref.Range,
		Cells: ref.Cells(),
	}
	return node, nil
}

func (p *Parser) open(tok Token) {
	p.markValue()
	p.push(entry{Token: tok})
	p.argCount = append(p.argCount, 0)
	p.hadValue = append(p.hadValue, false)
}

func (p *Parser) separate() error {
	if err := p.unwind(); err != nil {
		return syntaxError("separator outside of function call")
	}
	n := len(p.hadValue) - 1
	switch top := p.stack[len(p.stack)-1]; top.Kind {
	case ParenOpen:
		return syntaxError("unexpected separator in parenthesis")
	case ArrayRow:
		if !p.hadValue[n] {
			return syntaxError("empty array element")
		}
	default:
		if !p.hadValue[n] {
			p.out = append(p.out, Literal{Value: value.Empty()})
		}
	}
	p.argCount[n]++
	p.hadValue[n] = false
	return nil
}

func (p *Parser) close(tok Token) error {
	if err := p.unwind(); err != nil {
		return syntaxError("unexpected %s", tok.Literal)
	}
	group := p.pop()
	if !matchGroup(group.Kind, tok.Kind) {
		return syntaxError("mismatched %s", tok.Literal)
	}
	var (
		n   = len(p.argCount) - 1
		cnt = p.argCount[n]
		val = p.hadValue[n]
	)
	p.argCount = p.argCount[:n]
	p.hadValue = p.hadValue[:n]

	switch group.Kind {
	case ParenOpen:
		if !val {
			return syntaxError("empty parenthesis")
		}
		return nil
	case ArrayRow:
		if !val {
			return syntaxError("empty array element")
		}
	default:
		if cnt > 0 && !val {
			p.out = append(p.out, Literal{Value: value.Empty()})
		}
	}
	arity := cnt + 1
	if cnt == 0 && !val {
		arity = 0
	}
	call := Call{
		Name:  group.Literal,
		Arity: arity,
	}
	p.out = append(p.out, call)
	return nil
}

func (p *Parser) infix(tok Token) error {
	oper, ok := op.Infix(tok.Literal)
	if !ok {
		return syntaxError("unknown operator %q", tok.Literal)
	}
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.Kind.opening() || !p.yield(oper, top.oper) {
			break
		}
		p.emitOperator(p.pop())
	}
	p.push(entry{Token: tok, oper: oper})
	return nil
}

func (p *Parser) prefix(tok Token) error {
	oper, ok := op.Prefix(tok.Literal)
	if !ok {
		return syntaxError("unknown prefix operator %q", tok.Literal)
	}
	p.push(entry{Token: tok, oper: oper})
	return nil
}

func (p *Parser) postfix(tok Token) error {
	oper, ok := op.Postfix(tok.Literal)
	if !ok {
		return syntaxError("unknown postfix operator %q", tok.Literal)
	}
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.Kind.opening() || !p.yield(oper, top.oper) {
			break
		}
		p.emitOperator(p.pop())
	}
	p.out = append(p.out, Unary{Op: oper})
	return nil
}

// yield reports whether the operator on the stack must be emitted before
// the incoming one is pushed.
func (p *Parser) yield(incoming, stacked op.Op) bool {
	var (
		in  = op.Precedence(incoming)
		top = op.Precedence(stacked)
	)
	return in < top || (in == top && op.LeftAssoc(incoming))
}

// unwind emits the operators sitting above the innermost open group. It
// fails when there is no open group.
func (p *Parser) unwind() error {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.Kind.opening() {
			return nil
		}
		p.emitOperator(p.pop())
	}
	return ErrSyntax
}

func (p *Parser) emitOperator(e entry) {
	if e.Kind == OpPrefix {
		p.out = append(p.out, Unary{Op: e.oper})
		return
	}
	p.out = append(p.out, Binary{Op: e.oper})
}

func (p *Parser) markValue() {
	if n := len(p.hadValue); n > 0 {
		p.hadValue[n-1] = true
	}
}

func (p *Parser) push(e entry) {
	p.stack = append(p.stack, e)
}

func (p *Parser) pop() entry {
	n := len(p.stack) - 1
	e := p.stack[n]
	p.stack = p.stack[:n]
	return e
}

func matchGroup(open, close Kind) bool {
	switch close {
	case FuncClose:
		return open == FuncOpen
	case ParenClose:
		return open == ParenOpen
	case ArrayClose:
		return open == ArrayOpen || open == ArrayRow
	default:
		return false
	}
}

// validate simulates the evaluation stack to make sure every instruction
// finds its operands and exactly one value remains.
func validate(nodes []Node) error {
	if len(nodes) == 0 {
		return syntaxError("empty formula")
	}
	var depth int
	for _, n := range nodes {
		switch n := n.(type) {
		case Literal, Reference:
			depth++
		case Unary:
			if depth < 1 {
				return syntaxError("missing operand for %s", op.Symbol(n.Op))
			}
		case Binary:
			if depth < 2 {
				return syntaxError("missing operand for %q", op.Symbol(n.Op))
			}
			depth--
		case Call:
			if depth < n.Arity {
				return syntaxError("missing arguments for %s", n.Name)
			}
			depth -= n.Arity - 1
		}
	}
	if depth != 1 {
		return syntaxError("unexpected operand")
	}
	return nil
}
