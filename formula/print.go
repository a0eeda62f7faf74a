package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/sheetcalc/formula/op"
	"github.com/midbel/sheetcalc/value"
)

const powAtom = 100

// Dump lists the postfix instructions, one per line.
func Dump(nodes []Node) string {
	var str strings.Builder
	for i, n := range nodes {
		fmt.Fprintf(&str, "%3d  %s\n", i, n)
	}
	return str.String()
}

type fragment struct {
	text  string
	pow   int
	union bool
}

func (f fragment) wrap(need bool) string {
	if need || f.union {
		return "(" + f.text + ")"
	}
	return f.text
}

// Render rebuilds the infix text of a postfix sequence with only the
// parenthesis required by operator precedence.
func Render(nodes []Node) (string, error) {
	var stack []fragment
	pop := func() fragment {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}
	for _, n := range nodes {
		switch n := n.(type) {
		case Literal:
			stack = append(stack, fragment{text: renderLiteral(n.Value), pow: powAtom})
		case Reference:
			stack = append(stack, fragment{text: n.Text, pow: powAtom})
		case Unary:
			if len(stack) < 1 {
				return "", ErrSyntax
			}
			var (
				pow = op.Precedence(n.Op)
				arg = pop()
				str string
			)
			if n.Op == op.Percent {
				str = arg.wrap(arg.pow < pow) + "%"
			} else {
				str = op.Symbol(n.Op) + arg.wrap(arg.pow < pow)
			}
			stack = append(stack, fragment{text: str, pow: pow})
		case Binary:
			if len(stack) < 2 {
				return "", ErrSyntax
			}
			var (
				pow   = op.Precedence(n.Op)
				right = pop()
				left  = pop()
				frag  = fragment{pow: pow}
			)
			if n.Op == op.Union {
				frag.union = true
				frag.text = left.text + "," + right.wrap(right.pow <= pow)
				if !left.union {
					frag.text = left.wrap(left.pow < pow) + "," + right.wrap(right.pow <= pow)
				}
			} else {
				frag.text = left.wrap(left.pow < pow) + op.Symbol(n.Op) + right.wrap(right.pow <= pow)
			}
			stack = append(stack, frag)
		case Call:
			if len(stack) < n.Arity {
				return "", ErrSyntax
			}
			args := make([]string, n.Arity)
			for i := n.Arity - 1; i >= 0; i-- {
				arg := pop()
				args[i] = arg.wrap(false)
			}
			var str string
			switch n.Name {
			case arrayRowName:
				str = strings.Join(args, ",")
			case arrayName:
				str = "{" + strings.Join(args, ";") + "}"
			default:
				str = n.Name + "(" + strings.Join(args, ",") + ")"
			}
			stack = append(stack, fragment{text: str, pow: powAtom})
		}
	}
	if len(stack) != 1 {
		return "", ErrSyntax
	}
	return stack[0].wrap(false), nil
}

func renderLiteral(v value.ScalarValue) string {
	switch v := v.(type) {
	case value.Text:
		return quote(string(v))
	case value.Blank:
		return ""
	default:
		return v.String()
	}
}

func quote(str string) string {
	return `"` + strings.ReplaceAll(str, `"`, `""`) + `"`
}
