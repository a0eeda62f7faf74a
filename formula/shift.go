package formula

import (
	"strings"

	"github.com/midbel/sheetcalc/layout"
)

// Shift moves the relative references of a formula by the given number of
// lines and columns. It is used to expand the shared formulas of a
// worksheet from their anchor cell.
func Shift(text string, lines, columns int64) (string, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return "", withFormula(err, text)
	}
	for i, tok := range tokens {
		if tok.Kind != Operand || tok.Sub != SubRange {
			continue
		}
		if _, err := layout.ParseReference(tok.Literal, ""); err != nil {
			continue
		}
		tokens[i].Literal = layout.ShiftReference(tok.Literal, lines, columns)
	}
	return "=" + renderTokens(tokens), nil
}

func renderTokens(tokens []Token) string {
	var (
		str    strings.Builder
		groups []Kind
	)
	top := func() Kind {
		if len(groups) == 0 {
			return Invalid
		}
		return groups[len(groups)-1]
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case Operand:
			if tok.Sub == SubText {
				str.WriteString(quote(tok.Literal))
				break
			}
			str.WriteString(tok.Literal)
		case FuncOpen:
			groups = append(groups, tok.Kind)
			str.WriteString(tok.Literal)
			str.WriteByte('(')
		case ParenOpen:
			groups = append(groups, tok.Kind)
			str.WriteByte('(')
		case ArrayOpen:
			groups = append(groups, tok.Kind)
			str.WriteByte('{')
		case ArrayRow:
			groups = append(groups, tok.Kind)
		case FuncClose, ParenClose:
			if len(groups) > 0 {
				groups = groups[:len(groups)-1]
			}
			str.WriteByte(')')
		case ArrayClose:
			kind := top()
			if len(groups) > 0 {
				groups = groups[:len(groups)-1]
			}
			if kind == ArrayOpen {
				str.WriteByte('}')
			}
		case Separator:
			if top() == ArrayOpen {
				str.WriteByte(';')
				break
			}
			str.WriteByte(',')
		case Whitespace:
		default:
			str.WriteString(tok.Literal)
		}
	}
	return str.String()
}
