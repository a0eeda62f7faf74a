package formula

import (
	"strings"
	"unicode"

	"github.com/midbel/sheetcalc/layout"
	"github.com/midbel/sheetcalc/value"
	"github.com/xuri/efp"
)

const (
	arrayName    = "ARRAY"
	arrayRowName = "ARRAYROW"
)

// Tokenize splits a formula into tokens. The leading = is optional.
func Tokenize(text string) ([]Token, error) {
	str := strings.TrimSpace(text)
	if str == "" || str == "=" {
		return nil, syntaxError("empty formula")
	}
	ps := efp.ExcelParser()
	list := ps.Parse(str)
	switch {
	case ps.InString:
		return nil, syntaxError("unterminated string")
	case ps.InPath:
		return nil, syntaxError("unterminated sheet name")
	case ps.InRange:
		return nil, syntaxError("unterminated bracket")
	case ps.InError:
		return nil, syntaxError("invalid error literal")
	}
	if len(list) > 0 && list[0].TType == efp.TokenTypeOperatorInfix && list[0].TValue == "=" {
		list = list[1:]
	}
	var tz tokenizer
	for _, tok := range list {
		if err := tz.push(tok); err != nil {
			return nil, err
		}
	}
	return tz.tokens, nil
}

type tokenizer struct {
	tokens []Token
	groups []Kind
}

func (z *tokenizer) push(tok efp.Token) error {
	switch tok.TType {
	case efp.TokenTypeOperand:
		return z.operand(tok)
	case efp.TokenTypeFunction:
		if tok.TSubType == efp.TokenSubTypeStart {
			return z.function(tok.TValue)
		}
		return z.close()
	case efp.TokenTypeSubexpression:
		if tok.TSubType == efp.TokenSubTypeStart {
			z.open(ParenOpen, "(")
			return nil
		}
		return z.close()
	case efp.TokenTypeArgument:
		z.emit(Token{Literal: ",", Kind: Separator})
	case efp.TokenTypeOperatorPrefix:
		z.emit(Token{Literal: tok.TValue, Kind: OpPrefix})
	case efp.TokenTypeOperatorPostfix:
		z.emit(Token{Literal: tok.TValue, Kind: OpPostfix})
	case efp.TokenTypeOperatorInfix:
		switch tok.TSubType {
		case efp.TokenSubTypeIntersection:
			z.emit(Token{Literal: " ", Kind: OpInfix})
		case efp.TokenSubTypeUnion:
			if len(z.groups) == 0 {
				z.emit(Token{Literal: ",", Kind: Separator})
				break
			}
			z.emit(Token{Literal: ",", Kind: OpInfix})
		default:
			z.emit(Token{Literal: tok.TValue, Kind: OpInfix})
		}
	case efp.TokenTypeNoop, efp.TokenTypeWhitespace:
	default:
		return syntaxError("unexpected %q", tok.TValue)
	}
	return nil
}

func (z *tokenizer) emit(tok Token) {
	z.tokens = append(z.tokens, tok)
}

func (z *tokenizer) open(kind Kind, literal string) {
	z.groups = append(z.groups, kind)
	z.emit(Token{Literal: literal, Kind: kind})
}

func (z *tokenizer) close() error {
	n := len(z.groups)
	if n == 0 {
		return syntaxError("unexpected closing parenthesis")
	}
	kind := z.groups[n-1]
	z.groups = z.groups[:n-1]
	switch kind {
	case FuncOpen:
		z.emit(Token{Literal: ")", Kind: FuncClose})
	case ParenOpen:
		z.emit(Token{Literal: ")", Kind: ParenClose})
	default:
		z.emit(Token{Literal: "}", Kind: ArrayClose})
	}
	return nil
}

// function handles the opening of a call. A name like A1:INDEX comes from a
// range operator written just before a call and is split back.
func (z *tokenizer) function(name string) error {
	if ix := strings.LastIndexByte(name, ':'); ix >= 0 {
		if ix > 0 {
			if err := z.operand(efp.Token{TValue: name[:ix]}); err != nil {
				return err
			}
		}
		z.emit(Token{Literal: ":", Kind: OpInfix})
		name = name[ix+1:]
		if name == "" {
			z.open(ParenOpen, "(")
			return nil
		}
	}
	switch name {
	case arrayName:
		z.open(ArrayOpen, name)
	case arrayRowName:
		z.open(ArrayRow, name)
	default:
		if !isName(name) {
			return syntaxError("invalid function name %q", name)
		}
		z.open(FuncOpen, strings.ToUpper(name))
	}
	return nil
}

func (z *tokenizer) operand(tok efp.Token) error {
	switch tok.TSubType {
	case efp.TokenSubTypeText:
		z.emit(Token{Literal: tok.TValue, Kind: Operand, Sub: SubText})
		return nil
	case efp.TokenSubTypeError:
		if _, ok := value.ParseError(tok.TValue); !ok {
			return syntaxError("unsupported error literal %s", tok.TValue)
		}
		z.emit(Token{Literal: tok.TValue, Kind: Operand, Sub: SubError})
		return nil
	case efp.TokenSubTypeNumber:
		if _, ok := value.ParseNumber(tok.TValue); ok {
			z.emit(Token{Literal: tok.TValue, Kind: Operand, Sub: SubNumber})
			return nil
		}
	case efp.TokenSubTypeLogical:
		z.emit(Token{Literal: tok.TValue, Kind: Operand, Sub: SubLogical})
		return nil
	}
	str := tok.TValue
	if strings.EqualFold(str, "true") || strings.EqualFold(str, "false") {
		z.emit(Token{Literal: strings.ToUpper(str), Kind: Operand, Sub: SubLogical})
		return nil
	}
	if rest, ok := strings.CutPrefix(str, ":"); ok {
		z.emit(Token{Literal: ":", Kind: OpInfix})
		str = rest
	}
	var trailing bool
	if rest, ok := strings.CutSuffix(str, ":"); ok {
		trailing, str = true, rest
	}
	str, err := normalizeOperand(str)
	if err != nil {
		return err
	}
	z.emit(Token{Literal: str, Kind: Operand, Sub: SubRange})
	if trailing {
		z.emit(Token{Literal: ":", Kind: OpInfix})
	}
	return nil
}

// normalizeOperand checks the characters of a reference or a name and quotes
// back the sheet names that need it.
func normalizeOperand(str string) (string, error) {
	parts := strings.Split(str, ":")
	for i, part := range parts {
		sheet, addr := "", part
		if ix := strings.LastIndexByte(part, '!'); ix >= 0 {
			sheet, addr = part[:ix], part[ix+1:]
			if sheet == "" {
				return "", syntaxError("missing sheet name in %q", str)
			}
		}
		if addr == "" {
			return "", syntaxError("missing address in %q", str)
		}
		for _, c := range addr {
			if c != '$' && !isNameChar(c) {
				return "", syntaxError("unexpected character %q in %q", c, str)
			}
		}
		if sheet != "" {
			parts[i] = layout.FormatSheet(sheet) + "!" + addr
		}
	}
	return strings.Join(parts, ":"), nil
}

func isName(str string) bool {
	if str == "" {
		return false
	}
	for i, c := range str {
		if i == 0 && !unicode.IsLetter(c) && c != '_' && c != '\\' {
			return false
		}
		if !isNameChar(c) {
			return false
		}
	}
	return true
}

func isNameChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' || c == '\\' || c == '?'
}
