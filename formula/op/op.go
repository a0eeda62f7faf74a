package op

type Op rune

const (
	Invalid Op = 0

	Add Op = 1 << iota
	Sub
	Mul
	Div
	Percent
	Pow
	Concat
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	RangeRef
	Intersect
	Union
	Neg
)

const (
	powLowest = iota
	powCompare
	powConcat
	powAdd
	powMul
	powPow
	powPercent
	powUnary
	powRange
)

const (
	Arithmetic = Add | Sub | Mul | Div | Pow
	Comparison = Eq | Ne | Lt | Le | Gt | Ge
	Reference  = RangeRef | Intersect | Union
)

var mapping = map[Op]string{
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Pow:       "^",
	Div:       "/",
	Percent:   "%",
	Concat:    "&",
	Eq:        "=",
	Ne:        "<>",
	Lt:        "<",
	Le:        "<=",
	Gt:        ">",
	Ge:        ">=",
	RangeRef:  ":",
	Intersect: " ",
	Union:     ",",
	Neg:       "-",
}

var bindings = map[Op]int{
	Eq:        powCompare,
	Ne:        powCompare,
	Lt:        powCompare,
	Le:        powCompare,
	Gt:        powCompare,
	Ge:        powCompare,
	Concat:    powConcat,
	Add:       powAdd,
	Sub:       powAdd,
	Mul:       powMul,
	Div:       powMul,
	Pow:       powPow,
	Percent:   powPercent,
	Neg:       powUnary,
	RangeRef:  powRange,
	Intersect: powRange,
	Union:     powRange,
}

var infix = map[string]Op{
	"+":  Add,
	"-":  Sub,
	"*":  Mul,
	"/":  Div,
	"^":  Pow,
	"&":  Concat,
	"=":  Eq,
	"<>": Ne,
	"<":  Lt,
	"<=": Le,
	">":  Gt,
	">=": Ge,
	":":  RangeRef,
	"":   Intersect,
	" ":  Intersect,
	",":  Union,
}

func Symbol(oper Op) string {
	return mapping[oper]
}

// Precedence gives the binding power of an operator; higher binds tighter.
func Precedence(oper Op) int {
	return bindings[oper]
}

// LeftAssoc reports whether the operator groups from the left. Every
// operator of the formula language does.
func LeftAssoc(oper Op) bool {
	return oper != Invalid
}

func Infix(symbol string) (Op, bool) {
	oper, ok := infix[symbol]
	return oper, ok
}

func Prefix(symbol string) (Op, bool) {
	if symbol == "-" {
		return Neg, true
	}
	return Invalid, false
}

func Postfix(symbol string) (Op, bool) {
	if symbol == "%" {
		return Percent, true
	}
	return Invalid, false
}

func IsUnary(oper Op) bool {
	return oper == Neg || oper == Percent
}

func IsReference(oper Op) bool {
	return oper&Reference != 0
}
