package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is an expression tree node. The set of implementations is closed.
type Node interface {
	fmt.Stringer
	node()
}

// Literal is a numeric constant.
type Literal struct {
	Value float32
}

// Variable references a data source by name.
type Variable struct {
	Name string
}

// Negate is unary minus.
type Negate struct {
	Operand Node
}

// Binary applies an infix operator.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
}

// Call invokes a built-in function.
type Call struct {
	Func Function
	Args []Node
}

// FusedMultiplyAdd computes Mul1 * Mul2 + Add.
type FusedMultiplyAdd struct {
	Mul1 Node
	Mul2 Node
	Add  Node
}

func (*Literal) node()          {}
func (*Variable) node()         {}
func (*Negate) node()           {}
func (*Binary) node()           {}
func (*Call) node()             {}
func (*FusedMultiplyAdd) node() {}

func (n *Literal) String() string {
	return strconv.FormatFloat(float64(n.Value), 'g', -1, 32)
}

func (n *Variable) String() string { return n.Name }

func (n *Negate) String() string { return "-" + n.Operand.String() }

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Func.String() + "(" + strings.Join(args, ", ") + ")"
}

func (n *FusedMultiplyAdd) String() string {
	return "fma(" + n.Mul1.String() + ", " + n.Mul2.String() + ", " + n.Add.String() + ")"
}

// BinaryOp is an infix operator.
type BinaryOp uint8

// Binary operators.
const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpExponent
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
)

var opSymbols = [...]string{
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpExponent:     "^",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAnd:          "&",
	OpOr:           "|",
}

// String returns the operator symbol.
func (op BinaryOp) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return fmt.Sprintf("op(%d)", op)
}

// IsComparison reports whether op is one of == != < <= > >=.
func (op BinaryOp) IsComparison() bool {
	return op >= OpEqual && op <= OpGreaterEqual
}

// IsLogical reports whether op is & or |.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// Apply evaluates the operator on two scalars. Comparisons and logical
// operators yield 1 or 0; an operand is true when it is greater than zero.
func (op BinaryOp) Apply(a, b float32) float32 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		return a / b
	case OpExponent:
		return float32(math.Pow(float64(a), float64(b)))
	case OpEqual:
		return truth(a == b)
	case OpNotEqual:
		return truth(a != b)
	case OpLess:
		return truth(a < b)
	case OpLessEqual:
		return truth(a <= b)
	case OpGreater:
		return truth(a > b)
	case OpGreaterEqual:
		return truth(a >= b)
	case OpAnd:
		return truth(a > 0 && b > 0)
	case OpOr:
		return truth(a > 0 || b > 0)
	default:
		panic(fmt.Sprintf("expr: unknown operator %d", op))
	}
}

func truth(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
