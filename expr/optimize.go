package expr

import (
	"fmt"
	"math"
)

// Optimize rewrites n bottom-up and returns the new tree. n is not modified.
func Optimize(n Node) Node {
	switch n := n.(type) {
	case *Literal, *Variable:
		return n
	case *Negate:
		operand := Optimize(n.Operand)
		if lit, ok := operand.(*Literal); ok {
			return &Literal{Value: -lit.Value}
		}
		return &Negate{Operand: operand}
	case *Binary:
		return optimizeBinary(n.Op, Optimize(n.Left), Optimize(n.Right))
	case *Call:
		return optimizeCall(n)
	case *FusedMultiplyAdd:
		return &FusedMultiplyAdd{
			Mul1: Optimize(n.Mul1),
			Mul2: Optimize(n.Mul2),
			Add:  Optimize(n.Add),
		}
	default:
		panic(fmt.Sprintf("expr: unhandled node %T", n))
	}
}

func optimizeBinary(op BinaryOp, left, right Node) Node {
	l, lok := left.(*Literal)
	r, rok := right.(*Literal)
	if lok && rok {
		return &Literal{Value: op.Apply(l.Value, r.Value)}
	}

	if op == OpDivide && rok {
		return &Binary{Op: OpMultiply, Left: left, Right: &Literal{Value: 1 / r.Value}}
	}

	if op == OpAdd {
		if m, ok := left.(*Binary); ok && m.Op == OpMultiply {
			return &FusedMultiplyAdd{Mul1: m.Left, Mul2: m.Right, Add: right}
		}
		if m, ok := right.(*Binary); ok && m.Op == OpMultiply {
			return &FusedMultiplyAdd{Mul1: m.Left, Mul2: m.Right, Add: left}
		}
	}

	return &Binary{Op: op, Left: left, Right: right}
}

func optimizeCall(n *Call) Node {
	switch n.Func {
	case FuncE:
		return &Literal{Value: math.E}
	case FuncPI:
		return &Literal{Value: math.Pi}
	}

	args := make([]Node, len(n.Args))
	for i, a := range n.Args {
		args[i] = Optimize(a)
	}
	return &Call{Func: n.Func, Args: args}
}
