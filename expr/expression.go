package expr

import "slices"

// Expression is a compiled formula. It is immutable and safe to evaluate
// concurrently.
type Expression struct {
	text      string
	root      Node
	variables []string
}

// Compile parses, validates and optimizes src.
func Compile(src string) (*Expression, error) {
	tree, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return &Expression{
		text:      src,
		root:      Optimize(tree),
		variables: Variables(tree),
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Expression {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Text returns the source formula.
func (e *Expression) Text() string { return e.text }

// Root returns the optimized tree.
func (e *Expression) Root() Node { return e.root }

// Variables returns the distinct variable names in the order they first
// appear in the formula text.
func (e *Expression) Variables() []string { return slices.Clone(e.variables) }

// String returns the optimized tree in prefix form.
func (e *Expression) String() string { return e.root.String() }

// Variables returns the distinct variable names referenced by n in
// left-to-right order of first use.
func Variables(n Node) []string {
	var names []string
	seen := map[string]bool{}

	Walk(n, func(n Node) {
		if v, ok := n.(*Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	})
	return names
}

// Walk calls fn for n and then for each descendant, depth first, left to
// right.
func Walk(n Node, fn func(Node)) {
	fn(n)

	switch n := n.(type) {
	case *Literal, *Variable:
	case *Negate:
		Walk(n.Operand, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *FusedMultiplyAdd:
		Walk(n.Mul1, fn)
		Walk(n.Mul2, fn)
		Walk(n.Add, fn)
	}
}
