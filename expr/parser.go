package expr

import (
	"fmt"
	"strings"
)

// Parse builds the unoptimized tree for src.
func Parse(src string) (Node, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &CompileError{Pos: 0, Msg: "empty formula", Err: ErrEmptyFormula}
	}

	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind != tokEOF {
		return nil, errorf(t.pos, "unexpected %s", describe(t))
	}
	return n, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, errorf(t.pos, "expected %s, found %s", kind, describe(t))
	}
	return t, nil
}

// binaryLevel parses one left-associative precedence level.
func (p *parser) binaryLevel(operand func() (Node, error), ops map[tokenKind]BinaryOp) (Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek().kind]
		if !ok {
			return left, nil
		}
		p.next()

		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

var (
	orOps       = map[tokenKind]BinaryOp{tokOr: OpOr}
	andOps      = map[tokenKind]BinaryOp{tokAnd: OpAnd}
	equalityOps = map[tokenKind]BinaryOp{tokEq: OpEqual, tokNe: OpNotEqual}
	relationOps = map[tokenKind]BinaryOp{tokLt: OpLess, tokLe: OpLessEqual, tokGt: OpGreater, tokGe: OpGreaterEqual}
	additiveOps = map[tokenKind]BinaryOp{tokPlus: OpAdd, tokMinus: OpSubtract}
	productOps  = map[tokenKind]BinaryOp{tokStar: OpMultiply, tokSlash: OpDivide}
)

func (p *parser) parseOr() (Node, error)  { return p.binaryLevel(p.parseAnd, orOps) }
func (p *parser) parseAnd() (Node, error) { return p.binaryLevel(p.parseEquality, andOps) }

func (p *parser) parseEquality() (Node, error) {
	return p.binaryLevel(p.parseRelation, equalityOps)
}

func (p *parser) parseRelation() (Node, error) {
	return p.binaryLevel(p.parseAdditive, relationOps)
}

func (p *parser) parseAdditive() (Node, error) {
	return p.binaryLevel(p.parseProduct, additiveOps)
}

func (p *parser) parseProduct() (Node, error) {
	return p.binaryLevel(p.parseExponent, productOps)
}

// parseExponent is right associative: a ^ b ^ c is a ^ (b ^ c).
func (p *parser) parseExponent() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()

	exp, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpExponent, Left: base, Right: exp}, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().kind != tokMinus {
		return p.parsePrimary()
	}
	p.next()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Negate{Operand: operand}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()

	switch t.kind {
	case tokNumber:
		return &Literal{Value: t.num}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(t)
		}
		return &Variable{Name: t.text}, nil
	case tokLParen:
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, errorf(t.pos, "unexpected %s", describe(t))
	}
}

func (p *parser) parseCall(name token) (Node, error) {
	fn, ok := LookupFunction(name.text)
	if !ok {
		return nil, &CompileError{
			Pos: name.pos,
			Msg: fmt.Sprintf("undefined function %q", name.text),
			Err: &UndefinedFunctionError{Name: name.text, Pos: name.pos},
		}
	}

	p.next() // (

	var args []Node
	if p.peek().kind != tokRParen {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	if len(args) != fn.Arity() {
		return nil, &CompileError{
			Pos: name.pos,
			Msg: fmt.Sprintf("%s expects %d argument(s), got %d", fn, fn.Arity(), len(args)),
			Err: ErrArity,
		}
	}

	return &Call{Func: fn, Args: args}, nil
}

func describe(t token) string {
	switch t.kind {
	case tokEOF:
		return "end of formula"
	case tokNumber, tokIdent:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	default:
		return t.kind.String()
	}
}
