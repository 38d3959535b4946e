package expr

import (
	"fmt"
	"strconv"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
	tokAnd
	tokOr
	tokLParen
	tokRParen
	tokComma
)

var tokenNames = [...]string{
	tokEOF:    "end of formula",
	tokNumber: "number",
	tokIdent:  "name",
	tokPlus:   "'+'",
	tokMinus:  "'-'",
	tokStar:   "'*'",
	tokSlash:  "'/'",
	tokCaret:  "'^'",
	tokEq:     "'=='",
	tokNe:     "'!='",
	tokLt:     "'<'",
	tokLe:     "'<='",
	tokGt:     "'>'",
	tokGe:     "'>='",
	tokAnd:    "'&'",
	tokOr:     "'|'",
	tokLParen: "'('",
	tokRParen: "')'",
	tokComma:  "','",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float32
}

// tokenize splits src into tokens, ending with tokEOF.
func tokenize(src string) ([]token, error) {
	var toks []token

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			end := scanNumber(src, i)
			v, err := strconv.ParseFloat(src[i:end], 32)
			if err != nil {
				return nil, errorf(i, "invalid number %q", src[i:end])
			}
			toks = append(toks, token{kind: tokNumber, pos: i, text: src[i:end], num: float32(v)})
			i = end
			continue
		case isIdentStart(c):
			end := i + 1
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			toks = append(toks, token{kind: tokIdent, pos: i, text: src[i:end]})
			i = end
			continue
		}

		kind, width := operator(src, i)
		if width == 0 {
			return nil, errorf(i, "unexpected character %q", c)
		}
		toks = append(toks, token{kind: kind, pos: i, text: src[i : i+width]})
		i += width
	}

	return append(toks, token{kind: tokEOF, pos: len(src)}), nil
}

func operator(src string, i int) (tokenKind, int) {
	next := byte(0)
	if i+1 < len(src) {
		next = src[i+1]
	}

	switch src[i] {
	case '+':
		return tokPlus, 1
	case '-':
		return tokMinus, 1
	case '*':
		return tokStar, 1
	case '/':
		return tokSlash, 1
	case '^':
		return tokCaret, 1
	case '&':
		return tokAnd, 1
	case '|':
		return tokOr, 1
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case ',':
		return tokComma, 1
	case '=':
		if next == '=' {
			return tokEq, 2
		}
	case '!':
		if next == '=' {
			return tokNe, 2
		}
	case '<':
		if next == '=' {
			return tokLe, 2
		}
		return tokLt, 1
	case '>':
		if next == '=' {
			return tokGe, 2
		}
		return tokGt, 1
	}
	return tokEOF, 0
}

// scanNumber returns the end offset of the number starting at i:
// digits, an optional fraction and an optional exponent.
func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
