package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by errors for malformed formula text.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrEmptyFormula is returned for blank formula text.
	ErrEmptyFormula = errors.New("expr: empty formula")

	// ErrUndefinedFunction is wrapped by errors for unknown function names.
	ErrUndefinedFunction = errors.New("expr: undefined function")

	// ErrArity is wrapped by errors for calls with the wrong argument count.
	ErrArity = errors.New("expr: wrong number of arguments")
)

// UndefinedFunctionError reports a call to a name outside the function set.
type UndefinedFunctionError struct {
	Name string
	Pos  int
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("expr: undefined function %q at position %d", e.Name, e.Pos)
}

func (e *UndefinedFunctionError) Unwrap() error {
	return ErrUndefinedFunction
}

// CompileError reports a malformed formula and the byte offset the problem
// was detected at.
type CompileError struct {
	Pos int
	Msg string
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("expr: compile error at position %d: %s", e.Pos, e.Msg)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func errorf(pos int, format string, args ...any) *CompileError {
	return &CompileError{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: ErrSyntax}
}
