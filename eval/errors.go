package eval

import (
	"errors"
	"fmt"

	"github.com/hupe1980/odcalc/model"
)

var (
	// ErrTypeMismatch is returned when operands have incompatible kinds,
	// dimensions, directions or categories.
	ErrTypeMismatch = errors.New("eval: type mismatch")

	// ErrUnsupported is returned for operand combinations that are not
	// implemented.
	ErrUnsupported = errors.New("eval: unsupported operation")

	// ErrMissingDataSource is returned when no data source matches a name.
	ErrMissingDataSource = errors.New("eval: missing data source")

	// ErrMemoryBudget is returned when an intermediate buffer does not fit
	// the configured memory budget.
	ErrMemoryBudget = errors.New("eval: memory budget exceeded")
)

// MissingDataSourceError reports a variable no data source provides.
type MissingDataSourceError struct {
	Name string
}

func (e *MissingDataSourceError) Error() string {
	return fmt.Sprintf("eval: no data source for %q", e.Name)
}

func (e *MissingDataSourceError) Unwrap() error {
	return ErrMissingDataSource
}

// TypeMismatchError reports operands an operation cannot combine. Err, when
// set, is the underlying cause such as model.ErrIncompatibleCategories.
type TypeMismatchError struct {
	Op     string
	Detail string
	Err    error
}

func (e *TypeMismatchError) Error() string {
	if e.Op == "" {
		return "eval: type mismatch: " + e.Detail
	}
	return fmt.Sprintf("eval: type mismatch in %s: %s", e.Op, e.Detail)
}

func (e *TypeMismatchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeMismatch}
	}
	return []error{ErrTypeMismatch, e.Err}
}

func mismatch(op, format string, args ...any) error {
	return &TypeMismatchError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

func incompatible(op string) error {
	return &TypeMismatchError{Op: op, Detail: "categories differ", Err: model.ErrIncompatibleCategories}
}
