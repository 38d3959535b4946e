package odcalc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/odcalc/eval"
	"github.com/hupe1980/odcalc/expr"
	"github.com/hupe1980/odcalc/internal/resource"
	"github.com/hupe1980/odcalc/model"
)

var (
	// ErrCompile is matched by every formula compile error.
	ErrCompile = errors.New("compile error")

	// ErrUndefinedFunction is returned for calls outside the function set.
	ErrUndefinedFunction = expr.ErrUndefinedFunction

	// ErrMissingDataSource is returned when no data source matches a variable.
	ErrMissingDataSource = eval.ErrMissingDataSource

	// ErrTypeMismatch is returned for operands that cannot be combined.
	ErrTypeMismatch = eval.ErrTypeMismatch

	// ErrUnsupported is returned for operand combinations without an
	// implementation.
	ErrUnsupported = eval.ErrUnsupported

	// ErrIncompatibleCategories is returned when strict category checking
	// finds operands over different Categories.
	ErrIncompatibleCategories = model.ErrIncompatibleCategories

	// ErrMemoryLimitExceeded is returned when intermediate buffers exceed the
	// configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrUnexpectedResult is returned by the typed Evaluate helpers when the
	// formula produces a different kind of result.
	ErrUnexpectedResult = errors.New("unexpected result kind")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine closed")
)

// MemoryLimitError reports the reservation that did not fit the memory
// limit. It matches ErrMemoryLimitExceeded.
type MemoryLimitError = resource.MemoryLimitError

// CompileError reports a formula that failed to compile.
//
// The original underlying error can be accessed via errors.Unwrap.
type CompileError struct {
	Formula string
	Pos     int
	cause   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q: %v", e.Formula, e.cause)
}

func (e *CompileError) Unwrap() error { return e.cause }

// Is makes errors.Is(err, ErrCompile) hold for every CompileError.
func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// UnexpectedResultError reports the kind a typed helper received.
type UnexpectedResultError struct {
	Want eval.Kind
	Got  eval.Kind
}

func (e *UnexpectedResultError) Error() string {
	return fmt.Sprintf("unexpected result kind: want %s, got %s", e.Want, e.Got)
}

func (e *UnexpectedResultError) Unwrap() error { return ErrUnexpectedResult }

func translateError(formula string, err error) error {
	if err == nil {
		return nil
	}

	var ce *expr.CompileError
	if errors.As(err, &ce) {
		return &CompileError{Formula: formula, Pos: ce.Pos, cause: err}
	}

	// Budget failures surface as ErrMemoryLimitExceeded regardless of which
	// layer rejected the allocation.
	if errors.Is(err, eval.ErrMemoryBudget) && !errors.Is(err, ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
