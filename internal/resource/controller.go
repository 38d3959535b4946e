package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a buffer reservation does not fit
// the remaining memory budget.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// MemoryLimitError describes a rejected buffer reservation.
type MemoryLimitError struct {
	Requested int64
	InUse     int64
	Limit     int64
}

func (e *MemoryLimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded: need %d bytes, %d of %d in use", e.Requested, e.InUse, e.Limit)
}

func (e *MemoryLimitError) Unwrap() error { return ErrMemoryLimitExceeded }

// Config holds evaluation limits. Zero values disable the limit.
type Config struct {
	// MemoryLimitBytes caps intermediate buffers across all in-flight
	// evaluations.
	MemoryLimitBytes int64

	// MaxConcurrentEvaluations bounds evaluations running at the same time.
	MaxConcurrentEvaluations int64

	// EvaluationsPerSecond throttles how fast evaluations may start.
	EvaluationsPerSecond float64

	// Burst is the number of evaluations that may start back to back.
	// Defaults to 1.
	Burst int
}

// Controller admits evaluations and budgets their buffers.
type Controller struct {
	limit int64

	mem     *semaphore.Weighted
	inUse   atomic.Int64
	peak    atomic.Int64
	slots   *semaphore.Weighted
	limiter *rate.Limiter
}

// NewController creates a Controller for cfg.
func NewController(cfg Config) *Controller {
	c := &Controller{limit: max(cfg.MemoryLimitBytes, 0)}

	if cfg.MemoryLimitBytes > 0 {
		c.mem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.MaxConcurrentEvaluations > 0 {
		c.slots = semaphore.NewWeighted(cfg.MaxConcurrentEvaluations)
	}
	if cfg.EvaluationsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.EvaluationsPerSecond), max(cfg.Burst, 1))
	}

	return c
}

// Admit waits for the rate limiter and then for a free evaluation slot.
// The returned release function frees the slot and must be called once.
func (c *Controller) Admit(ctx context.Context) (release func(), err error) {
	if c == nil {
		return func() {}, nil
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if c.slots == nil {
		return func() {}, nil
	}
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { c.slots.Release(1) }, nil
}

// AcquireMemory reserves bytes without blocking. It fails with a
// *MemoryLimitError when the budget is exhausted.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.mem != nil && !c.mem.TryAcquire(bytes) {
		return &MemoryLimitError{Requested: bytes, InUse: c.inUse.Load(), Limit: c.limit}
	}

	used := c.inUse.Add(bytes)
	for {
		p := c.peak.Load()
		if used <= p || c.peak.CompareAndSwap(p, used) {
			break
		}
	}
	return nil
}

// ReleaseMemory returns bytes to the budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.mem != nil {
		c.mem.Release(bytes)
	}
	c.inUse.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.inUse.Load()
}

// PeakMemoryUsage returns the highest reservation level seen so far.
func (c *Controller) PeakMemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.peak.Load()
}

// MemoryLimit returns the budget in bytes, 0 if unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}
