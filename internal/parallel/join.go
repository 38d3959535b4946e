package parallel

import (
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Joiner runs groups of independent tasks, forking at most a bounded number
// of goroutines across all concurrent joins.
type Joiner struct {
	slots *semaphore.Weighted
}

// NewJoiner creates a Joiner allowing maxForks forked tasks at once.
// If maxForks <= 0, every task runs inline.
func NewJoiner(maxForks int64) *Joiner {
	if maxForks <= 0 {
		return &Joiner{}
	}
	return &Joiner{slots: semaphore.NewWeighted(maxForks)}
}

// Join runs every task and returns once all of them have completed. The
// first task always runs on the calling goroutine. A nil Joiner runs tasks
// sequentially in order.
func (j *Joiner) Join(tasks ...func()) {
	if len(tasks) == 0 {
		return
	}

	if j == nil || j.slots == nil || len(tasks) == 1 {
		for _, task := range tasks {
			task()
		}
		return
	}

	var g errgroup.Group
	for _, task := range tasks[1:] {
		if !j.slots.TryAcquire(1) {
			task()
			continue
		}

		g.Go(func() error {
			defer j.slots.Release(1)
			task()
			return nil
		})
	}

	tasks[0]()
	_ = g.Wait()
}
