package parallel

import (
	"runtime"
	"sync"
)

// Pool is a persistent worker pool reused across evaluations.
type Pool struct {
	numWorkers int
	workC      chan workItem

	mu     sync.RWMutex // held shared while For queues work, exclusively by Close
	closed bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// NewPool spawns numWorkers workers. If numWorkers <= 0, uses GOMAXPROCS.
// A pool with a single worker runs everything on the calling goroutine.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	// The caller takes one range itself.
	for range numWorkers - 1 {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the parallelism of the pool, including the caller.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the workers down. For falls back to sequential execution
// afterwards. Close may run concurrently with For; ranges already queued
// still complete. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// For executes fn over [0, n) split into contiguous ranges and blocks until
// every range completes. A nil Pool runs fn(0, n) inline.
func (p *Pool) For(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p == nil {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := chunk; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	p.mu.RUnlock()

	fn(0, min(chunk, n))
	wg.Wait()
}
