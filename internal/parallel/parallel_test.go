package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		pool := NewPool(workers)

		for _, n := range []int{0, 1, 2, 7, 100, 1001} {
			hits := make([]int32, n)
			pool.For(n, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				assert.Equal(t, int32(1), h, "workers=%d n=%d i=%d", workers, n, i)
			}
		}

		pool.Close()
	}
}

func TestPool_ClosedAndNilRunInline(t *testing.T) {
	pool := NewPool(4)
	pool.Close()
	pool.Close()

	var calls int
	pool.For(10, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)

	var nilPool *Pool
	nilPool.For(3, func(start, end int) { calls++ })
	assert.Equal(t, 2, calls)
}

func TestPool_ConcurrentCallers(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.For(1000, func(start, end int) {
				total.Add(int64(end - start))
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(8000), total.Load())
}

func TestPool_CloseDuringFor(t *testing.T) {
	for range 50 {
		pool := NewPool(4)

		var total atomic.Int64
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					pool.For(64, func(start, end int) {
						total.Add(int64(end - start))
					})
				}
			}()
		}

		pool.Close()
		wg.Wait()

		assert.Equal(t, int64(4*20*64), total.Load())
	}
}

func TestJoiner_RunsAllTasks(t *testing.T) {
	for _, forks := range []int64{0, 1, 2, 16} {
		j := NewJoiner(forks)
		results := make([]int, 5)
		tasks := make([]func(), len(results))
		for i := range tasks {
			tasks[i] = func() { results[i] = i * i }
		}

		j.Join(tasks...)
		assert.Equal(t, []int{0, 1, 4, 9, 16}, results, "forks=%d", forks)
	}
}

func TestJoiner_NestedJoinsDoNotDeadlock(t *testing.T) {
	j := NewJoiner(2)

	var leaves atomic.Int64
	var recurse func(depth int)
	recurse = func(depth int) {
		if depth == 0 {
			leaves.Add(1)
			return
		}
		j.Join(
			func() { recurse(depth - 1) },
			func() { recurse(depth - 1) },
			func() { recurse(depth - 1) },
		)
	}

	recurse(5)
	assert.Equal(t, int64(243), leaves.Load())
}

func TestJoiner_NilAndEmpty(t *testing.T) {
	var j *Joiner
	order := []int{}
	j.Join(func() { order = append(order, 1) }, func() { order = append(order, 2) })
	assert.Equal(t, []int{1, 2}, order)

	NewJoiner(4).Join()
}
