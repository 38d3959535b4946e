// Package parallel provides the two kinds of concurrency evaluation uses.
//
// # Row Parallelism
//
// Pool is a persistent worker pool. For splits [0, n) into contiguous
// ranges, one per worker, and blocks until all of them are done. The calling
// goroutine processes the first range itself. Functions passed to For must
// not call For again; kernels are leaves.
//
//	pool := parallel.NewPool(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.For(rows, func(start, end int) {
//	    for r := start; r < end; r++ {
//	        simd.Add(dst.Row(r), a.Row(r), b.Row(r))
//	    }
//	})
//
// # Fork-Join
//
// Joiner runs independent subtree evaluations concurrently. Tasks beyond the
// first are forked onto goroutines while fork slots are free and run inline
// otherwise, so nested joins can never wait on each other.
package parallel
