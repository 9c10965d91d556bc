package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pool represents a pool of workers, used for parallelizing rejection sampling
// and independent verification checks.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
//
// Searches are served by long-lived workers, so that prime generation does not
// pay for spinning up goroutines on every call.
type Pool struct {
	// searches is the common channel used to hand search jobs to the workers.
	searches chan *search
	// workerCount is the number of goroutines started by NewPool
	workerCount int
	closeOnce   sync.Once
}

// search is shared by every worker taking part in the same Search call.
type search struct {
	f func() interface{}
	// remaining counts results that still need to be produced
	remaining int64
	results   []interface{}
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		searches:    make(chan *search),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go p.worker()
	}
	return p
}

// TearDown stops the workers of the pool. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		close(p.searches)
	})
}

// Workers returns the number of goroutines used by the pool, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

func (p *Pool) worker() {
	for s := range p.searches {
		s.run()
		s.wg.Done()
	}
}

// run keeps evaluating f until enough successes have been collected.
func (s *search) run() {
	for atomic.LoadInt64(&s.remaining) > 0 {
		res := s.f()
		if res == nil {
			continue
		}
		i := atomic.AddInt64(&s.remaining, -1)
		if i < 0 {
			return
		}
		s.results[i] = res
		if i == 0 {
			close(s.done)
		}
	}
}

// Search queries the function f, until count successes are found.
//
// f is supposed to try a single candidate, returning nil if that candidate isn't
// successful.
//
// The result will be a slice containing the first count successes.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	results := make([]interface{}, count)
	if count <= 0 {
		return results
	}
	if p == nil {
		for i := range results {
			for results[i] == nil {
				results[i] = f()
			}
		}
		return results
	}

	s := &search{
		f:         f,
		remaining: int64(count),
		results:   results,
		done:      make(chan struct{}),
	}
	s.wg.Add(p.workerCount)
	for i := 0; i < p.workerCount; i++ {
		p.searches <- s
	}
	<-s.done
	// wait for stragglers, so that no worker still writes into results
	s.wg.Wait()
	return results
}

// Parallelize calls f count times, passing in indices from 0..count-1.
// At most Workers() calls run at the same time.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	results := make([]interface{}, count)
	if p == nil {
		for i := range results {
			results[i] = f(i)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.workerCount)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			results[i] = f(i)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// This means acquiring a lock whenever a read happens, so be aware of that
// for performance or concurrency reasons.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}
