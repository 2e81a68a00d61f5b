package gen

import (
	"errors"
	"sync"
)

// Pool is a bounded worker pool shared by every fan-out stage in a run.
// It is created once by the runner and closed when the run ends.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{tasks: make(chan func())}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for fn := range p.tasks {
				fn()
			}
		}()
	}
	return p
}

// Map runs fn(0..n-1) across the pool and blocks until every call has
// finished. A failing call does not stop its siblings; the joined error
// of all failures is returned after the barrier.
func (p *Pool) Map(n int, fn func(i int) error) error {
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		p.tasks <- func() {
			defer wg.Done()
			errs[i] = fn(i)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
