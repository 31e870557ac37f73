package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool is a fixed set of goroutines running submitted functions. A panic in a submitted function is
// reported to sentry and does not take the worker down.
type Pool struct {
	queue chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts a pool of size workers. A size below one uses the number of CPUs.
func New(size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), size)}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for f := range p.queue {
		run(f)
	}
}

func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run by a worker. To be used by a function that may be CPU intensive.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Run runs every job on the pool and waits for all of them to return.
func (p *Pool) Run(jobs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		job := job
		p.Submit(func() {
			defer wg.Done()
			job()
		})
	}
	wg.Wait()
}

// Close stops the workers once every queued function has run. Submitting to a closed pool panics.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.wg.Wait()
}
