package main

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// scanJob is one octant scan queued on the pool. The eight jobs of a cast
// write through disjoint views, so they need no coordination beyond the
// pending count.
type scanJob struct {
	oct       octant
	castRange int
	shape     lightShape
	source    mgl64.Vec3
	visit     visitFunc
}

// scanPool runs octant scans on long-lived worker goroutines. Workers park
// on the cond until jobs arrive; run blocks until the pending count drains
// back to zero. One pool serves every cast in the frame loop, lights
// included, so per-frame goroutine churn stays at zero.
type scanPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []scanJob
	pending int
	started bool
	workers int
}

// newScanPool sizes a pool; workers start lazily on the first run call.
func newScanPool(workers int) *scanPool {
	if workers < 1 {
		workers = 1
	}
	p := &scanPool{workers: workers}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// run enqueues the jobs, wakes the workers, and blocks until every job has
// finished.
func (p *scanPool) run(jobs []scanJob) {
	if len(jobs) == 0 {
		return
	}
	p.mu.Lock()
	p.startLocked()
	p.jobs = append(p.jobs, jobs...)
	p.pending += len(jobs)
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// startLocked launches the worker goroutines once. Callers hold p.mu.
func (p *scanPool) startLocked() {
	if p.started {
		return
	}
	p.started = true
	for i := 0; i < p.workers; i++ {
		go p.workerLoop()
	}
}

// workerLoop pops scan jobs until the process exits. The pending count only
// reaches zero after the popped job has fully run, which is what run waits
// on.
func (p *scanPool) workerLoop() {
	p.mu.Lock()
	for {
		for len(p.jobs) == 0 {
			p.cond.Wait()
		}
		j := p.jobs[len(p.jobs)-1]
		p.jobs = p.jobs[:len(p.jobs)-1]
		p.mu.Unlock()

		scanOctant(j.oct, j.castRange, j.shape, j.source, j.visit)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}
