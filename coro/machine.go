package coro

import "sync/atomic"

// Mctx is an M: a kernel thread bound 1:1 to a P for that P's lifetime.
// In Go terms the M's own goroutine running the scheduler loop is the
// thread stand-in — there is no separate raw thread handle to hold,
// since that loop goroutine's lifetime already tracks an OS thread the
// Go runtime schedules it onto.
type Mctx struct {
	id        int
	rt        *Runtime
	processor *Processor
	spinning  atomic.Bool

	// schedCh is the handoff channel the currently-hosted task's
	// goroutine signals to return control to this M's scheduler loop.
	// Buffered 1: exactly one handoff is ever pending at a time, since
	// at most one task is ever hosted by a given M.
	schedCh chan struct{}

	// current is the task this M is presently hosting (running or
	// about to resume), or nil between tasks.
	current *Task
}

func newMctx(id int, rt *Runtime, p *Processor) *Mctx {
	mc := &Mctx{id: id, rt: rt, processor: p, schedCh: make(chan struct{}, 1)}
	p.machine = mc
	return mc
}
