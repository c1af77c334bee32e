package coro

import (
	"time"

	"github.com/XsystemH/ToyCO/internal/gid"
)

// popPrivate implements spec.md §4.5's private-deque pop-with-refill: if
// empty, the entirety of the public deque is transferred in first.
func (rt *Runtime) popPrivate(p *Processor) *Task {
	if p.private.len() == 0 {
		for _, t := range p.public.drainAll() {
			if !p.private.push(t) {
				rt.global.push(t)
			}
		}
	}
	if p.private.len() == 0 {
		return nil
	}
	t, _ := p.private.popRandom(rt.randInt())
	return t
}

// steal implements spec.md §4.6 step 2: a random rotation across peer Ps,
// draining the first non-empty public deque found into our own private
// deque, then popping from there. Stops after one successful steal.
func (rt *Runtime) steal(mc *Mctx) *Task {
	rt.mu.Lock()
	procs := make([]*Processor, len(rt.processors))
	copy(procs, rt.processors)
	rt.mu.Unlock()

	n := len(procs)
	if n <= 1 {
		return nil
	}
	start := rt.randInt() % n
	for i := 0; i < n; i++ {
		peer := procs[(start+i)%n]
		if peer == mc.processor {
			continue
		}
		drained := peer.public.drainAll()
		if len(drained) == 0 {
			continue
		}
		for _, t := range drained {
			if !mc.processor.private.push(t) {
				rt.global.push(t)
			}
		}
		return rt.popPrivate(mc.processor)
	}
	return nil
}

// schedule implements spec.md §4.6. It always runs on the M's own
// scheduler-loop goroutine (the Go-native g0, resolving Open Question 1):
// user task goroutines never call schedule directly, they only hand off
// via mc.schedCh and park on their own resume channel, so "no work found"
// can never mean "the parked task keeps running".
func (rt *Runtime) schedule(mc *Mctx) bool {
	t := rt.popPrivate(mc.processor)
	if t == nil {
		t = rt.steal(mc)
	}
	if t == nil {
		if pt, ok := rt.global.popRandom(rt.randInt()); ok {
			t = pt
		}
	}
	if t == nil {
		mc.spinning.Store(true)
		return false
	}
	mc.spinning.Store(false)
	mc.current = t

	if t.Status() == StatusNew {
		t.mu.Lock()
		t.status = StatusRunning
		t.mu.Unlock()
		go rt.runTask(t, mc)
	} else {
		rt.bindings.Store(t.gid, &binding{task: t, mc: mc})
		t.resume <- struct{}{}
	}

	<-mc.schedCh
	mc.current = nil
	return true
}

// loop is the M loop of spec.md §4.8, for any M whose P has no
// already-running task when the goroutine starts (the Ms CoThread
// creates).
func (mc *Mctx) loop() {
	for {
		if mc.spinning.Load() {
			time.Sleep(IdleSleep)
			mc.spinning.Store(false)
			continue
		}
		mc.rt.schedule(mc)
	}
}

// loopFromRunning is the variant for the bootstrap M and for every M that
// bindCaller creates: the main or root task is already executing on the
// calling goroutine when this starts, so the first thing this loop does
// is simply wait for that task's first suspension before falling into
// the ordinary loop.
func (mc *Mctx) loopFromRunning() {
	<-mc.schedCh
	mc.current = nil
	mc.loop()
}

// runTask is the trampoline of spec.md §4.7: first entry point for every
// spawned task's dedicated goroutine.
func (rt *Runtime) runTask(t *Task, mc *Mctx) {
	t.gid = gid.Get()
	rt.bindings.Store(t.gid, &binding{task: t, mc: mc})
	log().Debug().Str("task", t.Name).Msg("task entering")

	t.entry(t.arg)

	t.mu.Lock()
	t.status = StatusDead
	waiters := t.waiters.DrainAll()
	t.mu.Unlock()

	v, _ := rt.bindings.Load(t.gid)
	cur := v.(*binding).mc
	for _, w := range waiters {
		w.mu.Lock()
		w.status = StatusRunning
		w.mu.Unlock()
		rt.enqueuePublic(cur.processor, w)
	}
	rt.death.push(t)
	log().Debug().Str("task", t.Name).Int("waiters_woken", len(waiters)).Msg("task done")

	rt.bindings.Delete(t.gid)
	cur.schedCh <- struct{}{}
}
