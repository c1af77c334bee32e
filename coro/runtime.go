package coro

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/XsystemH/ToyCO/internal/gid"
)

// binding records which task and which Mctx a goroutine currently belongs
// to; it is the Go-native substitute for the per-thread current_g/current_m
// locals of the spec's C original, keyed by the asking goroutine's id
// rather than by OS thread.
type binding struct {
	task *Task
	mc   *Mctx
}

// Runtime is the process-wide singleton described in spec.md §3. There is
// exactly one; it is lazily bootstrapped on first use.
type Runtime struct {
	once sync.Once

	mu         sync.Mutex // guards processors/machines growth (Open Question 4)
	processors []*Processor
	machines   []*Mctx

	gomaxprocs atomic.Int32

	global globalQueue
	death  deathQueue

	bindings sync.Map // uint64 (gid) -> *binding

	rngMu sync.Mutex
	rng   *rand.Rand

	mainTask *Task

	// coThreadMu serializes CoThread registration, per Open Question 4:
	// "co_thread updates num_processors/num_machines without
	// synchronization... serialize co_thread with a dedicated mutex."
	coThreadMu sync.Mutex
}

var rt = &Runtime{}

func ensure() { rt.once.Do(bootstrap) }

// Bootstrap runs the one-shot process-wide initialization described in
// spec.md §4.1. Calling it explicitly is optional — every public entry
// point calls it lazily — but is provided so callers can pin the moment
// initialization happens (e.g. to call SetGOMAXPROCS before any task runs).
func Bootstrap() { ensure() }

func bootstrap() {
	rt.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	rt.gomaxprocs.Store(int32(runtime.NumCPU()))

	mainP := newProcessor(0)
	mainMc := newMctx(0, rt, mainP)
	rt.processors = append(rt.processors, mainP)
	rt.machines = append(rt.machines, mainMc)

	mainTask := newTask("main", nil, nil)
	mainTask.status = StatusRunning
	mainTask.gid = gid.Get()
	mainMc.current = mainTask
	rt.mainTask = mainTask
	rt.bindings.Store(mainTask.gid, &binding{task: mainTask, mc: mainMc})

	// The main task is already running on the calling goroutine with no
	// scheduler loop yet watching its M — start one, but it must not
	// call schedule() until the main task's first suspension, or it
	// would pick a second task while main is still live on mc0.
	go mainMc.loopFromRunning()

	log().Info().Int("gomaxprocs", int(rt.gomaxprocs.Load())).Msg("bootstrap complete")
}

// Teardown runs the process-exit cleanup described in spec.md §4.1: it
// reclaims everything on the death queue regardless of generation or
// reference count (the process is exiting, so no joiner can still be
// racing a reclaim) and drops the additional processors/machines CoThread
// registered. Tasks still alive are leaked deliberately, per spec.
func Teardown() {
	rt.death.sweepAll() // reclaim every entry regardless of generation or refCount; process is exiting
	rt.mu.Lock()
	if len(rt.processors) > 1 {
		rt.processors = rt.processors[:1]
	}
	if len(rt.machines) > 1 {
		rt.machines = rt.machines[:1]
	}
	rt.mu.Unlock()
	log().Info().Msg("teardown complete")
}

func (rt *Runtime) randInt() int {
	rt.rngMu.Lock()
	defer rt.rngMu.Unlock()
	return rt.rng.Int()
}

// callerBinding returns the calling goroutine's task/Mctx binding,
// lazily creating one via bindCaller if this is the first time this
// goroutine has touched the runtime — e.g. a test's root goroutine, or
// any other caller that was never itself Spawned. Every caller therefore
// has a real binding: Yield/Wait can always park it properly instead of
// silently no-op'ing.
func callerBinding() *binding {
	if v, ok := rt.bindings.Load(gid.Get()); ok {
		return v.(*binding)
	}
	return bindCaller()
}

// callerMctx returns the Mctx of the calling goroutine.
func callerMctx() *Mctx {
	return callerBinding().mc
}

// bindCaller registers the calling goroutine as a new root task with its
// own dedicated P and M, the same shape bootstrap gives the very first
// caller (rt.mainTask) — generalized to every later unbound root
// goroutine instead of just the first. Its scheduler loop starts in
// loopFromRunning, since this goroutine is already "running" the new
// task inline rather than being launched by a scheduler.
func bindCaller() *binding {
	rt.mu.Lock()
	id := len(rt.processors)
	p := newProcessor(id)
	mc := newMctx(id, rt, p)
	rt.processors = append(rt.processors, p)
	rt.machines = append(rt.machines, mc)
	rt.mu.Unlock()

	t := newTask("root", nil, nil)
	t.status = StatusRunning
	t.gid = gid.Get()
	mc.current = t
	b := &binding{task: t, mc: mc}
	rt.bindings.Store(t.gid, b)

	go mc.loopFromRunning()
	log().Debug().Int("p", id).Msg("bound new root caller")
	return b
}

// enqueueSpawned implements spec.md §4.2's insertion policy: calling P's
// private deque, else its public deque, else the global queue.
func (rt *Runtime) enqueueSpawned(p *Processor, t *Task) {
	if p.private.push(t) {
		return
	}
	rt.enqueuePublic(p, t)
}

// enqueuePublic implements the public-deque-with-global-overflow policy
// shared by Yield's reinsertion and a completed task's waiter wake-up.
func (rt *Runtime) enqueuePublic(p *Processor, t *Task) {
	if p.public.push(t) {
		return
	}
	rt.global.push(t)
}

// Spawn allocates a task and inserts it per spec.md §4.2. It never blocks.
func Spawn(name string, entry func(any), arg any) *Task {
	ensure()
	rt.death.sweep(deathSweepBatch)

	t := newTask(name, entry, arg)
	mc := callerMctx()
	rt.enqueueSpawned(mc.processor, t)
	log().Debug().Str("task", name).Int("p", mc.processor.ID).Msg("spawn")
	return t
}

// Yield implements spec.md §4.3.
func Yield() {
	ensure()
	b := callerBinding()
	t, mc := b.task, b.mc
	if t.Status() == StatusRunning {
		rt.enqueuePublic(mc.processor, t)
	}
	log().Debug().Str("task", t.Name).Msg("yield")
	mc.schedCh <- struct{}{}
	<-t.resume
}

// Wait implements spec.md §4.4.
func Wait(target *Task) {
	ensure()
	if target == nil {
		panic("coro: wait called with a nil target")
	}
	b := callerBinding()
	t, mc := b.task, b.mc
	if target == t {
		panic("coro: a task cannot wait on itself")
	}

	target.mu.Lock()
	switch target.status {
	case StatusDead:
		target.mu.Unlock()
		return
	case StatusReclaimed:
		target.mu.Unlock()
		panic("coro: wait called on a reclaimed task handle")
	}
	target.refCount.Add(1)
	target.waiters.PushBack(t)
	target.mu.Unlock()

	t.mu.Lock()
	t.status = StatusWaiting
	t.mu.Unlock()

	log().Debug().Str("task", t.Name).Str("target", target.Name).Msg("wait")
	mc.schedCh <- struct{}{}
	<-t.resume
	target.refCount.Add(-1)
}

// GetGOMAXPROCS returns the current cap on the number of Ms.
func GetGOMAXPROCS() int {
	ensure()
	return int(rt.gomaxprocs.Load())
}

// SetGOMAXPROCS sets the cap on the number of Ms; out-of-range values are
// silently ignored, per spec.md §6.
func SetGOMAXPROCS(n int) {
	ensure()
	if n < 1 || n > MaxProcessors {
		return
	}
	rt.gomaxprocs.Store(int32(n))
}

// CoThread implements spec.md §4.9/§6: allocates a P and M, registers them
// under the configured cap, pushes a wrapper task for routine onto the new
// P's private deque, and starts a detached goroutine running the M loop.
func CoThread(routine func(any) any, arg any) int {
	ensure()
	rt.coThreadMu.Lock()
	defer rt.coThreadMu.Unlock()

	rt.mu.Lock()
	n := len(rt.processors)
	if n >= MaxProcessors || int32(n) >= rt.gomaxprocs.Load() {
		rt.mu.Unlock()
		log().Warn().Int("processors", n).Msg("co_thread: at capacity")
		return -1
	}
	p := newProcessor(n)
	mc := newMctx(n, rt, p)
	rt.processors = append(rt.processors, p)
	rt.machines = append(rt.machines, mc)
	rt.mu.Unlock()

	wrapper := newTask("co_thread", func(a any) { routine(a) }, arg)
	p.private.push(wrapper)

	go mc.loop()
	log().Info().Int("m", mc.id).Msg("co_thread: started")
	return 0
}
