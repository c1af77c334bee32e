// Package scenarios implements the six end-to-end scenarios from
// SPEC_FULL.md §8 (S1..S6) as runnable, reusable functions — shared by
// cmd/toyco's demo CLI and the coro package's scenario tests. It sits
// outside coro deliberately: spec.md §1 calls the "CLI/test harnesses"
// external collaborators of the scheduler core, not part of it.
package scenarios

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/XsystemH/ToyCO/coro"
)

// S1Result reports the interleaving observed in the yielders scenario.
type S1Result struct {
	ACount, BCount int
	Sequence       string
}

// S1 spawns two tasks that each print a letter and yield ten times, then
// waits on both. Grounded on the teacher's interleaved-goroutine demos and
// the original C's co_yield loops.
func S1(w io.Writer) S1Result {
	var mu sync.Mutex
	var seq []byte
	emit := func(c byte) {
		mu.Lock()
		seq = append(seq, c)
		mu.Unlock()
	}

	letter := func(c byte) func(any) {
		return func(any) {
			for i := 0; i < 10; i++ {
				emit(c)
				coro.Yield()
			}
		}
	}

	a := coro.Spawn("yielder-a", letter('a'), nil)
	b := coro.Spawn("yielder-b", letter('b'), nil)
	coro.Wait(a)
	fmt.Fprintln(w, "yielder-a: done")
	coro.Wait(b)
	fmt.Fprintln(w, "yielder-b: done")
	fmt.Fprintln(w, "s1: done")

	res := S1Result{Sequence: string(seq)}
	for _, c := range seq {
		if c == 'a' {
			res.ACount++
		} else if c == 'b' {
			res.BCount++
		}
	}
	return res
}

// S2 spawns one target that yields three times then returns, six waiters
// that each Wait on it, then waits on all six itself. Grounded on
// _examples/original_source/test/test_multi_wait.c.
func S2(w io.Writer) (targetDone bool, wakes int) {
	var progress int32
	var done atomic.Bool
	target := coro.Spawn("target", func(any) {
		for i := 0; i < 3; i++ {
			atomic.AddInt32(&progress, 1)
			fmt.Fprintf(w, "target: progress %d/3\n", i+1)
			coro.Yield()
		}
		done.Store(true)
		fmt.Fprintln(w, "target: complete")
	}, nil)

	var wakeCount int32
	names := []string{"A", "B", "C", "D", "E", "F"}
	waiters := make([]*coro.Task, len(names))
	for i, n := range names {
		n := n
		waiters[i] = coro.Spawn("waiter-"+n, func(any) {
			coro.Wait(target)
			atomic.AddInt32(&wakeCount, 1)
			fmt.Fprintf(w, "waiter-%s: woke up\n", n)
		}, nil)
	}

	for _, wt := range waiters {
		coro.Wait(wt)
	}
	fmt.Fprintln(w, "s2: done")
	return done.Load(), int(atomic.LoadInt32(&wakeCount))
}

// boundedQueue is the shared FIFO S3 exercises: a tiny hand-rolled
// structure, not coro's own queues — user code built atop the three
// primitives, exactly as spec.md §5 says join is "the only" inter-task
// coordination the core offers; anything else is built on top by yielding.
type boundedQueue struct {
	mu       sync.Mutex
	items    []int
	capacity int
}

func (q *boundedQueue) tryPush(v int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, v)
	return true
}

func (q *boundedQueue) tryPop() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return 0, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	return v, true
}

// S3 runs two producers pushing 100 items each into a shared bounded
// queue (yielding when full) and two consumers popping and recording
// (yielding when empty), grounded on
// _examples/original_source/test/test_public.c's producer/consumer shape.
func S3(w io.Writer) (seen []int, duplicates int) {
	q := &boundedQueue{capacity: 8}
	var running atomic.Bool
	running.Store(true)

	producerTasks := make([]*coro.Task, 2)
	for p := 0; p < 2; p++ {
		p := p
		producerTasks[p] = coro.Spawn(fmt.Sprintf("producer-%d", p), func(any) {
			for i := 0; i < 100; i++ {
				v := p*100 + i
				for !q.tryPush(v) {
					coro.Yield()
				}
			}
		}, nil)
	}

	var mu sync.Mutex
	var recorded []int
	consumerTasks := make([]*coro.Task, 2)
	for c := 0; c < 2; c++ {
		c := c
		consumerTasks[c] = coro.Spawn(fmt.Sprintf("consumer-%d", c), func(any) {
			for {
				stopping := !running.Load()
				v, ok := q.tryPop()
				if ok {
					mu.Lock()
					recorded = append(recorded, v)
					mu.Unlock()
					fmt.Fprintf(w, "consumer-%d: item %d\n", c, v)
					continue
				}
				if stopping {
					return
				}
				coro.Yield()
			}
		}, nil)
	}
	for _, pt := range producerTasks {
		coro.Wait(pt)
	}
	running.Store(false)
	for _, ct := range consumerTasks {
		coro.Wait(ct)
	}

	fmt.Fprintln(w, "s3: done")
	seen = append([]int(nil), recorded...)
	counts := map[int]int{}
	for _, v := range seen {
		counts[v]++
		if counts[v] > 1 {
			duplicates++
		}
	}
	return seen, duplicates
}

// S4 sets gomaxprocs to 4, spawns 3 extra Ms, spawns 30 tasks each doing a
// short compute loop with periodic yields, and waits on all 30. Grounded
// on _examples/original_source/test/test_multi_core.c.
func S4(w io.Writer) (completed int) {
	coro.SetGOMAXPROCS(4)
	for i := 0; i < 3; i++ {
		if rc := coro.CoThread(func(any) any { return nil }, nil); rc != 0 {
			fmt.Fprintf(w, "co_thread: rejected (%d)\n", rc)
		}
	}

	var done int32
	tasks := make([]*coro.Task, 30)
	for i := 0; i < 30; i++ {
		i := i
		tasks[i] = coro.Spawn(fmt.Sprintf("worker-%d", i), func(any) {
			sum := 0
			for step := 0; step < 5; step++ {
				for j := 0; j < 1000; j++ {
					sum += j
				}
				coro.Yield()
			}
			atomic.AddInt32(&done, 1)
		}, nil)
	}
	for _, t := range tasks {
		coro.Wait(t)
	}
	fmt.Fprintln(w, "s4: done")
	return int(atomic.LoadInt32(&done))
}

// S5 spawns 20 tasks from the calling task without yielding between
// spawns and waits on all of them, exercising private-deque overflow into
// the public deque and then the global queue (spec.md §4.5/§8 S5).
func S5(w io.Writer) int {
	var done int32
	tasks := make([]*coro.Task, 20)
	for i := 0; i < 20; i++ {
		tasks[i] = coro.Spawn(fmt.Sprintf("overflow-%d", i), func(any) {
			atomic.AddInt32(&done, 1)
		}, nil)
	}
	for _, t := range tasks {
		coro.Wait(t)
	}
	fmt.Fprintln(w, "s5: done")
	return int(atomic.LoadInt32(&done))
}

// S6 spawns a task that returns immediately, yields once to let it run,
// then waits on it — expecting an immediate return with no parking.
func S6(w io.Writer) bool {
	t := coro.Spawn("immediate", func(any) {}, nil)
	coro.Yield()
	before := t.Status()
	coro.Wait(t)
	fmt.Fprintln(w, "s6: done")
	return before == coro.StatusDead || before == coro.StatusReclaimed
}
