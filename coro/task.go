package coro

import (
	"sync"
	"sync/atomic"

	"github.com/XsystemH/ToyCO/internal/list"
)

// Task is a G: a unit of user work with its own stack, status and saved
// execution state. The "stack" is a dedicated goroutine parked on resume
// (see SPEC_FULL.md §1); Name, entry and arg mirror the spec's fields.
type Task struct {
	Name  string
	entry func(any)
	arg   any

	mu      sync.Mutex
	status  Status
	waiters list.List[*Task]

	// gid is the id of this task's dedicated goroutine, captured once
	// on first entry. Zero until the task has actually started running.
	gid uint64

	// resume is the rendezvous channel a scheduler sends on to wake
	// this task's parked goroutine (the Go-native "swap into context").
	resume chan struct{}

	// refCount counts in-flight Wait(this) calls; the lazy death-queue
	// sweep (Open Question 2) will not reclaim a task while refCount > 0.
	refCount atomic.Int32

	// deathGen records the sweep generation this task was pushed onto
	// the death queue in; a sweep reclaims it only once the generation
	// has moved past this value, so the next sweep call after the push
	// can already take it. This narrows (not eliminates) the race a
	// brand-new Wait() call could lose against a sweep.
	deathGen int64
}

func newTask(name string, entry func(any), arg any) *Task {
	return &Task{
		Name:   name,
		entry:  entry,
		arg:    arg,
		status: StatusNew,
		resume: make(chan struct{}, 1),
	}
}

// Status returns the task's current lifecycle status.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// isDead reports whether the task completed (status Dead or Reclaimed).
func (t *Task) isDead() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status == StatusDead || t.status == StatusReclaimed
}
