// Package coro is an M:N user-space coroutine runtime modeled on the
// G-M-P scheduling architecture: many lightweight tasks (G) are
// multiplexed onto a bounded set of logical processors (P), each serviced
// by one kernel thread (M). The runtime is purely cooperative — there is
// no preemption, no I/O integration, no channels or timers beyond what a
// task's own code does with them.
//
// The three primitives are Spawn, Yield and Wait; CoThread adds kernel
// worker threads up to a configured cap. See SPEC_FULL.md at the module
// root for the full design rationale.
package coro

import "time"

// Constants carried unchanged from the spec.
const (
	// StackSize is the documented per-task stack budget. Go goroutine
	// stacks grow on demand and are managed by the Go runtime, so this
	// constant is inert — kept for interface fidelity with the spec and
	// the C original this was distilled from.
	StackSize = 64 * 1024

	// DequeCapacity is the bound on both the private and public per-P
	// deques.
	DequeCapacity = 4

	// MaxProcessors is the capacity of the processors/machines arrays.
	MaxProcessors = 64

	// IdleSleep is how long a spinning M sleeps before retrying
	// schedule().
	IdleSleep = time.Millisecond

	// deathSweepBatch bounds how many death-queue entries Spawn
	// attempts to reclaim per call (Open Question 2's lazy sweep).
	deathSweepBatch = 8
)
