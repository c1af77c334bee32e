package coro_test

import (
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/XsystemH/ToyCO/coro"
	"github.com/XsystemH/ToyCO/scenarios"
)

func TestS1InterleavedYielders(t *testing.T) {
	res := scenarios.S1(io.Discard)
	require.Equal(t, 10, res.ACount)
	require.Equal(t, 10, res.BCount)
	require.Len(t, res.Sequence, 20)
}

func TestS2FanInJoin(t *testing.T) {
	done, wakes := scenarios.S2(io.Discard)
	require.True(t, done)
	require.Equal(t, 6, wakes)
}

func TestS3ProducerConsumer(t *testing.T) {
	seen, dup := scenarios.S3(io.Discard)
	require.Len(t, seen, 200)
	require.Zero(t, dup)

	counts := map[int]bool{}
	for _, v := range seen {
		counts[v] = true
	}
	require.Len(t, counts, 200)
}

func TestS4MultiMWorkStealing(t *testing.T) {
	completed := scenarios.S4(io.Discard)
	require.Equal(t, 30, completed)
}

func TestS5SpawnOverflow(t *testing.T) {
	completed := scenarios.S5(io.Discard)
	require.Equal(t, 20, completed)
}

func TestS6JoinOfAlreadyDead(t *testing.T) {
	require.True(t, scenarios.S6(io.Discard))
}

func TestWaitOnSelfPanics(t *testing.T) {
	done := make(chan struct{})
	var target *coro.Task
	target = coro.Spawn("self-waiter", func(any) {
		require.Panics(t, func() { coro.Wait(target) })
		close(done)
	}, nil)
	coro.Wait(target)
	<-done
}

func TestWaitOnNilPanics(t *testing.T) {
	done := make(chan struct{})
	waiter := coro.Spawn("nil-waiter", func(any) {
		require.Panics(t, func() { coro.Wait(nil) })
		close(done)
	}, nil)
	coro.Wait(waiter)
	<-done
}

// TestRootGoroutineWaitActuallyParks exercises a *testing.T's own root
// goroutine calling Wait directly, with no prior Spawn/Yield/Wait on that
// goroutine — the case a fresh test function always starts from. It must
// park until the target is actually dead, not return immediately.
func TestRootGoroutineWaitActuallyParks(t *testing.T) {
	var flag atomic.Bool
	target := coro.Spawn("flagger", func(any) {
		coro.Yield()
		coro.Yield()
		flag.Store(true)
	}, nil)

	coro.Wait(target)
	require.True(t, flag.Load())
}

func TestGetSetGOMAXPROCS(t *testing.T) {
	coro.SetGOMAXPROCS(8)
	require.Equal(t, 8, coro.GetGOMAXPROCS())

	before := coro.GetGOMAXPROCS()
	coro.SetGOMAXPROCS(0) // out of range, ignored
	require.Equal(t, before, coro.GetGOMAXPROCS())
	coro.SetGOMAXPROCS(coro.MaxProcessors + 1) // out of range, ignored
	require.Equal(t, before, coro.GetGOMAXPROCS())
}
