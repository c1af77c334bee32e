// Package gid exposes the numeric id of the calling goroutine.
//
// The standard library has no supported way to obtain this, so we parse it
// out of the header line of runtime.Stack. The coro package uses it as the
// key of a small registry that maps "the goroutine asking" to the task and
// machine it is currently bound to — the Go-native substitute for the
// per-OS-thread locals the spec's C original keeps for co_current.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// Get returns the id of the calling goroutine.
func Get() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); i >= 0 {
		buf = buf[:i]
	}
	id, err := strconv.ParseUint(string(buf), 10, 64)
	if err != nil {
		panic("gid: could not parse goroutine id: " + err.Error())
	}
	return id
}
