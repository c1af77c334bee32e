package coro

// Processor is a P: a logical scheduling unit owning a private deque (
// touched only by its bound M) and a public deque (stealable by any P).
// The task currently running is held by the bound M (Mctx.current).
type Processor struct {
	ID int

	private ringDeque   // owner-only, no lock
	public  publicDeque // lockable, visible to peers

	machine *Mctx
}

// newProcessor allocates a Processor with the next stable id.
func newProcessor(id int) *Processor {
	return &Processor{ID: id}
}
