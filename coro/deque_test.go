package coro

import "testing"

func TestRingDequePushOverflow(t *testing.T) {
	var d ringDeque
	tasks := make([]*Task, DequeCapacity+1)
	for i := range tasks {
		tasks[i] = newTask("t", nil, nil)
	}
	for i := 0; i < DequeCapacity; i++ {
		if !d.push(tasks[i]) {
			t.Fatalf("push %d should have fit", i)
		}
	}
	if d.push(tasks[DequeCapacity]) {
		t.Fatalf("push beyond capacity should report overflow")
	}
	if d.len() != DequeCapacity {
		t.Fatalf("len = %d, want %d", d.len(), DequeCapacity)
	}
}

func TestRingDequePopRandomCompacts(t *testing.T) {
	var d ringDeque
	a, b, c := newTask("a", nil, nil), newTask("b", nil, nil), newTask("c", nil, nil)
	d.push(a)
	d.push(b)
	d.push(c)

	got, ok := d.popRandom(1) // middle element
	if !ok || got != b {
		t.Fatalf("popRandom(1) = %v, want b", got)
	}
	if d.len() != 2 {
		t.Fatalf("len after pop = %d, want 2", d.len())
	}
	rest := d.drainAll()
	if len(rest) != 2 || rest[0] != a || rest[1] != c {
		t.Fatalf("remaining order = %v, want [a c]", rest)
	}
}

func TestRingDequeDrainAllEmptiesAndPreservesOrder(t *testing.T) {
	var d ringDeque
	tasks := []*Task{newTask("a", nil, nil), newTask("b", nil, nil)}
	for _, tk := range tasks {
		d.push(tk)
	}
	out := d.drainAll()
	for i, tk := range tasks {
		if out[i] != tk {
			t.Fatalf("drainAll[%d] = %v, want %v", i, out[i], tk)
		}
	}
	if d.len() != 0 {
		t.Fatalf("expected empty after drainAll")
	}
}

func TestPublicDequeConcurrentPush(t *testing.T) {
	var p publicDeque
	done := make(chan bool)
	go func() { done <- p.push(newTask("x", nil, nil)) }()
	go func() { done <- p.push(newTask("y", nil, nil)) }()
	ok1, ok2 := <-done, <-done
	if !ok1 || !ok2 {
		t.Fatalf("both pushes should have fit within capacity")
	}
	if p.len() != 2 {
		t.Fatalf("len = %d, want 2", p.len())
	}
}
