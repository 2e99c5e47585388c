package pipeline

import (
	"testing"
)

func TestQueueDrainsInSubmissionOrder(t *testing.T) {
	queue := NewQueue(4)

	var got []int
	for i := 1; i <= 4; i++ {
		queue.Submit(func() { got = append(got, i) })
	}
	if queue.Len() != 4 {
		t.Fatalf("Len() = %d; want 4", queue.Len())
	}

	queue.Drain()

	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("ran %d tasks; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task order = %v; want %v", got, want)
			break
		}
	}
}

func TestQueueDrainEmptiesQueue(t *testing.T) {
	queue := NewQueue(2)
	ran := 0
	queue.Submit(func() { ran++ })
	queue.Submit(func() { ran++ })

	queue.Drain()
	queue.Drain()

	if ran != 2 {
		t.Errorf("tasks ran %d times; want 2 (drain must not replay)", ran)
	}
	if queue.Len() != 0 {
		t.Errorf("Len() after drain = %d; want 0", queue.Len())
	}
}
