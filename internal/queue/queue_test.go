package queue

import (
	"sync"
	"testing"
)

func TestPushPop(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)

	for want := 1; want <= 3; want++ {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("expected item %d, queue empty", want)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("expected empty queue")
	}
}

func TestDrain(t *testing.T) {
	q := New[string]()
	q.Push("a", "b")

	items := q.Drain()
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("unexpected drain result: %v", items)
	}
	if !q.Empty() {
		t.Error("queue should be empty after drain")
	}
}

func TestClear(t *testing.T) {
	q := New[int]()
	q.Push(1, 2)
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("expected empty queue, got %d items", q.Len())
	}
}

func TestConcurrentPush(t *testing.T) {
	q := New[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			q.Push(n)
		}(i)
	}
	wg.Wait()

	if q.Len() != 10 {
		t.Errorf("expected 10 items, got %d", q.Len())
	}
}
