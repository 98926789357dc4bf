package queue

import (
	"sync"
	"testing"
)

// strokeRow stands in for the converted rows the storage backend buffers
type strokeRow struct {
	Frame int
	Kind  string
}

func TestQueue_New(t *testing.T) {
	q := New[strokeRow]()
	if q == nil {
		t.Fatal("expected non-nil queue")
	}
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_Push(t *testing.T) {
	q := New[strokeRow]()

	q.Push(strokeRow{Frame: 30, Kind: "forehand"})
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}

	q.Push(strokeRow{Frame: 90}, strokeRow{Frame: 150})
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_Empty(t *testing.T) {
	q := New[strokeRow]()

	if !q.Empty() {
		t.Error("expected empty queue")
	}

	q.Push(strokeRow{Frame: 30})
	if q.Empty() {
		t.Error("expected non-empty queue")
	}

	q.Drain()
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}
}

func TestQueue_Drain(t *testing.T) {
	q := New[strokeRow]()
	q.Push(strokeRow{Frame: 30}, strokeRow{Frame: 90}, strokeRow{Frame: 150})

	rows := q.Drain()

	if len(rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Frame != 30 || rows[1].Frame != 90 || rows[2].Frame != 150 {
		t.Errorf("unexpected rows: %+v", rows)
	}
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}
}

func TestQueue_DrainEmpty(t *testing.T) {
	q := New[strokeRow]()
	if rows := q.Drain(); len(rows) != 0 {
		t.Errorf("expected no rows, got %+v", rows)
	}
}

func TestQueue_PushBackAfterFailedWrite(t *testing.T) {
	q := New[strokeRow]()
	q.Push(strokeRow{Frame: 30}, strokeRow{Frame: 90})

	rows := q.Drain()
	q.Push(rows...)

	if q.Len() != 2 {
		t.Errorf("expected 2 rows after push-back, got %d", q.Len())
	}
	got := q.Drain()
	if got[0].Frame != 30 || got[1].Frame != 90 {
		t.Errorf("push-back reordered rows: %+v", got)
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := New[strokeRow]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(frame int) {
			defer wg.Done()
			q.Push(strokeRow{Frame: frame})
		}(i)
	}
	wg.Wait()

	if q.Len() != 100 {
		t.Errorf("expected 100 rows, got %d", q.Len())
	}
}

func TestQueue_ConcurrentDrain(t *testing.T) {
	q := New[strokeRow]()

	for i := 0; i < 100; i++ {
		q.Push(strokeRow{Frame: i})
	}

	var wg sync.WaitGroup
	results := make(chan []strokeRow, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- q.Drain()
		}()
	}
	wg.Wait()
	close(results)

	// Each row must be handed to exactly one drainer.
	total := 0
	for r := range results {
		total += len(r)
	}
	if total != 100 {
		t.Errorf("expected total 100 rows, got %d", total)
	}
}
