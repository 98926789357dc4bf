// Package queue buffers converted rows between the ingest handlers and
// the background database writer.
package queue

import (
	"sync"
)

// Queue is a thread-safe FIFO buffer. The ingest side pushes rows as
// archive entries arrive; the writer drains whole batches per tick.
type Queue[T any] struct {
	mu  sync.Mutex
	buf []T
}

func New[T any]() *Queue[T] {
	return &Queue[T]{
		buf: make([]T, 0),
	}
}

// Push appends rows to the buffer.
func (q *Queue[T]) Push(rows ...T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = append(q.buf, rows...)
}

// Empty reports whether the buffer holds no rows.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) == 0
}

// Len returns the number of buffered rows.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Drain returns all buffered rows and resets the buffer, retaining its
// capacity. The caller owns the returned slice; on a failed insert it
// may Push the rows back for the next tick.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	rows := q.buf
	q.buf = make([]T, 0, cap(q.buf))
	return rows
}
