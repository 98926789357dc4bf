//go:build !debug

package channel

// New returns the channel the dispatcher buffers playback events on.
// Release builds use a buffered channel so scrubbing never blocks on
// a slow consumer.
func New[T any](size int) Channel[T] {
	return NewBuffered[T](size)
}
