//go:build debug

package channel

// New returns an unbuffered channel regardless of size. Debug builds
// trade scrub throughput for lockstep handoff, which makes event
// ordering problems reproducible.
func New[T any](size int) Channel[T] {
	return NewUnbuffered[T]()
}
