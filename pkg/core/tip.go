// pkg/core/tip.go
package core

// VideoTip is a time-windowed coaching annotation shown over the video.
// Tips are pre-generated from strokes or externally authored. The tip is
// active while currentTime is inside [Timestamp, Timestamp+Duration].
type VideoTip struct {
	ID        string // namespaced, e.g. "tip-12-contact"
	Timestamp float64
	Duration  float64
	Title     string
	Message   string
	StrokeID  *uint    // stroke the tip annotates, if any
	SeekTime  *float64 // optional jump target for "review this" actions
}

// ActiveAt reports whether the tip window contains the given time.
func (t VideoTip) ActiveAt(seconds float64) bool {
	return seconds >= t.Timestamp && seconds <= t.Timestamp+t.Duration
}
