// pkg/core/session.go
package core

import "time"

// Session represents one analyzed video session
type Session struct {
	ID              uint
	Name            string
	Sport           string
	StartTime       time.Time
	AnalyzerVersion string
	Tag             string
	Video           VideoMeta
}

// VideoMeta describes the analyzed video's surface and time base
type VideoMeta struct {
	Duration    float64 // seconds
	FPS         float64
	TotalFrames int
	Width       int // native pixels
	Height      int
}

// MaxFrame returns the frame count used to normalize frame indices to
// [0,1] positions. Falls back to duration*fps when the container did not
// report a frame count, and to 1 when nothing is known.
func (m VideoMeta) MaxFrame() float64 {
	if m.TotalFrames > 0 {
		return float64(m.TotalFrames)
	}
	if f := m.Duration * m.FPS; f > 0 {
		return f
	}
	return 1
}

// FrameAt converts playback seconds to a frame index.
func (m VideoMeta) FrameAt(seconds float64) int {
	if m.FPS <= 0 {
		return 0
	}
	return int(seconds * m.FPS)
}

// SecondsAt converts a frame index to playback seconds.
func (m VideoMeta) SecondsAt(frame int) float64 {
	if m.FPS <= 0 {
		return 0
	}
	return float64(frame) / m.FPS
}
