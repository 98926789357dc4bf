// pkg/core/stroke.go
package core

// StrokeType classifies a detected swing
type StrokeType string

const (
	StrokeForehand StrokeType = "forehand"
	StrokeBackhand StrokeType = "backhand"
	StrokeUnknown  StrokeType = "unknown"
)

// StrokeMetrics holds the biomechanical measurements derived for one
// stroke by the upstream pose analysis stage. Angles are degrees.
type StrokeMetrics struct {
	ElbowAngle            float64
	ElbowRange            float64
	HipRotationRange      float64
	ShoulderRotationRange float64
	KneeAngle             float64
	SpineLean             float64
}

// StrokeEvent represents one detected swing with its frame range and
// metrics. Immutable once produced by the analysis stage.
// Invariant: StartFrame <= PeakFrame <= EndFrame.
type StrokeEvent struct {
	ID         uint
	SessionID  uint
	StartFrame int
	EndFrame   int
	PeakFrame  int // moment of contact
	Type       StrokeType
	FormScore  float64 // 0..100
	Metrics    StrokeMetrics
}

// StartSeconds returns the stroke's start time on the playback clock.
func (s StrokeEvent) StartSeconds(meta VideoMeta) float64 {
	return meta.SecondsAt(s.StartFrame)
}

// EndSeconds returns the stroke's end time on the playback clock.
func (s StrokeEvent) EndSeconds(meta VideoMeta) float64 {
	return meta.SecondsAt(s.EndFrame)
}

// ContainsFrame reports whether the frame falls within the stroke span.
func (s StrokeEvent) ContainsFrame(frame int) bool {
	return frame >= s.StartFrame && frame <= s.EndFrame
}
