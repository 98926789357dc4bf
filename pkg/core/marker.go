// pkg/core/marker.go
package core

// MarkerType identifies which source stream produced a timeline marker.
// Rendering z-order is fixed: velocity behind strokes behind points.
type MarkerType string

const (
	MarkerStroke   MarkerType = "stroke"
	MarkerVelocity MarkerType = "velocity"
	MarkerPoint    MarkerType = "point"
)

// ActivityMarker is one drawable bar/line on the timeline. Derived and
// ephemeral: recomputed whenever a source stream changes, never persisted.
// Invariant: Position and Intensity are clamped to [0,1].
type ActivityMarker struct {
	Position  float64 // normalized [0,1] along the timeline
	Intensity float64 // [0,1], drives bar height/opacity
	Color     string  // hex, e.g. "#22c55e"
	Label     string
	Time      float64 // absolute seconds
	Type      MarkerType
}
