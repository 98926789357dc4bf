// pkg/core/trajectory.go
package core

// TrajectoryPoint is a tracked object's pixel position at a given frame.
// One projected path per tracked object, ordered by frame.
type TrajectoryPoint struct {
	Frame int
	X     float64
	Y     float64
}
