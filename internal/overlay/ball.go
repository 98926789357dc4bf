package overlay

import (
	"github.com/scrappydevs/ProVision-sub002/internal/geo"
)

// Ball projection window: up to projectionPoints future samples within
// projectionFrames frames of the current one.
const (
	projectionPoints = 10
	projectionFrames = 15

	ballRadius    = 8.0
	landingRadius = 12.0
)

// drawBallProjection marks the ball's current position and its projected
// path. The current position must match the frame exactly; a miss means
// the tracker has no fix for this frame and nothing is drawn.
func drawBallProjection(s *surface, f Frame) {
	current, ok := geo.PointAt(f.Trajectory, f.FrameIndex)
	if !ok {
		return
	}

	s.fillCircle(current.X, current.Y, ballRadius, ballColor)

	future := geo.FutureWindow(f.Trajectory, f.FrameIndex, projectionPoints, projectionFrames)
	if len(future) == 0 {
		return
	}

	xs := make([]float64, 0, len(future)+1)
	ys := make([]float64, 0, len(future)+1)
	xs = append(xs, current.X)
	ys = append(ys, current.Y)
	for _, p := range future {
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	s.polyline(xs, ys, ballColor, 2, dashPattern)

	// With at least two future fixes the path end is a meaningful landing
	// estimate.
	if len(future) >= 2 {
		landing := future[len(future)-1]
		s.strokeCircle(landing.X, landing.Y, landingRadius, landingColor, 3, nil)
		s.text(landing.X+18, landing.Y, "projected landing", 14, landingColor)
	}
}
