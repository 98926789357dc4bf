// Package geo holds the pixel-space geometry used by the overlay
// renderer: joint-angle math on pose keypoints and trajectory window
// selection for ball path projection. All coordinates are video pixel
// space with the origin at the top-left corner.
package geo

import (
	"math"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Midpoint returns the point halfway between two keypoints.
func Midpoint(a, b core.Keypoint) core.Keypoint {
	return core.Keypoint{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Z:          (a.Z + b.Z) / 2,
		Visibility: math.Min(a.Visibility, b.Visibility),
	}
}

// Distance returns the 2D pixel distance between two keypoints.
func Distance(a, b core.Keypoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleAt returns the interior angle in degrees at vertex b of the chain
// a-b-c. Returns 0 when either limb has zero length.
func AngleAt(a, b, c core.Keypoint) float64 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y
	l1 := math.Hypot(v1x, v1y)
	l2 := math.Hypot(v2x, v2y)
	if l1 == 0 || l2 == 0 {
		return 0
	}
	cos := (v1x*v2x + v1y*v2y) / (l1 * l2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// Bearing returns the angle in radians of the vector from a to b,
// measured counter-clockwise from the positive x axis in image space.
func Bearing(a, b core.Keypoint) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}
