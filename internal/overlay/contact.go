package overlay

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"

	"github.com/scrappydevs/ProVision-sub002/internal/geo"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Thresholds below which a contact-analysis metric is flagged and drawn.
const (
	flagElbowAngle = 120.0
	flagHipRange   = 10.0
	flagSpineLean  = 3.0
)

var dashPattern = []vg.Length{6, 4}

// drawContactAnalysis highlights the metrics that fell short at the
// moment of contact: elbow extension, hip rotation and spine lean. Each
// metric is drawn only when flagged, paired with an ideal-range hint.
func drawContactAnalysis(s *surface, f Frame) {
	if f.Stroke == nil || f.Pose == nil {
		return
	}
	m := f.Stroke.Metrics

	shoulder, haveShoulder := f.Pose.Joint(core.JointRightShoulder)
	elbow, haveElbow := f.Pose.Joint(core.JointRightElbow)
	wrist, haveWrist := f.Pose.Joint(core.JointRightWrist)

	if haveShoulder && haveElbow && haveWrist {
		s.line(shoulder.X, shoulder.Y, elbow.X, elbow.Y, skeletonColor, 3, nil)
		s.line(elbow.X, elbow.Y, wrist.X, wrist.Y, skeletonColor, 3, nil)

		if m.ElbowAngle < flagElbowAngle {
			start := geo.Bearing(elbow, shoulder)
			end := geo.Bearing(elbow, wrist)
			s.arc(elbow.X, elbow.Y, 40, start, shortestSweep(start, end), highlightColor, 2.5, nil)
			s.text(elbow.X+48, elbow.Y, fmt.Sprintf("%.0f°", m.ElbowAngle), 20, highlightColor)
			s.text(elbow.X+48, elbow.Y+24, "ideal: 120–150°", 14, labelColor)
		}
	}

	leftHip, haveLeft := f.Pose.Joint(core.JointLeftHip)
	rightHip, haveRight := f.Pose.Joint(core.JointRightHip)

	if haveLeft && haveRight {
		if math.Abs(m.HipRotationRange) < flagHipRange {
			s.line(leftHip.X, leftHip.Y, rightHip.X, rightHip.Y, highlightColor, 3, nil)
			mid := geo.Midpoint(leftHip, rightHip)
			s.strokeCircle(mid.X, mid.Y, geo.Distance(leftHip, rightHip)/2, guideColor, 2, dashPattern)
			s.text(mid.X+20, mid.Y-30, "ideal: rotate hips 20–40°", 14, labelColor)
		}

		if nose, ok := f.Pose.Joint(core.JointNose); ok && math.Abs(m.SpineLean) < flagSpineLean {
			mid := geo.Midpoint(leftHip, rightHip)
			s.line(nose.X, nose.Y, mid.X, mid.Y, highlightColor, 3, nil)
			// Vertical reference from the hip midpoint up to head height.
			s.line(mid.X, mid.Y, mid.X, nose.Y, guideColor, 2, dashPattern)
			s.text(mid.X+20, (mid.Y+nose.Y)/2, "ideal: lean 5–10° into the shot", 14, labelColor)
		}
	}
}

// shortestSweep returns the signed sweep from start to end taking the
// short way around the circle.
func shortestSweep(start, end float64) float64 {
	sweep := math.Mod(end-start, 2*math.Pi)
	if sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	if sweep < -math.Pi {
		sweep += 2 * math.Pi
	}
	return sweep
}
