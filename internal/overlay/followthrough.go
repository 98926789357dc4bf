package overlay

import (
	"fmt"
	"math"

	"github.com/scrappydevs/ProVision-sub002/internal/geo"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// goodElbowRange separates "needs more extension" from "good extension".
const goodElbowRange = 40.0

// drawFollowThrough shows how far the racquet arm travelled after
// contact: the arm chain, a dashed arc proportional to the elbow's range
// of motion, and a verdict.
func drawFollowThrough(s *surface, f Frame) {
	if f.Stroke == nil || f.Pose == nil {
		return
	}

	shoulder, haveShoulder := f.Pose.Joint(core.JointRightShoulder)
	elbow, haveElbow := f.Pose.Joint(core.JointRightElbow)
	wrist, haveWrist := f.Pose.Joint(core.JointRightWrist)
	if !haveShoulder || !haveElbow || !haveWrist {
		return
	}

	s.line(shoulder.X, shoulder.Y, elbow.X, elbow.Y, skeletonColor, 3, nil)
	s.line(elbow.X, elbow.Y, wrist.X, wrist.Y, skeletonColor, 3, nil)

	elbowRange := f.Stroke.Metrics.ElbowRange
	sweep := elbowRange * math.Pi / 180
	start := geo.Bearing(elbow, wrist)
	s.arc(elbow.X, elbow.Y, 50, start, sweep, guideColor, 2.5, dashPattern)

	verdict := "good extension"
	col := landingColor
	if elbowRange < goodElbowRange {
		verdict = "needs more extension"
		col = highlightColor
	}
	s.text(elbow.X+58, elbow.Y-10, fmt.Sprintf("%.0f° travel", elbowRange), 20, col)
	s.text(elbow.X+58, elbow.Y+14, verdict, 14, col)
}
