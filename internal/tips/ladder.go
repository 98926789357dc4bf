// Package tips generates time-windowed coaching annotations from stroke
// records and schedules at most one active tip per playback instant.
package tips

import (
	"fmt"
	"math"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Biomechanical thresholds used by the coaching ladders. Degrees unless
// noted.
const (
	excellentFormScore  = 85.0
	decentFormScore     = 70.0
	minElbowExtension   = 120.0
	minHipRotation      = 10.0
	minElbowRange       = 40.0
	minShoulderRotation = 15.0
	lowKneeAngle        = 130.0
	straightKneeAngle   = 170.0
	minSpineLean        = 3.0
)

// rule is one rung of a coaching ladder: first matching rung wins.
// Ladders are ordered rule tables rather than nested conditionals so the
// priority order stays auditable and testable on its own.
type rule struct {
	name    string
	applies func(core.StrokeEvent) bool
	message func(core.StrokeEvent) (title, body string)
}

// primaryLadder is evaluated top to bottom per stroke. This is a priority
// order, not a severity score: rung 2 beats rung 3 even when the rung-3
// defect is larger.
var primaryLadder = []rule{
	{
		name:    "positive-reinforcement",
		applies: func(s core.StrokeEvent) bool { return s.FormScore > excellentFormScore },
		message: func(s core.StrokeEvent) (string, string) {
			return "Great stroke!",
				fmt.Sprintf("Form score %.0f. That %s had excellent mechanics. Keep swinging exactly like that.", s.FormScore, s.Type)
		},
	},
	{
		name:    "elbow-extension",
		applies: func(s core.StrokeEvent) bool { return s.Metrics.ElbowAngle < minElbowExtension },
		message: func(s core.StrokeEvent) (string, string) {
			return "Extend through contact",
				fmt.Sprintf("Your elbow was at %.0f° at contact. Reach further into the ball and aim for 120 to 150 degrees of extension.", s.Metrics.ElbowAngle)
		},
	},
	{
		name:    "hip-rotation",
		applies: func(s core.StrokeEvent) bool { return math.Abs(s.Metrics.HipRotationRange) < minHipRotation },
		message: func(s core.StrokeEvent) (string, string) {
			return "Rotate your hips",
				"Your hips barely turned through the swing. Drive the back hip toward the net to load the shot."
		},
	},
	{
		name:    "follow-through",
		applies: func(s core.StrokeEvent) bool { return s.Metrics.ElbowRange < minElbowRange },
		message: func(s core.StrokeEvent) (string, string) {
			return "Finish the swing",
				fmt.Sprintf("Only %.0f° of elbow travel. You're cutting the follow-through short. Let the racquet finish over your shoulder.", s.Metrics.ElbowRange)
		},
	},
	{
		name:    "shoulder-turn",
		applies: func(s core.StrokeEvent) bool { return math.Abs(s.Metrics.ShoulderRotationRange) < minShoulderRotation },
		message: func(s core.StrokeEvent) (string, string) {
			return "Turn your shoulders",
				"Get your shoulders side-on earlier in the preparation. More shoulder turn means more effortless pace."
		},
	},
	{
		name:    "stance-too-low",
		applies: func(s core.StrokeEvent) bool { return s.Metrics.KneeAngle < lowKneeAngle },
		message: func(s core.StrokeEvent) (string, string) {
			return "Stand a little taller",
				fmt.Sprintf("Knee angle %.0f°. You're crouching too deep to transfer weight forward. Come up slightly through the shot.", s.Metrics.KneeAngle)
		},
	},
	{
		name:    "bend-knees",
		applies: func(s core.StrokeEvent) bool { return s.Metrics.KneeAngle > straightKneeAngle },
		message: func(s core.StrokeEvent) (string, string) {
			return "Bend your knees",
				"Your legs were nearly straight. Sit into the shot so you can push up and through the ball."
		},
	},
	{
		name: "weight-transfer",
		applies: func(s core.StrokeEvent) bool {
			return s.Type == core.StrokeForehand && math.Abs(s.Metrics.SpineLean) < minSpineLean
		},
		message: func(s core.StrokeEvent) (string, string) {
			return "Lean into it",
				"You stayed upright on that forehand. Lean slightly into the court as you swing to transfer weight forward."
		},
	},
	{
		name:    "encouragement",
		applies: func(s core.StrokeEvent) bool { return s.FormScore > decentFormScore },
		message: func(s core.StrokeEvent) (string, string) {
			return "Solid stroke", "Good mechanics overall. " + nearestRefinement(s)
		},
	},
	{
		name:    "kinetic-chain",
		applies: func(core.StrokeEvent) bool { return true },
		message: func(s core.StrokeEvent) (string, string) {
			return "Build the kinetic chain",
				"Work on sequencing: legs, then hips, then shoulders, then arm. Each link should fire just after the one below it."
		},
	},
}

// nearestRefinement picks the single rotation metric closest to its
// threshold, i.e. the cheapest improvement available.
func nearestRefinement(s core.StrokeEvent) string {
	hipRatio := math.Abs(s.Metrics.HipRotationRange) / minHipRotation
	shoulderRatio := math.Abs(s.Metrics.ShoulderRotationRange) / minShoulderRotation
	if hipRatio <= shoulderRatio {
		return "A touch more hip rotation would add easy power."
	}
	return "A slightly fuller shoulder turn would add easy power."
}

// CoachingMessage runs the primary ladder for one stroke and returns the
// selected rule name alongside the tip title and body.
func CoachingMessage(s core.StrokeEvent) (ruleName, title, body string) {
	for _, r := range primaryLadder {
		if r.applies(s) {
			title, body = r.message(s)
			return r.name, title, body
		}
	}
	// Unreachable: the last rung always applies.
	return "", "", ""
}

// Follow-through ladder gates: a dedicated tip is only worth showing for
// exceptional strokes or significant follow-through defects.
const (
	followDefectElbowRange = 35.0
	followDefectShoulder   = 20.0
)

// FollowThroughMessage runs the secondary ladder. ok is false when the
// stroke is neither exceptional nor meaningfully defective, in which case
// no follow-through tip should be emitted.
func FollowThroughMessage(s core.StrokeEvent) (title, body string, ok bool) {
	switch {
	case s.Metrics.ElbowRange < followDefectElbowRange:
		return "Follow through fully",
			fmt.Sprintf("The racquet stopped after %.0f° of elbow travel. Swing to a complete finish. The ball is long gone before the follow-through matters for the next shot.", s.Metrics.ElbowRange),
			true
	case math.Abs(s.Metrics.ShoulderRotationRange) < followDefectShoulder:
		return "Carry the shoulders through",
			"Your shoulders stalled after contact. Let them keep rotating so the arm decelerates naturally.",
			true
	case s.FormScore > excellentFormScore:
		return "Textbook follow-through",
			"That finish was complete and relaxed, exactly what a full swing should look like.",
			true
	default:
		return "", "", false
	}
}
