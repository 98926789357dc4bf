package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func TestParsePoseFrames(t *testing.T) {
	p := newTestParser()

	payload := `[{
		"frame": 330,
		"keypoints": {
			"right_elbow": {"x": 0.61, "y": 0.42, "z": -0.1, "visibility": 0.97},
			"right_wrist": {"x": 0.70, "y": 0.38, "z": -0.2, "visibility": 1.4}
		},
		"angles": {"elbow": 131.2}
	}]`

	frames, err := p.ParsePoseFrames([]byte(payload))
	require.NoError(t, err)
	require.Len(t, frames, 1)

	pf := frames[0]
	assert.Equal(t, 330, pf.Frame)

	elbow, ok := pf.Keypoints[core.JointRightElbow]
	require.True(t, ok)
	assert.InDelta(t, 0.61, elbow.X, 0.001)
	assert.InDelta(t, 0.97, elbow.Visibility, 0.001)

	// out-of-range visibility gets clamped
	wrist := pf.Keypoints[core.JointRightWrist]
	assert.InDelta(t, 1.0, wrist.Visibility, 0.001)

	assert.InDelta(t, 131.2, pf.Angles["elbow"], 0.001)
}

func TestParsePoseFrames_SkipsNegativeFrames(t *testing.T) {
	p := newTestParser()

	payload := `[
		{"frame": -1, "keypoints": {}, "angles": {}},
		{"frame": 10, "keypoints": {}, "angles": {}}
	]`

	frames, err := p.ParsePoseFrames([]byte(payload))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, 10, frames[0].Frame)
}
