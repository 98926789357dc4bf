package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func TestParsePointEvents(t *testing.T) {
	p := newTestParser()

	payload := `[
		{"id": 1, "frame": 900, "timestamp": 30.0, "reason": "winner"},
		{"id": 2, "frame": -5, "timestamp": 31.0, "reason": "bad"},
		{"id": 3, "frame": 1200, "timestamp": 40.0, "reason": "unforced_error"}
	]`

	events, err := p.ParsePointEvents([]byte(payload))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, uint(1), events[0].ID)
	assert.Equal(t, "winner", events[0].Reason)
	assert.Equal(t, uint(3), events[1].ID)
}

func TestParseRegions(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, regions []core.ActivityRegion)
	}{
		{
			name: "rally region",
			input: `[{
				"id": 1, "startFrame": 100, "endFrame": 700,
				"startTime": 3.3, "endTime": 23.3,
				"peakScore": 0.9, "type": "rally", "label": "rally 1"
			}]`,
			check: func(t *testing.T, regions []core.ActivityRegion) {
				require.Len(t, regions, 1)
				assert.Equal(t, core.RegionRally, regions[0].Type)
				assert.Equal(t, "rally 1", regions[0].Label)
				assert.InDelta(t, 0.9, regions[0].PeakScore, 0.001)
			},
		},
		{
			name: "inverted range gets swapped",
			input: `[{
				"id": 2, "startFrame": 700, "endFrame": 100,
				"startTime": 23.3, "endTime": 3.3, "type": "high_speed"
			}]`,
			check: func(t *testing.T, regions []core.ActivityRegion) {
				require.Len(t, regions, 1)
				assert.Equal(t, 100, regions[0].StartFrame)
				assert.Equal(t, 700, regions[0].EndFrame)
				assert.InDelta(t, 3.3, regions[0].StartTime, 0.001)
				assert.InDelta(t, 23.3, regions[0].EndTime, 0.001)
			},
		},
		{
			name: "unknown type degrades to rally",
			input: `[{
				"id": 3, "startFrame": 0, "endFrame": 10,
				"startTime": 0, "endTime": 1, "type": "mystery"
			}]`,
			check: func(t *testing.T, regions []core.ActivityRegion) {
				require.Len(t, regions, 1)
				assert.Equal(t, core.RegionRally, regions[0].Type)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions, err := p.ParseRegions([]byte(tt.input))
			require.NoError(t, err)
			tt.check(t, regions)
		})
	}
}
