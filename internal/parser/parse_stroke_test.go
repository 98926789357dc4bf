package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func TestParseStrokes(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, strokes []core.StrokeEvent)
		wantErr bool
	}{
		{
			name: "well-formed forehand",
			input: `[{
				"id": 7,
				"startFrame": 300,
				"endFrame": 360,
				"peakFrame": 330,
				"type": "forehand",
				"formScore": 87.5,
				"metrics": {
					"elbowAngle": 132.4,
					"elbowRange": 48.1,
					"hipRotationRange": 27.9,
					"shoulderRotationRange": 41.2,
					"kneeAngle": 151.0,
					"spineLean": 6.3
				}
			}]`,
			check: func(t *testing.T, strokes []core.StrokeEvent) {
				require.Len(t, strokes, 1)
				s := strokes[0]
				assert.Equal(t, uint(7), s.ID)
				assert.Equal(t, core.StrokeForehand, s.Type)
				assert.Equal(t, 300, s.StartFrame)
				assert.Equal(t, 330, s.PeakFrame)
				assert.Equal(t, 360, s.EndFrame)
				assert.InDelta(t, 87.5, s.FormScore, 0.001)
				assert.InDelta(t, 132.4, s.Metrics.ElbowAngle, 0.001)
				assert.InDelta(t, 6.3, s.Metrics.SpineLean, 0.001)
			},
		},
		{
			name: "peak outside span gets pinned",
			input: `[{
				"id": 1, "startFrame": 100, "endFrame": 150, "peakFrame": 200,
				"type": "backhand", "formScore": 60, "metrics": {}
			}]`,
			check: func(t *testing.T, strokes []core.StrokeEvent) {
				require.Len(t, strokes, 1)
				assert.Equal(t, 150, strokes[0].PeakFrame)
			},
		},
		{
			name: "inverted span gets swapped",
			input: `[{
				"id": 2, "startFrame": 150, "endFrame": 100, "peakFrame": 120,
				"type": "forehand", "formScore": 60, "metrics": {}
			}]`,
			check: func(t *testing.T, strokes []core.StrokeEvent) {
				require.Len(t, strokes, 1)
				assert.Equal(t, 100, strokes[0].StartFrame)
				assert.Equal(t, 150, strokes[0].EndFrame)
				assert.Equal(t, 120, strokes[0].PeakFrame)
			},
		},
		{
			name: "score clamped to 100",
			input: `[{
				"id": 3, "startFrame": 0, "endFrame": 10, "peakFrame": 5,
				"type": "forehand", "formScore": 250, "metrics": {}
			}]`,
			check: func(t *testing.T, strokes []core.StrokeEvent) {
				require.Len(t, strokes, 1)
				assert.InDelta(t, 100, strokes[0].FormScore, 0.001)
			},
		},
		{
			name: "unrecognized type degrades to unknown",
			input: `[{
				"id": 4, "startFrame": 0, "endFrame": 10, "peakFrame": 5,
				"type": "smash", "formScore": 70, "metrics": {}
			}]`,
			check: func(t *testing.T, strokes []core.StrokeEvent) {
				require.Len(t, strokes, 1)
				assert.Equal(t, core.StrokeUnknown, strokes[0].Type)
			},
		},
		{
			name:    "malformed json",
			input:   `[{"id":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strokes, err := p.ParseStrokes([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, strokes)
		})
	}
}
