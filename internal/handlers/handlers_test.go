package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/internal/logging"
	"github.com/scrappydevs/ProVision-sub002/internal/storage/memory"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

const sessionHeader = `{
	"name": "morning drills",
	"sport": "tennis",
	"duration": 60.0,
	"fps": 30.0,
	"totalFrames": 1800,
	"width": 1280,
	"height": 720
}`

func newTestService(t *testing.T) (*Service, *memory.Backend) {
	t.Helper()

	backend := memory.New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, backend.Init())

	lm := logging.NewSlogManager()
	var logBuf bytes.Buffer
	lm.Setup(&logBuf, "error", "")

	deps := Dependencies{
		Backend:         backend,
		LogManager:      lm,
		AnalyzerVersion: "analyzer-2.1",
		AppVersion:      "1.0.0",
	}
	return NewService(deps, NewSessionContext()), backend
}

func TestStartSession(t *testing.T) {
	s, backend := newTestService(t)

	require.NoError(t, s.StartSession([]byte(sessionHeader)))

	session := s.GetSessionContext().GetSession()
	assert.Equal(t, "morning drills", session.Name)
	assert.Equal(t, "tennis", session.Sport)
	assert.Equal(t, "analyzer-2.1", session.AnalyzerVersion)
	assert.False(t, session.StartTime.IsZero())

	stored, err := backend.Session()
	require.NoError(t, err)
	assert.Equal(t, "morning drills", stored.Name)
	assert.Equal(t, 1800, stored.Video.TotalFrames)
}

func TestStartSession_InvalidJSON(t *testing.T) {
	s, _ := newTestService(t)
	assert.Error(t, s.StartSession([]byte(`{bad`)))
}

func TestIngestStrokes(t *testing.T) {
	s, backend := newTestService(t)
	require.NoError(t, s.StartSession([]byte(sessionHeader)))

	payload := `[
		{"id": 1, "startFrame": 300, "endFrame": 360, "peakFrame": 330,
		 "type": "forehand", "formScore": 72.5,
		 "metrics": {"elbowAngle": 140.0}},
		{"id": 2, "startFrame": 900, "endFrame": 950, "peakFrame": 920,
		 "type": "backhand", "formScore": 55.0, "metrics": {}}
	]`

	n, err := s.IngestStrokes([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	strokes, err := backend.Strokes()
	require.NoError(t, err)
	require.Len(t, strokes, 2)
	assert.Equal(t, core.StrokeForehand, strokes[0].Type)
	assert.InDelta(t, 72.5, strokes[0].FormScore, 0.001)
}

func TestIngestVelocity_ReplacesSeries(t *testing.T) {
	s, backend := newTestService(t)
	require.NoError(t, s.StartSession([]byte(sessionHeader)))

	require.NoError(t, s.IngestVelocity([]byte(`[3.5]`)))
	require.NoError(t, s.IngestVelocity([]byte(`[7.0, 7.5]`)))

	series, err := backend.Velocity()
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.InDelta(t, 7.0, series[0], 0.001)
}

func TestIngestArchive(t *testing.T) {
	s, _ := newTestService(t)

	archive := `{
		"session": ` + sessionHeader + `,
		"strokes": [
			{"id": 1, "startFrame": 300, "endFrame": 360, "peakFrame": 330,
			 "type": "forehand", "formScore": 60.0, "metrics": {}}
		],
		"trajectory": [
			{"frame": 300, "x": 100.0, "y": 200.0},
			{"frame": 301, "x": 110.0, "y": 190.0}
		],
		"velocity": [12.0],
		"pointEvents": [{"id": 1, "frame": 400, "timestamp": 13.3, "reason": "winner"}],
		"tips": [
			{"id": "tip-authored", "timestamp": 8.0, "duration": 4.0,
			 "title": "Grip", "message": "Loosen the grip between points."}
		]
	}`

	total, err := s.IngestArchive([]byte(archive))
	require.NoError(t, err)
	// 1 stroke + 2 trajectory + 1 point event + 1 tip + 1 velocity series
	assert.Equal(t, 6, total)

	assert.Equal(t, "morning drills", s.GetSessionContext().GetSession().Name)
}

func TestIngestArchive_MissingHeader(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.IngestArchive([]byte(`{"strokes": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing session header")
}

func TestLoadPlayback_RoundTrip(t *testing.T) {
	s, _ := newTestService(t)

	archive := `{
		"session": ` + sessionHeader + `,
		"strokes": [
			{"id": 1, "startFrame": 300, "endFrame": 360, "peakFrame": 330,
			 "type": "forehand", "formScore": 60.0, "metrics": {}}
		],
		"poses": [
			{"frame": 330, "keypoints": {"right_elbow": {"x": 640, "y": 360, "visibility": 0.9}}}
		],
		"trajectory": [{"frame": 330, "x": 650.0, "y": 350.0}],
		"velocity": [14.0],
		"pointEvents": [{"id": 1, "frame": 400, "timestamp": 13.3, "reason": "winner"}]
	}`
	_, err := s.IngestArchive([]byte(archive))
	require.NoError(t, err)

	data, err := s.LoadPlayback()
	require.NoError(t, err)

	assert.Equal(t, 1800, data.Meta.TotalFrames)
	assert.InDelta(t, 30.0, data.Meta.FPS, 0.001)
	require.Len(t, data.Strokes, 1)
	require.Len(t, data.Poses, 1)
	assert.Equal(t, 330, data.Poses[0].Frame)
	require.Len(t, data.Trajectory, 1)
	require.Len(t, data.Velocity, 1)
	require.Len(t, data.Points, 1)
	assert.Empty(t, data.Tips)
}

func TestEndSession_ReturnsExportPath(t *testing.T) {
	s, _ := newTestService(t)
	require.NoError(t, s.StartSession([]byte(sessionHeader)))

	path, err := s.EndSession()
	require.NoError(t, err)
	assert.NotEmpty(t, path, "memory backend should export on session end")
}
