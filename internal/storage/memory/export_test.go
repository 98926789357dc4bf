package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func exportSession() *core.Session {
	return &core.Session{
		Name:            "morning drills",
		Sport:           "tennis",
		Tag:             "practice",
		StartTime:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		AnalyzerVersion: "2.1.0",
		Video:           core.VideoMeta{Duration: 60, FPS: 30, TotalFrames: 1800, Width: 1920, Height: 1080},
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.StartSession(exportSession()))

	require.NoError(t, b.AddStroke(&core.StrokeEvent{ID: 1, StartFrame: 300, EndFrame: 360, PeakFrame: 330, Type: core.StrokeForehand, FormScore: 82}))
	require.NoError(t, b.AddPoseFrame(&core.PoseFrame{Frame: 330}))
	require.NoError(t, b.SetVelocitySeries(core.VelocitySeries{0, 0.4, 0.9}))

	require.NoError(t, b.EndSession())

	path := b.GetExportedFilePath()
	require.NotEmpty(t, path)
	assert.Equal(t, "morning_drills_20260314_093000.json", filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var export SessionExport
	require.NoError(t, json.Unmarshal(raw, &export))
	assert.Equal(t, "morning drills", export.Name)
	assert.InDelta(t, 30, export.FPS, 0.001)
	require.Len(t, export.Strokes, 1)
	assert.Equal(t, core.StrokeForehand, export.Strokes[0].Type)
	assert.Len(t, export.Velocity, 3)
	require.Len(t, export.Poses, 1)
	assert.Equal(t, 330, export.Poses[0].Frame)
}

func TestExportJSON_Gzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.StartSession(exportSession()))
	require.NoError(t, b.EndSession())

	path := b.GetExportedFilePath()
	assert.Equal(t, ".gz", filepath.Ext(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var export SessionExport
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Equal(t, "morning drills", export.Name)
}

func TestExportJSON_TrajectoryPathLength(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartSession(exportSession()))

	// 3-4-5 triangle legs: total path length 3 + 4 = 7 pixels.
	require.NoError(t, b.AddTrajectoryPoint(&core.TrajectoryPoint{Frame: 1, X: 0, Y: 0}))
	require.NoError(t, b.AddTrajectoryPoint(&core.TrajectoryPoint{Frame: 2, X: 3, Y: 0}))
	require.NoError(t, b.AddTrajectoryPoint(&core.TrajectoryPoint{Frame: 3, X: 3, Y: 4}))

	b.mu.Lock()
	export := b.buildExport()
	b.mu.Unlock()

	assert.InDelta(t, 7, export.TrajectoryPx, 0.001)
}

func TestExportJSON_TrajectoryPathLengthDegenerate(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartSession(exportSession()))
	require.NoError(t, b.AddTrajectoryPoint(&core.TrajectoryPoint{Frame: 1, X: 5, Y: 5}))

	b.mu.Lock()
	export := b.buildExport()
	b.mu.Unlock()

	assert.Zero(t, export.TrajectoryPx)
}

func TestExportJSON_PosesSortedByFrame(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.StartSession(exportSession()))

	for _, f := range []int{50, 10, 30} {
		require.NoError(t, b.AddPoseFrame(&core.PoseFrame{Frame: f}))
	}

	b.mu.Lock()
	export := b.buildExport()
	b.mu.Unlock()

	require.Len(t, export.Poses, 3)
	assert.Equal(t, 10, export.Poses[0].Frame)
	assert.Equal(t, 50, export.Poses[2].Frame)
}
