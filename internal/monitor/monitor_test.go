package monitor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/internal/logging"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func testLogManager() *logging.SlogManager {
	lm := logging.NewSlogManager()
	lm.Setup(&bytes.Buffer{}, "error", "")
	return lm
}

func TestSnapshot(t *testing.T) {
	svc := NewService(Dependencies{
		LogManager:   testLogManager(),
		SessionName:  func() string { return "morning drills" },
		PlaybackTime: func() float64 { return 12.5 },
		ActiveTip:    func() *core.VideoTip { return &core.VideoTip{Title: "Follow through"} },
		QueueLengths: func() map[string]int { return map[string]int{"strokes": 3} },
	})

	snap := svc.Snapshot()
	assert.Equal(t, "morning drills", snap.Session)
	assert.Equal(t, 12.5, snap.PlaybackTime)
	assert.Equal(t, "Follow through", snap.ActiveTip)
	assert.Equal(t, 3, snap.WriteQueues["strokes"])
}

func TestSnapshotNilDependencies(t *testing.T) {
	svc := NewService(Dependencies{LogManager: testLogManager()})

	snap := svc.Snapshot()
	assert.Empty(t, snap.Session)
	assert.Empty(t, snap.ActiveTip)
	assert.Nil(t, snap.WriteQueues)
}

func TestStartWritesStatusFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(Dependencies{
		LogManager:   testLogManager(),
		SessionName:  func() string { return "morning drills" },
		PlaybackTime: func() float64 { return 4.0 },
		StatusDir:    dir,
		Interval:     10 * time.Millisecond,
	})

	require.NoError(t, svc.Start())
	defer svc.Stop()

	statusPath := filepath.Join(dir, "status.txt")
	var body []byte
	require.Eventually(t, func() bool {
		var err error
		body, err = os.ReadFile(statusPath)
		return err == nil && len(body) > 0
	}, 2*time.Second, 10*time.Millisecond)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "morning drills", snap.Session)
	assert.Equal(t, 4.0, snap.PlaybackTime)
}

func TestStartTwiceIsNoop(t *testing.T) {
	svc := NewService(Dependencies{
		LogManager:  testLogManager(),
		SessionName: func() string { return "" },
		StatusDir:   t.TempDir(),
		Interval:    10 * time.Millisecond,
	})

	require.NoError(t, svc.Start())
	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())

	svc.Stop()
	assert.Eventually(t, func() bool { return !svc.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}
