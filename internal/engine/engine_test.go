package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/internal/dispatcher"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMeta() core.VideoMeta {
	return core.VideoMeta{Duration: 60, FPS: 30, TotalFrames: 1800, Width: 1280, Height: 720}
}

func testStroke() core.StrokeEvent {
	return core.StrokeEvent{
		ID:         1,
		StartFrame: 300,
		EndFrame:   360,
		PeakFrame:  330,
		Type:       core.StrokeForehand,
		FormScore:  60,
		Metrics: core.StrokeMetrics{
			ElbowAngle:            100,
			ElbowRange:            50,
			HipRotationRange:      25,
			ShoulderRotationRange: 40,
			KneeAngle:             150,
			SpineLean:             8,
		},
	}
}

func TestEngine_GeneratesTipsOnLoad(t *testing.T) {
	var transitions []*core.VideoTip
	e := New(discardLogger(), Callbacks{
		TipChanged: func(tip *core.VideoTip) { transitions = append(transitions, tip) },
	})

	e.LoadSession(SessionData{Meta: testMeta(), Strokes: []core.StrokeEvent{testStroke()}})

	// Stroke starts at 10s; its tip window opens there.
	e.OnTimeUpdate(11)

	require.NotNil(t, e.ActiveTip())
	assert.Equal(t, "tip-1-contact", e.ActiveTip().ID)
	require.Len(t, transitions, 1)
	assert.Equal(t, "tip-1-contact", transitions[0].ID)

	// Staying inside the window must not re-notify.
	e.OnTimeUpdate(12)
	assert.Len(t, transitions, 1)
}

func TestEngine_OverlayFollowsVideoSize(t *testing.T) {
	e := New(discardLogger(), Callbacks{})
	e.LoadSession(SessionData{Meta: testMeta()})

	img := e.OnTimeUpdate(5)
	b := img.Bounds()
	assert.Equal(t, 1280, b.Dx())
	assert.Equal(t, 720, b.Dy())
}

func TestEngine_SeekFansOutAndAdvancesScheduler(t *testing.T) {
	var sought []float64
	e := New(discardLogger(), Callbacks{
		Seek: func(s float64) { sought = append(sought, s) },
	})
	e.LoadSession(SessionData{Meta: testMeta(), Strokes: []core.StrokeEvent{testStroke()}})

	e.Seek(11)

	require.Equal(t, []float64{11}, sought)
	require.NotNil(t, e.ActiveTip())
}

func TestEngine_StrokeClickedSeeksToStart(t *testing.T) {
	var sought []float64
	var clicked []core.StrokeEvent
	e := New(discardLogger(), Callbacks{
		Seek:          func(s float64) { sought = append(sought, s) },
		StrokeClicked: func(s core.StrokeEvent) { clicked = append(clicked, s) },
	})
	e.LoadSession(SessionData{Meta: testMeta(), Strokes: []core.StrokeEvent{testStroke()}})

	e.StrokeClicked(testStroke())

	require.Len(t, clicked, 1)
	require.Equal(t, []float64{10}, sought)
}

func TestEngine_ExplicitTipsSkipGeneration(t *testing.T) {
	e := New(discardLogger(), Callbacks{})
	e.LoadSession(SessionData{
		Meta: testMeta(),
		Tips: []core.VideoTip{{ID: "custom", Timestamp: 1, Duration: 2, Title: "x", Message: "y"}},
	})

	e.OnTimeUpdate(1.5)
	require.NotNil(t, e.ActiveTip())
	assert.Equal(t, "custom", e.ActiveTip().ID)
}

func TestEngine_DispatcherCommands(t *testing.T) {
	e := New(discardLogger(), Callbacks{})
	e.LoadSession(SessionData{Meta: testMeta(), Strokes: []core.StrokeEvent{testStroke()}})

	d, err := dispatcher.New(noopLogger{})
	require.NoError(t, err)
	e.RegisterCommands(d)

	_, err = d.Dispatch(dispatcher.Event{Command: CmdPlaybackTime, Payload: 11.0})
	require.NoError(t, err)
	require.NotNil(t, e.ActiveTip())

	_, err = d.Dispatch(dispatcher.Event{Command: CmdPlaybackTime, Payload: "11"})
	assert.Error(t, err)
}

func TestEngine_MarkersFromLoadedSession(t *testing.T) {
	e := New(discardLogger(), Callbacks{})
	e.LoadSession(SessionData{
		Meta:     testMeta(),
		Strokes:  []core.StrokeEvent{testStroke()},
		Velocity: core.VelocitySeries{0, 0.5, 1, 0.5, 0},
		Points:   []core.PointEvent{{ID: 1, Frame: 900, Timestamp: 30, Reason: "winner"}},
	})

	ms := e.Markers()
	require.NotEmpty(t, ms)

	// Point markers stack above everything else.
	assert.Equal(t, core.MarkerPoint, ms[len(ms)-1].Type)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
