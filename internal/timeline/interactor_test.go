package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// fakeViewport records listener registrations and lets tests drive
// pointer events and verify that every acquired listener is released.
type fakeViewport struct {
	moveFns   map[int]func(x float64)
	upFns     map[int]func()
	nextID    int
	acquired  int
	released  int
}

func newFakeViewport() *fakeViewport {
	return &fakeViewport{
		moveFns: make(map[int]func(x float64)),
		upFns:   make(map[int]func()),
	}
}

func (v *fakeViewport) OnPointerMove(fn func(x float64)) func() {
	id := v.nextID
	v.nextID++
	v.moveFns[id] = fn
	v.acquired++
	return func() {
		if _, ok := v.moveFns[id]; ok {
			delete(v.moveFns, id)
			v.released++
		}
	}
}

func (v *fakeViewport) OnPointerUp(fn func()) func() {
	id := v.nextID
	v.nextID++
	v.upFns[id] = fn
	v.acquired++
	return func() {
		if _, ok := v.upFns[id]; ok {
			delete(v.upFns, id)
			v.released++
		}
	}
}

func (v *fakeViewport) move(x float64) {
	for _, fn := range v.moveFns {
		fn(x)
	}
}

func (v *fakeViewport) up() {
	// Copy first: handlers remove themselves during iteration.
	fns := make([]func(), 0, len(v.upFns))
	for _, fn := range v.upFns {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

func (v *fakeViewport) leaked() int { return v.acquired - v.released }

func TestTimeAt_Edges(t *testing.T) {
	assert.Equal(t, 0.0, TimeAt(0, 800, 60))
	assert.InDelta(t, 60.0, TimeAt(800, 800, 60), 1e-9)
	assert.InDelta(t, 30.0, TimeAt(400, 800, 60), 1e-9)

	// Out-of-range x clamps to the surface.
	assert.Equal(t, 0.0, TimeAt(-50, 800, 60))
	assert.InDelta(t, 60.0, TimeAt(900, 800, 60), 1e-9)
}

func TestTimeAt_ZeroWidth(t *testing.T) {
	assert.Equal(t, 0.0, TimeAt(10, 0, 60))
}

func TestInteractor_ClickSeeks(t *testing.T) {
	vp := newFakeViewport()
	var seeks []float64
	in := NewInteractor(800, 60, vp, func(s float64) { seeks = append(seeks, s) })

	in.PointerDown(400)
	require.Equal(t, []float64{30}, seeks)
	vp.up()
	assert.Zero(t, vp.leaked())
}

func TestInteractor_DragReseeksOnEveryMove(t *testing.T) {
	vp := newFakeViewport()
	var seeks []float64
	in := NewInteractor(800, 60, vp, func(s float64) { seeks = append(seeks, s) })

	in.PointerDown(0)
	vp.move(200)
	vp.move(820) // beyond the right edge: clamps to duration
	vp.move(-10) // left of the surface: clamps to zero
	vp.up()

	require.Len(t, seeks, 4)
	assert.Equal(t, 0.0, seeks[0])
	assert.InDelta(t, 15.0, seeks[1], 1e-9)
	assert.InDelta(t, 60.0, seeks[2], 1e-9)
	assert.Equal(t, 0.0, seeks[3])

	// Moves after pointer-up are no longer observed.
	vp.move(400)
	assert.Len(t, seeks, 4)
	assert.Zero(t, vp.leaked())
}

func TestInteractor_CloseReleasesActiveGesture(t *testing.T) {
	vp := newFakeViewport()
	in := NewInteractor(800, 60, vp, func(float64) {})

	in.PointerDown(100)
	require.True(t, in.Dragging())

	in.Close()
	assert.Zero(t, vp.leaked(), "teardown must release viewport listeners")
	assert.False(t, in.Dragging())

	// Closed interactor ignores further gestures.
	in.PointerDown(100)
	assert.Zero(t, vp.leaked())
}

func TestInteractor_SecondDownReplacesStaleSession(t *testing.T) {
	vp := newFakeViewport()
	in := NewInteractor(800, 60, vp, func(float64) {})

	in.PointerDown(100)
	in.PointerDown(200) // pointer-up for the first gesture never arrived

	vp.up()
	assert.Zero(t, vp.leaked())
}

func TestInteractor_StrokeClicked(t *testing.T) {
	vp := newFakeViewport()
	in := NewInteractor(800, 60, vp, func(float64) {})

	meta := core.VideoMeta{Duration: 60, FPS: 30, TotalFrames: 1800}
	strokes := []core.StrokeEvent{
		{ID: 7, StartFrame: 880, EndFrame: 920}, // ~29.3s..30.7s
	}
	var clicked []uint
	in.SetStrokes(strokes, meta, func(s core.StrokeEvent) { clicked = append(clicked, s.ID) })

	in.PointerDown(400) // t=30s, frame 900: inside the stroke
	vp.up()
	in.PointerDown(100) // t=7.5s: no stroke there
	vp.up()

	assert.Equal(t, []uint{7}, clicked)
	assert.Zero(t, vp.leaked())
}
