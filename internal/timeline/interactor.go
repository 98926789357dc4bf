package timeline

import (
	"sync"

	"github.com/scrappydevs/ProVision-sub002/internal/util"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// SeekFunc receives the requested playback position in seconds.
type SeekFunc func(seconds float64)

// StrokeClickedFunc is notified when a pointer-down lands inside a
// stroke's span on the timeline.
type StrokeClickedFunc func(core.StrokeEvent)

// Viewport grants scoped access to pointer listeners outside the timeline
// surface. During a drag the gesture must keep tracking the pointer even
// after it leaves the component bounds, so move/up listeners are
// installed at viewport scope for the duration of one gesture. The
// returned cancel funcs tear the listeners down; they must tolerate being
// called more than once.
type Viewport interface {
	OnPointerMove(fn func(x float64)) (cancel func())
	OnPointerUp(fn func()) (cancel func())
}

// TimeAt maps a pointer x offset on the surface to playback seconds,
// clamping x to [0, width].
func TimeAt(x, width, duration float64) float64 {
	x = util.Clamp(x, 0, width)
	return (x / util.SafeDenom(width)) * duration
}

// Interactor owns click-to-seek and drag-to-scrub over the timeline
// surface. One gesture session exists at a time; pointer-down replaces
// any session left over from an interrupted gesture.
type Interactor struct {
	width    float64
	duration float64
	viewport Viewport
	seek     SeekFunc

	onStrokeClicked StrokeClickedFunc
	strokes         []core.StrokeEvent
	meta            core.VideoMeta

	mu      sync.Mutex
	session *gestureSession
	closed  bool
}

// NewInteractor creates an interactor for a surface of the given pixel
// width over a video of the given duration.
func NewInteractor(width, duration float64, viewport Viewport, seek SeekFunc) *Interactor {
	return &Interactor{
		width:    width,
		duration: duration,
		viewport: viewport,
		seek:     seek,
	}
}

// SetStrokes installs the stroke list used for stroke-click resolution.
func (in *Interactor) SetStrokes(strokes []core.StrokeEvent, meta core.VideoMeta, fn StrokeClickedFunc) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.strokes = strokes
	in.meta = meta
	in.onStrokeClicked = fn
}

// PointerDown seeks immediately and begins a drag gesture: viewport-wide
// move events re-seek until PointerUp (delivered via the viewport) or
// Close releases the session.
func (in *Interactor) PointerDown(x float64) {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return
	}
	// A stale session means the previous gesture never saw its pointer-up;
	// release it before starting a new one.
	if in.session != nil {
		in.session.release()
	}
	session := &gestureSession{}
	in.session = session
	strokes, meta, clicked := in.strokes, in.meta, in.onStrokeClicked
	in.mu.Unlock()

	t := TimeAt(x, in.width, in.duration)
	in.seek(t)

	if clicked != nil {
		frame := meta.FrameAt(t)
		for _, s := range strokes {
			if s.ContainsFrame(frame) {
				clicked(s)
				break
			}
		}
	}

	cancelMove := in.viewport.OnPointerMove(func(mx float64) {
		in.seek(TimeAt(mx, in.width, in.duration))
	})
	cancelUp := in.viewport.OnPointerUp(func() {
		in.endGesture(session)
	})
	session.arm(cancelMove, cancelUp)
}

// Dragging reports whether a gesture session is currently active.
func (in *Interactor) Dragging() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.session != nil && !in.session.released()
}

// Close releases any active gesture session. Safe to call repeatedly;
// after Close the interactor ignores further pointer-downs.
func (in *Interactor) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	if in.session != nil {
		in.session.release()
		in.session = nil
	}
}

func (in *Interactor) endGesture(session *gestureSession) {
	session.release()
	in.mu.Lock()
	if in.session == session {
		in.session = nil
	}
	in.mu.Unlock()
}

// gestureSession pairs the two viewport listeners acquired on
// pointer-down with a guaranteed single release. The zero value is armed
// later because listener registration itself may deliver events.
type gestureSession struct {
	mu         sync.Mutex
	cancelMove func()
	cancelUp   func()
	done       bool
}

func (g *gestureSession) arm(cancelMove, cancelUp func()) {
	g.mu.Lock()
	alreadyDone := g.done
	if !alreadyDone {
		g.cancelMove = cancelMove
		g.cancelUp = cancelUp
	}
	g.mu.Unlock()
	// Released before arming (teardown raced the registration): undo the
	// listeners immediately.
	if alreadyDone {
		cancelMove()
		cancelUp()
	}
}

func (g *gestureSession) release() {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.done = true
	cancelMove, cancelUp := g.cancelMove, g.cancelUp
	g.cancelMove, g.cancelUp = nil, nil
	g.mu.Unlock()

	if cancelMove != nil {
		cancelMove()
	}
	if cancelUp != nil {
		cancelUp()
	}
}

func (g *gestureSession) released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}
