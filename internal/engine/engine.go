// Package engine binds the playback loop together: time observations
// drive the tip scheduler, the active tip selects the stroke and pose
// context for the overlay renderer, and seek requests fan out to the
// registered callbacks.
package engine

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/scrappydevs/ProVision-sub002/internal/cache"
	"github.com/scrappydevs/ProVision-sub002/internal/dispatcher"
	"github.com/scrappydevs/ProVision-sub002/internal/markers"
	"github.com/scrappydevs/ProVision-sub002/internal/overlay"
	"github.com/scrappydevs/ProVision-sub002/internal/tips"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Commands the engine registers on the dispatcher.
const (
	CmdPlaybackTime = "playback:time"
	CmdPlaybackSeek = "playback:seek"
)

// Callbacks fan engine-side decisions out to the embedding surface
// (video element, timeline widget, notification area). Nil entries are
// skipped.
type Callbacks struct {
	Seek          func(seconds float64)
	TipChanged    func(tip *core.VideoTip)
	StrokeClicked func(s core.StrokeEvent)
}

// Engine is the per-session playback coordinator. It is synchronous:
// every entry point runs to completion on the caller's goroutine, so at
// most one tip is active and at most one overlay frame is in flight.
type Engine struct {
	log *slog.Logger

	meta       core.VideoMeta
	strokes    *cache.StrokeCache
	poses      *cache.PoseCache
	trajectory []core.TrajectoryPoint
	velocity   core.VelocitySeries
	points     []core.PointEvent

	scheduler *tips.Scheduler
	overlay   *overlay.Renderer
	callbacks Callbacks

	currentTime float64
}

// New creates an engine with empty session state. Load a session with
// LoadSession before driving playback.
func New(log *slog.Logger, cb Callbacks) *Engine {
	e := &Engine{
		log:       log,
		strokes:   cache.NewStrokeCache(),
		poses:     cache.NewPoseCache(),
		overlay:   overlay.NewRenderer(),
		callbacks: cb,
	}
	e.scheduler = tips.NewScheduler(nil, e.tipChanged)
	return e
}

// SessionData is everything the engine needs from one analyzed session.
type SessionData struct {
	Meta       core.VideoMeta
	Strokes    []core.StrokeEvent
	Poses      []core.PoseFrame
	Trajectory []core.TrajectoryPoint
	Velocity   core.VelocitySeries
	Points     []core.PointEvent
	Tips       []core.VideoTip
}

// LoadSession replaces the engine's session state. When d.Tips is empty
// the tip set is generated from the strokes.
func (e *Engine) LoadSession(d SessionData) {
	e.meta = d.Meta
	e.strokes.SetAll(d.Strokes)
	e.poses.SetAll(d.Poses)
	e.trajectory = d.Trajectory
	e.velocity = d.Velocity
	e.points = d.Points

	tipList := d.Tips
	if len(tipList) == 0 {
		tipList = tips.Generate(d.Strokes, d.Meta)
	}
	e.scheduler.SetTips(tipList)
	e.overlay.SetVideoSize(d.Meta.Width, d.Meta.Height)
	e.currentTime = 0

	e.log.Info("session loaded",
		"strokes", len(d.Strokes),
		"poses", len(d.Poses),
		"trajectoryPoints", len(d.Trajectory),
		"tips", len(tipList),
		"duration", d.Meta.Duration)
}

// OnTimeUpdate advances the scheduler to the new playback position and
// returns the overlay image for the frame at that position.
func (e *Engine) OnTimeUpdate(seconds float64) image.Image {
	e.currentTime = seconds
	e.scheduler.Observe(seconds)
	return e.renderOverlay(seconds)
}

// Seek moves the playhead: fans out to the seek callback, then treats
// the new position as a time update so the scheduler and overlay stay
// in lockstep with the video element.
func (e *Engine) Seek(seconds float64) {
	if e.callbacks.Seek != nil {
		e.callbacks.Seek(seconds)
	}
	e.OnTimeUpdate(seconds)
}

// StrokeClicked reports a timeline stroke-bar click: seeks to the
// stroke's start and fans out to the callback.
func (e *Engine) StrokeClicked(s core.StrokeEvent) {
	if e.callbacks.StrokeClicked != nil {
		e.callbacks.StrokeClicked(s)
	}
	e.Seek(s.StartSeconds(e.meta))
}

// ActiveTip returns the tip currently shown, or nil.
func (e *Engine) ActiveTip() *core.VideoTip {
	return e.scheduler.Active()
}

// CurrentTime returns the playhead position in seconds.
func (e *Engine) CurrentTime() float64 {
	return e.currentTime
}

// Markers synthesizes the timeline marker set for the loaded session.
func (e *Engine) Markers() []core.ActivityMarker {
	return markers.Synthesize(e.strokes.All(), e.velocity, e.points, e.meta)
}

// Meta returns the loaded session's video metadata.
func (e *Engine) Meta() core.VideoMeta {
	return e.meta
}

// RegisterCommands wires the engine's entry points into the dispatcher.
// Both playback commands are synchronous handlers: buffering them would
// let a stale time observation overtake a seek.
func (e *Engine) RegisterCommands(d *dispatcher.Dispatcher) {
	d.Register(CmdPlaybackTime, func(ev dispatcher.Event) (any, error) {
		seconds, ok := ev.Payload.(float64)
		if !ok {
			return nil, fmt.Errorf("playback:time payload must be float64 seconds, got %T", ev.Payload)
		}
		e.OnTimeUpdate(seconds)
		return "ok", nil
	}, dispatcher.Logged())

	d.Register(CmdPlaybackSeek, func(ev dispatcher.Event) (any, error) {
		seconds, ok := ev.Payload.(float64)
		if !ok {
			return nil, fmt.Errorf("playback:seek payload must be float64 seconds, got %T", ev.Payload)
		}
		e.Seek(seconds)
		return "ok", nil
	}, dispatcher.Logged())
}

// tipChanged receives scheduler transitions and fans them out. A tip's
// SeekTime is a suggestion for the embedding surface (e.g. a "jump to
// contact" affordance), never an automatic seek.
func (e *Engine) tipChanged(t *core.VideoTip) {
	if t == nil {
		e.log.Debug("tip cleared")
	} else {
		e.log.Debug("tip shown", "id", t.ID, "title", t.Title)
	}
	if e.callbacks.TipChanged != nil {
		e.callbacks.TipChanged(t)
	}
}

// renderOverlay assembles the overlay frame for the given playback
// position. Stroke resolution prefers the tip's explicit stroke link and
// falls back to whichever stroke spans the current frame.
func (e *Engine) renderOverlay(seconds float64) image.Image {
	frame := e.meta.FrameAt(seconds)

	f := overlay.Frame{
		FrameIndex: frame,
		Trajectory: e.trajectory,
	}

	if active := e.scheduler.Active(); active != nil {
		f.ActiveTipID = active.ID

		if active.StrokeID != nil {
			if s, ok := e.strokes.Get(*active.StrokeID); ok {
				f.Stroke = &s
			}
		}
		if f.Stroke == nil {
			if s, ok := e.strokes.AtFrame(frame); ok {
				f.Stroke = &s
			}
		}
	}

	if p, ok := e.poses.Get(frame); ok {
		f.Pose = &p
	}

	return e.overlay.Render(f)
}
