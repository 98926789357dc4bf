// Package overlay draws frame-accurate annotation graphics over the
// video: joint-angle arcs, rotation indicators and projected ball paths.
// Rendering is gated by the single active annotation id supplied by the
// tip scheduler and re-synchronized on every playback frame.
package overlay

import (
	"image"
	"strings"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Default surface dimensions when the video's native resolution is
// unknown.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Frame is the read-only snapshot the renderer consumes on each playback
// frame. Any missing optional input (nil pose, no trajectory point at the
// exact frame) causes silent no-render, never an error: annotation is
// best-effort and must not interrupt playback.
type Frame struct {
	ActiveTipID string
	Stroke      *core.StrokeEvent
	Pose        *core.PoseFrame
	Trajectory  []core.TrajectoryPoint
	FrameIndex  int
}

// visualization is one rung of the annotation dispatch table. Matching is
// by id substring, not exact match: tip ids are namespaced
// (e.g. "tip-12-contact"), so several concrete ids share one
// visualization. Entries are independently gated and several may draw on
// the same frame.
type visualization struct {
	name    string
	matches func(id string) bool
	draw    func(*surface, Frame)
}

var visualizations = []visualization{
	{
		name:    "contact-analysis",
		matches: func(id string) bool { return strings.Contains(id, "contact") },
		draw:    drawContactAnalysis,
	},
	{
		name:    "follow-through",
		matches: func(id string) bool { return strings.Contains(id, "follow") },
		draw:    drawFollowThrough,
	},
	{
		// Ball projection accompanies any active annotation; its own
		// precondition (an exact-frame trajectory point) gates drawing.
		name:    "ball-projection",
		matches: func(string) bool { return true },
		draw:    drawBallProjection,
	},
}

// Renderer owns the per-frame raster surface, sized to the video's
// native resolution. The surface is recreated on dimension change and
// cleared on every frame: full clear-and-redraw, no incremental diffing.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates an overlay renderer at the default resolution.
func NewRenderer() *Renderer {
	return &Renderer{width: DefaultWidth, height: DefaultHeight}
}

// SetVideoSize resizes the surface to the video's native dimensions.
// Non-positive dimensions keep the current size.
func (r *Renderer) SetVideoSize(width, height int) {
	if width > 0 && height > 0 {
		r.width = width
		r.height = height
	}
}

// Size returns the current surface dimensions in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Render produces this frame's overlay image. With no active annotation
// the surface is returned cleared (fully transparent).
func (r *Renderer) Render(f Frame) image.Image {
	s := newSurface(r.width, r.height)
	if f.ActiveTipID == "" {
		return s.image()
	}
	for _, v := range visualizations {
		if v.matches(f.ActiveTipID) {
			v.draw(s, f)
		}
	}
	return s.image()
}
