package timeline

import (
	"image"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Surface and layer styling. Lengths are pixels (the canvas is created at
// 72 DPI so one point equals one pixel).
const (
	DefaultWidth  = 960
	DefaultHeight = 96

	strokeBarWidth   = 3.0
	velocityBarWidth = 1.5
	pointLineWidth   = 1.5
	playheadWidth    = 2.0

	velocityMaxHeight = 0.45 // fraction of surface height
	strokeMaxHeight   = 0.75

	strokeAlpha uint8 = 0xd9 // 85% opacity
)

var (
	surfaceColor  = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	playedTint    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x2e}
	playheadColor = color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	pointColor    = color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}

	regionColors = map[core.RegionType]color.NRGBA{
		core.RegionRally:         {R: 0x3b, G: 0x82, B: 0xf6, A: 0x3c},
		core.RegionPoint:         {R: 0xef, G: 0x44, B: 0x44, A: 0x3c},
		core.RegionStrokeCluster: {R: 0x22, G: 0xc5, B: 0x5e, A: 0x3c},
		core.RegionHighSpeed:     {R: 0xf5, G: 0x9e, B: 0x0b, A: 0x3c},
	}
)

// Renderer rasterizes a Layout onto a fixed-size surface. Each Render
// call produces a fresh canvas: full clear-and-redraw, no incremental
// diffing.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a timeline renderer with the given surface size in
// pixels. Non-positive dimensions fall back to the defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Render draws the layout bottom-up: region bands, velocity waveform,
// stroke bars, point markers, played tint, playhead.
func (r *Renderer) Render(l Layout) image.Image {
	c := r.newCanvas()
	r.draw(c, l)
	return c.Image()
}

// WritePNG renders the layout and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, l Layout) error {
	c := r.newCanvas()
	r.draw(c, l)
	png := vgimg.PngCanvas{Canvas: c}
	_, err := png.WriteTo(w)
	return err
}

func (r *Renderer) newCanvas() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(vg.Length(r.width), vg.Length(r.height)),
		vgimg.UseDPI(72),
		vgimg.UseBackgroundColor(surfaceColor),
	)
}

func (r *Renderer) draw(c *vgimg.Canvas, l Layout) {
	w := float64(r.width)
	h := float64(r.height)

	// Region bands: translucent, full height.
	for _, b := range l.Regions {
		col, ok := regionColors[b.Type]
		if !ok {
			col = regionColors[core.RegionRally]
		}
		c.SetColor(col)
		c.Fill(rect(b.Left*w, 0, b.Width*w, h))
	}

	// Velocity waveform: thin bars anchored to the bottom.
	for _, b := range l.Velocity {
		c.SetColor(parseHex(b.Color, 0xff))
		bh := b.Intensity * velocityMaxHeight * h
		c.Fill(rect(b.Center*w-velocityBarWidth/2, 0, velocityBarWidth, bh))
	}

	// Stroke bars: 3px wide at 85% opacity with a rounded top.
	for _, b := range l.Strokes {
		col := parseHex(b.Color, strokeAlpha)
		c.SetColor(col)
		bh := b.Intensity * strokeMaxHeight * h
		c.Fill(rect(b.Center*w-strokeBarWidth/2, 0, strokeBarWidth, bh))
		c.Fill(circle(b.Center*w, bh, strokeBarWidth/2))
	}

	// Point markers: full-height line fading toward the bottom, with a
	// diamond cap near the top.
	for _, p := range l.Points {
		x := p.Position * w
		c.SetColor(color.NRGBA{R: pointColor.R, G: pointColor.G, B: pointColor.B, A: 0x50})
		c.Fill(rect(x-pointLineWidth/2, 0, pointLineWidth, h/2))
		c.SetColor(pointColor)
		c.Fill(rect(x-pointLineWidth/2, h/2, pointLineWidth, h/2))
		c.Fill(diamond(x, h-8, 5))
	}

	// Played-region tint from 0 to the playhead.
	if l.PlayedFrac > 0 {
		c.SetColor(playedTint)
		c.Fill(rect(0, 0, l.PlayedFrac*w, h))
	}

	// Playhead: 2px line with a directional cap at the top.
	x := l.PlayheadFrac * w
	c.SetColor(playheadColor)
	c.Fill(rect(x-playheadWidth/2, 0, playheadWidth, h))
	c.Fill(triangleDown(x, h, 6))
}

// rect builds a closed rectangular path with origin at the bottom-left.
func rect(x, y, w, h float64) vg.Path {
	var p vg.Path
	p.Move(pt(x, y))
	p.Line(pt(x+w, y))
	p.Line(pt(x+w, y+h))
	p.Line(pt(x, y+h))
	p.Close()
	return p
}

func circle(x, y, radius float64) vg.Path {
	var p vg.Path
	p.Move(pt(x+radius, y))
	p.Arc(pt(x, y), vg.Length(radius), 0, 2*math.Pi)
	p.Close()
	return p
}

func diamond(x, y, r float64) vg.Path {
	var p vg.Path
	p.Move(pt(x, y-r))
	p.Line(pt(x+r, y))
	p.Line(pt(x, y+r))
	p.Line(pt(x-r, y))
	p.Close()
	return p
}

func triangleDown(x, top, size float64) vg.Path {
	var p vg.Path
	p.Move(pt(x-size/2, top))
	p.Line(pt(x+size/2, top))
	p.Line(pt(x, top-size))
	p.Close()
	return p
}

func pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(y)}
}

// parseHex converts a "#rrggbb" string to NRGBA with the given alpha.
// Malformed input renders gray rather than failing: annotation is
// best-effort and must never interrupt playback.
func parseHex(s string, alpha uint8) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: alpha}
	}
	hex := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	return color.NRGBA{
		R: hex(s[1])<<4 | hex(s[2]),
		G: hex(s[3])<<4 | hex(s[4]),
		B: hex(s[5])<<4 | hex(s[6]),
		A: alpha,
	}
}
