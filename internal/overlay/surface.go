package overlay

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// Annotation palette.
var (
	skeletonColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xe6}
	highlightColor = color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	guideColor     = color.NRGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xcc}
	ballColor      = color.NRGBA{R: 0xfd, G: 0xe0, B: 0x47, A: 0xff}
	landingColor   = color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	labelColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var labelFont = font.Font{Typeface: "Liberation", Variant: "Sans"}

// surface wraps a transparent vgimg canvas and exposes drawing in video
// pixel coordinates (origin top-left, y down), flipping into the
// canvas's bottom-left origin internally. Created per frame, so every
// frame starts cleared.
type surface struct {
	c *vgimg.Canvas
	h float64
}

func newSurface(width, height int) *surface {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(72),
		vgimg.UseBackgroundColor(color.Transparent),
	)
	return &surface{c: c, h: float64(height)}
}

func (s *surface) image() image.Image {
	return s.c.Image()
}

// pt converts video coordinates to canvas coordinates.
func (s *surface) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(s.h - y)}
}

func (s *surface) line(x1, y1, x2, y2 float64, col color.Color, width float64, dashes []vg.Length) {
	s.c.SetColor(col)
	s.c.SetLineWidth(vg.Length(width))
	s.c.SetLineDash(dashes, 0)
	var p vg.Path
	p.Move(s.pt(x1, y1))
	p.Line(s.pt(x2, y2))
	s.c.Stroke(p)
	s.c.SetLineDash(nil, 0)
}

func (s *surface) polyline(xs, ys []float64, col color.Color, width float64, dashes []vg.Length) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return
	}
	s.c.SetColor(col)
	s.c.SetLineWidth(vg.Length(width))
	s.c.SetLineDash(dashes, 0)
	var p vg.Path
	p.Move(s.pt(xs[0], ys[0]))
	for i := 1; i < len(xs); i++ {
		p.Line(s.pt(xs[i], ys[i]))
	}
	s.c.Stroke(p)
	s.c.SetLineDash(nil, 0)
}

func (s *surface) fillCircle(x, y, radius float64, col color.Color) {
	s.c.SetColor(col)
	var p vg.Path
	center := s.pt(x, y)
	p.Move(vg.Point{X: center.X + vg.Length(radius), Y: center.Y})
	p.Arc(center, vg.Length(radius), 0, 2*math.Pi)
	p.Close()
	s.c.Fill(p)
}

func (s *surface) strokeCircle(x, y, radius float64, col color.Color, width float64, dashes []vg.Length) {
	s.c.SetColor(col)
	s.c.SetLineWidth(vg.Length(width))
	s.c.SetLineDash(dashes, 0)
	var p vg.Path
	center := s.pt(x, y)
	p.Move(vg.Point{X: center.X + vg.Length(radius), Y: center.Y})
	p.Arc(center, vg.Length(radius), 0, 2*math.Pi)
	p.Close()
	s.c.Stroke(p)
	s.c.SetLineDash(nil, 0)
}

// arc strokes a circular arc around (x,y). start and sweep are radians in
// video space (y down, angles clockwise-positive); the flip to canvas
// space negates both.
func (s *surface) arc(x, y, radius, start, sweep float64, col color.Color, width float64, dashes []vg.Length) {
	s.c.SetColor(col)
	s.c.SetLineWidth(vg.Length(width))
	s.c.SetLineDash(dashes, 0)
	center := s.pt(x, y)
	var p vg.Path
	p.Move(vg.Point{
		X: center.X + vg.Length(radius*math.Cos(-start)),
		Y: center.Y + vg.Length(radius*math.Sin(-start)),
	})
	p.Arc(center, vg.Length(radius), -start, -sweep)
	s.c.Stroke(p)
	s.c.SetLineDash(nil, 0)
}

func (s *surface) text(x, y float64, str string, size float64, col color.Color) {
	face := font.DefaultCache.Lookup(labelFont, vg.Length(size))
	s.c.SetColor(col)
	s.c.FillString(face, s.pt(x, y), str)
}
