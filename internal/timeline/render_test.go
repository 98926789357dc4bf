package timeline

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

func TestRenderer_SurfaceSize(t *testing.T) {
	r := NewRenderer(320, 48)
	img := r.Render(Layout{})

	b := img.Bounds()
	assert.Equal(t, 320, b.Dx())
	assert.Equal(t, 48, b.Dy())
}

func TestRenderer_DefaultsOnBadSize(t *testing.T) {
	r := NewRenderer(0, -1)
	img := r.Render(Layout{})

	b := img.Bounds()
	assert.Equal(t, DefaultWidth, b.Dx())
	assert.Equal(t, DefaultHeight, b.Dy())
}

func TestRenderer_DrawsStrokeBar(t *testing.T) {
	r := NewRenderer(100, 50)
	l := Layout{
		Strokes: []Bar{{Center: 0.5, Intensity: 1, Color: "#22c55e"}},
	}
	img := r.Render(l)

	// The bar is bottom-anchored at x=50; sample just above the bottom
	// edge. Image y grows downward, vg y grows upward.
	c := img.At(50, 48)
	rr, gg, bb, _ := c.RGBA()
	assert.Greater(t, gg, rr, "stroke bar pixel should be green-dominant")
	assert.Greater(t, gg, bb)
}

func TestRenderer_StrokeBarAlpha(t *testing.T) {
	// Stroke bars draw at 85% opacity.
	assert.Equal(t, uint8(217), strokeAlpha)

	c := parseHex("#22c55e", strokeAlpha)
	assert.Equal(t, strokeAlpha, c.A)
}

func TestRenderer_EmptyLayoutIsBackground(t *testing.T) {
	r := NewRenderer(100, 50)
	img := r.Render(Layout{})

	got := color.NRGBAModel.Convert(img.At(70, 25)).(color.NRGBA)
	assert.Equal(t, surfaceColor.R, got.R)
	assert.Equal(t, surfaceColor.G, got.G)
	assert.Equal(t, surfaceColor.B, got.B)
}

func TestRenderer_WritePNG(t *testing.T) {
	r := NewRenderer(100, 50)
	l := Compute(
		[]core.ActivityRegion{{StartTime: 0, EndTime: 30, Type: core.RegionRally}},
		[]core.ActivityMarker{{Type: core.MarkerPoint, Position: 0.4, Intensity: 1}},
		10, 60,
	)

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf, l))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestParseHex(t *testing.T) {
	c := parseHex("#ff8000", 0xcc)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xcc}, c)

	// Malformed input falls back to gray instead of failing.
	c = parseHex("red", 0xff)
	assert.Equal(t, uint8(0x9c), c.R)
}
