// Package markers turns the session's heterogeneous event streams into a
// single ordered list of drawable timeline markers. Synthesis is a pure
// function of its inputs: recomputing with identical inputs yields an
// identical marker list.
package markers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/scrappydevs/ProVision-sub002/internal/util"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Marker colors per source stream.
const (
	colorForehand = "#22c55e"
	colorBackhand = "#3b82f6"
	colorUnknown  = "#a855f7"
	colorVelocity = "#f59e0b"
	colorPoint    = "#ef4444"
)

// velocityTargetSamples bounds the rendered waveform regardless of how
// densely the analysis stage sampled speed.
const velocityTargetSamples = 120

// velocityNoiseFloor suppresses markers during calm periods.
const velocityNoiseFloor = 0.25

// Synthesize converts the source streams into timeline markers. The
// returned slice is in render z-order: velocity behind strokes behind
// points. Source order is preserved within each type. Returns nil when
// the video duration is not positive.
func Synthesize(strokes []core.StrokeEvent, velocity core.VelocitySeries, points []core.PointEvent, meta core.VideoMeta) []core.ActivityMarker {
	if meta.Duration <= 0 {
		return nil
	}

	out := velocityMarkers(velocity, meta)
	for _, s := range strokes {
		out = append(out, strokeMarkers(s, meta)...)
	}
	for _, p := range points {
		out = append(out, pointMarker(p, meta))
	}
	return out
}

// strokeMarkers generates a tapered bar cluster for one stroke. Intensity
// follows a Gaussian centered at the peak-frame (contact) position and
// scales with form score, so better strokes read brighter.
func strokeMarkers(s core.StrokeEvent, meta core.VideoMeta) []core.ActivityMarker {
	maxFrame := meta.MaxFrame()

	n := int(math.Round(float64(s.EndFrame-s.StartFrame) / 2))
	if n < 3 {
		n = 3
	}

	startPos := float64(s.StartFrame) / maxFrame
	endPos := float64(s.EndFrame) / maxFrame
	peakPos := float64(s.PeakFrame) / maxFrame
	peakT := (peakPos - startPos) / util.SafeDenom(endPos-startPos)

	quality := math.Min(1, s.FormScore/100)
	color := strokeColor(s.Type)
	label := fmt.Sprintf("%s (form %.0f)", s.Type, s.FormScore)

	ms := make([]core.ActivityMarker, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		pos := startPos + t*(endPos-startPos)
		intensity := 0.3 + 0.7*math.Exp(-(t-peakT)*(t-peakT)/0.08)*quality

		ms = append(ms, core.ActivityMarker{
			Position:  util.Clamp01(pos),
			Intensity: util.Clamp(intensity, 0.15, 1),
			Color:     color,
			Label:     label,
			Time:      util.Clamp01(pos) * meta.Duration,
			Type:      core.MarkerStroke,
		})
	}
	return ms
}

// velocityMarkers downsamples the velocity series to at most
// velocityTargetSamples markers, each carrying the sampled value
// normalized by the series maximum. Samples at or below the noise floor
// emit nothing.
func velocityMarkers(velocity core.VelocitySeries, meta core.VideoMeta) []core.ActivityMarker {
	n := len(velocity)
	if n == 0 {
		return nil
	}

	stride := n / velocityTargetSamples
	if stride < 1 {
		stride = 1
	}
	// Floor the normalizer at 1 to avoid division by zero on all-zero series.
	maxV := floats.Max(velocity)
	if maxV < 1 {
		maxV = 1
	}
	span := util.SafeDenom(float64(n - 1))

	var ms []core.ActivityMarker
	for i := 0; i < n; i += stride {
		v := velocity[i] / maxV
		if v <= velocityNoiseFloor {
			continue
		}
		pos := util.Clamp01(float64(i) / span)
		ms = append(ms, core.ActivityMarker{
			Position:  pos,
			Intensity: util.Clamp01(0.1 + 0.5*v),
			Color:     colorVelocity,
			Label:     fmt.Sprintf("speed %.1f", velocity[i]),
			Time:      pos * meta.Duration,
			Type:      core.MarkerVelocity,
		})
	}
	return ms
}

// pointMarker emits one full-intensity marker per point event. Points are
// the highest-salience moments and must never be visually subordinate to
// the other layers.
func pointMarker(p core.PointEvent, meta core.VideoMeta) core.ActivityMarker {
	pos := util.Clamp01(p.Timestamp / meta.Duration)
	label := "point"
	if p.Reason != "" {
		label = fmt.Sprintf("point: %s", p.Reason)
	}
	return core.ActivityMarker{
		Position:  pos,
		Intensity: 1.0,
		Color:     colorPoint,
		Label:     label,
		Time:      p.Timestamp,
		Type:      core.MarkerPoint,
	}
}

func strokeColor(t core.StrokeType) string {
	switch t {
	case core.StrokeForehand:
		return colorForehand
	case core.StrokeBackhand:
		return colorBackhand
	default:
		return colorUnknown
	}
}
