// Package timeline renders the interactive seek/scrub surface: layered
// region bands, a velocity waveform, stroke bar clusters, point markers,
// the played-region tint and the playhead. Layout geometry is computed in
// normalized units so rendering and hit-testing share one coordinate
// space.
package timeline

import (
	"github.com/scrappydevs/ProVision-sub002/internal/util"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// minBandWidth keeps instantaneous regions perceptible (0.3% of the
// surface).
const minBandWidth = 0.003

// Band is one translucent region band, in fractions of surface width.
type Band struct {
	Left  float64
	Width float64
	Type  core.RegionType
	Label string
}

// Bar is one vertical marker bar anchored to the bottom of the surface.
type Bar struct {
	Center    float64 // fraction of surface width
	Intensity float64 // drives bar height
	Color     string
	Label     string
	Time      float64
}

// PointLine is a full-height gradient line with a diamond cap marking a
// scoring instant.
type PointLine struct {
	Position float64
	Label    string
	Time     float64
}

// Layout is the complete normalized geometry for one timeline frame,
// ordered bottom-up: regions, velocity, strokes, points, played tint,
// playhead.
type Layout struct {
	Regions      []Band
	Velocity     []Bar
	Strokes      []Bar
	Points       []PointLine
	PlayedFrac   float64
	PlayheadFrac float64
}

// Compute builds the layout for the given regions and markers at the
// given playback position. Markers must already be in synthesis z-order
// (velocity, stroke, point); Compute splits them into layers.
func Compute(regions []core.ActivityRegion, activityMarkers []core.ActivityMarker, currentTime, duration float64) Layout {
	var l Layout
	if duration <= 0 {
		return l
	}

	for _, r := range regions {
		left := util.Clamp01(r.StartTime / duration)
		width := util.Clamp01(r.EndTime/duration) - left
		if width < minBandWidth {
			width = minBandWidth
		}
		l.Regions = append(l.Regions, Band{Left: left, Width: width, Type: r.Type, Label: r.Label})
	}

	for _, m := range activityMarkers {
		switch m.Type {
		case core.MarkerVelocity:
			l.Velocity = append(l.Velocity, Bar{Center: m.Position, Intensity: m.Intensity, Color: m.Color, Label: m.Label, Time: m.Time})
		case core.MarkerStroke:
			l.Strokes = append(l.Strokes, Bar{Center: m.Position, Intensity: m.Intensity, Color: m.Color, Label: m.Label, Time: m.Time})
		case core.MarkerPoint:
			l.Points = append(l.Points, PointLine{Position: m.Position, Label: m.Label, Time: m.Time})
		}
	}

	l.PlayedFrac = util.Clamp01(currentTime / duration)
	l.PlayheadFrac = l.PlayedFrac
	return l
}
