package geo

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ErrShortPath is returned when a path has fewer than two points.
var ErrShortPath = errors.New("trajectory path needs at least two points")

// PointAt returns the trajectory point exactly matching the given frame.
// Projection is frame-accurate: a missing exact match means no render,
// not interpolation.
func PointAt(tr []core.TrajectoryPoint, frame int) (core.TrajectoryPoint, bool) {
	for _, p := range tr {
		if p.Frame == frame {
			return p, true
		}
	}
	return core.TrajectoryPoint{}, false
}

// FutureWindow returns up to maxPoints trajectory points strictly after
// the given frame and within the next maxFrames frames, in frame order.
func FutureWindow(tr []core.TrajectoryPoint, frame, maxPoints, maxFrames int) []core.TrajectoryPoint {
	var out []core.TrajectoryPoint
	for _, p := range tr {
		if p.Frame <= frame || p.Frame > frame+maxFrames {
			continue
		}
		out = append(out, p)
		if len(out) >= maxPoints {
			break
		}
	}
	return out
}

// PathLine builds a LineString through the given trajectory points, in
// order. Used for path length reporting and session export.
func PathLine(pts []core.TrajectoryPoint) (geom.LineString, error) {
	if len(pts) < 2 {
		return geom.LineString{}, ErrShortPath
	}
	coords := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		coords = append(coords, p.X, p.Y)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, err
	}
	return ls, nil
}

// PathLengthPx returns the pixel length of the path through the points,
// or 0 when the path is degenerate.
func PathLengthPx(pts []core.TrajectoryPoint) float64 {
	ls, err := PathLine(pts)
	if err != nil {
		return 0
	}
	return ls.Length()
}
