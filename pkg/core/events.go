// pkg/core/events.go
package core

// PointEvent represents a discrete scoring instant
type PointEvent struct {
	ID        uint
	Frame     int
	Timestamp float64 // seconds
	Reason    string  // free-text code, e.g. "winner", "unforced_error"
}

// RegionType classifies a pre-aggregated activity band
type RegionType string

const (
	RegionRally         RegionType = "rally"
	RegionPoint         RegionType = "point"
	RegionStrokeCluster RegionType = "stroke_cluster"
	RegionHighSpeed     RegionType = "high_speed"
)

// ActivityRegion is a pre-aggregated time band produced by an external
// aggregation stage. Regions may overlap each other.
// Invariant: StartTime <= EndTime and StartFrame <= EndFrame.
type ActivityRegion struct {
	ID         uint
	StartFrame int
	EndFrame   int
	StartTime  float64 // seconds
	EndTime    float64
	PeakScore  float64
	Type       RegionType
	Label      string
}

// VelocitySeries is an ordered sequence of non-negative speed samples,
// implicitly indexed 0..N-1 over the full video duration. Position on
// the timeline is inferred from index and length; there are no embedded
// timestamps.
type VelocitySeries []float64

// Max returns the largest sample in the series, or 0 for an empty series.
func (v VelocitySeries) Max() float64 {
	max := 0.0
	for _, s := range v {
		if s > max {
			max = s
		}
	}
	return max
}
