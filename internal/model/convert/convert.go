package convert

import (
	"encoding/json"

	"github.com/scrappydevs/ProVision-sub002/internal/model"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// SessionToCore converts a GORM session back to its core record.
func SessionToCore(s model.Session) core.Session {
	return core.Session{
		ID:              s.ID,
		Name:            s.Name,
		Sport:           s.Sport,
		Tag:             s.Tag,
		StartTime:       s.StartTime,
		AnalyzerVersion: s.AnalyzerVersion,
		Video: core.VideoMeta{
			Duration:    s.Duration,
			FPS:         s.FPS,
			TotalFrames: s.TotalFrames,
			Width:       s.Width,
			Height:      s.Height,
		},
	}
}

// StrokeToCore converts a GORM stroke back to its core record.
func StrokeToCore(s model.Stroke) (core.StrokeEvent, error) {
	var metrics core.StrokeMetrics
	if len(s.Metrics) > 0 {
		if err := json.Unmarshal(s.Metrics, &metrics); err != nil {
			return core.StrokeEvent{}, err
		}
	}
	return core.StrokeEvent{
		ID:         s.StrokeID,
		SessionID:  s.SessionID,
		StartFrame: s.StartFrame,
		EndFrame:   s.EndFrame,
		PeakFrame:  s.PeakFrame,
		Type:       core.StrokeType(s.Type),
		FormScore:  s.FormScore,
		Metrics:    metrics,
	}, nil
}

// PoseFrameToCore converts a GORM pose frame back to its core record.
func PoseFrameToCore(p model.PoseFrame) (core.PoseFrame, error) {
	pf := core.PoseFrame{Frame: p.Frame}
	if len(p.Keypoints) > 0 {
		if err := json.Unmarshal(p.Keypoints, &pf.Keypoints); err != nil {
			return core.PoseFrame{}, err
		}
	}
	if len(p.Angles) > 0 {
		if err := json.Unmarshal(p.Angles, &pf.Angles); err != nil {
			return core.PoseFrame{}, err
		}
	}
	return pf, nil
}

// TrajectoryPointToCore converts a GORM trajectory point back to its core record.
func TrajectoryPointToCore(tp model.TrajectoryPoint) core.TrajectoryPoint {
	return core.TrajectoryPoint{Frame: tp.Frame, X: tp.X, Y: tp.Y}
}

// PointEventToCore converts a GORM point event back to its core record.
func PointEventToCore(e model.PointEvent) core.PointEvent {
	return core.PointEvent{
		ID:        e.EventID,
		Frame:     e.Frame,
		Timestamp: e.Timestamp,
		Reason:    e.Reason,
	}
}

// RegionToCore converts a GORM activity region back to its core record.
func RegionToCore(r model.ActivityRegion) core.ActivityRegion {
	return core.ActivityRegion{
		ID:         r.RegionID,
		StartFrame: r.StartFrame,
		EndFrame:   r.EndFrame,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PeakScore:  r.PeakScore,
		Type:       core.RegionType(r.Type),
		Label:      r.Label,
	}
}

// VelocitySeriesToCore converts a GORM velocity series back to its core record.
func VelocitySeriesToCore(v model.VelocitySeries) (core.VelocitySeries, error) {
	var samples []float64
	if len(v.Samples) > 0 {
		if err := json.Unmarshal(v.Samples, &samples); err != nil {
			return nil, err
		}
	}
	return core.VelocitySeries(samples), nil
}

// TipToCore converts a GORM tip back to its core record.
func TipToCore(t model.Tip) core.VideoTip {
	return core.VideoTip{
		ID:        t.TipID,
		Timestamp: t.Timestamp,
		Duration:  t.Duration,
		Title:     t.Title,
		Message:   t.Message,
		StrokeID:  t.StrokeID,
		SeekTime:  t.SeekTime,
	}
}
