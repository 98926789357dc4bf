// Package convert translates between pkg/core records and GORM models.
// JSON blob fields are marshalled here so callers never touch datatypes.JSON.
package convert

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/scrappydevs/ProVision-sub002/internal/model"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// CoreToSession converts a core session to its GORM model.
func CoreToSession(s core.Session) model.Session {
	return model.Session{
		Name:            s.Name,
		Sport:           s.Sport,
		Tag:             s.Tag,
		StartTime:       s.StartTime,
		AnalyzerVersion: s.AnalyzerVersion,
		Duration:        s.Video.Duration,
		FPS:             s.Video.FPS,
		TotalFrames:     s.Video.TotalFrames,
		Width:           s.Video.Width,
		Height:          s.Video.Height,
	}
}

// CoreToStroke converts a core stroke to its GORM model.
func CoreToStroke(s core.StrokeEvent) (model.Stroke, error) {
	metrics, err := json.Marshal(s.Metrics)
	if err != nil {
		return model.Stroke{}, err
	}
	return model.Stroke{
		SessionID:  s.SessionID,
		StrokeID:   s.ID,
		StartFrame: s.StartFrame,
		EndFrame:   s.EndFrame,
		PeakFrame:  s.PeakFrame,
		Type:       string(s.Type),
		FormScore:  s.FormScore,
		Metrics:    datatypes.JSON(metrics),
	}, nil
}

// CoreToPoseFrame converts a core pose frame to its GORM model.
func CoreToPoseFrame(sessionID uint, p core.PoseFrame) (model.PoseFrame, error) {
	keypoints, err := json.Marshal(p.Keypoints)
	if err != nil {
		return model.PoseFrame{}, err
	}
	angles, err := json.Marshal(p.Angles)
	if err != nil {
		return model.PoseFrame{}, err
	}
	return model.PoseFrame{
		SessionID: sessionID,
		Frame:     p.Frame,
		Keypoints: datatypes.JSON(keypoints),
		Angles:    datatypes.JSON(angles),
	}, nil
}

// CoreToTrajectoryPoint converts a core trajectory point to its GORM model.
func CoreToTrajectoryPoint(sessionID uint, tp core.TrajectoryPoint) model.TrajectoryPoint {
	return model.TrajectoryPoint{
		SessionID: sessionID,
		Frame:     tp.Frame,
		X:         tp.X,
		Y:         tp.Y,
	}
}

// CoreToPointEvent converts a core point event to its GORM model.
func CoreToPointEvent(sessionID uint, e core.PointEvent) model.PointEvent {
	return model.PointEvent{
		SessionID: sessionID,
		EventID:   e.ID,
		Frame:     e.Frame,
		Timestamp: e.Timestamp,
		Reason:    e.Reason,
	}
}

// CoreToRegion converts a core activity region to its GORM model.
func CoreToRegion(sessionID uint, r core.ActivityRegion) model.ActivityRegion {
	return model.ActivityRegion{
		SessionID:  sessionID,
		RegionID:   r.ID,
		StartFrame: r.StartFrame,
		EndFrame:   r.EndFrame,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		PeakScore:  r.PeakScore,
		Type:       string(r.Type),
		Label:      r.Label,
	}
}

// CoreToVelocitySeries converts a core velocity series to its GORM model.
func CoreToVelocitySeries(sessionID uint, v core.VelocitySeries) (model.VelocitySeries, error) {
	samples, err := json.Marshal([]float64(v))
	if err != nil {
		return model.VelocitySeries{}, err
	}
	return model.VelocitySeries{
		SessionID: sessionID,
		Samples:   datatypes.JSON(samples),
	}, nil
}

// CoreToTip converts a core tip to its GORM model.
func CoreToTip(sessionID uint, t core.VideoTip) model.Tip {
	return model.Tip{
		SessionID: sessionID,
		TipID:     t.ID,
		Timestamp: t.Timestamp,
		Duration:  t.Duration,
		Title:     t.Title,
		Message:   t.Message,
		StrokeID:  t.StrokeID,
		SeekTime:  t.SeekTime,
	}
}
