// internal/storage/storage.go
package storage

import "github.com/scrappydevs/ProVision-sub002/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(s *core.Session) error
	EndSession() error

	// Record ingestion
	AddStroke(s *core.StrokeEvent) error
	AddPoseFrame(p *core.PoseFrame) error
	AddTrajectoryPoint(tp *core.TrajectoryPoint) error
	AddPointEvent(e *core.PointEvent) error
	AddRegion(r *core.ActivityRegion) error
	AddTip(t *core.VideoTip) error
	SetVelocitySeries(v core.VelocitySeries) error

	// Read-side queries used during playback
	Session() (core.Session, error)
	Strokes() ([]core.StrokeEvent, error)
	StrokesBetween(startFrame, endFrame int) ([]core.StrokeEvent, error)
	PoseAt(frame int) (core.PoseFrame, bool, error)
	Poses() ([]core.PoseFrame, error)
	TrajectoryWindow(fromFrame, toFrame int) ([]core.TrajectoryPoint, error)
	Velocity() (core.VelocitySeries, error)
	PointEvents() ([]core.PointEvent, error)
	Regions() ([]core.ActivityRegion, error)
	Tips() ([]core.VideoTip, error)
}

// Exportable is an optional interface for storage backends that write a
// session file suitable for sharing or re-import.
type Exportable interface {
	GetExportedFilePath() string
}
