// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Backend stores session data in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session

	strokes    []core.StrokeEvent
	poses      map[int]core.PoseFrame // keyed by frame
	trajectory []core.TrajectoryPoint
	points     []core.PointEvent
	regions    []core.ActivityRegion
	tips       []core.VideoTip
	velocity   core.VelocitySeries

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:   cfg,
		poses: make(map[int]core.PoseFrame),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session = s

	// Reset all collections
	b.strokes = nil
	b.poses = make(map[int]core.PoseFrame)
	b.trajectory = nil
	b.points = nil
	b.regions = nil
	b.tips = nil
	b.velocity = nil

	return nil
}

// EndSession finalizes and exports the session data
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exportJSON()
}

// AddStroke records a detected stroke
func (b *Backend) AddStroke(s *core.StrokeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.strokes = append(b.strokes, *s)
	return nil
}

// AddPoseFrame records a pose frame, replacing any prior pose at the same frame
func (b *Backend) AddPoseFrame(p *core.PoseFrame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.poses[p.Frame] = *p
	return nil
}

// AddTrajectoryPoint records a ball position
func (b *Backend) AddTrajectoryPoint(tp *core.TrajectoryPoint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trajectory = append(b.trajectory, *tp)
	return nil
}

// AddPointEvent records a scoring instant
func (b *Backend) AddPointEvent(e *core.PointEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points = append(b.points, *e)
	return nil
}

// AddRegion records an activity band
func (b *Backend) AddRegion(r *core.ActivityRegion) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regions = append(b.regions, *r)
	return nil
}

// AddTip records a scheduled coaching annotation
func (b *Backend) AddTip(t *core.VideoTip) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tips = append(b.tips, *t)
	return nil
}

// SetVelocitySeries replaces the swing-velocity series
func (b *Backend) SetVelocitySeries(v core.VelocitySeries) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
	return nil
}

// Session returns the active session header
func (b *Backend) Session() (core.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.session == nil {
		return core.Session{}, fmt.Errorf("no session started")
	}
	return *b.session, nil
}

// Strokes returns all recorded strokes ordered by start frame
func (b *Backend) Strokes() ([]core.StrokeEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.StrokeEvent, len(b.strokes))
	copy(out, b.strokes)
	sort.Slice(out, func(i, j int) bool { return out[i].StartFrame < out[j].StartFrame })
	return out, nil
}

// StrokesBetween returns strokes whose span intersects [startFrame, endFrame]
func (b *Backend) StrokesBetween(startFrame, endFrame int) ([]core.StrokeEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []core.StrokeEvent
	for _, s := range b.strokes {
		if s.EndFrame >= startFrame && s.StartFrame <= endFrame {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartFrame < out[j].StartFrame })
	return out, nil
}

// PoseAt returns the pose at the exact frame, if one was recorded
func (b *Backend) PoseAt(frame int) (core.PoseFrame, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.poses[frame]
	return p, ok, nil
}

// Poses returns all recorded pose frames ordered by frame
func (b *Backend) Poses() ([]core.PoseFrame, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.PoseFrame, 0, len(b.poses))
	for _, p := range b.poses {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out, nil
}

// TrajectoryWindow returns trajectory points with fromFrame <= frame <= toFrame,
// ordered by frame
func (b *Backend) TrajectoryWindow(fromFrame, toFrame int) ([]core.TrajectoryPoint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []core.TrajectoryPoint
	for _, tp := range b.trajectory {
		if tp.Frame >= fromFrame && tp.Frame <= toFrame {
			out = append(out, tp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out, nil
}

// Velocity returns the swing-velocity series
func (b *Backend) Velocity() (core.VelocitySeries, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.velocity, nil
}

// PointEvents returns all recorded scoring instants
func (b *Backend) PointEvents() ([]core.PointEvent, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.PointEvent, len(b.points))
	copy(out, b.points)
	return out, nil
}

// Regions returns all recorded activity bands
func (b *Backend) Regions() ([]core.ActivityRegion, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.ActivityRegion, len(b.regions))
	copy(out, b.regions)
	return out, nil
}

// Tips returns all recorded coaching annotations
func (b *Backend) Tips() ([]core.VideoTip, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.VideoTip, len(b.tips))
	copy(out, b.tips)
	return out, nil
}

// GetExportedFilePath returns the path written by the last EndSession
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
