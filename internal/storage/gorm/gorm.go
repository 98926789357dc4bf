// Package gormstore implements the storage.Backend interface using GORM
// (Postgres, with SQLite fallback) with internal queues and a background
// DB writer goroutine.
package gormstore

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/scrappydevs/ProVision-sub002/internal/database"
	"github.com/scrappydevs/ProVision-sub002/internal/model"
	"github.com/scrappydevs/ProVision-sub002/internal/model/convert"
	"github.com/scrappydevs/ProVision-sub002/internal/queue"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB         *gorm.DB
	Logger     zerolog.Logger
	SqlitePath string // non-empty selects SQLite directly instead of Postgres-with-fallback
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Strokes          *queue.Queue[model.Stroke]
	PoseFrames       *queue.Queue[model.PoseFrame]
	TrajectoryPoints *queue.Queue[model.TrajectoryPoint]
	PointEvents      *queue.Queue[model.PointEvent]
	Regions          *queue.Queue[model.ActivityRegion]
	Tips             *queue.Queue[model.Tip]
}

func newQueues() *queues {
	return &queues{
		Strokes:          queue.New[model.Stroke](),
		PoseFrames:       queue.New[model.PoseFrame](),
		TrajectoryPoints: queue.New[model.TrajectoryPoint](),
		PointEvents:      queue.New[model.PointEvent](),
		Regions:          queue.New[model.ActivityRegion](),
		Tips:             queue.New[model.Tip](),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps      Dependencies
	queues    *queues
	sessionID atomic.Uint64
	stopChan  chan struct{}
	dbReady   bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{
		deps: deps,
	}
}

// Init creates internal queues, runs schema migration, and starts the DB writer goroutine.
// If no DB was injected via Dependencies, it creates its own connection.
func (b *Backend) Init() error {
	b.queues = newQueues()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		if b.deps.SqlitePath != "" {
			db, err := database.GetSqliteDBStandalone(b.deps.SqlitePath)
			if err != nil {
				return fmt.Errorf("failed to open sqlite db: %w", err)
			}
			b.deps.DB = db
		} else {
			mgr := database.NewManager(b.deps.Logger)
			if err := mgr.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			b.deps.DB = mgr.DB
		}
	}

	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.dbReady = true

	b.startDBWriter()
	return nil
}

// Close drains whatever is still queued and stops the DB writer goroutine.
func (b *Backend) Close() error {
	if b.dbReady {
		b.Flush()
	}
	if b.stopChan != nil {
		close(b.stopChan)
		b.stopChan = nil
	}
	return nil
}

// QueueLengths reports the current depth of each write queue, keyed by record kind.
func (b *Backend) QueueLengths() map[string]int {
	if b.queues == nil {
		return nil
	}
	return map[string]int{
		"strokes":     b.queues.Strokes.Len(),
		"poseFrames":  b.queues.PoseFrames.Len(),
		"trajectory":  b.queues.TrajectoryPoints.Len(),
		"pointEvents": b.queues.PointEvents.Len(),
		"regions":     b.queues.Regions.Len(),
		"tips":        b.queues.Tips.Len(),
	}
}

// StartSession inserts the session row synchronously: its DB-assigned ID
// stamps every queued record.
func (b *Backend) StartSession(s *core.Session) error {
	gormObj := convert.CoreToSession(*s)
	if err := b.deps.DB.Create(&gormObj).Error; err != nil {
		return fmt.Errorf("failed to insert new session: %w", err)
	}

	s.ID = gormObj.ID
	b.sessionID.Store(uint64(gormObj.ID))
	return nil
}

// EndSession flushes all pending writes.
func (b *Backend) EndSession() error {
	b.Flush()
	return nil
}

// SetSessionID sets the current session ID for the DB writer (used by CLI tools).
func (b *Backend) SetSessionID(id uint) {
	b.sessionID.Store(uint64(id))
}

// AddStroke converts a core stroke to GORM and pushes to the write queue.
func (b *Backend) AddStroke(s *core.StrokeEvent) error {
	gormObj, err := convert.CoreToStroke(*s)
	if err != nil {
		return fmt.Errorf("failed to convert stroke: %w", err)
	}
	b.queues.Strokes.Push(gormObj)
	return nil
}

// AddPoseFrame converts and queues a pose frame.
func (b *Backend) AddPoseFrame(p *core.PoseFrame) error {
	gormObj, err := convert.CoreToPoseFrame(uint(b.sessionID.Load()), *p)
	if err != nil {
		return fmt.Errorf("failed to convert pose frame: %w", err)
	}
	b.queues.PoseFrames.Push(gormObj)
	return nil
}

// AddTrajectoryPoint converts and queues a trajectory point.
func (b *Backend) AddTrajectoryPoint(tp *core.TrajectoryPoint) error {
	b.queues.TrajectoryPoints.Push(convert.CoreToTrajectoryPoint(uint(b.sessionID.Load()), *tp))
	return nil
}

// AddPointEvent converts and queues a scoring instant.
func (b *Backend) AddPointEvent(e *core.PointEvent) error {
	b.queues.PointEvents.Push(convert.CoreToPointEvent(uint(b.sessionID.Load()), *e))
	return nil
}

// AddRegion converts and queues an activity band.
func (b *Backend) AddRegion(r *core.ActivityRegion) error {
	b.queues.Regions.Push(convert.CoreToRegion(uint(b.sessionID.Load()), *r))
	return nil
}

// AddTip converts and queues a coaching annotation.
func (b *Backend) AddTip(t *core.VideoTip) error {
	b.queues.Tips.Push(convert.CoreToTip(uint(b.sessionID.Load()), *t))
	return nil
}

// SetVelocitySeries replaces the session's velocity row synchronously:
// it is one row per session and arrives once per ingest.
func (b *Backend) SetVelocitySeries(v core.VelocitySeries) error {
	sessionID := uint(b.sessionID.Load())

	gormObj, err := convert.CoreToVelocitySeries(sessionID, v)
	if err != nil {
		return fmt.Errorf("failed to convert velocity series: %w", err)
	}

	if err := b.deps.DB.Where("session_id = ?", sessionID).Delete(&model.VelocitySeries{}).Error; err != nil {
		return fmt.Errorf("failed to clear velocity series: %w", err)
	}
	if err := b.deps.DB.Create(&gormObj).Error; err != nil {
		return fmt.Errorf("failed to insert velocity series: %w", err)
	}
	return nil
}

// Session returns the active session header.
func (b *Backend) Session() (core.Session, error) {
	var gormObj model.Session
	if err := b.deps.DB.First(&gormObj, uint(b.sessionID.Load())).Error; err != nil {
		return core.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return convert.SessionToCore(gormObj), nil
}

// Strokes returns all of the session's strokes ordered by start frame.
func (b *Backend) Strokes() ([]core.StrokeEvent, error) {
	var gormObjs []model.Stroke
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		Order("start_frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query strokes: %w", err)
	}

	return strokesToCore(gormObjs)
}

// StrokesBetween returns strokes whose span intersects [startFrame, endFrame].
func (b *Backend) StrokesBetween(startFrame, endFrame int) ([]core.StrokeEvent, error) {
	var gormObjs []model.Stroke
	err := b.deps.DB.
		Where("session_id = ? AND end_frame >= ? AND start_frame <= ?",
			uint(b.sessionID.Load()), startFrame, endFrame).
		Order("start_frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query strokes: %w", err)
	}

	return strokesToCore(gormObjs)
}

func strokesToCore(gormObjs []model.Stroke) ([]core.StrokeEvent, error) {
	strokes := make([]core.StrokeEvent, 0, len(gormObjs))
	for _, g := range gormObjs {
		s, err := convert.StrokeToCore(g)
		if err != nil {
			return nil, fmt.Errorf("failed to convert stroke %d: %w", g.StrokeID, err)
		}
		strokes = append(strokes, s)
	}
	return strokes, nil
}

// PoseAt returns the pose at the exact frame, if one was recorded.
func (b *Backend) PoseAt(frame int) (core.PoseFrame, bool, error) {
	var gormObj model.PoseFrame
	err := b.deps.DB.
		Where("session_id = ? AND frame = ?", uint(b.sessionID.Load()), frame).
		First(&gormObj).Error
	if err == gorm.ErrRecordNotFound {
		return core.PoseFrame{}, false, nil
	}
	if err != nil {
		return core.PoseFrame{}, false, fmt.Errorf("failed to query pose: %w", err)
	}

	p, err := convert.PoseFrameToCore(gormObj)
	if err != nil {
		return core.PoseFrame{}, false, fmt.Errorf("failed to convert pose: %w", err)
	}
	return p, true, nil
}

// Poses returns all pose frames for the session ordered by frame.
func (b *Backend) Poses() ([]core.PoseFrame, error) {
	var gormObjs []model.PoseFrame
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		Order("frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query poses: %w", err)
	}

	poses := make([]core.PoseFrame, 0, len(gormObjs))
	for _, g := range gormObjs {
		p, err := convert.PoseFrameToCore(g)
		if err != nil {
			return nil, fmt.Errorf("failed to convert pose at frame %d: %w", g.Frame, err)
		}
		poses = append(poses, p)
	}
	return poses, nil
}

// TrajectoryWindow returns trajectory points with fromFrame <= frame <= toFrame.
func (b *Backend) TrajectoryWindow(fromFrame, toFrame int) ([]core.TrajectoryPoint, error) {
	var gormObjs []model.TrajectoryPoint
	err := b.deps.DB.
		Where("session_id = ? AND frame >= ? AND frame <= ?",
			uint(b.sessionID.Load()), fromFrame, toFrame).
		Order("frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trajectory: %w", err)
	}

	points := make([]core.TrajectoryPoint, 0, len(gormObjs))
	for _, g := range gormObjs {
		points = append(points, convert.TrajectoryPointToCore(g))
	}
	return points, nil
}

// Velocity returns the session's swing-velocity series.
func (b *Backend) Velocity() (core.VelocitySeries, error) {
	var gormObj model.VelocitySeries
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		First(&gormObj).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query velocity series: %w", err)
	}

	return convert.VelocitySeriesToCore(gormObj)
}

// PointEvents returns the session's scoring instants.
func (b *Backend) PointEvents() ([]core.PointEvent, error) {
	var gormObjs []model.PointEvent
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		Order("frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query point events: %w", err)
	}

	events := make([]core.PointEvent, 0, len(gormObjs))
	for _, g := range gormObjs {
		events = append(events, convert.PointEventToCore(g))
	}
	return events, nil
}

// Regions returns the session's activity bands.
func (b *Backend) Regions() ([]core.ActivityRegion, error) {
	var gormObjs []model.ActivityRegion
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		Order("start_frame").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}

	regions := make([]core.ActivityRegion, 0, len(gormObjs))
	for _, g := range gormObjs {
		regions = append(regions, convert.RegionToCore(g))
	}
	return regions, nil
}

// Tips returns the session's coaching annotations ordered by window start.
func (b *Backend) Tips() ([]core.VideoTip, error) {
	var gormObjs []model.Tip
	err := b.deps.DB.
		Where("session_id = ?", uint(b.sessionID.Load())).
		Order("timestamp").
		Find(&gormObjs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tips: %w", err)
	}

	tips := make([]core.VideoTip, 0, len(gormObjs))
	for _, g := range gormObjs {
		tips = append(tips, convert.TipToCore(g))
	}
	return tips, nil
}

// writeQueue writes all items from a queue to the database in a transaction.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log zerolog.Logger, prepare func([]T)) {
	if q.Empty() {
		return
	}

	tx := db.Begin()
	items := q.Drain()
	if prepare != nil {
		prepare(items)
	}
	if err := tx.Create(&items).Error; err != nil {
		log.Error().Err(err).Msgf("Error creating %s", name)
		tx.Rollback()
		q.Push(items...)
		return
	}

	tx.Commit()
}

// Flush synchronously drains every queue into the DB.
func (b *Backend) Flush() {
	sessionID := uint(b.sessionID.Load())
	log := b.deps.Logger

	stampStrokes := func(items []model.Stroke) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampPoseFrames := func(items []model.PoseFrame) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampTrajectoryPoints := func(items []model.TrajectoryPoint) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampPointEvents := func(items []model.PointEvent) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampRegions := func(items []model.ActivityRegion) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampTips := func(items []model.Tip) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}

	writeQueue(b.deps.DB, b.queues.Strokes, "strokes", log, stampStrokes)
	writeQueue(b.deps.DB, b.queues.PoseFrames, "pose frames", log, stampPoseFrames)
	writeQueue(b.deps.DB, b.queues.TrajectoryPoints, "trajectory points", log, stampTrajectoryPoints)
	writeQueue(b.deps.DB, b.queues.PointEvents, "point events", log, stampPointEvents)
	writeQueue(b.deps.DB, b.queues.Regions, "regions", log, stampRegions)
	writeQueue(b.deps.DB, b.queues.Tips, "tips", log, stampTips)
}

// startDBWriter starts the background goroutine that periodically drains queues into the DB.
func (b *Backend) startDBWriter() {
	stop := b.stopChan

	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}

			if !b.dbReady {
				time.Sleep(1 * time.Second)
				continue
			}

			b.Flush()

			time.Sleep(2 * time.Second)
		}
	}()
}
