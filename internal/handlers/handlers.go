package handlers

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/scrappydevs/ProVision-sub002/internal/engine"
	"github.com/scrappydevs/ProVision-sub002/internal/logging"
	"github.com/scrappydevs/ProVision-sub002/internal/parser"
	"github.com/scrappydevs/ProVision-sub002/internal/storage"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// SessionContext holds the currently loaded session state
type SessionContext struct {
	mu      sync.RWMutex
	Session *core.Session
}

// NewSessionContext creates a new SessionContext with default values
func NewSessionContext() *SessionContext {
	return &SessionContext{
		Session: &core.Session{Name: "No session loaded"},
	}
}

// GetSession returns the current session
func (sc *SessionContext) GetSession() *core.Session {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.Session
}

// SetSession sets the current session
func (sc *SessionContext) SetSession(session *core.Session) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.Session = session
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Backend         storage.Backend
	LogManager      *logging.SlogManager
	AnalyzerVersion string
	AppVersion      string
}

// Service ingests analyzer output into storage and assembles the
// playback data set the engine consumes.
type Service struct {
	deps         Dependencies
	ctx          *SessionContext
	parser       *parser.Parser
	writeLogFunc func(functionName, data, level string)
}

// NewService creates a new handler service
func NewService(deps Dependencies, ctx *SessionContext) *Service {
	s := &Service{
		deps:   deps,
		ctx:    ctx,
		parser: parser.NewParser(deps.LogManager.Logger(), deps.AnalyzerVersion),
	}
	// Default writeLog function uses the logging manager
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, data, level)
		}
	}
	return s
}

// GetSessionContext returns the session context
func (s *Service) GetSessionContext() *SessionContext {
	return s.ctx
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// StartSession parses a session header and opens it in the backend.
func (s *Service) StartSession(data []byte) error {
	functionName := ":SESSION:NEW:"

	session, err := s.parser.ParseSession(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing session: %v`, err), "ERROR")
		return err
	}

	if err := s.deps.Backend.StartSession(&session); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error starting session: %v`, err), "ERROR")
		return err
	}
	s.ctx.SetSession(&session)

	s.deps.LogManager.Logger().Info("Session started",
		"name", session.Name,
		"sport", session.Sport,
		"duration", session.Video.Duration,
		"fps", session.Video.FPS,
	)
	return nil
}

// IngestStrokes parses a stroke batch and writes it to storage.
func (s *Service) IngestStrokes(data []byte) (int, error) {
	functionName := ":INGEST:STROKES:"

	strokes, err := s.parser.ParseStrokes(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing strokes: %v`, err), "ERROR")
		return 0, err
	}
	for i := range strokes {
		if err := s.deps.Backend.AddStroke(&strokes[i]); err != nil {
			return i, fmt.Errorf("error storing stroke %d: %w", strokes[i].ID, err)
		}
	}
	return len(strokes), nil
}

// IngestPoseFrames parses a pose batch and writes it to storage.
func (s *Service) IngestPoseFrames(data []byte) (int, error) {
	functionName := ":INGEST:POSES:"

	poses, err := s.parser.ParsePoseFrames(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing pose frames: %v`, err), "ERROR")
		return 0, err
	}
	for i := range poses {
		if err := s.deps.Backend.AddPoseFrame(&poses[i]); err != nil {
			return i, fmt.Errorf("error storing pose frame %d: %w", poses[i].Frame, err)
		}
	}
	return len(poses), nil
}

// IngestTrajectory parses ball trajectory points and writes them to storage.
func (s *Service) IngestTrajectory(data []byte) (int, error) {
	functionName := ":INGEST:TRAJECTORY:"

	points, err := s.parser.ParseTrajectory(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing trajectory: %v`, err), "ERROR")
		return 0, err
	}
	for i := range points {
		if err := s.deps.Backend.AddTrajectoryPoint(&points[i]); err != nil {
			return i, fmt.Errorf("error storing trajectory point at frame %d: %w", points[i].Frame, err)
		}
	}
	return len(points), nil
}

// IngestVelocity parses the racket velocity series and stores it,
// replacing any series stored earlier for the session.
func (s *Service) IngestVelocity(data []byte) error {
	functionName := ":INGEST:VELOCITY:"

	series, err := s.parser.ParseVelocity(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing velocity series: %v`, err), "ERROR")
		return err
	}
	return s.deps.Backend.SetVelocitySeries(series)
}

// IngestPointEvents parses scoring instants and writes them to storage.
func (s *Service) IngestPointEvents(data []byte) (int, error) {
	functionName := ":INGEST:POINTS:"

	events, err := s.parser.ParsePointEvents(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing point events: %v`, err), "ERROR")
		return 0, err
	}
	for i := range events {
		if err := s.deps.Backend.AddPointEvent(&events[i]); err != nil {
			return i, fmt.Errorf("error storing point event %d: %w", events[i].ID, err)
		}
	}
	return len(events), nil
}

// IngestRegions parses activity regions and writes them to storage.
func (s *Service) IngestRegions(data []byte) (int, error) {
	functionName := ":INGEST:REGIONS:"

	regions, err := s.parser.ParseRegions(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing regions: %v`, err), "ERROR")
		return 0, err
	}
	for i := range regions {
		if err := s.deps.Backend.AddRegion(&regions[i]); err != nil {
			return i, fmt.Errorf("error storing region %d: %w", regions[i].ID, err)
		}
	}
	return len(regions), nil
}

// IngestTips parses externally authored tips and writes them to storage.
func (s *Service) IngestTips(data []byte) (int, error) {
	functionName := ":INGEST:TIPS:"

	tips, err := s.parser.ParseTips(data)
	if err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error parsing tips: %v`, err), "ERROR")
		return 0, err
	}
	for i := range tips {
		if err := s.deps.Backend.AddTip(&tips[i]); err != nil {
			return i, fmt.Errorf("error storing tip %s: %w", tips[i].ID, err)
		}
	}
	return len(tips), nil
}

// sessionArchive is the single-document form of an analyzed session, as
// exported by the analysis pipeline. Every section except the header is
// optional.
type sessionArchive struct {
	Session     json.RawMessage `json:"session"`
	Strokes     json.RawMessage `json:"strokes"`
	Poses       json.RawMessage `json:"poses"`
	Trajectory  json.RawMessage `json:"trajectory"`
	Velocity    json.RawMessage `json:"velocity"`
	PointEvents json.RawMessage `json:"pointEvents"`
	Regions     json.RawMessage `json:"regions"`
	Tips        json.RawMessage `json:"tips"`
}

// IngestArchive ingests a complete session document: header first, then
// every present section. Returns the total record count stored.
func (s *Service) IngestArchive(data []byte) (int, error) {
	functionName := ":INGEST:ARCHIVE:"

	var archive sessionArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error unmarshalling session archive: %v`, err), "ERROR")
		return 0, fmt.Errorf("error unmarshalling session archive: %w", err)
	}
	if len(archive.Session) == 0 {
		return 0, fmt.Errorf("session archive missing session header")
	}

	if err := s.StartSession(archive.Session); err != nil {
		return 0, err
	}

	total := 0
	sections := []struct {
		name   string
		data   json.RawMessage
		ingest func([]byte) (int, error)
	}{
		{"strokes", archive.Strokes, s.IngestStrokes},
		{"poses", archive.Poses, s.IngestPoseFrames},
		{"trajectory", archive.Trajectory, s.IngestTrajectory},
		{"pointEvents", archive.PointEvents, s.IngestPointEvents},
		{"regions", archive.Regions, s.IngestRegions},
		{"tips", archive.Tips, s.IngestTips},
	}
	for _, section := range sections {
		if len(section.data) == 0 {
			continue
		}
		n, err := section.ingest(section.data)
		total += n
		if err != nil {
			return total, fmt.Errorf("error ingesting %s: %w", section.name, err)
		}
	}

	if len(archive.Velocity) > 0 {
		if err := s.IngestVelocity(archive.Velocity); err != nil {
			return total, fmt.Errorf("error ingesting velocity: %w", err)
		}
		total++
	}

	s.deps.LogManager.Logger().Info("Session archive ingested",
		"session", s.ctx.GetSession().Name,
		"records", total,
	)
	return total, nil
}

// LoadPlayback reads the stored session back out of the backend in the
// form the playback engine consumes.
func (s *Service) LoadPlayback() (engine.SessionData, error) {
	session, err := s.deps.Backend.Session()
	if err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading session: %w", err)
	}

	data := engine.SessionData{Meta: session.Video}

	if data.Strokes, err = s.deps.Backend.Strokes(); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading strokes: %w", err)
	}
	maxFrame := int(session.Video.MaxFrame())
	if data.Trajectory, err = s.deps.Backend.TrajectoryWindow(0, maxFrame); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading trajectory: %w", err)
	}
	if data.Velocity, err = s.deps.Backend.Velocity(); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading velocity: %w", err)
	}
	if data.Points, err = s.deps.Backend.PointEvents(); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading point events: %w", err)
	}
	if data.Tips, err = s.deps.Backend.Tips(); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading tips: %w", err)
	}

	if data.Poses, err = s.deps.Backend.Poses(); err != nil {
		return engine.SessionData{}, fmt.Errorf("error reading poses: %w", err)
	}

	return data, nil
}

// EndSession closes out the current session. Returns the exported file
// path when the backend wrote one.
func (s *Service) EndSession() (string, error) {
	functionName := ":SESSION:END:"

	if err := s.deps.Backend.EndSession(); err != nil {
		s.writeLog(functionName, fmt.Sprintf(`Error ending session: %v`, err), "ERROR")
		return "", err
	}

	exportPath := ""
	if exportable, ok := s.deps.Backend.(storage.Exportable); ok {
		exportPath = exportable.GetExportedFilePath()
	}

	s.deps.LogManager.Logger().Info("Session ended",
		"session", s.ctx.GetSession().Name,
		"exportPath", exportPath,
	)
	return exportPath, nil
}
