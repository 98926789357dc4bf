// Package monitor periodically samples playback and storage state and
// mirrors it to a status file for external tooling to tail.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/scrappydevs/ProVision-sub002/internal/logging"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// Dependencies holds all dependencies for the monitor service. The
// function fields decouple the monitor from the engine and storage
// packages; any of them may be nil and its section is then omitted
// from the snapshot.
type Dependencies struct {
	LogManager   *logging.SlogManager
	SessionName  func() string
	PlaybackTime func() float64
	ActiveTip    func() *core.VideoTip
	QueueLengths func() map[string]int
	StatusDir    string
	Interval     time.Duration
}

// Snapshot is one sample of program state, serialized to the status file.
type Snapshot struct {
	Time         time.Time      `json:"time"`
	Session      string         `json:"session"`
	PlaybackTime float64        `json:"playbackTime"`
	ActiveTip    string         `json:"activeTip,omitempty"`
	WriteQueues  map[string]int `json:"writeQueues,omitempty"`
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = time.Second
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot samples the current program status.
func (s *Service) Snapshot() Snapshot {
	snap := Snapshot{Time: time.Now()}
	if s.deps.SessionName != nil {
		snap.Session = s.deps.SessionName()
	}
	if s.deps.PlaybackTime != nil {
		snap.PlaybackTime = s.deps.PlaybackTime()
	}
	if s.deps.ActiveTip != nil {
		if tip := s.deps.ActiveTip(); tip != nil {
			snap.ActiveTip = tip.Title
		}
	}
	if s.deps.QueueLengths != nil {
		snap.WriteQueues = s.deps.QueueLengths()
	}
	return snap
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine", "function", "startStatusMonitor")

		statusFile, err := os.Create(filepath.Join(s.deps.StatusDir, "status.txt"))
		if err != nil {
			logger.Error("Error creating status file", "error", err)
		}
		defer statusFile.Close()

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(s.deps.Interval)

				snap := s.Snapshot()
				if snap.Session == "" {
					continue
				}

				body, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					body = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
				}

				if statusFile != nil {
					statusFile.Truncate(0)
					statusFile.Seek(0, 0)
					statusFile.Write(append(body, '\n'))
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
