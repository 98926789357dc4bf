package parser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParseSession parses the session header payload. Returns the parsed
// session. NO DB operations, NO cache resets, NO callbacks.
func (p *Parser) ParseSession(data []byte) (core.Session, error) {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return core.Session{}, fmt.Errorf("error unmarshalling session data: %w", err)
	}

	if dto.Duration < 0 {
		return core.Session{}, fmt.Errorf("session duration must be non-negative, got %v", dto.Duration)
	}
	if dto.FPS < 0 {
		return core.Session{}, fmt.Errorf("session fps must be non-negative, got %v", dto.FPS)
	}

	s := core.Session{
		Name:            dto.Name,
		Sport:           dto.Sport,
		Tag:             dto.Tag,
		StartTime:       time.Now(),
		AnalyzerVersion: p.analyzerVersion,
		Video: core.VideoMeta{
			Duration:    dto.Duration,
			FPS:         dto.FPS,
			TotalFrames: dto.Frames,
			Width:       dto.Width,
			Height:      dto.Height,
		},
	}

	p.logger.Debug("Parsed session data",
		"name", s.Name,
		"sport", s.Sport,
		"duration", s.Video.Duration,
		"fps", s.Video.FPS)

	return s, nil
}
