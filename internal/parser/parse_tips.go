package parser

import (
	"encoding/json"
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParseTips parses externally authored coaching tips. Tips with a
// non-positive duration are dropped since they could never activate.
func (p *Parser) ParseTips(data []byte) ([]core.VideoTip, error) {
	var dtos []tipDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling tip data: %w", err)
	}

	tips := make([]core.VideoTip, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Duration <= 0 {
			p.logger.Warn("tip has non-positive duration, skipping", "id", dto.ID)
			continue
		}
		if dto.Timestamp < 0 {
			p.logger.Warn("tip timestamp negative, clamping to zero", "id", dto.ID)
			dto.Timestamp = 0
		}
		tips = append(tips, core.VideoTip{
			ID:        dto.ID,
			Timestamp: dto.Timestamp,
			Duration:  dto.Duration,
			Title:     dto.Title,
			Message:   dto.Message,
			StrokeID:  dto.StrokeID,
			SeekTime:  dto.SeekTime,
		})
	}

	p.logger.Debug("Parsed tips", "count", len(tips))

	return tips, nil
}
