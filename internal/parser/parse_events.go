package parser

import (
	"encoding/json"
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParsePointEvents parses the scoring-instant batch.
func (p *Parser) ParsePointEvents(data []byte) ([]core.PointEvent, error) {
	var dtos []pointEventDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling point event data: %w", err)
	}

	events := make([]core.PointEvent, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Frame < 0 {
			p.logger.Warn("point event frame negative, skipping", "id", dto.ID, "frame", dto.Frame)
			continue
		}
		events = append(events, core.PointEvent{
			ID:        dto.ID,
			Frame:     dto.Frame,
			Timestamp: dto.Timestamp,
			Reason:    dto.Reason,
		})
	}

	p.logger.Debug("Parsed point events", "count", len(events))

	return events, nil
}

// ParseRegions parses the pre-aggregated activity bands. Inverted time
// or frame ranges are swapped rather than rejected.
func (p *Parser) ParseRegions(data []byte) ([]core.ActivityRegion, error) {
	var dtos []regionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling region data: %w", err)
	}

	regions := make([]core.ActivityRegion, 0, len(dtos))
	for _, dto := range dtos {
		r := core.ActivityRegion{
			ID:         dto.ID,
			StartFrame: dto.StartFrame,
			EndFrame:   dto.EndFrame,
			StartTime:  dto.StartTime,
			EndTime:    dto.EndTime,
			PeakScore:  dto.PeakScore,
			Type:       parseRegionType(p, dto.ID, dto.Type),
			Label:      dto.Label,
		}

		if r.EndTime < r.StartTime {
			p.logger.Warn("region end before start, swapping", "id", r.ID)
			r.StartTime, r.EndTime = r.EndTime, r.StartTime
		}
		if r.EndFrame < r.StartFrame {
			r.StartFrame, r.EndFrame = r.EndFrame, r.StartFrame
		}

		regions = append(regions, r)
	}

	p.logger.Debug("Parsed regions", "count", len(regions))

	return regions, nil
}

func parseRegionType(p *Parser, id uint, t string) core.RegionType {
	switch core.RegionType(t) {
	case core.RegionRally, core.RegionPoint, core.RegionStrokeCluster, core.RegionHighSpeed:
		return core.RegionType(t)
	default:
		p.logger.Warn("unknown region type", "id", id, "type", t)
		return core.RegionRally
	}
}
