package parser

import (
	"encoding/json"
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParseStrokes parses a stroke batch. The frame triple is forced
// monotonic (start <= peak <= end) and the form score is clamped to
// [0,100]; unknown stroke types degrade to StrokeUnknown with a warning
// rather than failing the batch.
func (p *Parser) ParseStrokes(data []byte) ([]core.StrokeEvent, error) {
	var dtos []strokeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling stroke data: %w", err)
	}

	strokes := make([]core.StrokeEvent, 0, len(dtos))
	for _, dto := range dtos {
		s := core.StrokeEvent{
			ID:         dto.ID,
			StartFrame: dto.StartFrame,
			EndFrame:   dto.EndFrame,
			PeakFrame:  dto.PeakFrame,
			Type:       parseStrokeType(p, dto.ID, dto.Type),
			FormScore:  p.clampScore("formScore", dto.FormScore),
			Metrics: core.StrokeMetrics{
				ElbowAngle:            dto.Metrics.ElbowAngle,
				ElbowRange:            dto.Metrics.ElbowRange,
				HipRotationRange:      dto.Metrics.HipRotationRange,
				ShoulderRotationRange: dto.Metrics.ShoulderRotationRange,
				KneeAngle:             dto.Metrics.KneeAngle,
				SpineLean:             dto.Metrics.SpineLean,
			},
		}

		// force the frame triple monotonic
		if s.EndFrame < s.StartFrame {
			p.logger.Warn("stroke end before start, swapping",
				"id", s.ID, "startFrame", s.StartFrame, "endFrame", s.EndFrame)
			s.StartFrame, s.EndFrame = s.EndFrame, s.StartFrame
		}
		if s.PeakFrame < s.StartFrame {
			s.PeakFrame = s.StartFrame
		}
		if s.PeakFrame > s.EndFrame {
			s.PeakFrame = s.EndFrame
		}

		strokes = append(strokes, s)
	}

	p.logger.Debug("Parsed stroke batch", "count", len(strokes))

	return strokes, nil
}

func parseStrokeType(p *Parser, id uint, t string) core.StrokeType {
	switch core.StrokeType(t) {
	case core.StrokeForehand:
		return core.StrokeForehand
	case core.StrokeBackhand:
		return core.StrokeBackhand
	case core.StrokeUnknown, "":
		return core.StrokeUnknown
	default:
		p.logger.Warn("unknown stroke type", "id", id, "type", t)
		return core.StrokeUnknown
	}
}
