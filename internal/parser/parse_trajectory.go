package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParseTrajectory parses the ball trajectory payload. Points are sorted
// by frame so downstream future-window scans can terminate early.
func (p *Parser) ParseTrajectory(data []byte) ([]core.TrajectoryPoint, error) {
	var dtos []trajectoryPointDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling trajectory data: %w", err)
	}

	points := make([]core.TrajectoryPoint, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Frame < 0 {
			p.logger.Warn("trajectory frame index negative, skipping", "frame", dto.Frame)
			continue
		}
		points = append(points, core.TrajectoryPoint{Frame: dto.Frame, X: dto.X, Y: dto.Y})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Frame < points[j].Frame })

	p.logger.Debug("Parsed trajectory", "count", len(points))

	return points, nil
}

// ParseVelocity parses the swing-velocity series. Negative samples are
// floored at zero; the series is defined as non-negative.
func (p *Parser) ParseVelocity(data []byte) (core.VelocitySeries, error) {
	var samples []float64
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("error unmarshalling velocity data: %w", err)
	}

	for i, v := range samples {
		if v < 0 {
			samples[i] = 0
		}
	}

	p.logger.Debug("Parsed velocity series", "samples", len(samples))

	return core.VelocitySeries(samples), nil
}
