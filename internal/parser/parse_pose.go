package parser

import (
	"encoding/json"
	"fmt"

	"github.com/scrappydevs/ProVision-sub002/internal/util"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// ParsePoseFrames parses a pose-frame batch. Keypoint visibility is
// clamped to [0,1]; pixel coordinates pass through untouched, a stray
// outlier is better visible than silently pinned.
func (p *Parser) ParsePoseFrames(data []byte) ([]core.PoseFrame, error) {
	var dtos []poseFrameDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling pose data: %w", err)
	}

	frames := make([]core.PoseFrame, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Frame < 0 {
			p.logger.Warn("pose frame index negative, skipping", "frame", dto.Frame)
			continue
		}

		pf := core.PoseFrame{
			Frame:     dto.Frame,
			Keypoints: make(map[string]core.Keypoint, len(dto.Keypoints)),
			Angles:    dto.Angles,
		}
		for name, kp := range dto.Keypoints {
			pf.Keypoints[name] = core.Keypoint{
				X:          kp.X,
				Y:          kp.Y,
				Z:          kp.Z,
				Visibility: util.Clamp01(kp.Visibility),
			}
		}

		frames = append(frames, pf)
	}

	p.logger.Debug("Parsed pose batch", "count", len(frames))

	return frames, nil
}
