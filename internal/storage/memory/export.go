// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scrappydevs/ProVision-sub002/internal/geo"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// SessionExport is the root JSON structure
type SessionExport struct {
	Name            string                 `json:"name"`
	Sport           string                 `json:"sport"`
	Tag             string                 `json:"tag"`
	AnalyzerVersion string                 `json:"analyzerVersion"`
	Duration        float64                `json:"duration"`
	FPS             float64                `json:"fps"`
	TotalFrames     int                    `json:"totalFrames"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Strokes         []core.StrokeEvent     `json:"strokes"`
	Poses           []core.PoseFrame       `json:"poses"`
	Trajectory      []core.TrajectoryPoint `json:"trajectory"`
	TrajectoryPx    float64                `json:"trajectoryPathPx"`
	Velocity        []float64              `json:"velocity"`
	Points          []core.PointEvent      `json:"points"`
	Regions         []core.ActivityRegion  `json:"regions"`
	Tips            []core.VideoTip        `json:"tips"`
}

// exportJSON writes the session data to a JSON file, gzipped when configured.
// Caller must hold b.mu.
func (b *Backend) exportJSON() error {
	if b.session == nil {
		return fmt.Errorf("no session started")
	}

	export := b.buildExport()

	// Build filename
	name := strings.ReplaceAll(b.session.Name, " ", "_")
	name = strings.ReplaceAll(name, ":", "_")
	timestamp := b.session.StartTime.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", name, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", name, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() SessionExport {
	export := SessionExport{
		Name:            b.session.Name,
		Sport:           b.session.Sport,
		Tag:             b.session.Tag,
		AnalyzerVersion: b.session.AnalyzerVersion,
		Duration:        b.session.Video.Duration,
		FPS:             b.session.Video.FPS,
		TotalFrames:     b.session.Video.TotalFrames,
		Width:           b.session.Video.Width,
		Height:          b.session.Video.Height,
		Strokes:         append([]core.StrokeEvent{}, b.strokes...),
		Trajectory:      append([]core.TrajectoryPoint{}, b.trajectory...),
		Velocity:        append([]float64{}, b.velocity...),
		Points:          append([]core.PointEvent{}, b.points...),
		Regions:         append([]core.ActivityRegion{}, b.regions...),
		Tips:            append([]core.VideoTip{}, b.tips...),
	}

	// Poses ordered by frame for a stable export
	export.Poses = make([]core.PoseFrame, 0, len(b.poses))
	for _, p := range b.poses {
		export.Poses = append(export.Poses, p)
	}
	sort.Slice(export.Poses, func(i, j int) bool { return export.Poses[i].Frame < export.Poses[j].Frame })

	sort.Slice(export.Strokes, func(i, j int) bool { return export.Strokes[i].StartFrame < export.Strokes[j].StartFrame })
	sort.Slice(export.Trajectory, func(i, j int) bool { return export.Trajectory[i].Frame < export.Trajectory[j].Frame })

	export.TrajectoryPx = geo.PathLengthPx(export.Trajectory)

	return export
}

func (b *Backend) writeJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data SessionExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
