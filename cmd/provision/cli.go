package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scrappydevs/ProVision-sub002/internal/api"
	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/internal/dispatcher"
	"github.com/scrappydevs/ProVision-sub002/internal/engine"
	"github.com/scrappydevs/ProVision-sub002/internal/influx"
	"github.com/scrappydevs/ProVision-sub002/internal/monitor"
	"github.com/scrappydevs/ProVision-sub002/internal/timeline"
	"github.com/scrappydevs/ProVision-sub002/pkg/core"
)

// metrics is nil until a command that reports telemetry connects it.
var metrics *influx.Manager

func engineCallbacks() engine.Callbacks {
	return engine.Callbacks{
		TipChanged: func(tip *core.VideoTip) {
			if tip == nil {
				return
			}
			fmt.Printf("[%7.2fs] tip: %s - %s\n", tip.Timestamp, tip.Title, tip.Message)
			if metrics != nil {
				sessionName := handlerService.GetSessionContext().GetSession().Name
				if err := metrics.WriteTipTransition(context.Background(), sessionName, *tip, tip.Timestamp); err != nil {
					Logger.Warn("Failed to record tip transition", "error", err)
				}
			}
		},
		Seek: func(seconds float64) {
			Logger.Debug("Seek requested", "seconds", seconds)
			if metrics != nil {
				sessionName := handlerService.GetSessionContext().GetSession().Name
				if err := metrics.WriteSeek(context.Background(), sessionName, "engine", seconds); err != nil {
					Logger.Warn("Failed to record seek", "error", err)
				}
			}
		},
	}
}

func connectMetrics() {
	if !config.GetBool("influx.enabled") {
		return
	}
	backupPath := filepath.Join(config.GetString("logsDir"), "influx_backup.gz")
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	m := influx.NewManager(zlog, backupPath)
	if err := m.Connect(); err != nil {
		Logger.Warn("Metrics disabled", "error", err)
		return
	}
	metrics = m
}

// queueLengths returns the backend's write-queue sampler when the
// configured backend exposes one, nil otherwise.
func queueLengths() func() map[string]int {
	type queueReporter interface {
		QueueLengths() map[string]int
	}
	if r, ok := storageBackend.(queueReporter); ok {
		return r.QueueLengths
	}
	return nil
}

// readArchive reads a session archive from disk, transparently
// decompressing .gz files.
func readArchive(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening archive: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("error opening gzip archive: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(r)
}

func ingestAndLoad(path string) error {
	data, err := readArchive(path)
	if err != nil {
		return err
	}

	records, err := handlerService.IngestArchive(data)
	if err != nil {
		return fmt.Errorf("error ingesting archive: %w", err)
	}
	fmt.Printf("Ingested %d records from %s\n", records, path)

	playback, err := handlerService.LoadPlayback()
	if err != nil {
		return fmt.Errorf("error loading playback data: %w", err)
	}
	playback.Meta = fillVideoSize(playback.Meta)
	playbackEngine.LoadSession(playback)
	return nil
}

// fillVideoSize fills missing video dimensions from the configured
// overlay surface. Archives from older analyzers omit the size.
func fillVideoSize(meta core.VideoMeta) core.VideoMeta {
	if meta.Width <= 0 {
		meta.Width = config.GetInt("render.overlay.width")
	}
	if meta.Height <= 0 {
		meta.Height = config.GetInt("render.overlay.height")
	}
	return meta
}

// exportTag returns the session's tag, or the configured default when
// the analyzer did not set one.
func exportTag(session core.Session) string {
	if session.Tag != "" {
		return session.Tag
	}
	return config.GetString("defaultTag")
}

func runIngest(path string) error {
	data, err := readArchive(path)
	if err != nil {
		return err
	}

	records, err := handlerService.IngestArchive(data)
	if err != nil {
		return fmt.Errorf("error ingesting archive: %w", err)
	}

	exportPath, err := handlerService.EndSession()
	if err != nil {
		return fmt.Errorf("error ending session: %w", err)
	}

	fmt.Printf("Ingested %d records from %s\n", records, path)
	if exportPath != "" {
		fmt.Printf("Session exported to %s\n", exportPath)
		if config.GetBool("api.enabled") {
			if err := uploadExport(exportPath); err != nil {
				Logger.Warn("Failed to upload session export", "error", err)
			}
		}
	}
	return nil
}

// uploadExport pushes the exported session file to the coaching web
// frontend configured under api.*.
func uploadExport(exportPath string) error {
	serverURL := config.GetString("api.serverUrl")
	client := api.New(serverURL, config.GetString("api.key"))
	if err := client.Healthcheck(); err != nil {
		return fmt.Errorf("frontend unreachable: %w", err)
	}

	session := handlerService.GetSessionContext().GetSession()
	err := client.Upload(exportPath, api.UploadMetadata{
		SessionName: session.Name,
		Sport:       session.Sport,
		Duration:    session.Video.Duration,
		Tag:         exportTag(*session),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded session export to %s\n", serverURL)
	return nil
}

func runTimeline(archivePath, outPath string, rest []string) error {
	if err := ingestAndLoad(archivePath); err != nil {
		return err
	}

	currentTime := 0.0
	if len(rest) > 0 {
		t, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", rest[0], err)
		}
		currentTime = t
	}
	playbackEngine.OnTimeUpdate(currentTime)

	regions, err := storageBackend.Regions()
	if err != nil {
		return fmt.Errorf("error reading regions: %w", err)
	}

	meta := playbackEngine.Meta()
	layout := timeline.Compute(regions, playbackEngine.Markers(), currentTime, meta.Duration)

	renderer := timeline.NewRenderer(
		config.GetInt("render.timeline.width"),
		config.GetInt("render.timeline.height"),
	)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := renderer.WritePNG(f, layout); err != nil {
		return fmt.Errorf("error rendering timeline: %w", err)
	}
	fmt.Printf("Wrote timeline to %s\n", outPath)
	return nil
}

func runOverlay(archivePath, atSeconds, outPath string) error {
	seconds, err := strconv.ParseFloat(atSeconds, 64)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", atSeconds, err)
	}

	if err := ingestAndLoad(archivePath); err != nil {
		return err
	}

	img := playbackEngine.OnTimeUpdate(seconds)

	frame := playbackEngine.Meta().FrameAt(seconds)
	if pose, ok, err := storageBackend.PoseAt(frame); err != nil {
		Logger.Warn("Failed to read pose", "frame", frame, "error", err)
	} else if ok {
		fmt.Printf("Pose at frame %d: %d keypoints, %d angles\n",
			frame, len(pose.Keypoints), len(pose.Angles))
	} else {
		fmt.Printf("No pose recorded at frame %d\n", frame)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("error encoding overlay: %w", err)
	}
	fmt.Printf("Wrote overlay frame at %.2fs to %s\n", seconds, outPath)
	return nil
}

// runScrub replays time updates through the dispatcher at the given
// step, printing tip transitions and reporting render timings.
func runScrub(archivePath string, rest []string) error {
	from, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", rest[0], err)
	}
	to, err := strconv.ParseFloat(rest[1], 64)
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", rest[1], err)
	}
	step := 1.0 / 30.0
	if len(rest) > 2 {
		step, err = strconv.ParseFloat(rest[2], 64)
		if err != nil {
			return fmt.Errorf("invalid step %q: %w", rest[2], err)
		}
	}
	if to < from || step <= 0 {
		return fmt.Errorf("invalid scrub range %v..%v step %v", from, to, step)
	}

	connectMetrics()

	if err := ingestAndLoad(archivePath); err != nil {
		return err
	}

	meta := playbackEngine.Meta()
	sessionName := handlerService.GetSessionContext().GetSession().Name

	statusMonitor := monitor.NewService(monitor.Dependencies{
		LogManager:   SlogManager,
		SessionName:  func() string { return handlerService.GetSessionContext().GetSession().Name },
		PlaybackTime: playbackEngine.CurrentTime,
		ActiveTip:    playbackEngine.ActiveTip,
		QueueLengths: queueLengths(),
		StatusDir:    config.GetString("logsDir"),
	})
	if err := statusMonitor.Start(); err != nil {
		Logger.Warn("Failed to start status monitor", "error", err)
	}
	defer statusMonitor.Stop()

	frames := 0
	scrubStart := time.Now()
	for t := from; t <= to; t += step {
		frameStart := time.Now()
		if _, err := eventDispatcher.Dispatch(dispatcher.Event{
			Command:   engine.CmdPlaybackTime,
			Payload:   t,
			Timestamp: time.Now(),
		}); err != nil {
			return fmt.Errorf("error dispatching time update at %.2fs: %w", t, err)
		}
		frames++

		if metrics != nil {
			frame := meta.FrameAt(t)
			if err := metrics.WriteRenderTiming(context.Background(), sessionName, frame, time.Since(frameStart)); err != nil {
				Logger.Warn("Failed to record render timing", "error", err)
			}
		}
	}

	elapsed := time.Since(scrubStart)
	fmt.Printf("Scrubbed %.2fs..%.2fs in %s (%d frames, %.1f fps)\n",
		from, to, elapsed, frames, float64(frames)/elapsed.Seconds())

	strokes, err := storageBackend.StrokesBetween(meta.FrameAt(from), meta.FrameAt(to))
	if err != nil {
		return fmt.Errorf("error reading strokes for scrub range: %w", err)
	}
	fmt.Printf("Range covered %d strokes\n", len(strokes))
	return nil
}
