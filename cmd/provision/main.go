package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/scrappydevs/ProVision-sub002/internal/config"
	"github.com/scrappydevs/ProVision-sub002/internal/dispatcher"
	"github.com/scrappydevs/ProVision-sub002/internal/engine"
	"github.com/scrappydevs/ProVision-sub002/internal/handlers"
	"github.com/scrappydevs/ProVision-sub002/internal/logging"
	intOtel "github.com/scrappydevs/ProVision-sub002/internal/otel"
	"github.com/scrappydevs/ProVision-sub002/internal/storage"
)

// CurrentVersion and BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "provision"
)

var (
	SessionStartTime time.Time = time.Now()

	LogFilePath string
	LogFile     *os.File

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider exports the dispatcher's playback metrics
	OTelProvider *intOtel.Provider

	// Services
	handlerService  *handlers.Service
	playbackEngine  *engine.Engine
	eventDispatcher *dispatcher.Dispatcher
	storageBackend  storage.Backend
)

func setup() error {
	var err error

	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(os.Stderr, "info", "")
	Logger = SlogManager.Logger()

	if err = config.Load("."); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config")
	}

	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	LogFilePath = logging.LogFilePath(logsDir, AppName, SessionStartTime)
	LogFile, err = os.OpenFile(LogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create/open log file!", "error", err, "path", LogFilePath)
	}

	graylogAddress := ""
	if config.GetBool("graylog.enabled") {
		graylogAddress = config.GetString("graylog.address")
	}
	SlogManager.Setup(LogFile, config.GetString("logLevel"), graylogAddress)
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", LogFilePath)

	otelCfg := config.OTel()
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:        otelCfg.Enabled,
			ServiceName:    otelCfg.ServiceName,
			ExportInterval: otelCfg.ExportInterval,
			MetricWriter:   LogFile,
			Endpoint:       otelCfg.Endpoint,
			Insecure:       otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			Logger.Info("OTel metrics provider initialized", "file", LogFilePath)
		}
	}

	storageBackend, err = storage.NewBackend(config.Storage())
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	if err = storageBackend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}
	Logger.Info("Storage backend initialized", "type", config.Storage().Type)

	handlerService = handlers.NewService(handlers.Dependencies{
		Backend:         storageBackend,
		LogManager:      SlogManager,
		AnalyzerVersion: "unknown",
		AppVersion:      CurrentVersion,
	}, handlers.NewSessionContext())

	// Stamp every record with the live session and playhead.
	SlogManager.SetContextProvider(func() []slog.Attr {
		attrs := make([]slog.Attr, 0, 2)
		if playbackEngine != nil {
			attrs = append(attrs, slog.Float64("playhead", playbackEngine.CurrentTime()))
		}
		if name := handlerService.GetSessionContext().GetSession().Name; name != "" {
			attrs = append(attrs, slog.String("session", name))
		}
		return attrs
	})
	Logger = SlogManager.Logger()

	playbackEngine = engine.New(Logger, engineCallbacks())

	eventDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(Logger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	playbackEngine.RegisterCommands(eventDispatcher)

	return nil
}

func usage() {
	fmt.Printf("%s %s (built %s)\n\n", AppName, CurrentVersion, BuildDate)
	fmt.Println("Usage:")
	fmt.Println("  provision ingest <archive.json>")
	fmt.Println("  provision timeline <archive.json> <out.png> [seconds]")
	fmt.Println("  provision overlay <archive.json> <seconds> <out.png>")
	fmt.Println("  provision scrub <archive.json> <from> <to> [step]")
	fmt.Println("  provision version")
}

func main() {
	if err := setup(); err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	defer SlogManager.Close()
	defer storageBackend.Close()
	defer func() {
		if OTelProvider != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := OTelProvider.Shutdown(ctx); err != nil {
				Logger.Warn("Failed to shut down OTel provider", "error", err)
			}
		}
	}()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "ingest":
		if len(args) < 2 {
			err = fmt.Errorf("ingest requires an archive path")
			break
		}
		err = runIngest(args[1])
	case "timeline":
		if len(args) < 3 {
			err = fmt.Errorf("timeline requires an archive path and an output path")
			break
		}
		err = runTimeline(args[1], args[2], args[3:])
	case "overlay":
		if len(args) < 4 {
			err = fmt.Errorf("overlay requires an archive path, a time and an output path")
			break
		}
		err = runOverlay(args[1], args[2], args[3])
	case "scrub":
		if len(args) < 4 {
			err = fmt.Errorf("scrub requires an archive path and a time range")
			break
		}
		err = runScrub(args[1], args[2:])
	case "version":
		fmt.Printf("%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
	default:
		usage()
	}

	if err != nil {
		Logger.Error("Command failed", "command", args[0], "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
