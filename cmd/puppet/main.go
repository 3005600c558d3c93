package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hako/durafmt"

	"github.com/younwookim/puppet/internal/application/engine"
	"github.com/younwookim/puppet/internal/application/game"
	"github.com/younwookim/puppet/internal/application/replay"
	"github.com/younwookim/puppet/internal/application/report"
	"github.com/younwookim/puppet/internal/application/snapshot"
	"github.com/younwookim/puppet/internal/application/system"
	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/config"
	"github.com/younwookim/puppet/internal/infrastructure/ebitenbackend"
	"github.com/younwookim/puppet/internal/infrastructure/headless"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
	"github.com/younwookim/puppet/internal/infrastructure/transport"
)

// options holds the command line flags
type options struct {
	configPath string
	transport  string
	listen     string
	record     string
	replay     string
	headless   bool
	schema     bool
	debug      bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("puppet", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Renderer config file, JSON or YAML (default: renderer.json or renderer.yaml if present)")
	fs.StringVar(&opts.transport, "transport", "", "Snapshot transport: stdio or websocket")
	fs.StringVar(&opts.listen, "listen", "", "WebSocket listen address (e.g., -listen 127.0.0.1:8765)")
	fs.StringVar(&opts.record, "record", "", "Record inbound snapshots to file (e.g., -record session.json)")
	fs.StringVar(&opts.replay, "replay", "", "Replay a recorded session instead of reading the transport")
	fs.BoolVar(&opts.headless, "headless", false, "Run without a window")
	fs.BoolVar(&opts.schema, "schema", false, "Print the JSON Schema of a decoded snapshot and exit")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// loadConfig reads the config file named by opts (or the working directory
// defaults) and applies the flag overrides on top.
func loadConfig(opts options) (*config.RendererConfig, error) {
	var (
		cfg *config.RendererConfig
		err error
	)
	if opts.configPath != "" {
		loader := config.NewLoader(filepath.Dir(opts.configPath))
		cfg, err = loader.LoadRenderer(filepath.Base(opts.configPath))
	} else {
		cfg, err = config.NewLoader(".").LoadAll()
	}
	if err != nil {
		return nil, err
	}

	if opts.transport != "" {
		cfg.Transport.Mode = opts.transport
	}
	if opts.listen != "" {
		cfg.Transport.Listen = opts.listen
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// startSource starts the producer selected by the config and returns the
// queue it fills and the emitter events should go to.
func startSource(ctx context.Context, cfg *config.RendererConfig, opts options, logger *logging.Logger) (*snapshot.Queue, report.Emitter, error) {
	queue := snapshot.NewQueue(cfg.Transport.QueueSize)
	stdout := report.NewLineEmitter(os.Stdout)

	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load replay: %w", err)
		}
		replayer := replay.NewReplayer(*data)
		logger.Debugf("replaying session %s (%d snapshots)", replayer.Session(), replayer.TotalMessages())
		go replayer.Play(ctx, queue)
		return queue, stdout, nil
	}

	switch cfg.Transport.Mode {
	case config.TransportWebSocket:
		srv := transport.NewServer(queue, transport.Config{
			MaxMessageBytes: cfg.Transport.MaxMessageBytes,
			Logger:          logger,
		})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Transport.Listen); err != nil {
				logger.Errorf("websocket transport: %v", err)
				queue.Close()
			}
		}()
		return queue, srv, nil
	default:
		snapshot.ReadLines(os.Stdin, queue, cfg.Transport.MaxMessageBytes, logger)
		return queue, stdout, nil
	}
}

// inputs merges several input sources into one
type inputs []engine.Input

func (in inputs) PollEvents() []entity.InputEvent {
	var events []entity.InputEvent
	for _, i := range in {
		events = append(events, i.PollEvents()...)
	}
	return events
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.schema {
		if err := writeSchema(os.Stdout); err != nil {
			log.Fatalf("Failed to write schema: %v", err)
		}
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, logFile, err := logging.Open(cfg.Log.Dir, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue, emitter, err := startSource(ctx, cfg, opts, logger)
	if err != nil {
		log.Fatalf("Failed to start snapshot source: %v", err)
	}
	logger.Debugf("transport %s, queue %d, max message %s",
		cfg.Transport.Mode, cfg.Transport.QueueSize, humanize.IBytes(uint64(cfg.Transport.MaxMessageBytes)))

	var source snapshot.Source = queue
	var recorder *replay.Recorder
	if opts.record != "" {
		recorder = replay.NewRecorder(queue)
		source = recorder
		logger.Debugf("recording enabled: %s (session %s)", opts.record, recorder.Session())
	}

	roots := assets.Roots{Images: cfg.Assets.ImagesRoot, Fonts: cfg.Assets.FontsRoot}
	reporter := report.NewReporter(emitter, report.Options{MouseMotion: cfg.Events.MouseMotion})
	params := engine.Params{
		Source:                source,
		Animation:             system.NewAnimationSystem(),
		Reporter:              reporter,
		Logger:                logger,
		FallbackFrameDuration: entity.FrameDurationForFPS(uint(cfg.Display.Framerate)),
	}
	reconcileCfg := system.ReconcileConfig{
		Roots:        roots,
		FallbackIcon: cfg.Assets.FallbackIcon,
		DefaultTitle: cfg.Display.Title,
	}
	signals := headless.NewInput(ctx)

	start := time.Now()
	var loop *engine.Loop
	var runErr error
	if opts.headless {
		window := headless.NewWindow(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, cfg.Display.Title)
		loader := headless.NewLoader(logger)
		params.Window = window
		params.Input = signals
		params.Cache = assets.NewCache(loader, roots)
		params.Reconciler = system.NewReconciler(window, loader, reconcileCfg, logger)
		loop = engine.NewLoop(params)

		canvas := &headless.Canvas{}
		loop.Run(canvas, canvas)
	} else {
		window := ebitenbackend.NewWindow(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, cfg.Display.Title)
		loader := ebitenbackend.NewLoader(logger)
		params.Window = window
		params.Input = inputs{ebitenbackend.NewInput(), signals}
		params.Cache = assets.NewCache(loader, roots)
		params.Reconciler = system.NewReconciler(window, loader, reconcileCfg, logger)
		loop = engine.NewLoop(params)

		g := game.New(loop, window, func(screen *ebiten.Image) engine.Surface {
			return ebitenbackend.NewSurface(screen)
		}, logger)
		runErr = ebiten.RunGame(g)
	}
	stop()

	code := finish(recorder, opts.record, runErr, logger)

	stats := loop.Stats()
	cache := params.Cache.Stats()
	logger.Debugf("shutting down after %s: %d ticks, %d snapshots applied, %d rejected, %d input events, %d images, %d fonts, %d failed assets",
		durafmt.Parse(time.Since(start)).LimitFirstN(2),
		stats.Ticks, stats.Applied, stats.Rejected, stats.Events,
		cache.Images, cache.Fonts, cache.Failed)
	logger.Debugf("%d events sent to the controller", reporter.Sent())
	if srv, ok := emitter.(*transport.Server); ok && srv.Dropped() > 0 {
		logger.Errorf("%d events dropped while no controller was connected", srv.Dropped())
	}

	if code != 0 {
		logFile.Close()
		os.Exit(code)
	}
}

// finish saves the recording, if any, and returns the exit code for the
// renderer's result. The recording is kept when the renderer failed.
func finish(recorder *replay.Recorder, path string, runErr error, logger *logging.Logger) int {
	if recorder != nil {
		if err := recorder.Save(path); err != nil {
			logger.Errorf("Failed to save recording: %v", err)
		} else {
			logger.Debugf("recording saved: %s (%d snapshots)", path, recorder.MessageCount())
		}
	}
	if runErr != nil {
		logger.Errorf("Renderer failed: %v", runErr)
		return 1
	}
	return 0
}
