// Command waymark runs the annotation interaction controller against a
// simulated map viewport. It exists for field debugging: the same
// controller, storage and telemetry stack the embedded build ships,
// driven from a line-based console instead of touch input.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"

	"github.com/waymark/annotate/internal/assets"
	"github.com/waymark/annotate/internal/config"
	"github.com/waymark/annotate/internal/database"
	"github.com/waymark/annotate/internal/dispatcher"
	"github.com/waymark/annotate/internal/gesture"
	"github.com/waymark/annotate/internal/identity"
	"github.com/waymark/annotate/internal/influx"
	"github.com/waymark/annotate/internal/interaction"
	"github.com/waymark/annotate/internal/logging"
	"github.com/waymark/annotate/internal/mapengine"
	intotel "github.com/waymark/annotate/internal/otel"
	"github.com/waymark/annotate/internal/session"
	"github.com/waymark/annotate/internal/storage"
	"github.com/waymark/annotate/internal/trash"
	"github.com/waymark/annotate/pkg/core"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "waymark:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := config.Load("."); err != nil {
		// Missing config file is fine; defaults cover everything.
		config.SetDefaults()
	}

	sess := session.NewContext()
	sess.SetProfile(config.GetString("profile"))

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	logFile, err := os.OpenFile(
		logging.LogFilePath(logsDir, "waymark", sess.Started()),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	otelProvider, err := intotel.New(intotel.Config{
		Enabled:      config.GetBool("otel.enabled"),
		ServiceName:  "waymark-annotate",
		BatchTimeout: 5 * time.Second,
		LogWriter:    logFile,
		Endpoint:     config.GetString("otel.endpoint"),
		Insecure:     config.GetBool("otel.insecure"),
	})
	if err != nil {
		return fmt.Errorf("initializing otel: %w", err)
	}
	defer otelProvider.Shutdown(ctx)

	var gelfWriter *gelf.Writer
	if config.GetBool("graylog.enabled") {
		gelfWriter, err = gelf.NewWriter(config.GetString("graylog.address"))
		if err != nil {
			return fmt.Errorf("connecting to graylog: %w", err)
		}
	}

	// The mode provider closes over the facade, which does not exist
	// yet; bound below once the controller is wired.
	var facade *interaction.Facade
	modeProvider := func() []slog.Attr {
		attrs := sess.Attrs()
		if facade != nil {
			attrs = append(attrs, slog.String("mode", facade.Controller().ModeName()))
		}
		return attrs
	}

	slogManager := logging.NewSlogManager()
	if gelfWriter != nil {
		slogManager.Setup(logFile, config.GetString("logLevel"), otelProvider.LoggerProvider(), gelfWriter, modeProvider)
	} else {
		slogManager.Setup(logFile, config.GetString("logLevel"), otelProvider.LoggerProvider(), nil, modeProvider)
	}
	log := slogManager.Logger()
	defer slogManager.Flush(ctx)

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	// Storage: gorm-backed kinds go through the database manager with
	// its postgres-to-sqlite fallback; "memory" skips it entirely.
	storageKind := config.GetString("storage.type")
	var dbManager *database.Manager
	if storageKind != "memory" {
		dbManager = database.NewManager(zlog)
		dbManager.SqliteFilePath = config.GetString("storage.sqlitePath")
		if err := dbManager.Connect(); err != nil {
			return fmt.Errorf("connecting database: %w", err)
		}
		defer dbManager.Close()
		if err := dbManager.Setup(); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	repo, err := storage.NewRepository(storageKind, dbManager)
	if err != nil {
		return fmt.Errorf("creating repository: %w", err)
	}
	if err := repo.Init(); err != nil {
		return fmt.Errorf("initializing repository: %w", err)
	}
	defer repo.Close()

	var metrics interaction.Metrics
	if config.GetBool("influx.enabled") {
		im := influx.NewManager(zlog, filepath.Join(logsDir, "interaction_metrics.lp.gz"))
		if err := im.Connect(); err != nil {
			log.Warn("influx unavailable, telemetry disabled", "error", err)
		} else {
			defer im.Close()
			metrics = im
		}
	}

	zone, err := trash.FromConfig()
	if err != nil {
		return fmt.Errorf("building trash zone: %w", err)
	}

	engine := mapengine.NewSim(mapengine.Viewport{
		Width:  1280,
		Height: 720,
		Center: core.Coordinate{
			Lat: config.GetFloat("map.centerLat"),
			Lng: config.GetFloat("map.centerLng"),
		},
		PixelsPerDegree: 100,
	})

	cli := newConsole(os.Stdin, os.Stdout)

	facade = interaction.NewFacade(interaction.FacadeOptions{
		Options: interaction.Options{
			Engine:  engine,
			Repo:    repo,
			Dialogs: cli,
			Icons:   assets.NewLoader(config.GetString("icons.dir")),
			Links:   identity.NewLinker(),
			Zone:    zone,
			Log:     log,
			Metrics: metrics,
		},
		Delay:     config.GestureDelay(),
		HitRadius: config.GetFloat("gesture.hitRadius"),
		Timer:     gesture.AfterFuncTimer{},
	})

	if err := facade.Restore(ctx); err != nil {
		log.Error("session restore failed", "error", err)
	}

	d, err := dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	facade.RegisterHandlers(d)

	log.Info("waymark console started",
		"storage", storageKind, "gestureDelay", config.GestureDelay().String())

	return cli.loop(ctx, d, facade, engine, repo)
}
