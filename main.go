package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/padscope/padscope/internal/haptics"
	"github.com/padscope/padscope/internal/hub"
	"github.com/padscope/padscope/internal/pad"
	"github.com/padscope/padscope/internal/sdljoy"
	"github.com/padscope/padscope/internal/server"
	"github.com/padscope/padscope/internal/tray"
)

// Cross-platform signal handling: os.Interrupt covers Ctrl+C on Windows
// and SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("padscope failed", zap.Error(err))
	}
}

type config struct {
	addr        string
	deadzone    float64
	debug       bool
	logLevel    string
	mappingFile string
	enableTray  bool
}

func loadConfig() (config, error) {
	pflag.String("addr", ":8080", "HTTP listen address")
	pflag.Float64("deadzone", 0.06, "initial drift deadzone (0.0-0.5)")
	pflag.Bool("debug", false, "start with debug verbosity enabled")
	pflag.String("log-level", "info", "log level: debug, info, warn, error")
	pflag.String("mapping", "", "path to a YAML channel mapping file (optional)")
	pflag.Bool("tray", runtime.GOOS == "windows", "enable the system tray icon")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return config{}, err
	}
	v.SetEnvPrefix("PADSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Optional padscope.yaml next to the binary or in the working
	// directory; flags and env override it.
	v.SetConfigName("padscope")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config{}, err
		}
	}

	return config{
		addr:        v.GetString("addr"),
		deadzone:    v.GetFloat64("deadzone"),
		debug:       v.GetBool("debug"),
		logLevel:    v.GetString("log-level"),
		mappingFile: v.GetString("mapping"),
		enableTray:  v.GetBool("tray"),
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(lvl)
	loggerConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return loggerConfig.Build()
}

func run(cfg config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	table := pad.DefaultTable()
	if cfg.mappingFile != "" {
		var err error
		if table, err = pad.LoadTable(cfg.mappingFile); err != nil {
			return fmt.Errorf("load mapping table: %w", err)
		}
		logger.Info("channel mapping loaded", zap.String("file", cfg.mappingFile))
	}

	registry := pad.NewRegistry(sdljoy.New(logger.Named("sdl")), table, logger.Named("registry"))
	engine := pad.NewEngine(registry, table, pad.NewConfig(cfg.deadzone, cfg.debug), logger.Named("engine"))
	engine.SetHaptics(haptics.NewPulser(registry, logger.Named("haptics")))

	h := hub.NewHub(logger.Named("hub"))
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, engine.Changes(), logger.Named("broadcast"))
	go broadcaster.Run()

	srv := server.New(h, broadcaster, engine, getFrontendFS(), cfg.addr, logger.Named("http"))
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	logger.Info("padscope started", zap.String("url", browseURL(cfg.addr)))

	shutdownRequested := make(chan struct{})
	if cfg.enableTray {
		go func() {
			t := tray.New(browseURL(cfg.addr), func() {
				close(shutdownRequested)
			}, logger.Named("tray"))
			t.Run(tray.GetIcon())
		}()
	} else {
		logger.Info("press Ctrl+C to exit")
	}

	// The engine loop needs a locked OS thread for the SDL event pump;
	// it owns its goroutine for the whole process lifetime.
	engineDone := make(chan error, 1)
	go func() {
		engineDone <- engine.Run(ctx)
	}()

	var engineErr error
	engineFinished := false
	select {
	case <-sigCh:
		logger.Info("shutting down")
		cancel()
	case <-shutdownRequested:
		logger.Info("shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		logger.Error("HTTP server error", zap.Error(err))
		cancel()
	case engineErr = <-engineDone:
		// The engine returning before cancellation means startup failed.
		engineFinished = true
		cancel()
	}

	if !engineFinished {
		engineErr = <-engineDone
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	if engineErr != nil {
		return engineErr
	}
	logger.Info("padscope stopped")
	return nil
}

func browseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
