// liqmon is a live terminal monitor for the Binance futures force-order
// (liquidation) stream.
//
// Usage:
//
//	liqmon                       # Connect with defaults and open the console
//	liqmon -config liqmon.yaml   # Use a config file
//	liqmon -headless             # No console; serve /state and /health only
//	liqmon -version              # Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/liqmon/liqmon/internal/config"
	"github.com/liqmon/liqmon/internal/feed"
	"github.com/liqmon/liqmon/internal/monitor"
	"github.com/liqmon/liqmon/internal/server"
	"github.com/liqmon/liqmon/internal/tui"
	"github.com/liqmon/liqmon/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	headless := flag.Bool("headless", false, "run without the terminal console")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("liqmon %s\n", version.String())
		return
	}

	// Load .env if present so ${VAR} expansion in the config file works
	// without exporting anything first.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "liqmon: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log, *headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "liqmon: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting liqmon",
		"version", version.Version,
		"commit", version.Commit,
		"instance_id", cfg.Instance.ID,
		"feed_url", cfg.Feed.URL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := feed.NewClient(feedConfig(cfg.Feed), logger)
	mon := monitor.New(monitor.Config{
		HistoryCapacity: cfg.History.Capacity,
		PageSize:        cfg.View.PageSize,
	}, client, logger)

	if err := client.Start(ctx); err != nil {
		logger.Error("failed to start feed", "error", err)
		os.Exit(1)
	}
	defer client.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := mon.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if cfg.Server.Enabled {
		srv := server.New(server.Config{Port: cfg.Server.Port}, mon, logger)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if *headless {
		logger.Info("running headless", "server_enabled", cfg.Server.Enabled)
		<-ctx.Done()
	} else {
		if err := tui.Run(mon); err != nil {
			logger.Error("console error", "error", err)
		}
		// Quitting the console shuts the rest down.
		stop()
	}

	if err := g.Wait(); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("liqmon stopped")
}

// loadConfig reads the config file when given, otherwise runs on defaults.
func loadConfig(path string) (*config.MonitorConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// newLogger builds the process logger. In console mode logs go to the
// configured file (or nowhere) so they don't fight the terminal UI.
func newLogger(cfg config.LogConfig, headless bool) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("unknown log level %q", cfg.Level)
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	} else if !headless {
		out = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeLog, nil
}

// feedConfig maps the file config onto the feed client config.
func feedConfig(cfg config.FeedConfig) feed.Config {
	return feed.Config{
		URL:                cfg.URL,
		HandshakeTimeout:   cfg.HandshakeTimeout,
		ReconnectBaseDelay: cfg.ReconnectBaseDelay,
		ReconnectMaxDelay:  cfg.ReconnectMaxDelay,
		PingInterval:       cfg.PingInterval,
		PingTimeout:        cfg.PingTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		BufferSize:         cfg.BufferSize,
	}
}
