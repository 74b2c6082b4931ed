// Package main is the entry point for the blockworld client.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/config"
	"github.com/Faultbox/blockworld/internal/game"
	"github.com/Faultbox/blockworld/internal/logger"
	"github.com/Faultbox/blockworld/internal/metrics"
)

func main() {
	config.ParseFlags()

	firstRun := !config.Exists()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== blockworld ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if firstRun {
		if err := cfg.Save(); err != nil {
			logger.Warn("could not write default config", zap.Error(err))
		} else {
			logger.Info("wrote default config", zap.String("dir", config.ConfigDir()))
		}
	}

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		srv := m.Serve(cfg.Metrics.Listen)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	g, err := game.New(cfg, m)
	if err != nil {
		logger.Error("failed to create game", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
