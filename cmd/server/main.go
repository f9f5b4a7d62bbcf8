package main

import (
	"flag"
	"fmt"
	"os"

	"riftreplay/internal/analysis"
	"riftreplay/internal/config"
	"riftreplay/internal/lifecycle"
	"riftreplay/internal/logger"
	"riftreplay/internal/refcache"
	"riftreplay/internal/server"
	"riftreplay/internal/watcher"
)

func main() {
	envPath, envLoaded := config.LoadEnvFile()

	configPath := flag.String("config", "", "Path to riftreplay.yaml")
	flag.Parse()

	logger.Init()
	if envLoaded {
		logger.Info("loaded .env", "path", envPath)
	} else {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(*configPath); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	log := logger.With("main")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := lifecycle.SetupSignalHandler(nil)

	src, closeSrc, err := analysis.Open(ctx, cfg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to open %s analysis source: %w", cfg.Analysis.Source, err)
	}
	defer closeSrc()
	log.Info("analysis source ready", "source", cfg.Analysis.Source)

	snap, err := refcache.LoadConfigured(ctx, cfg)
	if err != nil {
		log.Warn("reference metadata degraded", "error", err)
	}
	log.Info("reference metadata ready",
		"version", snap.Version,
		"items", len(snap.Items),
		"champions", len(snap.Champions),
	)

	cache := server.NewEngineCache(cfg.Server.EngineCacheSize, cfg.Server.EngineCacheTTL)
	engines := server.NewEngines(src, cfg.Policy, cache)

	srv := server.New(server.Config{
		Port:         cfg.Server.Port,
		Source:       src,
		Engines:      engines,
		Reference:    snap,
		PlaybackTick: cfg.Server.PlaybackTick,
	})

	if cfg.Watcher.Enabled {
		var opts []watcher.Option
		if cfg.Watcher.WebhookURL != "" {
			opts = append(opts, watcher.WithNotifier(watcher.NewDiscordNotifier(cfg.Watcher.WebhookURL)))
		}
		go watcher.New(src, engines, cfg.Watcher.Interval, opts...).Run(ctx)
	}

	return srv.Run(ctx)
}
