package refcache

import (
	"context"

	"riftreplay/internal/config"
	"riftreplay/internal/ddragon"
	"riftreplay/internal/logger"
)

// LoadConfigured resolves the reference snapshot described by cfg, going
// through the snapshot cache when it can be opened. The snapshot is never
// nil; on total failure it is empty and every lookup yields a placeholder.
func LoadConfigured(ctx context.Context, cfg config.Config) (*ddragon.Snapshot, error) {
	loader := ddragon.NewLoader(ddragon.LoaderConfig{
		CDN:       cfg.DDragon.BaseURL,
		MerakiURL: cfg.DDragon.MerakiURL,
		Language:  cfg.DDragon.Language,
		Version:   cfg.DDragon.Version,
	})

	store, err := Open(ctx, Config{
		Path:       cfg.Cache.Path,
		TursoURL:   cfg.Cache.TursoURL,
		TursoToken: cfg.Cache.TursoToken,
	})
	if err != nil {
		logger.With("refcache").Warn("snapshot cache unavailable, loading directly", "error", err)
		snap, loadErr := loader.Load(ctx)
		return snap, loadErr
	}
	defer store.Close()

	language := cfg.DDragon.Language
	if language == "" {
		language = "en_US"
	}
	return store.Resolve(ctx, loader, language)
}
