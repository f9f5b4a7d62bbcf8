package analysis

import (
	"context"
	"fmt"

	"riftreplay/internal/config"
)

// Open builds the source selected by cfg.Source. The returned func releases
// its connections.
func Open(ctx context.Context, cfg config.AnalysisConfig) (Source, func(), error) {
	switch cfg.Source {
	case "", "http":
		return NewHTTPSource(cfg.BackendURL, cfg.Timeout), func() {}, nil
	case "mongo":
		src, err := NewMongoSource(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close(context.Background()) }, nil
	case "postgres":
		src, err := NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case "file":
		return NewFileSource(cfg.Dir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown analysis source %q", cfg.Source)
	}
}
