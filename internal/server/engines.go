package server

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"riftreplay/internal/analysis"
	"riftreplay/internal/logger"
	"riftreplay/internal/timeline"
)

// Engines builds timeline engines from analysis documents and caches them.
// Concurrent requests for the same match share one build.
type Engines struct {
	src    analysis.Source
	policy timeline.Policy
	cache  *EngineCache
	group  singleflight.Group
	log    *slog.Logger

	onHit, onMiss func()
}

// NewEngines creates an engine provider over src
func NewEngines(src analysis.Source, policy timeline.Policy, cache *EngineCache) *Engines {
	return &Engines{
		src:    src,
		policy: policy,
		cache:  cache,
		log:    logger.With("engines"),
		onHit:  func() {},
		onMiss: func() {},
	}
}

func engineKey(analysisID, matchID string) string {
	return analysis.Key(analysisID) + "/" + matchID
}

// Get returns the engine for one match of an analysis
func (e *Engines) Get(ctx context.Context, analysisID, matchID string) (*timeline.Engine, error) {
	key := engineKey(analysisID, matchID)
	if eng, ok := e.cache.Get(key); ok {
		e.onHit()
		return eng, nil
	}
	e.onMiss()

	// shared by every waiting caller, so not tied to the first request
	buildCtx := context.WithoutCancel(ctx)
	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		md, err := analysis.GetMatch(buildCtx, e.src, analysisID, matchID)
		if err != nil {
			return nil, err
		}
		eng, err := Build(*md, e.policy, e.log)
		if err != nil {
			return nil, err
		}
		e.cache.Set(key, eng)
		return eng, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*timeline.Engine), nil
}

// Warm builds and caches the engines for every match of a document
func (e *Engines) Warm(doc *analysis.Document, analysisID string) int {
	n := 0
	for _, md := range doc.Analysis.DetailedMatches {
		key := engineKey(analysisID, md.MatchID)
		if _, ok := e.cache.Get(key); ok {
			continue
		}
		eng, err := Build(md, e.policy, e.log)
		if err != nil {
			e.log.Warn("failed to build engine", "match", md.MatchID, "error", err)
			continue
		}
		e.cache.Set(key, eng)
		n++
	}
	return n
}

// Build adapts a backend match payload and constructs its engine
func Build(md analysis.MatchData, policy timeline.Policy, log *slog.Logger) (*timeline.Engine, error) {
	m, drops := analysis.ToMatch(md)
	return timeline.New(m,
		timeline.WithPolicy(policy),
		timeline.WithDrops(drops),
		timeline.WithLogger(log),
	)
}
