package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"riftreplay/internal/analysis"
	"riftreplay/internal/logger"
)

// Warmer builds engines for the matches of a document
type Warmer interface {
	Warm(doc *analysis.Document, analysisID string) int
}

// Notifier is told about each newly seen analysis
type Notifier interface {
	NotifyAnalysis(ctx context.Context, s analysis.Summary, matches int) error
}

// Watcher polls the analysis source and warms engines for analyses it has
// not seen yet. A re-run analysis has a new created time and counts as new.
type Watcher struct {
	src      analysis.Source
	warm     Warmer
	notify   Notifier
	interval time.Duration
	log      *slog.Logger

	// sized for 100k analyses at a 0.1% false positive rate; a false
	// positive only skips warming, the engine is still built on demand
	seen *bloom.BloomFilter
}

// Option configures a Watcher
type Option func(*Watcher)

// WithNotifier sets a notifier for new analyses
func WithNotifier(n Notifier) Option {
	return func(w *Watcher) { w.notify = n }
}

// New creates a watcher polling every interval
func New(src analysis.Source, warm Warmer, interval time.Duration, opts ...Option) *Watcher {
	if interval <= 0 {
		interval = time.Minute
	}
	w := &Watcher{
		src:      src,
		warm:     warm,
		interval: interval,
		log:      logger.With("watcher"),
		seen:     bloom.NewWithEstimates(100000, 0.001),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func seenKey(s analysis.Summary) string {
	return analysis.Key(s.Filename) + "@" + strconv.FormatFloat(s.Created, 'f', -1, 64)
}

// Poll checks the source once and returns how many new analyses it warmed
func (w *Watcher) Poll(ctx context.Context) (int, error) {
	list, err := w.src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list analyses: %w", err)
	}

	found := 0
	for _, s := range list {
		if ctx.Err() != nil {
			return found, ctx.Err()
		}
		key := seenKey(s)
		if w.seen.TestString(key) {
			continue
		}

		id := s.Filename
		if id == "" {
			id = s.RiotID
		}
		doc, err := w.src.Get(ctx, id)
		if err != nil {
			// not marked seen, so the next poll retries
			w.log.Warn("failed to load analysis", "id", id, "error", err)
			continue
		}
		w.seen.AddString(key)
		found++

		built := w.warm.Warm(doc, id)
		w.log.Info("new analysis", "riot_id", s.RiotID, "matches", len(doc.Analysis.DetailedMatches), "engines_built", built)

		if w.notify != nil {
			if err := w.notify.NotifyAnalysis(ctx, s, len(doc.Analysis.DetailedMatches)); err != nil {
				w.log.Warn("failed to send notification", "riot_id", s.RiotID, "error", err)
			}
		}
	}
	return found, nil
}

// Run polls until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) {
	w.log.Info("watcher started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.Poll(ctx); err != nil && ctx.Err() == nil {
			w.log.Warn("poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
		}
	}
}
