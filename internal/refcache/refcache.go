package refcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"riftreplay/internal/ddragon"
	"riftreplay/internal/logger"
)

// ErrNotFound is returned when no snapshot is stored for a version
var ErrNotFound = errors.New("snapshot not cached")

// Config selects the backing database. A Turso URL wins over the local path.
type Config struct {
	Path       string // local SQLite file
	TursoURL   string // libsql://...
	TursoToken string
}

// Store persists reference snapshots keyed by version, with an in-memory
// layer in front of the database
type Store struct {
	db     *sql.DB
	remote bool
	log    *slog.Logger

	mu     sync.RWMutex
	memory map[string]*ddragon.Snapshot
}

// Open connects to Turso when configured, else opens (and creates) the
// local SQLite file
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var (
		db     *sql.DB
		err    error
		remote bool
	)
	switch {
	case cfg.TursoURL != "":
		connStr := cfg.TursoURL
		if cfg.TursoToken != "" {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = fmt.Sprintf("%s%sauthToken=%s", connStr, sep, cfg.TursoToken)
		}
		db, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Turso: %w", err)
		}
		remote = true
	default:
		path := cfg.Path
		if path == "" {
			path = "refcache.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// sqlite allows one writer
		db.SetMaxOpenConns(1)
	}

	pctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping snapshot cache: %w", err)
	}

	s := &Store{
		db:     db,
		remote: remote,
		log:    logger.With("refcache"),
		memory: make(map[string]*ddragon.Snapshot),
	}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.log.Info("snapshot cache ready", "remote", remote)
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			version TEXT NOT NULL,
			language TEXT NOT NULL,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (version, language)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func memKey(version, language string) string {
	return version + "/" + language
}

// Get returns the cached snapshot for version and language
func (s *Store) Get(ctx context.Context, version, language string) (*ddragon.Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.memory[memKey(version, language)]
	s.mu.RUnlock()
	if ok {
		return snap, nil
	}

	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE version = ? AND language = ?",
		version, language,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s.decode(payload)
}

// Latest returns the most recently fetched snapshot for language
func (s *Store) Latest(ctx context.Context, language string) (*ddragon.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE language = ? ORDER BY fetched_at DESC LIMIT 1",
		language,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s.decode(payload)
}

func (s *Store) decode(payload string) (*ddragon.Snapshot, error) {
	var snap ddragon.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	snap.Index()

	s.mu.Lock()
	s.memory[memKey(snap.Version, snap.Language)] = &snap
	s.mu.Unlock()
	return &snap, nil
}

// Put stores a snapshot, replacing any previous one for the same version.
// Empty snapshots are not cached so a later load can retry.
func (s *Store) Put(ctx context.Context, snap *ddragon.Snapshot) error {
	if snap.Empty() {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (version, language, payload, fetched_at)
		VALUES (?, ?, ?, ?)
	`, snap.Version, snap.Language, string(payload), snap.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.mu.Lock()
	s.memory[memKey(snap.Version, snap.Language)] = snap
	s.mu.Unlock()
	return nil
}

// Versions lists cached versions for language, newest fetch first
func (s *Store) Versions(ctx context.Context, language string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT version FROM snapshots WHERE language = ? ORDER BY fetched_at DESC", language)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// ClearMemory drops the in-memory layer
func (s *Store) ClearMemory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = make(map[string]*ddragon.Snapshot)
	s.log.Debug("memory cache cleared")
}

// Loader is what Resolve needs from ddragon.Loader
type Loader interface {
	ResolveVersion(ctx context.Context) string
	LoadVersion(ctx context.Context, version string) (*ddragon.Snapshot, error)
}

// Resolve returns a snapshot for the version the loader resolves, fetching
// and caching it on a miss. Only complete snapshots are cached. When
// fetching fails entirely the newest cached snapshot is used; failing that,
// the empty fetched one.
func (s *Store) Resolve(ctx context.Context, l Loader, language string) (*ddragon.Snapshot, error) {
	version := l.ResolveVersion(ctx)
	if snap, err := s.Get(ctx, version, language); err == nil {
		return snap, nil
	} else if !errors.Is(err, ErrNotFound) {
		s.log.Warn("snapshot cache read failed", "version", version, "error", err)
	}

	snap, loadErr := l.LoadVersion(ctx, version)
	if !snap.Empty() {
		if loadErr != nil {
			return snap, loadErr
		}
		if err := s.Put(ctx, snap); err != nil {
			s.log.Warn("failed to cache snapshot", "version", snap.Version, "error", err)
		}
		return snap, loadErr
	}

	if cached, err := s.Latest(ctx, language); err == nil {
		s.log.Warn("reference fetch failed, using cached snapshot", "version", cached.Version, "error", loadErr)
		return cached, nil
	}
	return snap, loadErr
}
