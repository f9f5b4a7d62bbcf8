package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads analyses saved as league_analysis_*.json files
type FileSource struct {
	dir string
}

// NewFileSource returns a source over dir
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (f *FileSource) files() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, filenamePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", f.dir, err)
	}
	return matches, nil
}

func readDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// List returns one summary per file, newest first
func (f *FileSource) List(ctx context.Context) ([]Summary, error) {
	paths, err := f.files()
	if err != nil {
		return nil, err
	}

	list := make([]Summary, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		doc, err := readDocument(path)
		if err != nil {
			// unreadable files are skipped, not fatal for the listing
			continue
		}
		riotID := doc.RiotID
		if riotID == "" {
			riotID = strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), filenamePrefix), ".json")
		}
		list = append(list, Summary{
			RiotID:      riotID,
			Filename:    filepath.Base(path),
			Created:     float64(info.ModTime().Unix()),
			PrimaryRole: doc.Analysis.PrimaryRole,
			MatchCount:  doc.MatchCountRequested,
		})
	}
	sortByCreated(list)
	return list, nil
}

// Get resolves id against file names by normalized key
func (f *FileSource) Get(ctx context.Context, id string) (*Document, error) {
	paths, err := f.files()
	if err != nil {
		return nil, err
	}
	key := Key(id)
	for _, path := range paths {
		if Key(filepath.Base(path)) == key {
			return readDocument(path)
		}
	}
	return nil, ErrNotFound
}

// Put writes an analysis under its virtual filename
func (f *FileSource) Put(doc *Document) (string, error) {
	if doc.RiotID == "" {
		return "", fmt.Errorf("analysis has no riot id")
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", f.dir, err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}
	path := filepath.Join(f.dir, Filename(doc.RiotID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
