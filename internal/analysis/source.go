package analysis

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned when an analysis or match does not exist
var ErrNotFound = errors.New("analysis not found")

// Source reads analyses produced by the backend
type Source interface {
	List(ctx context.Context) ([]Summary, error)
	// Get accepts a Riot ID ("Name#TAG") or a virtual filename
	// ("league_analysis_Name_TAG.json")
	Get(ctx context.Context, id string) (*Document, error)
}

// Analyzer triggers new analyses. Only the backend can run them.
type Analyzer interface {
	Analyze(ctx context.Context, riotID string, matchCount int) error
}

const filenamePrefix = "league_analysis_"

// Filename returns the virtual filename the backend lists a Riot ID under
func Filename(riotID string) string {
	return filenamePrefix + strings.ReplaceAll(riotID, "#", "_") + ".json"
}

// Key reduces an id or filename to a comparable form: prefix and extension
// stripped, case folded, spaces removed and the tag separator unified.
func Key(id string) string {
	core := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(id), "/"))
	if len(core) >= len(filenamePrefix) && strings.EqualFold(core[:len(filenamePrefix)], filenamePrefix) {
		core = core[len(filenamePrefix):]
	}
	if strings.HasSuffix(strings.ToLower(core), ".json") {
		core = core[:len(core)-len(".json")]
	}
	core = strings.ToLower(core)
	core = strings.ReplaceAll(core, " ", "")
	return strings.ReplaceAll(core, "#", "_")
}

// Search returns the analyses whose Riot ID contains the query, best matches
// first: exact key, then prefix, then substring.
func Search(ctx context.Context, src Source, query string) ([]Summary, error) {
	all, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	q := Key(query)
	if q == "" {
		return all, nil
	}

	type hit struct {
		s    Summary
		rank int
	}
	var hits []hit
	for _, s := range all {
		k := Key(s.RiotID)
		switch {
		case k == q:
			hits = append(hits, hit{s, 0})
		case strings.HasPrefix(k, q):
			hits = append(hits, hit{s, 1})
		case strings.Contains(k, q):
			hits = append(hits, hit{s, 2})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	out := make([]Summary, len(hits))
	for i, h := range hits {
		out[i] = h.s
	}
	return out, nil
}

// GetMatch loads one detailed match of an analysis
func GetMatch(ctx context.Context, src Source, id, matchID string) (*MatchData, error) {
	doc, err := src.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	md, ok := doc.Match(matchID)
	if !ok {
		return nil, ErrNotFound
	}
	return md, nil
}

func sortByCreated(list []Summary) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Created > list[j].Created })
}
