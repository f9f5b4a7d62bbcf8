package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Faker#KR1", "faker_kr1"},
		{"league_analysis_Faker_KR1.json", "faker_kr1"},
		{"LEAGUE_ANALYSIS_Faker_KR1.JSON", "faker_kr1"},
		{" Hide on bush#KR1/ ", "hideonbush_kr1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Key(tt.in); got != tt.want {
			t.Errorf("Key(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	assert.Equal(t, "league_analysis_Faker_KR1.json", Filename("Faker#KR1"))
}

type memSource struct {
	list []Summary
	docs map[string]*Document
}

func (m *memSource) List(context.Context) ([]Summary, error) { return m.list, nil }

func (m *memSource) Get(_ context.Context, id string) (*Document, error) {
	for k, d := range m.docs {
		if Key(k) == Key(id) {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func TestSearch(t *testing.T) {
	src := &memSource{list: []Summary{
		{RiotID: "Bestfaker#EUW"},
		{RiotID: "Faker#KR1"},
		{RiotID: "Fakerfan#NA1"},
		{RiotID: "Doublelift#NA1"},
	}}

	got, err := Search(context.Background(), src, "faker#kr1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Faker#KR1", got[0].RiotID)

	got, err = Search(context.Background(), src, "Faker")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Faker#KR1", got[0].RiotID, "prefix matches rank before substrings")
	assert.Equal(t, "Bestfaker#EUW", got[2].RiotID)

	got, _ = Search(context.Background(), src, "")
	assert.Len(t, got, 4)
}

func TestGetMatch(t *testing.T) {
	src := &memSource{docs: map[string]*Document{
		"Faker#KR1": {RiotID: "Faker#KR1", Analysis: Body{DetailedMatches: []MatchData{{MatchID: "KR_1"}}}},
	}}

	md, err := GetMatch(context.Background(), src, "league_analysis_Faker_KR1.json", "KR_1")
	require.NoError(t, err)
	assert.Equal(t, "KR_1", md.MatchID)

	_, err = GetMatch(context.Background(), src, "Faker#KR1", "KR_2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetMatch(context.Background(), src, "Nobody#NA1", "KR_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPSource(t *testing.T) {
	var analyzed AnalyzeRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyses/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/analyses/":
			json.NewEncoder(w).Encode([]Summary{
				{RiotID: "Old#NA1", Created: 1},
				{RiotID: "New#NA1", Created: 2},
			})
		case "/api/analyses/New#NA1/":
			json.NewEncoder(w).Encode(Document{RiotID: "New#NA1"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Analysis not found in DB"})
		}
	})
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewDecoder(r.Body).Decode(&analyzed)
		if analyzed.RiotID == "Broken#NA1" {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "pipeline failed"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	src := NewHTTPSource(ts.URL+"/", 0)
	ctx := context.Background()

	list, err := src.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New#NA1", list[0].RiotID, "newest first")

	doc, err := src.Get(ctx, "New#NA1")
	require.NoError(t, err)
	assert.Equal(t, "New#NA1", doc.RiotID)

	_, err = src.Get(ctx, "Missing#NA1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, src.Analyze(ctx, "New#NA1", 0))
	assert.Equal(t, 20, analyzed.MatchCount)
	assert.True(t, analyzed.UseTimeline)

	err = src.Analyze(ctx, "Broken#NA1", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline failed")

	assert.Error(t, src.Analyze(ctx, "", 5))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(dir)

	md := decodeMatch(t)
	path, err := src.Put(&Document{RiotID: "Fox#NA1", MatchCountRequested: 1, Analysis: Body{DetailedMatches: []MatchData{md}}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "league_analysis_Fox_NA1.json"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "league_analysis_Bad_NA1.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))

	list, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Fox#NA1", list[0].RiotID)

	doc, err := src.Get(context.Background(), "fox#na1")
	require.NoError(t, err)
	got, ok := doc.Match("NA1_500")
	require.True(t, ok)
	assert.Len(t, got.Participants, 3)

	_, err = src.Get(context.Background(), "Nobody#NA1")
	assert.ErrorIs(t, err, ErrNotFound)
}
