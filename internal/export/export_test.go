package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"riftreplay/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *timeline.Engine {
	t.Helper()
	m := timeline.Match{
		ID:              "NA1_7",
		DurationSeconds: 150, // rounds up to 3 minutes
		Combatants: []timeline.Combatant{
			{ID: "a", Team: timeline.TeamBlue, ChampionName: "Ahri", GoldEarned: 3000,
				Movement: []timeline.PositionSample{{T: 0, X: 500, Y: 500}, {T: 2, X: 7000, Y: 7000}}},
			{ID: "b", Team: timeline.TeamRed, ChampionName: "Zed", GoldEarned: 2500},
		},
		Events: []timeline.MatchEvent{
			{Kind: timeline.EventKill, TimestampMs: 60000, KillerRef: "a", VictimRef: "b", Position: &timeline.Point{X: 6000, Y: 6000}},
		},
	}
	e, err := timeline.New(m)
	require.NoError(t, err)
	return e
}

func TestFrameTimes(t *testing.T) {
	tests := []struct {
		duration, step float64
		want           []float64
	}{
		{3, 1, []float64{0, 1, 2, 3}},
		{3, 0.75, []float64{0, 0.75, 1.5, 2.25, 3}},
		{2, 0.8, []float64{0, 0.8, 1.6, 2}},
		{1, 0, []float64{0, 0.5, 1}},
		{0, 1, []float64{0}},
	}
	for _, tt := range tests {
		got := FrameTimes(tt.duration, tt.step)
		require.Len(t, got, len(tt.want), "duration %v step %v", tt.duration, tt.step)
		for i := range got {
			assert.InDelta(t, tt.want[i], got[i], 1e-9)
		}
	}
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write(&buf, testEngine(t), Options{Step: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 5, bytes.Count(buf.Bytes(), []byte("\n")), "header plus one line per frame")

	h, frames, err := Read(&buf)
	require.NoError(t, err)
	// Zed has no movement samples
	assert.Equal(t, Header{MatchID: "NA1_7", Duration: 3, Step: 1, Frames: 4, Drops: 1}, h)
	require.Len(t, frames, 4)
	assert.Equal(t, 2.0, frames[2].T)
	assert.Equal(t, "Ahri", frames[0].Combatants[0].Champion.Name)
	require.Len(t, frames[1].Feed, 1)
	assert.Equal(t, timeline.EventKill, frames[1].Feed[0].Event.Kind)
}

func TestWriteFile_Gzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "NA1_7.jsonl.gz")

	n, err := WriteFile(path, testEngine(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, 7, n) // 0..3 in half minutes

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	h, frames, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, h.Step)
	assert.Len(t, frames, 7)
}

func TestRead_Truncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, testEngine(t), Options{Step: 1})
	require.NoError(t, err)

	lines := bytes.SplitAfter(buf.Bytes(), []byte("\n"))
	short := bytes.Join(lines[:3], nil)
	_, frames, err := Read(bytes.NewReader(short))
	assert.ErrorContains(t, err, "truncated")
	assert.Len(t, frames, 2)
}
