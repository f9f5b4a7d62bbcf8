package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"riftreplay/internal/timeline"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, s *Server, path string) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg serverMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestStream_SeekAndPlay(t *testing.T) {
	s := newTestServer(newMemSource(t))
	conn := dial(t, s, "/ws/analyses/Fox%23NA1/matches/NA1_42")

	hello := read(t, conn)
	assert.Equal(t, msgHello, hello.Type)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, 10.0, hello.Duration)
	require.Len(t, hello.Roster, 2)
	assert.Equal(t, rosterEntry{ID: "p-zed", Name: "Blade#NA1", Champion: "Zed", Team: timeline.TeamRed}, hello.Roster[1])

	first := read(t, conn)
	require.Equal(t, msgFrame, first.Type)
	assert.Equal(t, 0.0, first.Frame.T)
	assert.Equal(t, hello.Session, first.Session)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: msgSeek, T: 9.9}))
	seek := read(t, conn)
	assert.InDelta(t, 9.9, seek.Frame.T, 1e-9)
	assert.False(t, seek.Playing)

	// 10ms ticks at 600x advance a minute per tick
	require.NoError(t, conn.WriteJSON(clientMessage{Type: msgPlay, Speed: 600}))
	for {
		msg := read(t, conn)
		if msg.Type == msgEnded {
			assert.False(t, msg.Playing)
			break
		}
		require.Equal(t, msgFrame, msg.Type)
		assert.LessOrEqual(t, msg.Frame.T, 10.0)
	}
}

func TestStream_UnknownMessage(t *testing.T) {
	s := newTestServer(newMemSource(t))
	conn := dial(t, s, "/ws/analyses/Fox%23NA1/matches/NA1_42")
	read(t, conn)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "rewind"}))
	msg := read(t, conn)
	assert.Equal(t, msgError, msg.Type)
	assert.Contains(t, msg.Error, "rewind")
}

func TestStream_UnknownMatch(t *testing.T) {
	s := newTestServer(newMemSource(t))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/analyses/Fox%23NA1/matches/missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestPlayback(t *testing.T) {
	pb := &playback{engine: testEngine(t, "m"), speed: 1}

	assert.True(t, pb.apply(clientMessage{Type: msgSeek, T: -3}))
	assert.Equal(t, 0.0, pb.t)

	assert.True(t, pb.apply(clientMessage{Type: msgPlay, Speed: 60}))
	assert.True(t, pb.playing)
	assert.False(t, pb.advance(500*time.Millisecond))
	assert.InDelta(t, 0.5, pb.t, 1e-9)
	assert.True(t, pb.advance(time.Second))
	assert.Equal(t, 1.0, pb.t)
	assert.False(t, pb.playing)

	// play after the end restarts
	pb.apply(clientMessage{Type: msgPlay})
	assert.Equal(t, 0.0, pb.t)
	assert.Equal(t, 60.0, pb.speed)

	assert.False(t, pb.apply(clientMessage{Type: "jump"}))
}
