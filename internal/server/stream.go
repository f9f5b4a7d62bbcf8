package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"riftreplay/internal/timeline"
)

// Client message types
const (
	msgSeek  = "seek"
	msgPlay  = "play"
	msgPause = "pause"
)

// Server message types
const (
	msgHello = "hello"
	msgFrame = "frame"
	msgEnded = "ended"
	msgError = "error"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// the presentation layer may be served from anywhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is what the viewer sends: seek to t minutes, play at a
// speed multiplier (1 = real time), or pause
type clientMessage struct {
	Type  string  `json:"type"`
	T     float64 `json:"t"`
	Speed float64 `json:"speed"`
}

// rosterEntry labels one combatant in the hello message
type rosterEntry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Champion string        `json:"champion"`
	Team     timeline.Team `json:"team"`
}

type serverMessage struct {
	Type     string          `json:"type"`
	Session  string          `json:"session"`
	Duration float64         `json:"duration,omitempty"`
	Roster   []rosterEntry   `json:"roster,omitempty"`
	Playing  bool            `json:"playing"`
	Speed    float64         `json:"speed,omitempty"`
	Frame    *timeline.Frame `json:"frame,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// playback is one viewer's cursor over a match
type playback struct {
	id      string
	engine  *timeline.Engine
	t       float64
	speed   float64
	playing bool
}

// advance moves the cursor by one tick of wall time. It reports whether the
// end of the match was reached.
func (p *playback) advance(tick time.Duration) bool {
	p.t += p.speed * tick.Minutes()
	if p.t >= p.engine.Duration() {
		p.t = p.engine.Duration()
		p.playing = false
		return true
	}
	return false
}

// apply updates the cursor for a client message. It returns false for an
// unknown message type.
func (p *playback) apply(msg clientMessage) bool {
	switch msg.Type {
	case msgSeek:
		p.t = clampMinutes(msg.T, p.engine.Duration())
	case msgPlay:
		if msg.Speed > 0 {
			p.speed = msg.Speed
		}
		if p.t >= p.engine.Duration() {
			p.t = 0
		}
		p.playing = true
	case msgPause:
		p.playing = false
	default:
		return false
	}
	return true
}

func clampMinutes(t, duration float64) float64 {
	if t < 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}

func (s *Server) handleStream(c *gin.Context) {
	eng, ok := s.engine(c)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	pb := &playback{id: uuid.NewString(), engine: eng, speed: 1}
	s.metrics.sessions.Inc()
	defer s.metrics.sessions.Dec()

	log := s.log.With("session", pb.id, "match", eng.ID())
	log.Info("stream opened")
	s.stream(c.Request.Context(), conn, pb)
	log.Info("stream closed")
}

// stream owns all writes to conn; a separate goroutine reads client messages
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, pb *playback) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	incoming := make(chan clientMessage)
	go func() {
		defer cancel()
		conn.SetReadLimit(4096)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				msg = clientMessage{Type: "invalid"}
			}
			select {
			case incoming <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	send := func(msg serverMessage) bool {
		msg.Session = pb.id
		msg.Playing = pb.playing
		msg.Speed = pb.speed
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg) == nil
	}
	sendFrame := func() bool {
		f := pb.engine.Frame(pb.t, s.reference())
		return send(serverMessage{Type: msgFrame, Frame: &f})
	}

	hello := serverMessage{Type: msgHello, Duration: pb.engine.Duration()}
	for _, c := range pb.engine.Combatants() {
		hello.Roster = append(hello.Roster, rosterEntry{ID: c.ID, Name: c.Name, Champion: c.ChampionName, Team: c.Team})
	}
	if !send(hello) || !sendFrame() {
		return
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-incoming:
			if !pb.apply(msg) {
				if !send(serverMessage{Type: msgError, Error: "unknown message type " + msg.Type}) {
					return
				}
				continue
			}
			if !sendFrame() {
				return
			}
		case <-ticker.C:
			if !pb.playing {
				continue
			}
			ended := pb.advance(s.tick)
			if !sendFrame() {
				return
			}
			if ended && !send(serverMessage{Type: msgEnded}) {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
