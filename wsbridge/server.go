// Package wsbridge streams a Manager's computed styles to websocket clients
// and accepts trigger messages from them, so a browser or remote renderer can
// act as the host.
package wsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/phanxgames/stylefx"
)

// writeWait bounds a single frame write to a slow client.
const writeWait = 200 * time.Millisecond

// Frame is the message sent to clients after every step.
type Frame struct {
	Frame  uint64           `json:"frame"`
	Styles stylefx.StyleMap `json:"styles"`
}

// Control is a trigger message sent by a client.
//
//	{"type": "click", "id": "card"}
//	{"type": "hoverEnter", "id": "card"}
//	{"type": "scroll", "value": 240}
//	{"type": "load", "value": 100}
//	{"type": "distance", "id": "hero", "value": 64}
//	{"type": "run", "id": "click-0", "action": "reverse"}
type Control struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Action string  `json:"action,omitempty"`
}

// Server owns a Manager and serializes every access to it.
type Server struct {
	mu      sync.Mutex
	mgr     *stylefx.Manager
	log     zerolog.Logger
	frame   uint64
	start   time.Time
	clients map[*websocket.Conn]bool

	upgrader websocket.Upgrader
}

// New returns a Server driving m.
func New(m *stylefx.Manager, log zerolog.Logger) *Server {
	return &Server{
		mgr:     m,
		log:     log.With().Str("component", "wsbridge").Str("manager", m.ID()).Logger(),
		start:   time.Now(),
		clients: map[*websocket.Conn]bool{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Step advances the manager by dt seconds and broadcasts the new styles.
func (s *Server) Step(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.Update(dt)
	s.frame++
	b, err := json.Marshal(Frame{Frame: s.frame, Styles: s.mgr.Styles()})
	if err != nil {
		s.log.Error().Err(err).Msg("encode frame")
		return
	}
	for c := range s.clients {
		s.write(c, b)
	}
}

// RunLoop steps the manager fps times per second until ctx is cancelled.
func (s *Server) RunLoop(ctx context.Context, fps int) error {
	fps = max(1, fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	dt := float32(1.0 / float64(fps))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step(dt)
		}
	}
}

// HandleStyles upgrades to a websocket, sends the current styles and then
// streams a Frame per step. Incoming messages are decoded as Control.
func (s *Server) HandleStyles(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("upgrade")
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	if b, err := json.Marshal(Frame{Frame: s.frame, Styles: s.mgr.Styles()}); err == nil {
		s.write(conn, b)
	}
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info().Str("remote", r.RemoteAddr).Int("clients", n).Msg("client connected")

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg Control
			if err := json.Unmarshal(data, &msg); err != nil {
				s.log.Debug().Err(err).Msg("decode control")
				continue
			}
			if err := s.Apply(msg); err != nil {
				s.log.Warn().Err(err).Str("type", msg.Type).Msg("control rejected")
			}
		}
	}()
}

// Apply forwards a control message to the manager.
func (s *Server) Apply(msg Control) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.Type {
	case "click":
		s.mgr.Click(msg.ID)
	case "hoverEnter":
		s.mgr.HoverEnter(msg.ID)
	case "hoverLeave":
		s.mgr.HoverLeave(msg.ID)
	case "scroll":
		s.mgr.Scroll(msg.Value)
	case "load":
		s.mgr.SetLoadProgress(msg.Value)
	case "distance":
		s.mgr.CheckDistance(msg.ID, msg.Value)
	case "run":
		s.mgr.Run(msg.ID, stylefx.Action(msg.Action))
	default:
		return fmt.Errorf("unknown control type %q", msg.Type)
	}
	return nil
}

// HandleHealth reports frame count, uptime and the live effect as JSON.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := ""
	if e := s.mgr.Active(); e != nil {
		active = e.ID
	}
	resp := map[string]any{
		"manager":  s.mgr.ID(),
		"frame":    s.frame,
		"uptime_s": time.Since(s.start).Seconds(),
		"clients":  len(s.clients),
		"active":   active,
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

// write must be called with s.mu held.
func (s *Server) write(c *websocket.Conn, b []byte) {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
		s.log.Debug().Err(err).Msg("write frame")
	}
}
