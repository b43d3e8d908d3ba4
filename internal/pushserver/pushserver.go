// Package pushserver implements the push-server protocol of spec.md §6: a
// persistent connection per client, exchanging JSON-encoded array frames
// rather than a structured RPC envelope, modeled on the original's
// simple_websockets usage and reimplemented here over gorilla/websocket.
package pushserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jxls/luabundle/internal/sourcemap"
)

// ErrorLog is a client-reported runtime error, with bundle-relative line
// numbers still needing translation via the source map.
type ErrorLog struct {
	MessageLines    []int  `json:"message_lines"`
	StackTraceLines []int  `json:"stack_trace_lines"`
	MessageContent  string `json:"message_content"`
}

// client is one connected push-server peer.
type client struct {
	name string
	conn *websocket.Conn
}

// Server holds the client registry and broadcasts "exec" frames to every
// connected client on rebuild. A single mutex guards registry mutation and
// broadcast iteration; no lock is held across the blocking websocket writes
// themselves (spec.md §5).
type Server struct {
	upgrader websocket.Upgrader
	log      *logrus.Entry

	mu        sync.Mutex
	clients   map[*client]struct{}
	sourceMap sourcemap.Map

	onError func(name string, content string, locations []sourcemap.Location)
}

// New constructs a push server. onError, if non-nil, is invoked whenever a
// client reports a runtime error, with the report's message_lines already
// translated against the most recently set source map. The report's
// stack_trace_lines are not translated and are not passed to onError.
func New(log *logrus.Entry, onError func(name string, content string, locations []sourcemap.Location)) *Server {
	return &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log,
		clients:  make(map[*client]struct{}),
		onError:  onError,
	}
}

// SetSourceMap updates the map used to translate future client error
// reports. Callers set this after every successful build.
func (s *Server) SetSourceMap(m sourcemap.Map) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceMap = m
}

// ServeHTTP upgrades the request to a websocket connection and drains
// client frames until disconnect.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("push-server: upgrade failed")
		return
	}

	c := &client{conn: conn}
	s.addClient(c)
	defer s.removeClient(c)
	defer conn.Close()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleFrame(c, payload)
	}
}

func (s *Server) handleFrame(c *client, payload []byte) {
	var frame []json.RawMessage
	if err := json.Unmarshal(payload, &frame); err != nil || len(frame) == 0 {
		s.log.Warn("push-server: malformed frame")
		return
	}

	var tag string
	if err := json.Unmarshal(frame[0], &tag); err != nil {
		s.log.Warn("push-server: frame missing tag")
		return
	}

	switch tag {
	case "connected":
		var name string
		if len(frame) > 1 {
			json.Unmarshal(frame[1], &name)
		}
		c.name = name
		s.log.WithField("client", name).Info("push-server: client connected")

	case "error":
		if len(frame) < 2 {
			return
		}
		var encoded string
		if err := json.Unmarshal(frame[1], &encoded); err != nil {
			return
		}
		var errLog ErrorLog
		if err := json.Unmarshal([]byte(encoded), &errLog); err != nil {
			s.log.WithError(err).Warn("push-server: malformed error payload")
			return
		}
		if s.onError != nil {
			s.onError(c.name, errLog.MessageContent, s.translateLines(errLog.MessageLines))
		}

	default:
		s.log.WithField("tag", tag).Warn("push-server: unrecognized frame tag")
	}
}

// Broadcast sends an "exec" frame carrying bundleText to every connected
// client, dropping clients whose write fails.
func (s *Server) Broadcast(bundleText string) {
	frame, err := json.Marshal([]interface{}{"exec", bundleText})
	if err != nil {
		s.log.WithError(err).Error("push-server: encoding exec frame")
		return
	}

	for _, c := range s.snapshotClients() {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.log.WithError(err).WithField("client", c.name).Warn("push-server: broadcast failed")
			s.removeClient(c)
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

// translateLines maps bundle-relative line numbers back to source
// locations via the source map (spec.md §6: "Line numbers refer to the
// emitted bundle and are translated via 4.G before display").
func (s *Server) translateLines(lines []int) []sourcemap.Location {
	s.mu.Lock()
	m := s.sourceMap
	s.mu.Unlock()

	out := make([]sourcemap.Location, 0, len(lines))
	for _, line := range lines {
		if loc, ok := m.Lookup(line); ok {
			out = append(out, loc)
		}
	}
	return out
}

func (s *Server) snapshotClients() []*client {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		out = append(out, c)
	}
	return out
}
