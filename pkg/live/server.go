// Package live serves the graph view to a browser over WebSocket. The
// browser is a thin retained-mode canvas: it receives the drawable set once
// per snapshot, geometry every frame, and sends back pointer events it has
// hit-tested against its own drawables. One view instance lives per
// connection and dies with it.
package live

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kindred-app/graphview/pkg/graph"
	"github.com/kindred-app/graphview/pkg/graphview"
	"github.com/kindred-app/graphview/pkg/scene"
)

// SnapshotFunc supplies the current data snapshot. Called once per
// connection and again on every Reload.
type SnapshotFunc func() (*graph.Snapshot, error)

// Server upgrades connections and runs one session (one view, one frame
// loop) per client.
type Server struct {
	upgrader websocket.Upgrader
	source   SnapshotFunc
	opts     graphview.Options
	interval time.Duration

	mu       sync.RWMutex
	sessions map[*session]bool
}

// NewServer creates a live server. opts may be nil; the frame interval
// defaults to ~60fps when zero.
func NewServer(source SnapshotFunc, opts *graphview.Options, interval time.Duration) *Server {
	o := graphview.Options{}
	if opts != nil {
		o = *opts
	}
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		source:   source,
		opts:     o,
		interval: interval,
		sessions: make(map[*session]bool),
	}
}

// HandleWebSocket upgrades the request and starts a session. The client
// passes its viewport as width/height query parameters.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	width := queryFloat(r, "width", 1280)
	height := queryFloat(r, "height", 720)

	snap, err := s.source()
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to load snapshot: %v", err), http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] failed to upgrade connection: %v", err)
		return
	}

	sess := &session{
		server:    s,
		conn:      conn,
		width:     width,
		height:    height,
		sendChan:  make(chan []byte, 256),
		closeChan: make(chan struct{}),
	}
	sess.rebuild(snap)

	s.mu.Lock()
	s.sessions[sess] = true
	s.mu.Unlock()

	go sess.writer()
	go sess.reader()
	sess.loop = graphview.NewLoop(s.interval, sess.frame)
	sess.loop.Start()
}

// Reload rebuilds every session's view from a fresh snapshot, e.g. after the
// data file changed. Positions are not preserved across the rebuild.
func (s *Server) Reload() error {
	snap, err := s.source()
	if err != nil {
		return fmt.Errorf("failed to reload snapshot: %w", err)
	}
	s.mu.RLock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()
	for _, sess := range sessions {
		sess.mu.Lock()
		sess.rebuild(snap)
		sess.mu.Unlock()
	}
	return nil
}

// SessionCount returns the number of connected clients.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close tears down every session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.close()
	}
}

func (s *Server) remove(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
}

// session is one connected client. The reader goroutine and the frame loop
// both touch the view; the mutex makes sure a pointer event and a tick are
// each processed to completion before the other runs, which is the ordering
// the simulation assumes.
type session struct {
	server *Server
	conn   *websocket.Conn

	width, height float64

	mu   sync.Mutex
	view *graphview.View
	sc   *scene.MemoryScene

	loop      *graphview.Loop
	sendChan  chan []byte
	closeChan chan struct{}
	closeOnce sync.Once
}

// rebuild replaces the session's view with one built from snap and queues
// the init message. Caller holds s.mu (or has exclusive access).
func (s *session) rebuild(snap *graph.Snapshot) {
	if s.view != nil {
		s.view.Dispose()
	}
	s.sc = scene.NewMemoryScene()
	opts := s.server.opts
	opts.OnNavigate = s.navigate
	s.view = graphview.New(snap, s.sc, s.width, s.height, &opts)
	s.send(s.encodeInit(snap))
}

func (s *session) encodeInit(snap *graph.Snapshot) []byte {
	theme := s.view.Theme()
	msg := InitMessage{
		Type:   MsgInit,
		Width:  s.width,
		Height: s.height,
		Theme: ThemeInfo{
			Background: string(theme.Background),
			Foreground: string(theme.Foreground),
		},
	}
	for _, n := range s.sc.Nodes() {
		msg.Nodes = append(msg.Nodes, NodeInfo{ID: n.ID, Label: n.Label})
	}
	edges := s.sc.Edges()
	for i, ed := range s.view.Engine().Edges() {
		msg.Edges = append(msg.Edges, EdgeInfo{
			From:  ed.From.ID,
			To:    ed.To.ID,
			Color: string(edges[i].Color),
		})
	}
	data, _ := json.Marshal(msg)
	return data
}

// frame advances the simulation one tick and queues the resulting geometry.
func (s *session) frame() {
	s.mu.Lock()
	s.view.Step()
	msg := FrameMessage{Type: MsgFrame}
	for _, n := range s.sc.Nodes() {
		msg.Nodes = append(msg.Nodes, NodePos{
			X: n.X, Y: n.Y,
			Emphasis: n.Emphasis,
			Grabbing: n.Grabbing,
		})
	}
	for _, e := range s.sc.Edges() {
		msg.Edges = append(msg.Edges, EdgeLine{X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2})
	}
	s.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.send(data)
}

func (s *session) navigate(id string) {
	data, _ := json.Marshal(NavigateMessage{Type: MsgNavigate, ID: id})
	s.send(data)
}

// send queues a message without blocking the simulation; a slow client
// drops frames rather than stalling the loop.
func (s *session) send(data []byte) {
	select {
	case s.sendChan <- data:
	default:
	}
}

func (s *session) writer() {
	for {
		select {
		case <-s.closeChan:
			return
		case data := <-s.sendChan:
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *session) reader() {
	defer s.close()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg PointerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[live] bad pointer message: %v", err)
			continue
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg PointerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.Type {
	case MsgPointerDown:
		s.view.PointerDown(msg.ID, msg.X, msg.Y)
	case MsgPointerMove:
		s.view.PointerMove(msg.X, msg.Y)
	case MsgPointerUp:
		s.view.PointerUp(msg.X, msg.Y)
	case MsgPointerCancel:
		s.view.PointerCancel()
	case MsgPointerOver:
		s.view.PointerOver(msg.ID)
	case MsgPointerOut:
		s.view.PointerOut(msg.ID)
	}
}

// close tears the session down exactly once: stop the frame loop, dispose
// the view and its drawables, drop the connection.
func (s *session) close() {
	s.closeOnce.Do(func() {
		if s.loop != nil {
			s.loop.Stop()
		}
		s.mu.Lock()
		if s.view != nil {
			s.view.Dispose()
		}
		s.mu.Unlock()
		close(s.closeChan)
		s.conn.Close()
		s.server.remove(s)
	})
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
