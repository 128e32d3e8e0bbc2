package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kindred-app/graphview/pkg/graph"
)

func testSnapshot() (*graph.Snapshot, error) {
	return &graph.Snapshot{
		Nodes: []graph.Node{
			{ID: "ada", Label: "Ada"},
			{ID: "grace", Label: "Grace"},
		},
		Edges: []graph.Edge{
			{From: "ada", To: "grace", Category: "colleague"},
			{From: "ada", To: "nobody"},
		},
	}, nil
}

func startTestServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()
	server := NewServer(testSnapshot, nil, 5*time.Millisecond)
	mux := http.NewServeMux()
	mux.HandleFunc("/live", server.HandleWebSocket)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live?width=800&height=600"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return server, conn
}

// readUntil reads messages until one with the wanted type tag arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q message: %v", msgType, err)
		}
		var envelope struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			t.Fatalf("bad message: %v", err)
		}
		if envelope.Type == msgType {
			return data
		}
	}
}

func TestServer_InitMessage(t *testing.T) {
	_, conn := startTestServer(t)

	var init InitMessage
	if err := json.Unmarshal(readUntil(t, conn, MsgInit), &init); err != nil {
		t.Fatal(err)
	}
	if len(init.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(init.Nodes))
	}
	if init.Nodes[0].ID != "ada" || init.Nodes[1].ID != "grace" {
		t.Errorf("nodes out of order: %+v", init.Nodes)
	}
	// The dangling edge gets no drawable.
	if len(init.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(init.Edges))
	}
	if init.Theme.Background == "" || init.Theme.Foreground == "" {
		t.Errorf("theme not resolved: %+v", init.Theme)
	}
	if init.Width != 800 || init.Height != 600 {
		t.Errorf("viewport not echoed: %vx%v", init.Width, init.Height)
	}
}

func TestServer_StreamsFrames(t *testing.T) {
	_, conn := startTestServer(t)
	readUntil(t, conn, MsgInit)

	var frame FrameMessage
	if err := json.Unmarshal(readUntil(t, conn, MsgFrame), &frame); err != nil {
		t.Fatal(err)
	}
	if len(frame.Nodes) != 2 || len(frame.Edges) != 1 {
		t.Fatalf("frame shape wrong: %d nodes, %d edges", len(frame.Nodes), len(frame.Edges))
	}

	// Geometry keeps flowing.
	var next FrameMessage
	if err := json.Unmarshal(readUntil(t, conn, MsgFrame), &next); err != nil {
		t.Fatal(err)
	}
	if next.Nodes[0] == frame.Nodes[0] && next.Nodes[1] == frame.Nodes[1] {
		t.Error("simulation is not advancing between frames")
	}
}

func TestServer_ClickNavigates(t *testing.T) {
	_, conn := startTestServer(t)
	readUntil(t, conn, MsgInit)

	down := PointerMessage{Type: MsgPointerDown, ID: "grace", X: 10, Y: 10}
	up := PointerMessage{Type: MsgPointerUp, X: 11, Y: 11}
	if err := conn.WriteJSON(down); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(up); err != nil {
		t.Fatal(err)
	}

	var nav NavigateMessage
	if err := json.Unmarshal(readUntil(t, conn, MsgNavigate), &nav); err != nil {
		t.Fatal(err)
	}
	if nav.ID != "grace" {
		t.Fatalf("navigated to %q, want grace", nav.ID)
	}
}

func TestServer_DragDoesNotNavigate(t *testing.T) {
	_, conn := startTestServer(t)
	readUntil(t, conn, MsgInit)

	conn.WriteJSON(PointerMessage{Type: MsgPointerDown, ID: "ada", X: 0, Y: 0})
	conn.WriteJSON(PointerMessage{Type: MsgPointerMove, X: 250, Y: 250})
	conn.WriteJSON(PointerMessage{Type: MsgPointerUp, X: 250, Y: 250})

	// Drain frames briefly; a navigate message here is a failure.
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break // deadline: no navigate seen
		}
		var envelope struct {
			Type string `json:"type"`
		}
		json.Unmarshal(data, &envelope)
		if envelope.Type == MsgNavigate {
			t.Fatal("drag emitted a navigation event")
		}
	}
}

func TestServer_ReloadRebuildsSessions(t *testing.T) {
	server, conn := startTestServer(t)
	readUntil(t, conn, MsgInit)
	readUntil(t, conn, MsgFrame)

	if err := server.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	// A second init arrives for the rebuilt view.
	readUntil(t, conn, MsgInit)
}

func TestServer_SessionCount(t *testing.T) {
	server, conn := startTestServer(t)
	readUntil(t, conn, MsgInit)
	if server.SessionCount() != 1 {
		t.Fatalf("expected 1 session, got %d", server.SessionCount())
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for server.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
