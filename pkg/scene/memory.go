package scene

import "sync"

// MemoryScene is a headless Scene that records drawable state in memory. It
// backs the live (websocket) frontend, which serializes geometry instead of
// drawing it, and the package tests.
type MemoryScene struct {
	mu       sync.Mutex
	nodes    []*MemoryNode
	edges    []*MemoryEdge
	disposed bool
}

// NewMemoryScene creates an empty in-memory scene.
func NewMemoryScene() *MemoryScene {
	return &MemoryScene{}
}

// MemoryNode records the last state written through the NodeHandle contract.
type MemoryNode struct {
	ID, Label string
	X, Y      float64
	Emphasis  bool
	Grabbing  bool
	Disposed  bool

	scene *MemoryScene
}

// MemoryEdge records the last stroked segment.
type MemoryEdge struct {
	Color          Color
	X1, Y1, X2, Y2 float64
	Strokes        int
	Disposed       bool

	scene *MemoryScene
}

// CreateNode implements Scene.
func (s *MemoryScene) CreateNode(id, label string) NodeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &MemoryNode{ID: id, Label: label, scene: s}
	s.nodes = append(s.nodes, n)
	return n
}

// CreateEdge implements Scene.
func (s *MemoryScene) CreateEdge(color Color) EdgeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &MemoryEdge{Color: color, scene: s}
	s.edges = append(s.edges, e)
	return e
}

// Dispose implements Scene. Safe to call repeatedly.
func (s *MemoryScene) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	for _, n := range s.nodes {
		n.Disposed = true
	}
	for _, e := range s.edges {
		e.Disposed = true
	}
}

// Nodes returns the scene's node drawables in creation order.
func (s *MemoryScene) Nodes() []*MemoryNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MemoryNode, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns the scene's edge drawables in creation order.
func (s *MemoryScene) Edges() []*MemoryEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MemoryEdge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Disposed reports whether the scene has been torn down.
func (s *MemoryScene) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (n *MemoryNode) Move(x, y float64) {
	n.scene.mu.Lock()
	n.X, n.Y = x, y
	n.scene.mu.Unlock()
}

func (n *MemoryNode) SetEmphasis(on bool) {
	n.scene.mu.Lock()
	n.Emphasis = on
	n.scene.mu.Unlock()
}

func (n *MemoryNode) SetGrabbing(on bool) {
	n.scene.mu.Lock()
	n.Grabbing = on
	n.scene.mu.Unlock()
}

func (n *MemoryNode) Dispose() {
	n.scene.mu.Lock()
	n.Disposed = true
	n.scene.mu.Unlock()
}

func (e *MemoryEdge) Stroke(x1, y1, x2, y2 float64) {
	e.scene.mu.Lock()
	e.X1, e.Y1, e.X2, e.Y2 = x1, y1, x2, y2
	e.Strokes++
	e.scene.mu.Unlock()
}

func (e *MemoryEdge) Dispose() {
	e.scene.mu.Lock()
	e.Disposed = true
	e.scene.mu.Unlock()
}
