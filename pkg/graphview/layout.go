package graphview

import (
	"math"

	"github.com/kindred-app/graphview/pkg/graph"
)

// Node is the simulation record for one entity: current position and
// velocity, mutated in place every tick (or every pointer event while
// dragged).
type Node struct {
	ID    string
	Label string
	X, Y  float64
	VX, VY float64
}

// Edge is a resolved edge: both endpoints were present in the snapshot.
type Edge struct {
	From, To *Node
	Category string

	si, ti int // endpoint indices into the engine's node order
}

// Engine advances the force simulation one tick at a time. It is the single
// source of truth for node positions; the interaction controller overrides
// it only for the one node under drag.
//
// The repulsion pass is evaluated for every unordered node pair, O(n²) per
// tick with no spatial partitioning. That is the intended scalability
// ceiling: fine for the tens-to-low-hundreds of nodes a contact network has.
type Engine struct {
	opts Options

	nodes map[string]*Node
	order []*Node // input order, also deterministic iteration order
	edges []*Edge

	cx, cy float64
	radius float64

	dragged *Node

	// scratch force accumulators, reused across ticks
	fx, fy []float64
}

// NewEngine creates an engine with defaulted options.
func NewEngine(opts *Options) *Engine {
	return &Engine{
		opts:  opts.withDefaults(),
		nodes: make(map[string]*Node),
	}
}

// Init builds the simulation state from a snapshot: every node is placed on
// a ring of the configured radius around the viewport center, at equal
// angular spacing in input order. Edges with a missing endpoint are silently
// dropped. An empty snapshot performs no initialization.
func (e *Engine) Init(snap *graph.Snapshot, width, height float64) {
	e.nodes = make(map[string]*Node)
	e.order = e.order[:0]
	e.edges = e.edges[:0]
	e.dragged = nil
	e.cx, e.cy = width/2, height/2
	e.radius = e.opts.RingRadius
	if e.radius == 0 {
		e.radius = 0.35 * math.Min(width, height)
	}

	if snap == nil || len(snap.Nodes) == 0 {
		return
	}

	step := 2 * math.Pi / float64(len(snap.Nodes))
	for i, rec := range snap.Nodes {
		angle := float64(i) * step
		n := &Node{
			ID:    rec.ID,
			Label: rec.Label,
			X:     e.cx + e.radius*math.Cos(angle),
			Y:     e.cy + e.radius*math.Sin(angle),
		}
		e.nodes[n.ID] = n
		e.order = append(e.order, n)
	}

	index := make(map[string]int, len(e.order))
	for i, n := range e.order {
		index[n.ID] = i
	}
	for _, rec := range snap.Edges {
		from, to := e.nodes[rec.From], e.nodes[rec.To]
		if from == nil || to == nil {
			// Dangling reference: expected, not an error.
			continue
		}
		e.edges = append(e.edges, &Edge{
			From: from, To: to, Category: rec.Category,
			si: index[rec.From], ti: index[rec.To],
		})
	}

	e.fx = make([]float64, len(e.order))
	e.fy = make([]float64, len(e.order))

	if debugLog != nil {
		debugLog("[Engine] initialized", len(e.order), "nodes,", len(e.edges), "edges")
	}
}

// Tick advances every node one simulation step. The dragged node, if any, is
// skipped by the integrator but still acts as a force source at its frozen
// position. The engine never reaches a solved state; the host calls Tick for
// the life of the view.
func (e *Engine) Tick() {
	o := &e.opts

	for i := range e.order {
		e.fx[i], e.fy[i] = 0, 0
	}

	// Pairwise repulsion, magnitude Repulsion/(d²+ε) along the connecting
	// vector. ε keeps coincident nodes from dividing by zero.
	for i := 0; i < len(e.order); i++ {
		for j := i + 1; j < len(e.order); j++ {
			dx := e.order[j].X - e.order[i].X
			dy := e.order[j].Y - e.order[i].Y
			dist2 := dx*dx + dy*dy + o.Epsilon
			force := o.Repulsion / dist2
			inv := 1 / math.Sqrt(dist2)
			px := force * dx * inv
			py := force * dy * inv
			e.fx[i] -= px
			e.fy[i] -= py
			e.fx[j] += px
			e.fy[j] += py
		}
	}

	// Edge attraction: a zero-rest-length spring, magnitude d×Attraction.
	// The unit vector cancels the distance, so no division is needed.
	for _, ed := range e.edges {
		ax := (ed.To.X - ed.From.X) * o.Attraction
		ay := (ed.To.Y - ed.From.Y) * o.Attraction
		e.fx[ed.si] += ax
		e.fy[ed.si] += ay
		e.fx[ed.ti] -= ax
		e.fy[ed.ti] -= ay
	}

	// Constant-fraction pull toward the viewport center so the graph cannot
	// drift off-screen.
	if o.CenterPull > 0 {
		for i, n := range e.order {
			e.fx[i] += (e.cx - n.X) * o.CenterPull
			e.fy[i] += (e.cy - n.Y) * o.CenterPull
		}
	}

	// Integrate: v = (v + F)×damping, p += v. No velocity clamp.
	for i, n := range e.order {
		if n == e.dragged {
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX = (n.VX + e.fx[i]) * o.Damping
		n.VY = (n.VY + e.fy[i]) * o.Damping
		n.X += n.VX
		n.Y += n.VY
	}
}

// Drag pins a node: from now until Release, the integrator does not write
// its position or velocity.
func (e *Engine) Drag(id string) {
	if n := e.nodes[id]; n != nil {
		e.dragged = n
		n.VX, n.VY = 0, 0
	}
}

// DragTo snaps the pinned node to pointer coordinates.
func (e *Engine) DragTo(x, y float64) {
	if e.dragged != nil {
		e.dragged.X, e.dragged.Y = x, y
		e.dragged.VX, e.dragged.VY = 0, 0
	}
}

// Release unpins the dragged node with zero velocity; free simulation
// resumes on the next tick.
func (e *Engine) Release() {
	if e.dragged != nil {
		e.dragged.VX, e.dragged.VY = 0, 0
		e.dragged = nil
	}
}

// Dragged returns the id of the node under drag, or "".
func (e *Engine) Dragged() string {
	if e.dragged == nil {
		return ""
	}
	return e.dragged.ID
}

// Node returns the simulation record for id, or nil.
func (e *Engine) Node(id string) *Node {
	return e.nodes[id]
}

// Nodes returns the simulation nodes in input order.
func (e *Engine) Nodes() []*Node {
	return e.order
}

// Edges returns the resolved edges.
func (e *Engine) Edges() []*Edge {
	return e.edges
}

// Center returns the viewport center the engine pulls toward.
func (e *Engine) Center() (x, y float64) {
	return e.cx, e.cy
}

// RingRadius returns the radius used for initial placement.
func (e *Engine) RingRadius() float64 {
	return e.radius
}
