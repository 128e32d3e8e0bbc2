// Package graphview implements the interactive network visualization for the
// relationship manager: a force-directed layout engine, a pointer
// interaction controller, and the per-frame orchestration that drives a
// retained-mode scene. Rendering backends plug in through pkg/scene; the
// terminal frontend and the websocket live frontend both sit on top of this
// package.
package graphview

import (
	"sync/atomic"
	"time"

	"github.com/kindred-app/graphview/pkg/graph"
	"github.com/kindred-app/graphview/pkg/reactive"
	"github.com/kindred-app/graphview/pkg/scene"
)

// View owns one visualization instance: the simulation state built from a
// single snapshot, the drawables created for it, and the interaction
// controller. A new snapshot means a new View; positions are deliberately
// not carried across refreshes.
type View struct {
	opts   Options
	engine *Engine
	inter  *Interaction
	sc     scene.Scene

	nodeHandles map[string]scene.NodeHandle
	edgeHandles []edgeDrawable

	// Navigations publishes the id of the last clicked node so frontends
	// can observe routing without wiring a callback.
	Navigations *reactive.State[string]

	lastHover   string
	unsubscribe func()

	loop     *Loop
	disposed atomic.Bool
}

type edgeDrawable struct {
	handle scene.EdgeHandle
	edge   *Edge
}

// New builds a view from a snapshot: ring placement, one retained drawable
// per node, one per resolved edge (edge colors come from the category
// palette, dangling edges get no drawable). An empty snapshot yields a view
// that ticks and renders nothing.
func New(snap *graph.Snapshot, sc scene.Scene, width, height float64, opts *Options) *View {
	v := &View{
		opts:        opts.withDefaults(),
		sc:          sc,
		nodeHandles: make(map[string]scene.NodeHandle),
		Navigations: reactive.NewState(""),
	}

	v.engine = NewEngine(&v.opts)
	v.engine.Init(snap, width, height)

	v.inter = NewInteraction(v.engine, v.opts.ClickThreshold, v.navigate, v.grab)
	v.unsubscribe = v.inter.Hover.Subscribe(v.hoverChanged)

	for _, n := range v.engine.Nodes() {
		h := sc.CreateNode(n.ID, n.Label)
		h.Move(n.X, n.Y)
		v.nodeHandles[n.ID] = h
	}
	for _, ed := range v.engine.Edges() {
		h := sc.CreateEdge(v.opts.EdgeColor(ed.Category))
		h.Stroke(ed.From.X, ed.From.Y, ed.To.X, ed.To.Y)
		v.edgeHandles = append(v.edgeHandles, edgeDrawable{handle: h, edge: ed})
	}
	return v
}

// Step runs one frame: a layout tick, then node transform updates, then edge
// re-strokes. It is the only place simulation state flows into the scene, so
// hosts with their own frame driver call Step directly and hosts without one
// use Run.
func (v *View) Step() {
	if v.disposed.Load() {
		return
	}
	v.engine.Tick()
	for _, n := range v.engine.Nodes() {
		v.nodeHandles[n.ID].Move(n.X, n.Y)
	}
	for _, ed := range v.edgeHandles {
		ed.handle.Stroke(ed.edge.From.X, ed.edge.From.Y, ed.edge.To.X, ed.edge.To.Y)
	}
}

// Run starts the internal animation loop at the given frame interval.
func (v *View) Run(interval time.Duration) {
	if v.disposed.Load() {
		return
	}
	if v.loop == nil {
		v.loop = NewLoop(interval, v.Step)
	}
	v.loop.Start()
}

// Dispose stops the loop and releases every drawable. Idempotent: every exit
// path (navigation away, data refresh, error) calls it, a second call is a
// no-op, and no frame callback stays scheduled afterwards.
func (v *View) Dispose() {
	if !v.disposed.CompareAndSwap(false, true) {
		return
	}
	if v.loop != nil {
		v.loop.Stop()
	}
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
	for _, h := range v.nodeHandles {
		h.Dispose()
	}
	for _, ed := range v.edgeHandles {
		ed.handle.Dispose()
	}
	v.sc.Dispose()
	if debugLog != nil {
		debugLog("[View] disposed")
	}
}

// Disposed reports whether the view has been torn down.
func (v *View) Disposed() bool {
	return v.disposed.Load()
}

// Engine exposes the simulation state, e.g. for hit-testing in a frontend.
func (v *View) Engine() *Engine {
	return v.engine
}

// Theme returns the colors resolved at construction.
func (v *View) Theme() scene.Theme {
	return v.opts.Theme
}

// Pointer input, delegated to the interaction controller. Hosts resolve
// pointer coordinates to node ids themselves.

func (v *View) PointerDown(id string, x, y float64) { v.inter.PointerDown(id, x, y) }
func (v *View) PointerMove(x, y float64)            { v.inter.PointerMove(x, y) }
func (v *View) PointerUp(x, y float64)              { v.inter.PointerUp(x, y) }
func (v *View) PointerCancel()                      { v.inter.Cancel() }
func (v *View) PointerOver(id string)               { v.inter.PointerOver(id) }
func (v *View) PointerOut(id string)                { v.inter.PointerOut(id) }

// Hover returns the observable hover target.
func (v *View) Hover() *reactive.State[string] {
	return v.inter.Hover
}

func (v *View) navigate(id string) {
	v.Navigations.Set(id)
	if v.opts.OnNavigate != nil {
		v.opts.OnNavigate(id)
	}
}

func (v *View) grab(id string, grabbing bool) {
	if h := v.nodeHandles[id]; h != nil {
		h.SetGrabbing(grabbing)
	}
}

func (v *View) hoverChanged(id string) {
	if v.lastHover != "" {
		if h := v.nodeHandles[v.lastHover]; h != nil {
			h.SetEmphasis(false)
		}
	}
	if id != "" {
		if h := v.nodeHandles[id]; h != nil {
			h.SetEmphasis(true)
		}
	}
	v.lastHover = id
}
