package graphview

import (
	"math"

	"github.com/kindred-app/graphview/pkg/reactive"
)

// interactionState is the drag state machine position.
type interactionState int

const (
	stateIdle interactionState = iota
	statePointerDown                 // button held on a node, not yet moved past the click threshold
	stateDragging
)

// Interaction disambiguates clicks from drags and routes pointer input into
// the engine. At most one node can be under interaction at a time: a second
// pointer-down while one is in progress is ignored.
//
// Hit-testing belongs to the host (it owns the pointer-to-drawable mapping),
// so every entry point takes a node id the host already resolved.
type Interaction struct {
	engine    *Engine
	threshold float64

	state          interactionState
	target         string
	startX, startY float64

	// Hover is the current hover target id ("" for none). Purely cosmetic;
	// independent of the drag state machine.
	Hover *reactive.State[string]

	onNavigate func(id string)
	onGrab     func(id string, grabbing bool)
}

// NewInteraction creates a controller over the engine. onNavigate receives
// the node id when a pointer-up completes a click; onGrab toggles the
// grabbing cursor affordance on the target node's drawable. Either may be
// nil.
func NewInteraction(engine *Engine, threshold float64, onNavigate func(string), onGrab func(string, bool)) *Interaction {
	return &Interaction{
		engine:     engine,
		threshold:  threshold,
		Hover:      reactive.NewState(""),
		onNavigate: onNavigate,
		onGrab:     onGrab,
	}
}

// PointerDown begins an interaction on a node. The node is pinned
// immediately so the integrator stops writing to it while it is held.
func (in *Interaction) PointerDown(id string, x, y float64) {
	if in.state != stateIdle {
		return
	}
	if in.engine.Node(id) == nil {
		return
	}
	in.state = statePointerDown
	in.target = id
	in.startX, in.startY = x, y
	in.engine.Drag(id)
	if in.onGrab != nil {
		in.onGrab(id, true)
	}
	if debugLog != nil {
		debugLog("[Interaction] pointer down on", id)
	}
}

// PointerMove snaps the held node to the pointer. No inertia, no easing.
func (in *Interaction) PointerMove(x, y float64) {
	if in.state == stateIdle {
		return
	}
	in.state = stateDragging
	in.engine.DragTo(x, y)
}

// PointerUp ends the interaction. If total pointer travel stayed below the
// click threshold this was a click and the navigation event fires exactly
// once; either way the node is released with zero velocity.
func (in *Interaction) PointerUp(x, y float64) {
	if in.state == stateIdle {
		return
	}
	target := in.target
	dx, dy := x-in.startX, y-in.startY
	isClick := math.Sqrt(dx*dx+dy*dy) < in.threshold
	in.cleanup()
	if isClick && in.onNavigate != nil {
		in.onNavigate(target)
	}
}

// Cancel aborts the interaction, e.g. pointer-up outside the render
// surface. Identical cleanup to PointerUp but never navigates.
func (in *Interaction) Cancel() {
	if in.state == stateIdle {
		return
	}
	in.cleanup()
}

func (in *Interaction) cleanup() {
	in.engine.Release()
	if in.onGrab != nil {
		in.onGrab(in.target, false)
	}
	in.state = stateIdle
	in.target = ""
}

// PointerOver marks a node as the hover target.
func (in *Interaction) PointerOver(id string) {
	in.Hover.Set(id)
}

// PointerOut clears the hover target if id still holds it.
func (in *Interaction) PointerOut(id string) {
	in.Hover.Update(func(cur string) string {
		if cur == id {
			return ""
		}
		return cur
	})
}

// Dragging reports whether a drag (past the click threshold) is in
// progress.
func (in *Interaction) Dragging() bool {
	return in.state == stateDragging
}

// Target returns the node id under interaction, or "".
func (in *Interaction) Target() string {
	return in.target
}
