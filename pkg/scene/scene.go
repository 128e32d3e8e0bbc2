// Package scene defines the minimal retained-mode drawing capability the
// graph view needs from a rendering backend. Drawables persist across frames
// and are mutated in place; backends only need to honor the handle contract,
// the simulation never sees a concrete renderer.
package scene

// Color is a resolved draw color in whatever form the backend understands
// (hex string for canvas backends, ANSI/profile color for terminal ones).
type Color string

// Theme holds the host environment's colors, resolved once at
// initialization. A theme change after init does not propagate; the view
// must be rebuilt to pick it up.
type Theme struct {
	Background Color
	Foreground Color
}

// NodeHandle is a retained node drawable plus its label. Move repositions
// both every tick; SetEmphasis toggles the cosmetic hover treatment (larger
// radius, lighter fill); SetGrabbing toggles the cursor affordance while the
// node is held.
type NodeHandle interface {
	Move(x, y float64)
	SetEmphasis(on bool)
	SetGrabbing(on bool)
	Dispose()
}

// EdgeHandle is a retained edge drawable. Both endpoints move continuously,
// so Stroke clears and redraws the geometry every tick. Color is fixed at
// creation.
type EdgeHandle interface {
	Stroke(x1, y1, x2, y2 float64)
	Dispose()
}

// Scene creates drawables for one view instance. Dispose releases every
// remaining drawable; it must be safe to call more than once.
type Scene interface {
	CreateNode(id, label string) NodeHandle
	CreateEdge(color Color) EdgeHandle
	Dispose()
}
