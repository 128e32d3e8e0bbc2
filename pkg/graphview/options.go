package graphview

import "github.com/kindred-app/graphview/pkg/scene"

// debugLog is set by the host; tracing is off by default
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function for the view and engine.
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Options configures the simulation and rendering behavior.
//
// The physics defaults are the observed production values, not validated
// stability bounds: the attraction spring has zero rest length and velocity
// is never clamped, so very dense graphs with larger constants can oscillate.
// Damping below 1 is what keeps the integration bounded.
type Options struct {
	// Physics
	Repulsion  float64 // pairwise push, magnitude Repulsion/(d²+Epsilon); default 3000
	Attraction float64 // per-edge pull, magnitude d×Attraction; default 0.01
	CenterPull float64 // fraction of the offset to viewport center applied per tick; default 0.01, negative disables
	Damping    float64 // per-tick velocity decay, must be < 1; default 0.9
	Epsilon    float64 // guards the repulsion division for coincident nodes; default 0.01

	// Interaction
	ClickThreshold float64 // pointer travel below this is a click, not a drag; default 5

	// Initial placement. Zero means derive from the viewport
	// (0.35 × the smaller dimension).
	RingRadius float64

	// Rendering
	Theme       scene.Theme            // resolved once by the host before construction
	Palette     map[string]scene.Color // edge category → color
	DefaultEdge scene.Color            // fallback for unmapped or absent categories

	// OnNavigate receives the node id when a click (not a drag) completes.
	OnNavigate func(id string)
}

func (o *Options) withDefaults() Options {
	d := Options{
		Repulsion:      3000,
		Attraction:     0.01,
		CenterPull:     0.01,
		Damping:        0.9,
		Epsilon:        0.01,
		ClickThreshold: 5,
		Theme: scene.Theme{
			Background: "#0b0e14",
			Foreground: "#eaeef3",
		},
		DefaultEdge: "#39424e",
	}
	if o == nil {
		return d
	}
	if o.Repulsion != 0 {
		d.Repulsion = o.Repulsion
	}
	if o.Attraction != 0 {
		d.Attraction = o.Attraction
	}
	// Negative disables centering; zero keeps the default.
	if o.CenterPull != 0 {
		d.CenterPull = o.CenterPull
	}
	if o.Damping != 0 {
		d.Damping = o.Damping
	}
	if o.Epsilon != 0 {
		d.Epsilon = o.Epsilon
	}
	if o.ClickThreshold != 0 {
		d.ClickThreshold = o.ClickThreshold
	}
	if o.RingRadius != 0 {
		d.RingRadius = o.RingRadius
	}
	if o.Theme.Background != "" {
		d.Theme.Background = o.Theme.Background
	}
	if o.Theme.Foreground != "" {
		d.Theme.Foreground = o.Theme.Foreground
	}
	if o.Palette != nil {
		d.Palette = o.Palette
	}
	if o.DefaultEdge != "" {
		d.DefaultEdge = o.DefaultEdge
	}
	d.OnNavigate = o.OnNavigate
	return d
}

// EdgeColor resolves an edge category to a draw color.
func (o *Options) EdgeColor(category string) scene.Color {
	if category != "" && o.Palette != nil {
		if c, ok := o.Palette[category]; ok {
			return c
		}
	}
	return o.DefaultEdge
}
