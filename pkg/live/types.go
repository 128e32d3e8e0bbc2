package live

// Message type tags for the live protocol. Outbound messages carry scene
// state to the browser; inbound messages are pointer events the browser
// already hit-tested against its drawables.
const (
	// Outbound
	MsgInit     = "init"
	MsgFrame    = "frame"
	MsgNavigate = "navigate"

	// Inbound
	MsgPointerDown   = "down"
	MsgPointerMove   = "move"
	MsgPointerUp     = "up"
	MsgPointerCancel = "cancel"
	MsgPointerOver   = "over"
	MsgPointerOut    = "out"
)

// InitMessage describes the snapshot-scoped immutable state: theme colors
// resolved at view construction and the drawable set. Edge colors are
// resolved once from the category palette.
type InitMessage struct {
	Type   string     `json:"type"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Theme  ThemeInfo  `json:"theme"`
	Nodes  []NodeInfo `json:"nodes"`
	Edges  []EdgeInfo `json:"edges"`
}

// ThemeInfo mirrors scene.Theme for the wire.
type ThemeInfo struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// NodeInfo identifies one retained node drawable.
type NodeInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// EdgeInfo identifies one retained edge drawable by endpoint ids.
type EdgeInfo struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Color string `json:"color"`
}

// FrameMessage is the per-frame geometry update: node transforms and edge
// segments in the same order as the init message.
type FrameMessage struct {
	Type  string     `json:"type"`
	Nodes []NodePos  `json:"nodes"`
	Edges []EdgeLine `json:"edges"`
}

// NodePos is one node transform plus its cosmetic flags.
type NodePos struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Emphasis bool    `json:"emphasis,omitempty"`
	Grabbing bool    `json:"grabbing,omitempty"`
}

// EdgeLine is one stroked edge segment.
type EdgeLine struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NavigateMessage tells the host to route to a node's detail view.
type NavigateMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PointerMessage is any inbound pointer event. ID is set for down/over/out.
type PointerMessage struct {
	Type string  `json:"type"`
	ID   string  `json:"id,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
