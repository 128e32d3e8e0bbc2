// Package ui is the terminal frontend for the graph view: a bubbletea
// program that drives the simulation with frame ticks and maps terminal
// mouse events onto the pointer interaction controller.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindred-app/graphview/pkg/graph"
	"github.com/kindred-app/graphview/pkg/graphview"
	"github.com/kindred-app/graphview/pkg/scene"
)

// frameMsg drives one simulation step.
type frameMsg time.Time

// ReloadMsg carries a fresh snapshot; the view is rebuilt from scratch
// (ring placement, new drawables — positions are not preserved).
type ReloadMsg struct {
	Snapshot *graph.Snapshot
}

// hit radius in cells for picking a node under the mouse
const pickRadius = 2.0

type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// session holds the mutable view state shared across Model copies. bubbletea
// passes Model by value, so anything the interaction callbacks write lives
// behind this pointer.
type session struct {
	view    *graphview.View
	sc      *scene.MemoryScene
	lastNav string
	hover   string
}

// Model is the bubbletea application state.
type Model struct {
	snapshot *graph.Snapshot
	opts     graphview.Options
	interval time.Duration

	sess *session

	width, height int
	keys          keyMap
	help          help.Model
	showHelp      bool
	quitting      bool
}

// New creates the terminal frontend model. opts.Theme should already be
// resolved (see ResolveTheme); the frame interval defaults to ~30fps for
// terminal rendering when zero.
func New(snap *graph.Snapshot, opts *graphview.Options, interval time.Duration) Model {
	o := graphview.Options{}
	if opts != nil {
		o = *opts
	}
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return Model{
		snapshot: snap,
		opts:     o,
		interval: interval,
		sess:     &session{},
		keys:     keys,
		help:     help.New(),
	}
}

// Init implements tea.Model. The view itself is built on the first
// WindowSizeMsg, once the viewport dimensions are known.
func (m Model) Init() tea.Cmd {
	return m.frameTick()
}

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// rebuild tears down the current view (if any) and builds a new one from
// the current snapshot at the current viewport size.
func (m *Model) rebuild() {
	if m.sess.view != nil {
		m.sess.view.Dispose()
	}
	m.sess.hover = ""
	m.sess.sc = scene.NewMemoryScene()
	opts := m.opts
	sess := m.sess
	opts.OnNavigate = func(id string) { sess.lastNav = id }
	// Reserve one row for the status line.
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	m.sess.view = graphview.New(m.snapshot, m.sess.sc, float64(m.width), float64(h), &opts)
}

// Dispose releases the running view; call when the program exits.
func (m Model) Dispose() {
	if m.sess.view != nil {
		m.sess.view.Dispose()
	}
}
