package ui

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		// Viewport change: rebuild wholesale, same as a data refresh.
		m.rebuild()
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		if m.sess.view != nil {
			m.sess.view.Step()
		}
		return m, m.frameTick()

	case ReloadMsg:
		m.snapshot = msg.Snapshot
		if m.width > 0 {
			m.rebuild()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.Dispose()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	v := m.sess.view
	if v == nil {
		return m
	}
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if id := m.pick(x, y); id != "" {
			v.PointerDown(id, x, y)
		}

	case tea.MouseActionMotion:
		m.updateHover(x, y)
		v.PointerMove(x, y)

	case tea.MouseActionRelease:
		v.PointerUp(x, y)
	}
	return m
}

// updateHover re-picks the node under the cursor and forwards over/out
// transitions. Hover is cosmetic and independent of the drag state.
func (m Model) updateHover(x, y float64) {
	id := m.pick(x, y)
	if id == m.sess.hover {
		return
	}
	if m.sess.hover != "" {
		m.sess.view.PointerOut(m.sess.hover)
	}
	if id != "" {
		m.sess.view.PointerOver(id)
	}
	m.sess.hover = id
}

// pick returns the id of the closest node within the pick radius, or "".
func (m Model) pick(x, y float64) string {
	best := ""
	bestDist := pickRadius
	for _, n := range m.sess.view.Engine().Nodes() {
		d := math.Hypot(n.X-x, n.Y-y)
		if d <= bestDist {
			best = n.ID
			bestDist = d
		}
	}
	return best
}
