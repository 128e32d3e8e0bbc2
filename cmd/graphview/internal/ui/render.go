package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellEdge
	cellNode
	cellNodeEmph
	cellLabel
)

var cellRunes = map[cellKind]rune{
	cellEdge:     '·',
	cellNode:     '●',
	cellNodeEmph: '◉',
}

// View implements tea.Model: rasterize the retained scene into the cell
// grid. Drawable state (positions, emphasis, grab) was already written by
// the frame step; this only paints it.
func (m Model) View() string {
	if m.quitting {
		return "\n"
	}
	if m.sess.view == nil || m.width == 0 {
		return "loading..."
	}

	theme := m.sess.view.Theme()
	nodeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(theme.Foreground)))
	emphStyle := nodeStyle.Bold(true)
	edgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(theme.Foreground))).Faint(true)
	statusStyle := lipgloss.NewStyle().Faint(true)

	rows := m.height - 1
	if rows < 1 {
		rows = 1
	}
	runes := make([][]rune, rows)
	kinds := make([][]cellKind, rows)
	for y := range runes {
		runes[y] = make([]rune, m.width)
		kinds[y] = make([]cellKind, m.width)
		for x := range runes[y] {
			runes[y][x] = ' '
		}
	}

	put := func(x, y int, r rune, k cellKind) {
		if x < 0 || y < 0 || x >= m.width || y >= rows {
			return
		}
		runes[y][x] = r
		kinds[y][x] = k
	}

	// Edges first so nodes and labels paint over them.
	for _, e := range m.sess.sc.Edges() {
		plotLine(e.X1, e.Y1, e.X2, e.Y2, func(x, y int) {
			put(x, y, cellRunes[cellEdge], cellEdge)
		})
	}
	for _, n := range m.sess.sc.Nodes() {
		x, y := int(math.Round(n.X)), int(math.Round(n.Y))
		kind := cellNode
		if n.Emphasis || n.Grabbing {
			kind = cellNodeEmph
		}
		put(x, y, cellRunes[kind], kind)
		// Label anchored above the node, tracking it every frame.
		for i, r := range n.Label {
			put(x+1+i, y-1, r, cellLabel)
		}
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < m.width; x++ {
			s := string(runes[y][x])
			switch kinds[y][x] {
			case cellEdge:
				b.WriteString(edgeStyle.Render(s))
			case cellNode:
				b.WriteString(nodeStyle.Render(s))
			case cellNodeEmph:
				b.WriteString(emphStyle.Render(s))
			case cellLabel:
				b.WriteString(labelStyle.Render(s))
			default:
				b.WriteString(s)
			}
		}
		b.WriteByte('\n')
	}

	status := ""
	if m.sess.lastNav != "" {
		status = "→ " + m.sess.lastNav + "  "
	}
	if m.showHelp {
		status += m.help.FullHelpView(m.keys.FullHelp())
	} else {
		status += m.help.ShortHelpView(m.keys.ShortHelp())
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

// plotLine rasterizes the segment with Bresenham's algorithm.
func plotLine(x1, y1, x2, y2 float64, plot func(x, y int)) {
	x0, y0 := int(math.Round(x1)), int(math.Round(y1))
	xe, ye := int(math.Round(x2)), int(math.Round(y2))
	dx := abs(xe - x0)
	dy := -abs(ye - y0)
	sx, sy := 1, 1
	if x0 >= xe {
		sx = -1
	}
	if y0 >= ye {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == xe && y0 == ye {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
