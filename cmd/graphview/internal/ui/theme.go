package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kindred-app/graphview/pkg/scene"
)

// ResolveTheme probes the terminal background once and returns concrete
// draw colors. A terminal theme change after this point does not propagate
// to a running view; restarting the program picks it up.
func ResolveTheme() scene.Theme {
	if lipgloss.HasDarkBackground() {
		return scene.Theme{
			Background: "#0b0e14",
			Foreground: "#eaeef3",
		}
	}
	return scene.Theme{
		Background: "#fafafa",
		Foreground: "#1a1d21",
	}
}
