package main

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kindred-app/graphview/cmd/graphview/internal/ui"
	"github.com/kindred-app/graphview/internal/config"
	"github.com/kindred-app/graphview/internal/watcher"
	"github.com/kindred-app/graphview/pkg/graph"
)

func newViewCommand() *cobra.Command {
	var configPath string
	var dataPath string
	var fps int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the network in the terminal",
		Long: `Renders the contact network as an interactive terminal graph.
Drag nodes with the mouse; click a node to select it. Edits to the data
file rebuild the layout from scratch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Data = dataPath
			}
			if fps > 0 {
				cfg.FPS = fps
			}

			snap, err := graph.LoadFile(cfg.Data)
			if err != nil {
				return err
			}

			opts := cfg.Options()
			if cfg.Theme == nil {
				// Theme is resolved exactly once, here. Changing the
				// terminal theme mid-run requires a restart.
				opts.Theme = ui.ResolveTheme()
			}

			interval := time.Second / time.Duration(cfg.FPS)
			model := ui.New(snap, opts, interval)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

			w, err := watcher.New(cfg.Data, 0, func() {
				next, err := graph.LoadFile(cfg.Data)
				if err != nil {
					log.Printf("reload skipped: %v", err)
					return
				}
				p.Send(ui.ReloadMsg{Snapshot: next})
			})
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", cfg.Data, err)
			}
			defer w.Close()

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "graphview.yaml", "config file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "snapshot data file (overrides config)")
	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second (overrides config)")
	return cmd
}
