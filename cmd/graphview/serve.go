package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kindred-app/graphview/internal/config"
	"github.com/kindred-app/graphview/internal/watcher"
	"github.com/kindred-app/graphview/pkg/graph"
	"github.com/kindred-app/graphview/pkg/live"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var dataPath string
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network to a browser over WebSocket",
		Long: `Starts a local server that streams the simulated graph to a browser
canvas and accepts pointer interaction back. Each connection gets its own
view; edits to the data file rebuild every connected view.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.Data = dataPath
			}
			if listen != "" {
				cfg.Listen = listen
			}

			// Fail fast if the data file is unreadable at startup.
			if _, err := graph.LoadFile(cfg.Data); err != nil {
				return err
			}

			source := func() (*graph.Snapshot, error) {
				return graph.LoadFile(cfg.Data)
			}
			interval := time.Second / time.Duration(cfg.FPS)
			server := live.NewServer(source, cfg.Options(), interval)
			defer server.Close()

			w, err := watcher.New(cfg.Data, 0, func() {
				if err := server.Reload(); err != nil {
					log.Printf("reload skipped: %v", err)
				}
			})
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", cfg.Data, err)
			}
			defer w.Close()

			mux := http.NewServeMux()
			mux.HandleFunc("/live", server.HandleWebSocket)
			mux.HandleFunc("/", func(rw http.ResponseWriter, r *http.Request) {
				rw.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprint(rw, clientPage)
			})

			fmt.Printf("graphview serving on http://%s (data: %s)\n", cfg.Listen, cfg.Data)
			return http.ListenAndServe(cfg.Listen, mux)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "graphview.yaml", "config file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "snapshot data file (overrides config)")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}
