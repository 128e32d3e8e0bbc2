package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kindred-app/graphview/pkg/graphview"
	"github.com/kindred-app/graphview/pkg/reactive"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "graphview",
		Short: "Interactive network visualization for your contact graph",
		Long: `graphview renders a contact network as a continuously simulated
force-directed graph. Nodes can be dragged with the mouse; clicking a node
emits a navigation event for its detail view.

The terminal frontend (view) draws the graph in your terminal; the live
frontend (serve) streams it to a browser canvas over WebSocket.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logger := log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
				fn := func(args ...interface{}) { logger.Println(args...) }
				graphview.SetDebugLog(fn)
				reactive.SetDebugLog(fn)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")

	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newServeCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
