// mines serves minesweeper games over HTTP and replays move scripts.
//
// Usage:
//
//	mines serve [--config path]      - Run the game server
//	mines replay [flags] [file|-]    - Run a move script and print the result
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mines",
		Short: "Minesweeper game server",
		Long: `mines keeps minesweeper games in memory and lets clients play them
over HTTP and WebSocket.

Examples:
  mines serve -c /run/config.yaml
  mines replay --width 9 --height 9 --mines 10 --seed 42 moves.txt
  echo "o 4 4" | mines replay --text`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (.json, .yaml or .yml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newReplayCmd())
	return rootCmd
}
