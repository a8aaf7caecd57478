package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan-pw/minesweeper/internal/command"
	"github.com/jordan-pw/minesweeper/internal/config"
	"github.com/jordan-pw/minesweeper/internal/mines"
)

type replayFlags struct {
	width  int
	height int
	mines  int
	seed   uint64
	text   bool
}

func newReplayCmd() *cobra.Command {
	var flags replayFlags
	defaults := config.Default().Game

	cmd := &cobra.Command{
		Use:   "replay [file|-]",
		Short: "Run a move script against a new game",
		Long: `Run a script of moves, one per line, and print the final game.

  o X Y   reveal the cell at X:Y
  f X Y   toggle the flag on X:Y
  g       do nothing

Blank lines and lines starting with # are skipped. The script is read from
the named file, or from standard input when the file is - or missing. With
a non-zero --seed the board is laid out like the first game of a server
started with the same game.seed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args, flags)
		},
	}

	cmd.Flags().IntVar(&flags.width, "width", defaults.Width, "board width")
	cmd.Flags().IntVar(&flags.height, "height", defaults.Height, "board height")
	cmd.Flags().IntVar(&flags.mines, "mines", defaults.MineCount, "number of mines")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "RNG seed (0 = random)")
	cmd.Flags().BoolVar(&flags.text, "text", false, "print a text grid instead of JSON")
	return cmd
}

func readScript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read script %s: %w", args[0], err)
	}
	return string(b), nil
}

func runReplay(cmd *cobra.Command, args []string, flags replayFlags) error {
	script, err := readScript(cmd, args)
	if err != nil {
		return err
	}

	src := mines.NewSource()
	if flags.seed != 0 {
		src = rand.NewPCG(flags.seed, 1)
	}
	params := mines.GameParams{Width: flags.width, Height: flags.height, MineCount: flags.mines}
	g, err := mines.NewGame(params, mines.RandomPlacer(src))
	if err != nil {
		return err
	}

	_, runErr := command.Run(g, script)

	out := cmd.OutOrStdout()
	snap := g.Snapshot()
	if flags.text {
		fmt.Fprintf(out, "%s moves=%d flags=%d/%d\n", snap.Phase, snap.Moves, snap.Flags, snap.MineCount)
		fmt.Fprint(out, snap.String())
	} else {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}
	}
	return runErr
}
