package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackfish212/termtree"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var in inputFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the small-directory sum and the directory to delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			root, source, err := a.loadTree(cmd, in)
			if err != nil {
				return err
			}
			slog.Info("tree built", "source", source, "size", root.Size(), "took", time.Since(start))

			out := cmd.OutOrStdout()
			if asJSON {
				res, err := termtree.Solve(root, a.cfg)
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res); encErr != nil {
					return encErr
				}
				return err
			}

			start = time.Now()
			small := termtree.SumSmallDirectories(root, a.cfg.Threshold)
			fmt.Fprintf(out, "Part 1: %d (%s)\n", small, time.Since(start))

			start = time.Now()
			need := termtree.SpaceToFree(root.Size(), a.cfg.DiskCapacity, a.cfg.RequiredFree)
			size, err := termtree.SmallestDirectoryAtLeast(root, need)
			if err != nil {
				return fmt.Errorf("part 2: %w", err)
			}
			fmt.Fprintf(out, "Part 2: %d (%s)\n", size, time.Since(start))
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print both answers as JSON")
	return cmd
}
