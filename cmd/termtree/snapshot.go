package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/mounts"
	"github.com/jackfish212/termtree/types"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var in inputFlags
	var dbPath, id, lsPath string
	var list bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store the rebuilt tree in SQLite, or re-run the queries on a stored one",
		Long: `Without --id, snapshot builds the transcript and saves the tree to the
database, printing the new snapshot id. With --id it loads that snapshot and
prints both answers, or with --ls lists a directory of the stored tree.
--list shows the stored snapshots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id != "" {
				if _, err := uuid.Parse(id); err != nil {
					return fmt.Errorf("invalid snapshot id %q: %w", id, err)
				}
			}

			store, err := mounts.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case list:
				snaps, err := store.Snapshots(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, s := range snaps {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.Created.Format(time.RFC3339), s.TotalSize, s.Source)
				}
				return tw.Flush()

			case id != "" && lsPath != "":
				return listPath(ctx, out, store.Snapshot(id), lsPath, types.ListOpts{})

			case id != "":
				root, err := store.Load(ctx, id)
				if err != nil {
					return err
				}
				res, err := termtree.Solve(root, a.cfg)
				if err != nil {
					return fmt.Errorf("snapshot %s: %w", id, err)
				}
				fmt.Fprintf(out, "Part 1: %d\nPart 2: %d\n", res.SmallSum, res.Deletion)
				return nil

			default:
				root, source, err := a.loadTree(cmd, in)
				if err != nil {
					return err
				}
				newID, err := store.Save(ctx, root, source)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, newID)
				return nil
			}
		},
	}

	addInputFlags(cmd, &in)
	f := cmd.Flags()
	f.StringVar(&dbPath, "db", "", "SQLite database file")
	f.StringVar(&id, "id", "", "Snapshot to load")
	f.StringVar(&lsPath, "ls", "", "With --id, list this directory of the snapshot")
	f.BoolVar(&list, "list", false, "List stored snapshots")
	_ = cmd.MarkFlagRequired("db")
	cmd.MarkFlagsMutuallyExclusive("id", "list")
	return cmd
}
