package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackfish212/termtree/mounts"
	"github.com/jackfish212/termtree/types"
	"github.com/spf13/cobra"
)

func newLsCmd(a *app) *cobra.Command {
	var in inputFlags
	var opts types.ListOpts

	cmd := &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List a directory of the rebuilt tree with sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := a.loadTree(cmd, in)
			if err != nil {
				return err
			}
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			return listPath(cmd.Context(), cmd.OutOrStdout(), mounts.NewTreeFS(root), path, opts)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "R", false, "List subdirectories recursively")
	cmd.Flags().BoolVar(&opts.DirsOnly, "dirs", false, "List directories only")
	return cmd
}

// listPath prints the children of path, or path itself when it is a file.
// Recursive listings show full paths.
func listPath(ctx context.Context, w io.Writer, p types.Provider, path string, opts types.ListOpts) error {
	if mi, ok := p.(types.MountInfoProvider); ok {
		name, extra := mi.MountInfo()
		slog.Debug("listing", "provider", name, "info", extra, "path", path, "recursive", opts.Recursive)
	}
	entry, err := p.Stat(ctx, path)
	if err != nil {
		return err
	}
	if !entry.IsDir {
		fmt.Fprintln(w, entry.String())
		return nil
	}

	entries, err := p.List(ctx, path, opts)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if opts.Recursive {
			e.Name = e.Path
		}
		fmt.Fprintln(w, e.String())
	}
	return nil
}
