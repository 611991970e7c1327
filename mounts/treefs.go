package mounts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/types"
)

var (
	_ types.Provider          = (*TreeFS)(nil)
	_ types.MountInfoProvider = (*TreeFS)(nil)
)

// TreeFS exposes a reconstructed tree as a read-only Provider. The tree is
// immutable, so TreeFS needs no locking.
type TreeFS struct {
	root *types.Directory
}

// NewTreeFS creates a Provider over root.
func NewTreeFS(root *types.Directory) *TreeFS {
	slog.Debug("treefs: created", "size", root.Size(), "items", root.Len())
	return &TreeFS{root: root}
}

// Root returns the underlying tree.
func (fs *TreeFS) Root() *types.Directory { return fs.root }

func (fs *TreeFS) Stat(_ context.Context, path string) (*types.Entry, error) {
	path = termtree.CleanPath(path)
	item, err := termtree.Lookup(fs.root, path)
	if err != nil {
		return nil, err
	}
	entry := types.EntryOf(path, item)
	return &entry, nil
}

func (fs *TreeFS) List(_ context.Context, path string, opts types.ListOpts) ([]types.Entry, error) {
	path = termtree.CleanPath(path)
	item, err := termtree.Lookup(fs.root, path)
	if err != nil {
		return nil, err
	}
	dir, ok := item.(*types.Directory)
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrNotDir, path)
	}

	if !opts.Recursive {
		return listChildren(path, dir, opts), nil
	}

	var entries []types.Entry
	_ = termtree.Walk(dir, func(rel string, d *types.Directory, _ int) error {
		entries = append(entries, listChildren(joinUnder(path, rel), d, opts)...)
		return nil
	})
	return entries, nil
}

func (fs *TreeFS) MountInfo() (string, string) {
	return "treefs", fmt.Sprintf("%d bytes", fs.root.Size())
}

func listChildren(path string, d *types.Directory, opts types.ListOpts) []types.Entry {
	entries := make([]types.Entry, 0, d.Len())
	for _, c := range d.Children() {
		if opts.DirsOnly && !c.IsDir() {
			continue
		}
		entries = append(entries, types.EntryOf(termtree.JoinPath(path, c.Name()), c))
	}
	return entries
}

// joinUnder maps a path relative to a walked subtree back under base.
func joinUnder(base, rel string) string {
	if rel == "/" {
		return base
	}
	if base == "/" {
		return rel
	}
	return base + rel
}
