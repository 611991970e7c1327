package termtree

import (
	"errors"

	"github.com/jackfish212/termtree/types"
)

// SkipDir can be returned from a WalkFunc to skip the directory's subtree.
var SkipDir = errors.New("termtree: skip directory")

// WalkFunc is called for every directory visited by Walk. depth is 0 for the
// root.
type WalkFunc func(path string, dir *types.Directory, depth int) error

// Walk visits every directory of the tree in pre-order, children in listing
// order. It stops at the first error returned by fn other than SkipDir.
func Walk(root *types.Directory, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk("/", root, 0, fn)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func walk(path string, d *types.Directory, depth int, fn WalkFunc) error {
	if err := fn(path, d, depth); err != nil {
		return err
	}
	for _, sub := range d.Subdirs() {
		err := walk(JoinPath(path, sub.Name()), sub, depth+1, fn)
		if err != nil && !errors.Is(err, SkipDir) {
			return err
		}
	}
	return nil
}

// Files returns every file of the tree with its path, in pre-order.
func Files(root *types.Directory) []types.Entry {
	var out []types.Entry
	_ = Walk(root, func(path string, d *types.Directory, _ int) error {
		for _, c := range d.Children() {
			if f, ok := c.(*types.File); ok {
				out = append(out, types.EntryOf(JoinPath(path, f.Name()), f))
			}
		}
		return nil
	})
	return out
}
