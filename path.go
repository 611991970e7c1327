package termtree

import (
	"fmt"
	"path"
	"strings"

	"github.com/jackfish212/termtree/types"
)

// CleanPath normalises a tree path: forward-slashes, no trailing slash,
// always starts with "/".
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	if p == "." || p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// JoinPath appends a child name to a directory path.
func JoinPath(dir, name string) string {
	if dir == "/" || dir == "" {
		return "/" + name
	}
	return dir + "/" + name
}

// Lookup resolves a slash path against the tree rooted at root.
func Lookup(root *types.Directory, p string) (types.Item, error) {
	p = CleanPath(p)
	if p == "/" {
		return root, nil
	}
	var cur types.Item = root
	for _, part := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
		dir, ok := cur.(*types.Directory)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrNotDir, p)
		}
		child, ok := dir.Child(part)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, p)
		}
		cur = child
	}
	return cur, nil
}
