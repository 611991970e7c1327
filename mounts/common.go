// Package mounts provides read-only Provider implementations over
// reconstructed trees: an in-memory view and a SQLite snapshot store.
package mounts

import "strings"

func normPath(p string) string {
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	return "/" + p
}
