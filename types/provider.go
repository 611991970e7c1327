// Package types defines the tokens, tree items and provider interfaces shared
// by the termtree packages. It has no external dependencies.
package types

import "context"

// Provider is the minimal read-only interface over a reconstructed tree. It
// supports navigation (Stat + List) on slash paths relative to the tree root.
type Provider interface {
	Stat(ctx context.Context, path string) (*Entry, error)
	List(ctx context.Context, path string, opts ListOpts) ([]Entry, error)
}

// MountInfoProvider is implemented by providers that can describe themselves.
type MountInfoProvider interface {
	MountInfo() (name, extra string)
}
