// Package termtree reconstructs a directory tree from a recorded shell
// session (`$ cd`, `$ ls` and their listings) and answers size queries over
// it.
//
// The pipeline is shell.Classifier (lines to tokens), Builder (tokens to an
// immutable *types.Directory) and the aggregate queries SumSmallDirectories
// and SmallestDirectoryAtLeast.
package termtree

import "github.com/jackfish212/termtree/types"

type (
	Token     = types.Token
	Item      = types.Item
	File      = types.File
	Directory = types.Directory
	Entry     = types.Entry
	ListOpts  = types.ListOpts
	Provider  = types.Provider
	LineError = types.LineError
)

var (
	ErrClassify    = types.ErrClassify
	ErrStructure   = types.ErrStructure
	ErrNoCandidate = types.ErrNoCandidate
	ErrNotFound    = types.ErrNotFound
	ErrNotDir      = types.ErrNotDir
)
