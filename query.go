package termtree

import (
	"fmt"

	"github.com/jackfish212/termtree/types"
)

const (
	// SmallDirThreshold is the default bound for SumSmallDirectories.
	SmallDirThreshold int64 = 100_000
	// DiskCapacity is the total size of the disk the transcript was taken on.
	DiskCapacity int64 = 70_000_000
	// RequiredFree is the free space an update needs.
	RequiredFree int64 = 30_000_000
)

// SumSmallDirectories returns the sum of the total sizes of every directory
// in the tree, root included, whose total size is strictly below threshold.
// Nested directories are counted again at every level they appear under.
func SumSmallDirectories(root *types.Directory, threshold int64) int64 {
	if root == nil {
		return 0
	}
	var sum int64
	for _, sub := range root.Subdirs() {
		sum += SumSmallDirectories(sub, threshold)
	}
	if root.Size() < threshold {
		sum += root.Size()
	}
	return sum
}

// SmallestDirectoryAtLeast returns the smallest total size among all
// directories, root included, that is at least spaceToFree. It returns
// types.ErrNoCandidate when no directory qualifies.
func SmallestDirectoryAtLeast(root *types.Directory, spaceToFree int64) (int64, error) {
	if root == nil {
		return 0, fmt.Errorf("%w: empty tree", types.ErrNoCandidate)
	}
	best, ok := smallestAtLeast(root, spaceToFree)
	if !ok {
		return 0, fmt.Errorf("%w: need %d, root holds %d", types.ErrNoCandidate, spaceToFree, root.Size())
	}
	return best, nil
}

// A subtree is never larger than its directory, so a directory below the
// bound prunes everything under it.
func smallestAtLeast(d *types.Directory, need int64) (int64, bool) {
	if d.Size() < need {
		return 0, false
	}
	best := d.Size()
	for _, sub := range d.Subdirs() {
		if size, ok := smallestAtLeast(sub, need); ok && size < best {
			best = size
		}
	}
	return best, true
}

// SpaceToFree returns how much must be deleted from a disk of the given
// capacity holding used bytes so that required bytes are free.
func SpaceToFree(used, capacity, required int64) int64 {
	return used - (capacity - required)
}
