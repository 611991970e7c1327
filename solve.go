package termtree

import "github.com/jackfish212/termtree/types"

// Result holds both query answers for one tree.
type Result struct {
	Used        int64 `json:"used"`
	SmallSum    int64 `json:"small_sum"`
	SpaceToFree int64 `json:"space_to_free"`
	Deletion    int64 `json:"deletion"`
	HasDeletion bool  `json:"has_deletion"`
}

// Solve runs both aggregate queries against root with the parameters of cfg.
// A missing deletion candidate is reported through HasDeletion and the
// returned error, which wraps types.ErrNoCandidate.
func Solve(root *types.Directory, cfg Config) (Result, error) {
	var res Result
	if root != nil {
		res.Used = root.Size()
	}
	res.SmallSum = SumSmallDirectories(root, cfg.Threshold)
	res.SpaceToFree = SpaceToFree(res.Used, cfg.DiskCapacity, cfg.RequiredFree)

	size, err := SmallestDirectoryAtLeast(root, res.SpaceToFree)
	if err != nil {
		return res, err
	}
	res.Deletion = size
	res.HasDeletion = true
	return res, nil
}
