package types

// ListOpts controls listing behaviour.
type ListOpts struct {
	Recursive bool
	DirsOnly  bool
}
