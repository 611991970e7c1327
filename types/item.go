package types

// Item is a node of a reconstructed filesystem tree: either a *File or a
// *Directory. Items are immutable once created.
type Item interface {
	Name() string
	Size() int64
	IsDir() bool
}

var (
	_ Item = (*File)(nil)
	_ Item = (*Directory)(nil)
)

// File is a leaf with a known size.
type File struct {
	name string
	size int64
}

// NewFile creates a file leaf.
func NewFile(name string, size int64) *File {
	return &File{name: name, size: size}
}

func (f *File) Name() string { return f.name }
func (f *File) Size() int64  { return f.size }
func (f *File) IsDir() bool  { return false }

// Directory owns an ordered list of children. Its total size is computed once
// at construction and always equals the sum of its children's sizes.
type Directory struct {
	name      string
	children  []Item
	totalSize int64
}

// NewDirectory creates a directory over children, taking ownership of the
// slice.
func NewDirectory(name string, children []Item) *Directory {
	var total int64
	for _, c := range children {
		total += c.Size()
	}
	return &Directory{name: name, children: children, totalSize: total}
}

func (d *Directory) Name() string { return d.name }
func (d *Directory) Size() int64  { return d.totalSize }
func (d *Directory) IsDir() bool  { return true }

// Len returns the number of immediate children.
func (d *Directory) Len() int { return len(d.children) }

// Children returns a copy of the immediate children in listing order.
func (d *Directory) Children() []Item {
	out := make([]Item, len(d.children))
	copy(out, d.children)
	return out
}

// Subdirs returns the immediate child directories in order.
func (d *Directory) Subdirs() []*Directory {
	var dirs []*Directory
	for _, c := range d.children {
		if sub, ok := c.(*Directory); ok {
			dirs = append(dirs, sub)
		}
	}
	return dirs
}

// Child returns the immediate child with the given name.
func (d *Directory) Child(name string) (Item, bool) {
	for _, c := range d.children {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}
