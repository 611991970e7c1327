package types

import "fmt"

// Entry describes a file or directory of a reconstructed tree, as returned by
// a Provider.
type Entry struct {
	Name  string // base name
	Path  string // slash path from the tree root, "/" for the root
	IsDir bool
	Size  int64 // file size, or total size for directories
	Items int   // immediate children, 0 for files
}

// String returns a formatted ls-style line for this entry.
func (e Entry) String() string {
	dirFlag := "-"
	name := e.Name
	if e.IsDir {
		dirFlag = "d"
		if name != "/" {
			name += "/"
		}
	}
	return fmt.Sprintf("%s %12d  %s", dirFlag, e.Size, name)
}

// EntryOf builds the Entry for item located at path.
func EntryOf(path string, item Item) Entry {
	e := Entry{Name: item.Name(), Path: path, IsDir: item.IsDir(), Size: item.Size()}
	if d, ok := item.(*Directory); ok {
		e.Items = d.Len()
	}
	return e
}
