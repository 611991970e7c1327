package filters

import (
	"encoding/json"

	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/types"
)

// DirRecord is one directory of a Report.
type DirRecord struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Depth int    `json:"depth"`
	Files int    `json:"files"`
	Dirs  int    `json:"dirs"`
}

// FileRecord is one file of a Report.
type FileRecord struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Report is the flattened JSON form of a tree and its query results.
type Report struct {
	Result      termtree.Result `json:"result"`
	Directories []DirRecord     `json:"directories"`
	Files       []FileRecord    `json:"files"`
}

// NewReport flattens root in pre-order. res is usually the output of
// termtree.Solve.
func NewReport(root *types.Directory, res termtree.Result) Report {
	rep := Report{Result: res, Directories: []DirRecord{}, Files: []FileRecord{}}
	_ = termtree.Walk(root, func(path string, d *types.Directory, depth int) error {
		rec := DirRecord{Path: path, Name: d.Name(), Size: d.Size(), Depth: depth}
		for _, c := range d.Children() {
			if c.IsDir() {
				rec.Dirs++
				continue
			}
			rec.Files++
			rep.Files = append(rep.Files, FileRecord{Path: termtree.JoinPath(path, c.Name()), Name: c.Name(), Size: c.Size()})
		}
		rep.Directories = append(rep.Directories, rec)
		return nil
	})
	return rep
}

// JSON encodes the report.
func (r Report) JSON() ([]byte, error) {
	return json.Marshal(r)
}
