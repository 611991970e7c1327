package mounts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/types"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreSaveLoad(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()
	orig := sampleTree(t)

	id, err := s.Save(ctx, orig, "sample")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	loaded, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Size() != orig.Size() {
		t.Errorf("loaded size = %d, want %d", loaded.Size(), orig.Size())
	}
	if got := termtree.SumSmallDirectories(loaded, termtree.SmallDirThreshold); got != 95437 {
		t.Errorf("SumSmallDirectories(loaded) = %d, want 95437", got)
	}

	// Listing order survives the round trip.
	want := orig.Children()
	got := loaded.Children()
	if len(got) != len(want) {
		t.Fatalf("loaded root has %d children, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name() != want[i].Name() || got[i].Size() != want[i].Size() {
			t.Errorf("child %d = %s/%d, want %s/%d", i, got[i].Name(), got[i].Size(), want[i].Name(), want[i].Size())
		}
	}
}

func TestSQLiteStoreSnapshots(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	id1, err := s.Save(ctx, sampleTree(t), "one")
	if err != nil {
		t.Fatalf("Save one: %v", err)
	}
	small, err := termtree.Build("$ cd /\n$ ls\n10 x\n")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.Save(ctx, small, "two")
	if err != nil {
		t.Fatalf("Save two: %v", err)
	}

	infos, err := s.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Snapshots returned %d, want 2", len(infos))
	}
	sizes := map[string]int64{}
	for _, info := range infos {
		sizes[info.ID] = info.TotalSize
	}
	if sizes[id1] != 48381165 || sizes[id2] != 10 {
		t.Errorf("snapshot sizes = %v", sizes)
	}

	if err := s.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, id1); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Load deleted snapshot error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id1); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
	if _, err := s.Load(ctx, id2); err != nil {
		t.Errorf("Load remaining snapshot: %v", err)
	}
}

func TestSQLiteStoreCorruptSnapshot(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleTree(t), "sample")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.db.Exec(`UPDATE items SET size = 1 WHERE snapshot_id = ? AND path = '/a/f'`, id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, id); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("Load error = %v, want ErrCorruptSnapshot", err)
	}
}

func TestSnapshotFS(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleTree(t), "sample")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	fs := s.Snapshot(id)

	d, err := fs.Stat(ctx, "/d")
	if err != nil {
		t.Fatalf("Stat /d: %v", err)
	}
	if !d.IsDir || d.Size != 24933642 || d.Items != 4 {
		t.Errorf("Stat /d = %+v", d)
	}

	entries, err := fs.List(ctx, "/", types.ListOpts{})
	if err != nil {
		t.Fatalf("List /: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if len(names) != 4 || names[0] != "a" || names[3] != "d" {
		t.Errorf("List / = %v, want a b.txt c.dat d", names)
	}

	rec, err := fs.List(ctx, "/a", types.ListOpts{Recursive: true})
	if err != nil {
		t.Fatalf("List -R /a: %v", err)
	}
	if len(rec) != 5 {
		t.Errorf("List -R /a returned %d entries, want 5: %v", len(rec), rec)
	}

	all, err := fs.List(ctx, "/", types.ListOpts{Recursive: true, DirsOnly: true})
	if err != nil {
		t.Fatalf("List -R / dirs: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List -R / dirs returned %d, want 3", len(all))
	}

	if _, err := fs.List(ctx, "/b.txt", types.ListOpts{}); !errors.Is(err, types.ErrNotDir) {
		t.Errorf("List file error = %v, want ErrNotDir", err)
	}
	if _, err := fs.Stat(ctx, "/zzz"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("Stat missing error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreRepeatedNames(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		strict bool
		sizes  []int64 // root children in listing order
		first  int64   // size of the first item named x
	}{
		{
			name:   "files and dir sharing a name",
			text:   "$ cd /\n$ ls\n10 x\n20 x\ndir x\n$ cd x\n$ ls\n5 z\n",
			strict: true,
			sizes:  []int64{10, 20, 5},
			first:  10,
		},
		{
			name:   "positional dirs sharing a name",
			text:   "$ cd /\n$ ls\n$ cd x\n$ ls\n1 a\n$ cd ..\n$ cd x\n$ ls\n2 b\n",
			strict: false,
			sizes:  []int64{1, 2},
			first:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupSQLiteStore(t)
			ctx := context.Background()

			orig, err := termtree.NewBuilder(termtree.WithStrictNames(tt.strict)).BuildString(tt.text)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			id, err := s.Save(ctx, orig, tt.name)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}

			loaded, err := s.Load(ctx, id)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded.Size() != orig.Size() {
				t.Errorf("loaded size = %d, want %d", loaded.Size(), orig.Size())
			}
			children := loaded.Children()
			if len(children) != len(tt.sizes) {
				t.Fatalf("loaded root has %d children, want %d", len(children), len(tt.sizes))
			}
			for i, want := range tt.sizes {
				if children[i].Name() != "x" || children[i].Size() != want {
					t.Errorf("child %d = %s/%d, want x/%d", i, children[i].Name(), children[i].Size(), want)
				}
			}

			e, err := s.Snapshot(id).Stat(ctx, "/x")
			if err != nil {
				t.Fatalf("Stat /x: %v", err)
			}
			if e.Size != tt.first {
				t.Errorf("Stat /x size = %d, want %d", e.Size, tt.first)
			}
			if tree, _ := NewTreeFS(orig).Stat(ctx, "/x"); tree.Size != e.Size {
				t.Errorf("TreeFS and SnapshotFS disagree on /x: %d vs %d", tree.Size, e.Size)
			}
		})
	}
}

func TestSnapshotFSListRepeatedDirs(t *testing.T) {
	s := setupSQLiteStore(t)
	ctx := context.Background()

	orig, err := termtree.NewBuilder(termtree.WithStrictNames(false)).
		BuildString("$ cd /\n$ ls\n$ cd x\n$ ls\n1 a\n$ cd ..\n$ cd x\n$ ls\n2 b\n")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	id, err := s.Save(ctx, orig, "dup")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := s.Snapshot(id).List(ctx, "/x", types.ListOpts{})
	if err != nil {
		t.Fatalf("List /x: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a" {
		t.Errorf("List /x = %v, want only the first x's children", entries)
	}
}
