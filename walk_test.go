package termtree

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackfish212/termtree/types"
)

func TestWalkOrder(t *testing.T) {
	root := mustBuild(t, SampleTranscript)

	var visited []string
	err := Walk(root, func(path string, d *types.Directory, depth int) error {
		visited = append(visited, path)
		if want := strings.Count(path, "/"); path != "/" && depth != want {
			t.Errorf("%s: depth = %d, want %d", path, depth, want)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if got := strings.Join(visited, " "); got != "/ /a /a/e /d" {
		t.Errorf("visited = %q, want \"/ /a /a/e /d\"", got)
	}
}

func TestWalkSkipDir(t *testing.T) {
	root := mustBuild(t, SampleTranscript)

	var visited []string
	_ = Walk(root, func(path string, _ *types.Directory, _ int) error {
		visited = append(visited, path)
		if path == "/a" {
			return SkipDir
		}
		return nil
	})
	if got := strings.Join(visited, " "); got != "/ /a /d" {
		t.Errorf("visited = %q, want \"/ /a /d\"", got)
	}
}

func TestWalkStops(t *testing.T) {
	root := mustBuild(t, SampleTranscript)
	stop := errors.New("stop")

	count := 0
	err := Walk(root, func(string, *types.Directory, int) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || count != 2 {
		t.Errorf("Walk = %v after %d visits, want stop after 2", err, count)
	}
}

func TestFiles(t *testing.T) {
	root := mustBuild(t, SampleTranscript)

	files := Files(root)
	if len(files) != 10 {
		t.Fatalf("Files returned %d entries, want 10", len(files))
	}
	var sum int64
	for _, f := range files {
		sum += f.Size
	}
	if sum != root.Size() {
		t.Errorf("file sizes sum to %d, root is %d", sum, root.Size())
	}
	if files[0].Path != "/b.txt" {
		t.Errorf("first file = %s, want /b.txt", files[0].Path)
	}
}
