package types

import (
	"errors"
	"strings"
	"testing"
)

// ─── Token ───

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenCd, Target: CdRoot}, "$ cd /"},
		{Token{Kind: TokenCd, Target: CdUp}, "$ cd .."},
		{Token{Kind: TokenCd, Target: CdNamed, Name: "a"}, "$ cd a"},
		{Token{Kind: TokenLs}, "$ ls"},
		{Token{Kind: TokenDir, Name: "d"}, "dir d"},
		{Token{Kind: TokenFile, Name: "b.txt", Size: 14848514}, "14848514 b.txt"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("Token.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: TokenDir}).IsEntry() || !(Token{Kind: TokenFile}).IsEntry() {
		t.Error("dir and file tokens should be entries")
	}
	if (Token{Kind: TokenLs}).IsEntry() {
		t.Error("ls should not be an entry")
	}
	up := Token{Kind: TokenCd, Target: CdUp}
	if !up.IsCd(CdUp) || up.IsCd(CdRoot) {
		t.Errorf("IsCd mismatch for %v", up)
	}
}

// ─── Item ───

func TestNewDirectorySumsChildren(t *testing.T) {
	inner := NewDirectory("e", []Item{NewFile("i", 584)})
	d := NewDirectory("a", []Item{NewFile("f", 29116), NewFile("g", 2557), inner})

	if got := d.Size(); got != 29116+2557+584 {
		t.Errorf("Size() = %d, want %d", got, 29116+2557+584)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
	if subs := d.Subdirs(); len(subs) != 1 || subs[0].Name() != "e" {
		t.Errorf("Subdirs() = %v", subs)
	}
	if c, ok := d.Child("g"); !ok || c.Size() != 2557 {
		t.Errorf("Child(g) = %v, %v", c, ok)
	}
	if _, ok := d.Child("zzz"); ok {
		t.Error("Child(zzz) should not exist")
	}
}

func TestDirectoryChildrenIsCopy(t *testing.T) {
	d := NewDirectory("x", []Item{NewFile("a", 1)})
	kids := d.Children()
	kids[0] = NewFile("b", 1000)
	if c, _ := d.Child("a"); c == nil || c.Size() != 1 {
		t.Error("mutating Children() result must not affect the directory")
	}
}

func TestEmptyDirectory(t *testing.T) {
	d := NewDirectory("empty", nil)
	if d.Size() != 0 || d.Len() != 0 || !d.IsDir() {
		t.Errorf("empty directory = size %d len %d", d.Size(), d.Len())
	}
}

// ─── Entry ───

func TestEntryString(t *testing.T) {
	f := EntryOf("/b.txt", NewFile("b.txt", 14848514))
	got := f.String()
	if !strings.HasPrefix(got, "-") || !strings.Contains(got, "14848514") || !strings.HasSuffix(got, "b.txt") {
		t.Errorf("file Entry.String() = %q", got)
	}

	d := EntryOf("/d", NewDirectory("d", []Item{NewFile("j", 10)}))
	got = d.String()
	if !strings.HasPrefix(got, "d") || !strings.HasSuffix(got, "d/") {
		t.Errorf("dir Entry.String() = %q", got)
	}
	if d.Items != 1 {
		t.Errorf("Items = %d, want 1", d.Items)
	}

	root := Entry{Name: "/", Path: "/", IsDir: true}
	if strings.HasSuffix(root.String(), "//") {
		t.Errorf("root Entry.String() = %q", root.String())
	}
}

// ─── Errors ───

func TestLineErrorUnwrap(t *testing.T) {
	err := error(&LineError{Line: 3, Text: "bogus", Msg: "no shape matches", Err: ErrClassify})
	if !errors.Is(err, ErrClassify) {
		t.Error("LineError should unwrap to its sentinel")
	}
	if errors.Is(err, ErrStructure) {
		t.Error("LineError should not match a different sentinel")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Error() = %q, want line number", err.Error())
	}

	eof := &LineError{Msg: "unclosed", Err: ErrStructure}
	if !strings.Contains(eof.Error(), "end of input") {
		t.Errorf("Error() = %q, want end of input", eof.Error())
	}
}
