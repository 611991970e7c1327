package types

import "fmt"

// TokenKind identifies which transcript shape a line matched.
type TokenKind uint8

const (
	TokenCd   TokenKind = iota + 1 // $ cd <target>
	TokenLs                        // $ ls
	TokenDir                       // dir <name>
	TokenFile                      // <size> <name>
)

func (k TokenKind) String() string {
	switch k {
	case TokenCd:
		return "cd"
	case TokenLs:
		return "ls"
	case TokenDir:
		return "dir"
	case TokenFile:
		return "file"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// CdTarget is the argument of a cd command.
type CdTarget uint8

const (
	CdNone  CdTarget = iota
	CdRoot           // cd /
	CdUp             // cd ..
	CdNamed          // cd <name>
)

// Token is one classified transcript line.
type Token struct {
	Kind   TokenKind
	Target CdTarget // only for TokenCd
	Name   string   // directory or file name; cd argument when Target is CdNamed
	Size   int64    // only for TokenFile
	Line   int      // 1-based source line, 0 when unknown
}

// IsEntry reports whether the token is part of an ls listing.
func (t Token) IsEntry() bool { return t.Kind == TokenDir || t.Kind == TokenFile }

// IsCd reports whether the token is a cd with the given target.
func (t Token) IsCd(target CdTarget) bool { return t.Kind == TokenCd && t.Target == target }

// String renders the token back in transcript form.
func (t Token) String() string {
	switch t.Kind {
	case TokenCd:
		switch t.Target {
		case CdRoot:
			return "$ cd /"
		case CdUp:
			return "$ cd .."
		default:
			return "$ cd " + t.Name
		}
	case TokenLs:
		return "$ ls"
	case TokenDir:
		return "dir " + t.Name
	case TokenFile:
		return fmt.Sprintf("%d %s", t.Size, t.Name)
	default:
		return t.Kind.String()
	}
}
