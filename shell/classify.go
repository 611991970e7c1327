// Package shell classifies the lines of a recorded shell session into tokens.
package shell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackfish212/termtree/types"
)

// namePattern matches directory names: Unicode letters, digits and '_'.
const namePattern = `[\p{L}\p{N}_]+`

// Classifier recognises the transcript grammar. Build one with NewClassifier
// and reuse it; it holds no mutable state and is safe for concurrent use.
type Classifier struct {
	cd   *regexp.Regexp
	ls   *regexp.Regexp
	dir  *regexp.Regexp
	file *regexp.Regexp
}

// NewClassifier compiles the transcript grammar.
func NewClassifier() *Classifier {
	return &Classifier{
		cd:   regexp.MustCompile(`^\$ cd (/|\.\.|` + namePattern + `)$`),
		ls:   regexp.MustCompile(`^\$ ls$`),
		dir:  regexp.MustCompile(`^dir (` + namePattern + `)$`),
		file: regexp.MustCompile(`^([0-9]+) ([\p{L}\p{N}_.]+)$`),
	}
}

// Classify turns one transcript line into a Token. Lines that match none of
// the recognised shapes return a *types.LineError wrapping types.ErrClassify.
func (c *Classifier) Classify(line string) (types.Token, error) {
	return c.classify(strings.TrimRight(line, "\r"), 0)
}

func (c *Classifier) classify(line string, lineNum int) (types.Token, error) {
	if m := c.cd.FindStringSubmatch(line); m != nil {
		tok := types.Token{Kind: types.TokenCd, Line: lineNum}
		switch m[1] {
		case "/":
			tok.Target = types.CdRoot
		case "..":
			tok.Target = types.CdUp
		default:
			tok.Target = types.CdNamed
			tok.Name = m[1]
		}
		return tok, nil
	}
	if c.ls.MatchString(line) {
		return types.Token{Kind: types.TokenLs, Line: lineNum}, nil
	}
	if m := c.dir.FindStringSubmatch(line); m != nil {
		return types.Token{Kind: types.TokenDir, Name: m[1], Line: lineNum}, nil
	}
	if m := c.file.FindStringSubmatch(line); m != nil {
		size, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return types.Token{}, &types.LineError{
				Line: lineNum, Text: line,
				Msg: fmt.Sprintf("file size out of range: %v", err),
				Err: types.ErrClassify,
			}
		}
		return types.Token{Kind: types.TokenFile, Name: m[2], Size: size, Line: lineNum}, nil
	}
	return types.Token{}, &types.LineError{
		Line: lineNum, Text: line,
		Msg: "expected `$ cd`, `$ ls`, `dir <name>` or `<size> <name>`",
		Err: types.ErrClassify,
	}
}
