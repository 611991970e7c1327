package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jackfish212/termtree/types"
)

const maxLineSize = 1024 * 1024

// Tokenize classifies every line read from r, in order. Blank lines are
// skipped. It stops at the first line that fails to classify.
func (c *Classifier) Tokenize(r io.Reader) ([]types.Token, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	var tokens []types.Token
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tok, err := c.classify(line, lineNum)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return tokens, nil
}

// TokenizeString is Tokenize over an in-memory transcript.
func (c *Classifier) TokenizeString(text string) ([]types.Token, error) {
	return c.Tokenize(strings.NewReader(text))
}
