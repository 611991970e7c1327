package termtree

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/jackfish212/termtree/shell"
	"github.com/jackfish212/termtree/types"
)

// Builder reconstructs a directory tree from classified transcript tokens.
// A Builder is immutable after construction and may be shared.
type Builder struct {
	classifier *shell.Classifier
	strict     bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrictNames controls how `cd <name>` is reconciled with the `dir`
// entries of the enclosing listing. When strict (the default) every cd must
// name a listed directory that has not been entered yet, in any order, and
// every listed directory must be entered. When not strict, subdirectories are
// trusted by position and names are not checked.
func WithStrictNames(strict bool) Option {
	return func(b *Builder) { b.strict = strict }
}

// WithClassifier reuses an existing classifier for BuildString and
// BuildReader.
func WithClassifier(c *shell.Classifier) Option {
	return func(b *Builder) { b.classifier = c }
}

// NewBuilder creates a Builder with the given options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{strict: true}
	for _, opt := range opts {
		opt(b)
	}
	if b.classifier == nil {
		b.classifier = shell.NewClassifier()
	}
	return b
}

// Build classifies text and reconstructs its tree with default options.
func Build(text string) (*types.Directory, error) {
	return NewBuilder().BuildString(text)
}

// BuildString classifies text and reconstructs its tree.
func (b *Builder) BuildString(text string) (*types.Directory, error) {
	tokens, err := b.classifier.TokenizeString(text)
	if err != nil {
		return nil, err
	}
	return b.Build(tokens)
}

// BuildReader classifies the transcript read from r and reconstructs its tree.
func (b *Builder) BuildReader(r io.Reader) (*types.Directory, error) {
	tokens, err := b.classifier.Tokenize(r)
	if err != nil {
		return nil, err
	}
	return b.Build(tokens)
}

// Build reconstructs the tree described by tokens. The first token must be
// `$ cd /`. On any structural error no tree is returned.
func (b *Builder) Build(tokens []types.Token) (*types.Directory, error) {
	if len(tokens) == 0 {
		return nil, eofError("empty transcript, expected `$ cd /`")
	}
	if !tokens[0].IsCd(types.CdRoot) {
		return nil, tokenError(tokens[0], "transcript must start with `$ cd /`")
	}

	p := &treeParser{tokens: tokens, pos: 1, strict: b.strict}
	root, closed, err := p.directory("/", "/")
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, tokenError(tokens[p.pos-1], "`$ cd ..` at the root has no matching `$ cd`")
	}

	slog.Debug("termtree: built tree", "tokens", len(tokens), "size", root.Size(), "strict", b.strict)
	return root, nil
}

// treeParser threads a cursor over the token slice through the recursion.
type treeParser struct {
	tokens []types.Token
	pos    int
	strict bool
}

func (p *treeParser) peek() (types.Token, bool) {
	if p.pos >= len(p.tokens) {
		return types.Token{}, false
	}
	return p.tokens[p.pos], true
}

// directory parses one directory body: `$ ls`, its listing, then nested
// `cd <name>` bodies until `cd ..` or end of input. The cd that entered the
// directory has already been consumed. closed reports whether the body ended
// with a consumed `cd ..`.
func (p *treeParser) directory(name, path string) (dir *types.Directory, closed bool, err error) {
	tok, ok := p.peek()
	if !ok {
		return nil, false, eofError(fmt.Sprintf("expected `$ ls` in %s", path))
	}
	if tok.Kind != types.TokenLs {
		return nil, false, tokenError(tok, fmt.Sprintf("expected `$ ls` after entering %s", path))
	}
	p.pos++

	l, err := p.listing(path)
	if err != nil {
		return nil, false, err
	}

	for !closed {
		tok, ok := p.peek()
		if !ok {
			break
		}
		switch {
		case tok.IsCd(types.CdUp):
			p.pos++
			closed = true
		case tok.IsCd(types.CdNamed):
			if err := l.enter(tok, p.strict, path); err != nil {
				return nil, false, err
			}
			p.pos++
			sub, _, err := p.directory(tok.Name, JoinPath(path, tok.Name))
			if err != nil {
				return nil, false, err
			}
			if err := l.add(tok, sub, path); err != nil {
				return nil, false, err
			}
		case tok.IsCd(types.CdRoot):
			return nil, false, tokenError(tok, "`$ cd /` is only allowed as the first line")
		case tok.Kind == types.TokenLs:
			return nil, false, tokenError(tok, fmt.Sprintf("second `$ ls` in %s", path))
		default:
			return nil, false, tokenError(tok, fmt.Sprintf("listing entry outside of `$ ls` in %s", path))
		}
	}

	if p.strict {
		if err := l.complete(path); err != nil {
			return nil, false, err
		}
	}
	return types.NewDirectory(name, l.items()), closed, nil
}

// listing collects a directory's children. In strict mode subdirectories are
// placed in the slot of their `dir` entry; otherwise they follow the files in
// the order they are entered.
type listing struct {
	children []types.Item
	slots    map[string]int         // dir name -> index in children
	pending  map[string]types.Token // listed but not entered yet
	order    []string               // listed dir names
	total    int64
}

func (p *treeParser) listing(path string) (*listing, error) {
	l := &listing{slots: make(map[string]int), pending: make(map[string]types.Token)}
	for {
		tok, ok := p.peek()
		if !ok || !tok.IsEntry() {
			return l, nil
		}
		p.pos++
		if tok.Kind == types.TokenFile {
			if err := l.grow(tok, tok.Size, path); err != nil {
				return nil, err
			}
			l.children = append(l.children, types.NewFile(tok.Name, tok.Size))
			continue
		}
		if !p.strict {
			continue
		}
		if _, dup := l.slots[tok.Name]; dup {
			return nil, tokenError(tok, fmt.Sprintf("directory %q listed twice in %s", tok.Name, path))
		}
		l.slots[tok.Name] = len(l.children)
		l.pending[tok.Name] = tok
		l.order = append(l.order, tok.Name)
		l.children = append(l.children, nil)
	}
}

func (l *listing) enter(tok types.Token, strict bool, path string) error {
	if !strict {
		return nil
	}
	if _, ok := l.pending[tok.Name]; ok {
		delete(l.pending, tok.Name)
		return nil
	}
	if _, listed := l.slots[tok.Name]; listed {
		return tokenError(tok, fmt.Sprintf("directory %q entered twice in %s", tok.Name, path))
	}
	return tokenError(tok, fmt.Sprintf("directory %q was not listed in %s", tok.Name, path))
}

// add places sub, entered by tok, among the children.
func (l *listing) add(tok types.Token, sub *types.Directory, path string) error {
	if err := l.grow(tok, sub.Size(), path); err != nil {
		return err
	}
	if idx, ok := l.slots[sub.Name()]; ok {
		l.children[idx] = sub
		return nil
	}
	l.children = append(l.children, sub)
	return nil
}

// grow adds size to the running total, rejecting totals past int64.
func (l *listing) grow(tok types.Token, size int64, path string) error {
	if l.total > math.MaxInt64-size {
		return tokenError(tok, fmt.Sprintf("total size of %s overflows int64", path))
	}
	l.total += size
	return nil
}

func (l *listing) complete(path string) error {
	for _, name := range l.order {
		if tok, ok := l.pending[name]; ok {
			return tokenError(tok, fmt.Sprintf("directory %q listed in %s but never entered", name, path))
		}
	}
	return nil
}

func (l *listing) items() []types.Item { return l.children }

func tokenError(tok types.Token, msg string) error {
	return &types.LineError{Line: tok.Line, Text: tok.String(), Msg: msg, Err: types.ErrStructure}
}

func eofError(msg string) error {
	return &types.LineError{Msg: msg, Err: types.ErrStructure}
}
