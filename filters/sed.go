// Package filters rewrites transcripts before classification and renders
// reconstructed trees as queryable JSON reports.
package filters

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rwtodd/Go.Sed/sed"
)

// Sed is a compiled sed program applied to whole transcripts.
type Sed struct {
	engine *sed.Engine
	script string
}

// NewSed compiles a sed program. With quiet set, only lines printed
// explicitly by the program are kept (sed -n).
func NewSed(script string, quiet bool) (*Sed, error) {
	var engine *sed.Engine
	var err error
	if quiet {
		engine, err = sed.NewQuiet(strings.NewReader(script))
	} else {
		engine, err = sed.New(strings.NewReader(script))
	}
	if err != nil {
		return nil, fmt.Errorf("sed: %w", err)
	}
	return &Sed{engine: engine, script: script}, nil
}

// Apply runs the program over text.
func (s *Sed) Apply(text string) (string, error) {
	out, err := s.engine.RunString(text)
	if err != nil {
		return "", fmt.Errorf("sed: %w", err)
	}
	slog.Debug("filters: sed applied", "script", s.script, "in", len(text), "out", len(out))
	return out, nil
}

// ApplyReader reads r fully and runs the program over it.
func (s *Sed) ApplyReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("sed: reading input: %w", err)
	}
	return s.Apply(string(data))
}

// Preprocess applies each script in order. An empty list returns text
// unchanged.
func Preprocess(text string, scripts ...string) (string, error) {
	for _, script := range scripts {
		s, err := NewSed(script, false)
		if err != nil {
			return "", err
		}
		if text, err = s.Apply(text); err != nil {
			return "", err
		}
	}
	return text, nil
}
