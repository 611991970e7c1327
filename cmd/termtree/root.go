package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jackfish212/termtree"
	"github.com/jackfish212/termtree/filters"
	"github.com/jackfish212/termtree/types"
	"github.com/spf13/cobra"
)

// app carries the resolved configuration shared by all subcommands.
type app struct {
	cfg        termtree.Config
	configPath string
	debug      bool
	strict     bool
	threshold  int64
	lookupEnv  func(string) (string, bool)
}

// newRootCmd builds the command tree. lookupEnv resolves TERMTREE_*
// variables, os.LookupEnv in production.
func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	a := &app{cfg: termtree.DefaultConfig(), lookupEnv: lookupEnv}

	root := &cobra.Command{
		Use:   "termtree",
		Short: "Rebuild a directory tree from a shell transcript",
		Long: `termtree reads a transcript of "$ cd" and "$ ls" commands with their
output, rebuilds the directory tree it describes and answers two queries:
the total size of all small directories, and the smallest directory whose
deletion frees enough disk space.`,
		Version:       termtree.GetVersionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd.ErrOrStderr(), a.debug)
			return a.resolveConfig(cmd)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default "+termtree.DefaultConfigFile+")")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")
	pf.BoolVar(&a.strict, "strict", true, "Require cd targets to match announced directories")
	pf.Int64Var(&a.threshold, "threshold", termtree.SmallDirThreshold, "Size bound for the small-directory sum")

	root.AddCommand(
		newSolveCmd(a),
		newLsCmd(a),
		newReportCmd(a),
		newSnapshotCmd(a),
	)
	return root
}

// execute runs cmd and logs a failure once.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		slog.Error("termtree failed", "error", err)
	}
	return err
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// resolveConfig layers defaults, the config file, TERMTREE_* variables and
// explicitly set flags, in that order.
func (a *app) resolveConfig(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = termtree.DefaultConfigFile
	}
	cfg, err := termtree.LoadConfig(path)
	switch {
	case errors.Is(err, termtree.ErrConfigNotFound):
		if a.configPath != "" {
			return fmt.Errorf("config %s: %w", a.configPath, err)
		}
	case err != nil:
		return err
	}
	if err := cfg.ApplyEnv(a.lookupEnv); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.StrictNames = a.strict
	}
	if flags.Changed("threshold") {
		cfg.Threshold = a.threshold
	}
	a.cfg = cfg
	slog.Debug("config resolved", "threshold", cfg.Threshold, "capacity", cfg.DiskCapacity,
		"required", cfg.RequiredFree, "strict", cfg.StrictNames)
	return nil
}

// inputFlags selects the transcript a subcommand reads.
type inputFlags struct {
	input  string
	sample bool
	sed    []string
}

func addInputFlags(cmd *cobra.Command, in *inputFlags) {
	f := cmd.Flags()
	f.StringVarP(&in.input, "input", "i", "-", "Transcript file, - for stdin")
	f.BoolVar(&in.sample, "sample", false, "Use the built-in example transcript")
	f.StringArrayVar(&in.sed, "sed", nil, "sed script applied to the transcript before parsing (repeatable)")
}

// loadTree reads, preprocesses and builds the selected transcript. The
// returned source names where it came from.
func (a *app) loadTree(cmd *cobra.Command, in inputFlags) (*types.Directory, string, error) {
	var text, source string
	switch {
	case in.sample:
		text, source = termtree.SampleTranscript, "sample"
	case in.input == "" || in.input == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		text, source = string(data), "stdin"
	default:
		data, err := os.ReadFile(in.input)
		if err != nil {
			return nil, "", fmt.Errorf("reading transcript: %w", err)
		}
		text, source = string(data), in.input
	}

	if len(in.sed) > 0 {
		var err error
		if text, err = filters.Preprocess(text, in.sed...); err != nil {
			return nil, "", err
		}
		source += " | sed " + strings.Join(in.sed, " | sed ")
	}

	root, err := termtree.NewBuilder(a.cfg.BuilderOptions()...).BuildString(text)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", source, err)
	}
	return root, source, nil
}
