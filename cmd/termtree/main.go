// termtree rebuilds a directory tree from a recorded shell transcript and
// answers size queries over it.
//
// Usage:
//
//	termtree solve    [--input FILE|-] [--sed SCRIPT] [--sample] [--json]
//	termtree ls       [PATH] [-R] [--dirs]
//	termtree report   [--where COND] [--sum PROP|--count|--min PROP|--max PROP]
//	termtree snapshot --db FILE [--id ID | --list]
//
// Global flags:
//
//	--config FILE   YAML config (default termtree.yaml, optional)
//	--debug         Enable debug logging to stderr
//	--strict        Require cd targets to match announced directories
//	--threshold N   Size bound for the small-directory sum
//	--version       Show version and exit
//
// TERMTREE_* variables, optionally from a local .env file, override the
// config file.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	if err := execute(newRootCmd(os.LookupEnv)); err != nil {
		os.Exit(1)
	}
}
