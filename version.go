package termtree

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/jackfish212/termtree.version=...".
var (
	version   = "dev"
	buildDate = ""
	gitCommit = ""
)

type VersionInfo struct {
	Version   string
	BuildDate string
	GitCommit string
	GoVersion string
	Platform  string
}

// GetVersionInfo reports the linked-in version. Fields not set through
// ldflags fall back to the module version and VCS stamp of the binary.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *VersionInfo, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
}

func (v VersionInfo) String() string {
	var sb strings.Builder
	sb.WriteString("termtree " + v.Version)
	if c := v.GitCommit; c != "" {
		if len(c) > 8 {
			c = c[:8]
		}
		sb.WriteString(" (" + c + ")")
	}
	sb.WriteString(" (Go " + v.GoVersion + ", " + v.Platform + ")")
	if v.BuildDate != "" {
		sb.WriteString(" " + v.BuildDate)
	}
	return sb.String()
}
