// Package version provides build version information embedding.
//
// Version and git commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/debatelab/speakerkit/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// Get returns the build's version information. The commit falls back to
// the VCS revision recorded in the binary when -ldflags left it unset.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		if info.GitCommit == "" {
			for _, setting := range buildInfo.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
					break
				}
			}
		}
	}
	return info
}

// String renders the version for logs and the -version flag.
func (i Info) String() string {
	if i.GitCommit == "" {
		return i.Version
	}
	commit := i.GitCommit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("%s (%s)", i.Version, commit)
}
