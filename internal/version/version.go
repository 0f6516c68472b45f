package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// BuildInfo contains build and runtime information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	SemVer    string `json:"semver" yaml:"semver"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`

	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	NumCPU    int    `json:"num_cpu" yaml:"num_cpu"`

	// Deps lists the rendering and terminal modules linked into the binary
	Deps []Module `json:"deps" yaml:"deps"`
}

// Module represents a Go module dependency
type Module struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// GetBuildInfo returns build information for the running binary
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		SemVer:    strings.Split(Version, "-")[0],
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		NumCPU:    runtime.NumCPU(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			info.Deps = append(info.Deps, Module{Path: dep.Path, Version: dep.Version})
		}
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" && info.GitCommit == "unknown" {
				info.GitCommit = setting.Value
			}
		}
	}

	return info
}

// ShortVersion returns the one-line version banner
func ShortVersion() string {
	return fmt.Sprintf("pulsebar %s (%s, %s)", Version, GitCommit, runtime.Version())
}

// FullVersion returns a formatted string with complete version information
func FullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Pulsebar %s\n", info.Version))
	b.WriteString("========================================\n\n")

	b.WriteString("Version Information:\n")
	b.WriteString(fmt.Sprintf("  Version:      %s\n", info.Version))
	b.WriteString(fmt.Sprintf("  Semantic Ver: %s\n", info.SemVer))
	b.WriteString(fmt.Sprintf("  Build Date:   %s\n", info.BuildDate))
	b.WriteString(fmt.Sprintf("  Commit:       %s\n", info.GitCommit))
	b.WriteString("\n")

	b.WriteString("Runtime Information:\n")
	b.WriteString(fmt.Sprintf("  Go Version:   %s\n", info.GoVersion))
	b.WriteString(fmt.Sprintf("  Platform:     %s\n", info.Platform))
	b.WriteString(fmt.Sprintf("  CPUs:         %d\n", info.NumCPU))

	if len(info.Deps) > 0 {
		b.WriteString("\nDependencies:\n")
		for _, dep := range info.Deps {
			b.WriteString(fmt.Sprintf("  - %s@%s\n", dep.Path, dep.Version))
		}
	}

	return b.String()
}
