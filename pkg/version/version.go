// Package version reports the lebtool release and how the running binary
// was built.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version is a lebtool release.
type Version struct {
	Major    int
	Minor    int
	Patch    int
	Metadata string
	// Build identifies the commit the binary was built from. If empty the
	// VCS revision stamped by the go command is used.
	Build string
}

// LebtoolVersion is the current version of lebtool.
var LebtoolVersion = Version{Major: 1, Minor: 0, Patch: 0}

// String returns the version as 1.2.3[-metadata] followed by the build
// revision in parentheses, when known.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Metadata != "" {
		s += "-" + v.Metadata
	}
	build := v.Build
	if build == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			build = revision(info.Settings)
		}
	}
	if build != "" {
		s += " (" + build + ")"
	}
	return s
}

// revision returns the short VCS revision found in the build settings,
// marked -dirty if the work tree had local modifications.
func revision(settings []debug.BuildSetting) string {
	var rev string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return ""
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty {
		rev += "-dirty"
	}
	return rev
}

// wiredModules are the modules the lebtool binary is built on, BuildInfo
// lists only these.
var wiredModules = []string{
	"github.com/cosiner/argv",
	"github.com/derekparker/trie",
	"github.com/go-delve/liner",
	"github.com/mattn/go-colorable",
	"github.com/mattn/go-isatty",
	"github.com/natefinch/lumberjack",
	"github.com/sirupsen/logrus",
	"github.com/spf13/cobra",
	"github.com/spf13/pflag",
	"gopkg.in/yaml.v2",
}

// BuildInfo describes the toolchain, the main module and the versions of
// the modules lebtool is built on.
func BuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Sprintf("%s %s/%s\nnot built in module mode\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return formatBuildInfo(info)
}

func formatBuildInfo(info *debug.BuildInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s/%s\n", info.GoVersion, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&b, "module\t%s\t%s\n", info.Main.Path, moduleVersion(&info.Main))

	deps := make(map[string]*debug.Module, len(info.Deps))
	for _, dep := range info.Deps {
		deps[dep.Path] = dep
	}
	for _, path := range wiredModules {
		dep, ok := deps[path]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "dep\t%s\t%s", path, moduleVersion(dep))
		if dep.Replace != nil {
			fmt.Fprintf(&b, "\t=> %s\t%s", dep.Replace.Path, moduleVersion(dep.Replace))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func moduleVersion(m *debug.Module) string {
	if m.Version == "" {
		return "(devel)"
	}
	return m.Version
}
