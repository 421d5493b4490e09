package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "wordsprout", describeVersion(currentVersion()))
	},
}

// currentVersion prefers the -ldflags value, then the module version
// recorded by go install.
func currentVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && semver.IsValid(info.Main.Version) {
		return info.Main.Version
	}
	return version
}

// describeVersion canonicalizes a semantic version and marks pre-releases.
// Anything else is returned unchanged.
func describeVersion(v string) string {
	if !semver.IsValid(v) {
		return v
	}
	out := semver.Canonical(v)
	if semver.Prerelease(v) != "" {
		out += " (pre-release)"
	}
	return out
}
