package version

import "github.com/fatih/color"

// Version information for the ember CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the plain semantic version. Generated scripts embed it.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with each numeric component in its own color. Anything
// after the patch number (a pre-release tag) is kept as is.
func Colored(v string) string {
	major, rest, ok := cut(v)
	if !ok {
		return v
	}
	minor, rest, ok := cut(rest)
	if !ok {
		return v
	}
	patch, suffix := rest, ""
	for i, r := range rest {
		if r < '0' || r > '9' {
			patch, suffix = rest[:i], rest[i:]
			break
		}
	}
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + suffix
}

func cut(s string) (head, tail string, ok bool) {
	for i := range len(s) {
		if s[i] == '.' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return "", "", false
}
