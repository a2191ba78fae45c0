package translate

import "strings"

// Script assembles a complete Bash program from translated top-level text.
func Script(version, body string) string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	b.WriteString("# Written in Ember ")
	b.WriteString(version)
	b.WriteString("\n# Generated by the Ember compiler; do not edit.\n\n")
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
