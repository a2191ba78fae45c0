package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/translate"
	"ember/internal/version"
)

// versionReport is what `ember version` knows about this compiler. Scripts
// and exports cache entries are only reproducible for the same Version and
// CacheSchema.
type versionReport struct {
	Tool        string   `json:"tool"`
	Version     string   `json:"version"`
	CacheSchema uint16   `json:"exports_cache_schema"`
	Runtime     []string `json:"runtime"`
	GitCommit   string   `json:"git_commit,omitempty"`
	GitMessage  string   `json:"git_message,omitempty"`
	BuildDate   string   `json:"build_date,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "include git and build-date metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the compiler version and what generated scripts depend on",
	RunE: func(cmd *cobra.Command, args []string) error {
		report := collectVersionReport(versionFull)
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), report)
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func collectVersionReport(full bool) versionReport {
	r := versionReport{
		Tool:        "ember",
		Version:     strings.TrimSpace(version.Version),
		CacheSchema: driver.ExportsCacheSchema,
		Runtime:     append([]string{"bash"}, translate.RuntimeTools...),
	}
	if r.Version == "" {
		r.Version = "dev"
	}
	if full {
		r.GitCommit = orUnknown(version.GitCommit)
		r.GitMessage = orUnknown(version.GitMessage)
		r.BuildDate = orUnknown(version.BuildDate)
	}
	return r
}

func renderVersionPretty(out io.Writer, r versionReport) {
	fmt.Fprintf(out, "ember %s\n", version.Colored(r.Version))
	fmt.Fprintf(out, "  scripts need:  %s\n", strings.Join(r.Runtime, ", "))
	fmt.Fprintf(out, "  exports cache: schema %d\n", r.CacheSchema)
	if r.GitCommit == "" {
		return
	}
	fmt.Fprintf(out, "  commit:        %s\n", r.GitCommit)
	fmt.Fprintf(out, "  message:       %s\n", r.GitMessage)
	fmt.Fprintf(out, "  built:         %s\n", r.BuildDate)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
