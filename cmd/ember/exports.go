package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/driver"
	"ember/internal/symbols"
)

var exportsCmd = &cobra.Command{
	Use:   "exports [flags] file.em",
	Short: "List the cached public functions of an ember source file",
	Long: `Exports reads the exports cache written by 'ember build --export-cache'.
The entry must match the current content of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExports,
}

func init() {
	exportsCmd.Flags().String("cache-dir", "", "exports cache directory (default: user cache dir)")
}

func runExports(cmd *cobra.Command, args []string) error {
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	payload, ok, err := cache.LookupExports(args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: no cached exports for the current content (run 'ember build --export-cache')", args[0])
	}
	writeExports(cmd.OutOrStdout(), payload)
	return nil
}

func writeExports(w io.Writer, payload *driver.ExportsPayload) {
	fmt.Fprintf(w, "%s (%s)\n", payload.Path, payload.ContentHash.Hex()[:12])
	if len(payload.Functions) == 0 {
		fmt.Fprintln(w, "  no public functions")
		return
	}
	for _, fn := range payload.Functions {
		fmt.Fprintf(w, "  %s\n", signature(fn))
	}
}

func signature(fn symbols.ExportedFunction) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		if p.Type.IsGeneric() {
			params[i] = p.Name
		} else {
			params[i] = p.Name + ": " + p.Type.String()
		}
	}
	sig := fmt.Sprintf("pub fun %s(%s)", fn.Name, strings.Join(params, ", "))
	if !fn.Returns.IsGeneric() {
		sig += ": " + fn.Returns.String()
	}
	return sig
}
