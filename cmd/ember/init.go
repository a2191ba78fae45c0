package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ember/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new ember project",
	Long: `Initialize a new ember project by creating a manifest (ember.toml) and an
entry point (main.em). If [path|name] is omitted, initializes the current
directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized ember project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if created {
		fmt.Fprintln(out, "  - main.em")
	} else {
		fmt.Fprintln(out, "  - main.em (existing)")
	}
	return nil
}

// initProject writes ember.toml and, unless present, main.em into target.
// It reports whether main.em was created.
func initProject(target string) (bool, error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return false, fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "ember-project"
	}
	if _, err := project.WriteConfig(target, project.DefaultConfig(name)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, fmt.Errorf("project already initialized: %s exists", filepath.Join(target, project.ManifestName))
		}
		return false, err
	}

	mainPath := filepath.Join(target, "main.em")
	if _, err := os.Stat(mainPath); !errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := os.WriteFile(mainPath, []byte(defaultMain), 0o644); err != nil {
		return false, fmt.Errorf("failed to write main.em: %w", err)
	}
	return true, nil
}

const defaultMain = `pub fun greet(name: Text): Text {
    return "Hello, " + name
}

let who = "ember"
echo greet(who)
`
