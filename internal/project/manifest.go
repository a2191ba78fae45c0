package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing in ember.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrMainMissing indicates that [build].main is missing or empty.
	ErrMainMissing = errors.New("missing [build].main")
)

// Config mirrors ember.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig is the [build] section.
type BuildConfig struct {
	Main             string `toml:"main"`
	Out              string `toml:"out,omitempty"`
	MaxDiagnostics   int    `toml:"max_diagnostics,omitempty"`
	StopAtFirstError bool   `toml:"stop_at_first_error,omitempty"`
	Jobs             int    `toml:"jobs,omitempty"`
	UI               string `toml:"ui,omitempty"`
}

// Manifest is a loaded ember.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// MainPath returns [build].main resolved against the project root.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
}

// OutPath returns [build].out resolved against the project root, or "" when unset.
func (m *Manifest) OutPath() string {
	out := strings.TrimSpace(m.Config.Build.Out)
	if out == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

// LoadManifest locates ember.toml from startDir upwards and decodes it.
// ok is false when no manifest exists.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates one ember.toml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if strings.TrimSpace(cfg.Build.Main) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrMainMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// DefaultConfig is the manifest written by `ember init`.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Build:   BuildConfig{Main: "main.em", Out: "main.sh"},
	}
}

// WriteConfig writes cfg to dir/ember.toml. It refuses to overwrite an
// existing manifest.
func WriteConfig(dir string, cfg Config) (string, error) {
	path := filepath.Join(dir, ManifestName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, f.Close()
}
