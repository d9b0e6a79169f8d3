// Package env loads the pylonconf configuration from the environment and an
// optional YAML file.
package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Environment variables consumed by pylonconf.
const (
	VersionKey      = "PYLON_VERSION"     // major SDK version, e.g. 6
	RootKey         = "PYLON_ROOT"        // installation root (Linux)
	DevDirKey       = "PYLON_DEV_DIR"     // development kit root (Windows)
	FrameworkDirKey = "PYLONFRAMEWORKDIR" // directory containing pylon.framework (macOS)
)

// Keys lists every environment variable that affects the configuration.
var Keys = []string{VersionKey, RootKey, DevDirKey, FrameworkDirKey}

// FileName is the name of the per-project configuration file.
const FileName = "pylonconf.yaml"

// FeatureStream enables the stream grabbing part of the shim.
const FeatureStream = "stream"

// ErrInvalidVersion is returned for a version hint that is not a version.
var ErrInvalidVersion = errors.New("invalid pylon version")

// Config is the input of a discovery pass.
type Config struct {
	Major        int      `yaml:"-"`                       // 0 if not given
	Version      string   `yaml:"version,omitempty"`       // raw version hint
	Root         string   `yaml:"root,omitempty"`          // PYLON_ROOT
	DevDir       string   `yaml:"dev_dir,omitempty"`       // PYLON_DEV_DIR
	FrameworkDir string   `yaml:"framework_dir,omitempty"` // PYLONFRAMEWORKDIR
	Target       string   `yaml:"target,omitempty"`        // GOOS to configure for
	Features     []string `yaml:"features,omitempty"`

	// The C++ shim compiled against the SDK.
	Include string   `yaml:"include,omitempty"`
	Sources []string `yaml:"sources,omitempty"`
	Headers []string `yaml:"headers,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Include: "include",
		Sources: []string{"src/pylon-cxx.cc"},
		Headers: []string{"include/catcher.h", "include/pylon-cxx.h"},
	}
}

// HasFeature reports whether feature is enabled.
func (c *Config) HasFeature(feature string) bool {
	return slices.Contains(c.Features, feature)
}

// SetVersion parses and records a version hint. An empty hint clears it.
func (c *Config) SetVersion(hint string) error {
	if hint == "" {
		c.Version, c.Major = "", 0
		return nil
	}
	major, err := ParseMajor(hint)
	if err != nil {
		return err
	}
	c.Version, c.Major = hint, major
	return nil
}

// ParseMajor extracts the major version from a hint such as "6", "v7" or
// "6.2.0".
func ParseMajor(hint string) (int, error) {
	v := strings.TrimSpace(hint)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, hint)
	}
	major, err := strconv.Atoi(strings.TrimPrefix(semver.Major(v), "v"))
	if err != nil || major < 1 || major > 255 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, hint)
	}
	return major, nil
}

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration: defaults, then the file at path (if any),
// then the environment. If path is empty, the first existing file among
// DefaultFiles is used.
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = findFile()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.SetVersion(c.Version); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with the non-empty variables of Keys.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		val, ok := lookup(key)
		return val, ok && val != ""
	}
	if val, ok := get(VersionKey); ok {
		if err := c.SetVersion(val); err != nil {
			return fmt.Errorf("%s: %w", VersionKey, err)
		}
	}
	if val, ok := get(RootKey); ok {
		c.Root = val
	}
	if val, ok := get(DevDirKey); ok {
		c.DevDir = val
	}
	if val, ok := get(FrameworkDirKey); ok {
		c.FrameworkDir = val
	}
	return nil
}

// DefaultFiles returns the configuration files looked up when none is given:
// FileName in the working directory, then config.yaml in the user
// configuration directory.
func DefaultFiles() []string {
	files := []string{FileName}
	if dir, err := ConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "config.yaml"))
	}
	return files
}

func findFile() string {
	for _, file := range DefaultFiles() {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return file
		}
	}
	return ""
}

// ConfigDir returns the user level pylonconf directory.
func ConfigDir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "pylonconf"), nil
}
