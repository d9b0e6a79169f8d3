// Package platform turns a configuration into build directives for one of
// the operating systems the pylon SDK ships for.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/goplus/pylonconf/internal/env"
	"github.com/qiniu/x/log"
)

var (
	// ErrUnsupportedPlatform indicates the target OS has no pylon SDK.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrUnsupportedVersion indicates the requested major version is not
	// supported on the target OS.
	ErrUnsupportedVersion = errors.New("unsupported pylon version")

	// ErrVersionMismatch indicates the version hint contradicts the
	// installation root.
	ErrVersionMismatch = errors.New("pylon version does not match installation root")

	// ErrUndetectedVersion indicates none of the known pylon 5 releases was
	// found.
	ErrUndetectedVersion = errors.New("could not detect pylon library version")
)

// GenICamLibs are the GenICam libraries that must be linked with matching
// versions.
var GenICamLibs = []string{"GenApi", "GCBase", "Log", "MathParser", "XmlParser", "NodeMapData"}

// A Configurator adds the directives needed to build against the SDK on one
// OS.
type Configurator interface {
	Configure(cfg *env.Config, set *directive.Set) error
}

// For returns the Configurator of goos. A nil logger logs to log.Std.
func For(goos string, logger *log.Logger) (Configurator, error) {
	if logger == nil {
		logger = log.Std
	}
	switch goos {
	case "linux":
		return &linux{log: logger}, nil
	case "darwin":
		return &darwin{log: logger}, nil
	case "windows":
		return &windows{log: logger}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}

// Configure runs a discovery pass for cfg.Target, or the host OS if no
// target is set, and returns the resulting directives.
func Configure(cfg *env.Config, logger *log.Logger) (*directive.Set, error) {
	goos := cfg.Target
	if goos == "" {
		goos = runtime.GOOS
	}
	c, err := For(goos, logger)
	if err != nil {
		return nil, err
	}
	set := &directive.Set{}
	common(cfg, set, goos)
	if err := c.Configure(cfg, set); err != nil {
		return nil, err
	}
	return set, nil
}

// common adds the directives shared by every OS: change tracking, the shim
// itself and feature defines.
func common(cfg *env.Config, set *directive.Set, goos string) {
	set.TrackEnv(env.Keys...)
	set.TrackFile(cfg.Headers...)
	set.TrackFile(cfg.Sources...)
	set.Source(cfg.Sources...)
	if cfg.Include != "" {
		set.Include(cfg.Include)
	}
	if cfg.HasFeature(env.FeatureStream) {
		if goos == "windows" {
			set.Define("FEATURE_STREAM_WINDOWS", "")
		} else {
			set.Define("FEATURE_STREAM_UNIX", "")
		}
	}
}

func checkMajor(goos string, major int, supported []int) error {
	if major == 0 || slices.Contains(supported, major) {
		return nil
	}
	return fmt.Errorf("%w on %s: %d (supported: %v)", ErrUnsupportedVersion, goos, major, supported)
}
