package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/goplus/pylonconf/internal/env"
	"github.com/goplus/pylonconf/internal/resolve"
	"github.com/goplus/pylonconf/internal/scan"
	"github.com/goplus/pylonconf/pkgs/libver"
	"github.com/qiniu/x/log"
)

const (
	legacyRoot = "/opt/pylon5"
	modernRoot = "/opt/pylon"

	legacyMajor = 5
	modernMajor = 6
)

// linuxMajors are the major versions supported on Linux. 5 is the legacy
// generation, 6 uses the discoverable naming grammar.
var linuxMajors = []int{legacyMajor, modernMajor}

type linux struct {
	log *log.Logger
}

func (l *linux) Configure(cfg *env.Config, set *directive.Set) error {
	major, root, err := linuxRoot(cfg)
	if err != nil {
		return err
	}

	set.Flag("-std=c++14")
	set.Include(filepath.Join(root, "include"))

	libDir := linuxLibDir(major, root)
	set.LibDir(libDir)

	// The SDK expects the GenICam libraries to be found through the rpath
	// of pylonbase; cgo cannot forward that, so every library is listed.
	set.Link("pylonc", "pylonbase", "pylonutility", "gxapi")

	if major == legacyMajor {
		v, err := l.detectLegacy(libDir)
		if err != nil {
			return err
		}
		for _, lib := range GenICamLibs {
			set.Link(v.LinkName(lib))
		}
		return nil
	}

	s := scan.New(libDir)
	s.Log = l.log
	res, err := resolve.Common(s, GenICamLibs)
	if err != nil {
		var missing *resolve.MissingLibraryError
		if errors.As(err, &missing) {
			l.log.Warnf("no versions found for %s", missing.Library)
		}
		return fmt.Errorf("could not find common library version for all required libraries: %w", err)
	}
	l.log.Info("available pylon versions by library:")
	for _, inv := range res.Inventory {
		l.log.Infof("\t%v", inv)
	}
	l.log.Infof("using common pylon library version: %v", res)
	for _, lib := range GenICamLibs {
		name := res.Version.LinkName(lib)
		l.log.Infof("found pylon library: %s", name)
		set.Link(name)
	}
	return nil
}

// linuxRoot returns the major version and installation root selected by cfg.
// A version hint that contradicts one of the default roots is an error.
func linuxRoot(cfg *env.Config) (major int, root string, err error) {
	if err := checkMajor("linux", cfg.Major, linuxMajors); err != nil {
		return 0, "", err
	}
	root = cfg.Root
	if root == "" {
		root = modernRoot
		if cfg.Major == legacyMajor {
			root = legacyRoot
		}
	}

	switch {
	case root == legacyRoot && cfg.Major != 0 && cfg.Major != legacyMajor,
		root == modernRoot && cfg.Major != 0 && cfg.Major != modernMajor:
		return 0, "", fmt.Errorf("%w: %s=%d, %s=%s", ErrVersionMismatch, env.VersionKey, cfg.Major, env.RootKey, root)
	case cfg.Major != 0:
		return cfg.Major, root, nil
	case root == legacyRoot:
		return legacyMajor, root, nil
	}
	return modernMajor, root, nil
}

// LinuxLibDir returns the directory holding the libraries of the Linux
// installation selected by cfg.
func LinuxLibDir(cfg *env.Config) (string, error) {
	major, root, err := linuxRoot(cfg)
	if err != nil {
		return "", err
	}
	return linuxLibDir(major, root), nil
}

func linuxLibDir(major int, root string) string {
	if major == legacyMajor {
		return filepath.Join(root, "lib64")
	}
	return filepath.Join(root, "lib")
}

// legacyReleases are the pylon 5 releases, newest first, each with a file
// whose presence identifies it. Their GenICam libraries do not carry a
// uniform suffix, so they are not discovered by scanning.
var legacyReleases = []struct {
	name    string
	probe   string
	version libver.Version
}{
	{"5.2", "libpylon_TL_usb-5.2.0.so", libver.Version{Major: 3, Minor: 1}},
	{"5.1", "libGenApi_gcc_v3_1_Basler_pylon_v5_1.so", libver.Version{Major: 3, Minor: 1, Suffix: "v5_1"}},
	{"5.0", "libGenApi_gcc_v3_0_Basler_pylon_v5_0.so", libver.Version{Major: 3, Minor: 0, Suffix: "v5_0"}},
}

func (l *linux) detectLegacy(libDir string) (libver.Version, error) {
	for _, rel := range legacyReleases {
		file := filepath.Join(libDir, rel.probe)
		if _, err := os.Stat(file); err != nil {
			l.log.Infof("pylon build: checking for file %s...not found", file)
			continue
		}
		l.log.Infof("pylon build: checking for file %s...found", file)
		l.log.Infof("using pylon %s libraries: %v", rel.name, rel.version)
		return rel.version, nil
	}
	return libver.Version{}, fmt.Errorf("%w in %s", ErrUndetectedVersion, libDir)
}
