package platform

import (
	"path/filepath"

	"github.com/goplus/pylonconf/internal/directive"
	"github.com/goplus/pylonconf/internal/env"
	"github.com/goplus/pylonconf/pkgs/libver"
	"github.com/qiniu/x/log"
)

const defaultFrameworkDir = "/Library/Frameworks"

var darwinMajors = []int{6, 7}

// darwinGenICam is the GenICam build bundled in pylon.framework for every
// supported major version.
var darwinGenICam = libver.Version{Major: 3, Minor: 1}

type darwin struct {
	log *log.Logger
}

func (d *darwin) Configure(cfg *env.Config, set *directive.Set) error {
	if err := checkMajor("darwin", cfg.Major, darwinMajors); err != nil {
		return err
	}
	fwDir := cfg.FrameworkDir
	if fwDir == "" {
		fwDir = defaultFrameworkDir
	}
	framework := filepath.Join(fwDir, "pylon.framework")
	d.log.Debugf("using %s", framework)

	set.LinkArg("-Wl,-ld_classic")
	set.LibDir(filepath.Join(framework, "Libraries"))
	set.Link("pylonbase", "pylonutility")
	for _, lib := range GenICamLibs {
		set.Link(darwinGenICam.LinkName(lib))
	}

	set.Flag("-std=c++14", "-F"+fwDir)
	set.Include(filepath.Join(framework, "Versions", "A", "Headers", "GenICam"))
	return nil
}
