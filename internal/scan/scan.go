// Package scan lists the installed versions of pylon libraries by looking at
// the file names in a library directory.
package scan

import (
	"os"

	"github.com/goplus/pylonconf/internal/resolve"
	"github.com/goplus/pylonconf/pkgs/libver"
	"github.com/qiniu/x/log"
)

// Scanner finds library versions in Dir. Only file names are inspected.
type Scanner struct {
	Dir     string
	Grammar libver.Grammar
	Log     *log.Logger // log.Std if nil
}

var _ resolve.Source = (*Scanner)(nil)

// New creates a Scanner for dir using the Linux naming grammar.
func New(dir string) *Scanner {
	return &Scanner{Dir: dir, Grammar: libver.LinuxGrammar}
}

// Versions returns one version per file in s.Dir that is a build of lib.
// A missing or unreadable directory yields no versions.
func (s *Scanner) Versions(lib string) []libver.Version {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		// entries still holds what was read before the error
		s.logger().Debugf("scan: %v", err)
	}
	var versions []libver.Version
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if v, ok := s.Grammar.Parse(entry.Name(), lib); ok {
			versions = append(versions, v)
		}
	}
	return versions
}

// Inventory scans every library in libs, including those without versions.
func (s *Scanner) Inventory(libs []string) []resolve.Inventory {
	inv := make([]resolve.Inventory, len(libs))
	for i, lib := range libs {
		inv[i] = resolve.Inventory{Library: lib, Versions: s.Versions(lib)}
	}
	return inv
}

func (s *Scanner) logger() *log.Logger {
	if s.Log == nil {
		return log.Std
	}
	return s.Log
}

func (s *Scanner) String() string {
	return s.Dir
}
