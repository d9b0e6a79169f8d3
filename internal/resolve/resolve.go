// Package resolve selects the newest library version installed consistently
// for every library of a required set.
package resolve

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goplus/pylonconf/pkgs/libver"
)

var (
	// ErrNoLibraries is returned when the required set is empty.
	ErrNoLibraries = errors.New("no required libraries")

	// ErrMissingLibrary indicates a required library has no installed version.
	ErrMissingLibrary = errors.New("missing library")

	// ErrNoCommonVersion indicates every library is installed but no version
	// is shared by all of them.
	ErrNoCommonVersion = errors.New("no common version across all required libraries")
)

// Source lists the installed versions of a library.
type Source interface {
	// Versions returns every installed version of lib, in no particular
	// order. Duplicates are allowed.
	Versions(lib string) []libver.Version

	// String describes where versions are looked up, e.g. a directory.
	String() string
}

// Inventory is the set of versions found for one library.
type Inventory struct {
	Library  string
	Versions []libver.Version
}

func (inv Inventory) String() string {
	vs := slices.Clone(inv.Versions)
	libver.Sort(vs)
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.String()
	}
	return fmt.Sprintf("%s: [%s]", inv.Library, strings.Join(names, ", "))
}

// Result is the outcome of a successful resolution.
type Result struct {
	Version   libver.Version
	Inventory []Inventory // per library, in required order
}

// String returns the rendered winning version.
func (r *Result) String() string {
	return r.Version.String()
}

// MissingLibraryError is returned when a required library has no version.
type MissingLibraryError struct {
	Library string
	Source  string
}

func (e *MissingLibraryError) Error() string {
	return fmt.Sprintf("%v: no versions of %s found in %s", ErrMissingLibrary, e.Library, e.Source)
}

func (e *MissingLibraryError) Unwrap() error {
	return ErrMissingLibrary
}

// NoCommonVersionError is returned when the installed versions do not
// intersect. It carries the full inventory to diagnose partial installs.
type NoCommonVersionError struct {
	Source    string
	Inventory []Inventory
}

func (e *NoCommonVersionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v in %s:", ErrNoCommonVersion, e.Source)
	for _, inv := range e.Inventory {
		b.WriteString("\n\t")
		b.WriteString(inv.String())
	}
	return b.String()
}

func (e *NoCommonVersionError) Unwrap() error {
	return ErrNoCommonVersion
}

// Common returns the newest version present for every library in libs.
//
// The versions of the first library are the candidates; a candidate is kept
// only if every other library has it too. The order of libs therefore does
// not change the result.
func Common(src Source, libs []string) (*Result, error) {
	if len(libs) == 0 {
		return nil, ErrNoLibraries
	}

	inventory := make([]Inventory, 0, len(libs))
	for _, lib := range libs {
		versions := src.Versions(lib)
		if len(versions) == 0 {
			return nil, &MissingLibraryError{Library: lib, Source: src.String()}
		}
		inventory = append(inventory, Inventory{Library: lib, Versions: versions})
	}

	var common []libver.Version
	for _, v := range inventory[0].Versions {
		if inAll(v, inventory[1:]) {
			common = append(common, v)
		}
	}

	best, ok := libver.Max(common)
	if !ok {
		return nil, &NoCommonVersionError{Source: src.String(), Inventory: inventory}
	}
	return &Result{Version: best, Inventory: inventory}, nil
}

func inAll(v libver.Version, others []Inventory) bool {
	for _, inv := range others {
		if !slices.Contains(inv.Versions, v) {
			return false
		}
	}
	return true
}
