package libver

import (
	"strconv"
	"strings"
)

const (
	toolchainTag = "gcc"
	vendorTag    = "Basler_pylon"
	suffixMarker = "v"
)

// Grammar describes how a library file name carries its version:
//
//	<LibPrefix><BaseName>_<toolchain>_v<Major>_<Minor>_<vendor>[_<Suffix>]<Ext>
type Grammar struct {
	LibPrefix string // "lib" on Unix-like systems
	Ext       string // shared library extension, including the dot
}

// LinuxGrammar matches lib<BaseName>_gcc_v<Major>_<Minor>_Basler_pylon[_<Suffix>].so.
var LinuxGrammar = Grammar{LibPrefix: "lib", Ext: ".so"}

// Prefix returns the fixed file name prefix of lib's builds.
func (g Grammar) Prefix(lib string) string {
	return g.LibPrefix + lib + "_" + toolchainTag + "_v"
}

// Infix returns the vendor marker every matching file name contains.
func (g Grammar) Infix() string {
	return "_" + vendorTag
}

// Match reports whether name looks like a build of lib. It does not check
// that the version components parse.
func (g Grammar) Match(name, lib string) bool {
	return strings.HasPrefix(name, g.Prefix(lib)) &&
		strings.Contains(name, g.Infix()) &&
		strings.HasSuffix(name, g.Ext)
}

// Parse extracts the version from the file name of a build of lib.
// It reports false if name does not follow g, its toolchain version does
// not parse, or name is not exactly g.FileName(lib, v); such names belong to
// unrelated files or cannot be linked by the rendered name.
func (g Grammar) Parse(name, lib string) (Version, bool) {
	if !g.Match(name, lib) {
		return Version{}, false
	}
	rest, ok := strings.CutPrefix(name, g.Prefix(lib))
	if !ok {
		return Version{}, false
	}
	rest, ok = strings.CutSuffix(rest, g.Ext)
	if !ok {
		return Version{}, false
	}
	toolchain, suffix, ok := strings.Cut(rest, g.Infix())
	if !ok {
		return Version{}, false
	}

	fields := splitDelims(toolchain)
	if len(fields) < 2 {
		return Version{}, false
	}
	major, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return Version{}, false
	}

	if suffix != "" && isDelim(suffix[0]) {
		suffix = suffix[1:]
	}
	v := Version{Major: uint8(major), Minor: uint8(minor), Suffix: suffix}
	// The link name is derived from v, so v must name this very file.
	if g.FileName(lib, v) != name {
		return Version{}, false
	}
	return v, true
}

// FileName returns the file name of lib built as v under g.
func (g Grammar) FileName(lib string, v Version) string {
	return g.LibPrefix + v.LinkName(lib) + g.Ext
}
