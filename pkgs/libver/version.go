// Package libver defines the Version type of a pylon GenICam library build
// along with its ordering and filename grammar.
package libver

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// A Version represents one concrete build of a GenICam library as advertised
// by its file name, e.g. libGenApi_gcc_v3_1_Basler_pylon_v1_2.so.
type Version struct {
	Major  uint8  // toolchain major, e.g. 3
	Minor  uint8  // toolchain minor, e.g. 1
	Suffix string // vendor suffix (e.g. "v1_2"), empty for the base release
}

// String renders v the way the vendor toolchain names its libraries:
//
//	gcc_v<Major>_<Minor>_Basler_pylon[_<Suffix>]
//
// The result is used verbatim as part of a linker library name.
func (v Version) String() string {
	if v.Suffix == "" {
		return fmt.Sprintf("%s_v%d_%d_%s", toolchainTag, v.Major, v.Minor, vendorTag)
	}
	return fmt.Sprintf("%s_v%d_%d_%s_%s", toolchainTag, v.Major, v.Minor, vendorTag, v.Suffix)
}

// LinkName returns the linker library name of lib built as v.
func (v Version) LinkName(lib string) string {
	return lib + "_" + v.String()
}

// Compare compares two versions and returns:
//   - a negative value if a < b
//   - zero if a == b
//   - a positive value if a > b
//
// Major and Minor are compared numerically, then the suffixes with
// CompareSuffix. Suffixes that CompareSuffix treats as equal but that differ
// literally ("v1" and "v1_0") are ordered by their text, so Compare is zero
// only for identical versions.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := CompareSuffix(a.Suffix, b.Suffix); c != 0 {
		return c
	}
	return strings.Compare(a.Suffix, b.Suffix)
}

// CompareSuffix compares two vendor suffixes of the form [v]N(_N)*.
// An empty suffix predates any qualified release. Components are compared
// numerically from left to right and a missing trailing component counts
// as zero.
func CompareSuffix(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	as, bs := suffixParts(a), suffixParts(b)
	for i := 0; i < max(len(as), len(bs)); i++ {
		var x, y uint64
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// suffixParts splits a suffix into its numeric components. Components that
// are not numbers are dropped.
func suffixParts(s string) []uint64 {
	s = strings.TrimPrefix(s, suffixMarker)
	var parts []uint64
	for _, field := range splitDelims(s) {
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		parts = append(parts, n)
	}
	return parts
}

// splitDelims splits s at every '_' or '.', keeping empty fields.
func splitDelims(s string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(s); i++ {
		if isDelim(s[i]) {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	return append(fields, s[start:])
}

func isDelim(c byte) bool {
	return c == '_' || c == '.'
}

// Max returns the newest version in vs. It reports false if vs is empty.
func Max(vs []Version) (Version, bool) {
	if len(vs) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(vs, Compare), true
}

// Sort sorts vs newest first.
func Sort(vs []Version) {
	slices.SortFunc(vs, func(a, b Version) int {
		return Compare(b, a)
	})
}
