// Package directive accumulates the compiler and linker directives needed to
// build against the pylon SDK and writes them out in several formats.
package directive

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnquotable is returned for an argument that has no quoted form in the
// syntax being written.
var ErrUnquotable = errors.New("argument cannot be quoted")

// Define is a preprocessor definition. An empty Value defines Name alone.
type Define struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

func (d Define) flag() string {
	if d.Value == "" {
		return "-D" + d.Name
	}
	return "-D" + d.Name + "=" + d.Value
}

// Set is an ordered collection of build directives. Adding an entry that is
// already present is a no-op.
type Set struct {
	IncludeDirs  []string `yaml:"include_dirs,omitempty" json:"include_dirs,omitempty"`
	LibDirs      []string `yaml:"lib_dirs,omitempty" json:"lib_dirs,omitempty"`
	Libs         []string `yaml:"libs,omitempty" json:"libs,omitempty"`
	LinkArgs     []string `yaml:"link_args,omitempty" json:"link_args,omitempty"`
	CompileFlags []string `yaml:"compile_flags,omitempty" json:"compile_flags,omitempty"`
	Defines      []Define `yaml:"defines,omitempty" json:"defines,omitempty"`
	Sources      []string `yaml:"sources,omitempty" json:"sources,omitempty"`
	TrackEnvs    []string `yaml:"track_env,omitempty" json:"track_env,omitempty"`
	TrackFiles   []string `yaml:"track_files,omitempty" json:"track_files,omitempty"`
}

func add[T comparable](list []T, items ...T) []T {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}

// Include adds header search directories.
func (s *Set) Include(dirs ...string) *Set {
	s.IncludeDirs = add(s.IncludeDirs, dirs...)
	return s
}

// LibDir adds library search directories.
func (s *Set) LibDir(dirs ...string) *Set {
	s.LibDirs = add(s.LibDirs, dirs...)
	return s
}

// Link adds libraries to link against, by link name (without "lib" prefix
// and extension).
func (s *Set) Link(libs ...string) *Set {
	s.Libs = add(s.Libs, libs...)
	return s
}

// LinkArg adds raw linker arguments.
func (s *Set) LinkArg(args ...string) *Set {
	s.LinkArgs = add(s.LinkArgs, args...)
	return s
}

// Flag adds raw compiler flags.
func (s *Set) Flag(flags ...string) *Set {
	s.CompileFlags = add(s.CompileFlags, flags...)
	return s
}

// Define adds a preprocessor definition. Redefining a name replaces its
// value in place.
func (s *Set) Define(name, value string) *Set {
	i := slices.IndexFunc(s.Defines, func(d Define) bool { return d.Name == name })
	if i >= 0 {
		s.Defines[i].Value = value
		return s
	}
	s.Defines = append(s.Defines, Define{Name: name, Value: value})
	return s
}

// Source adds C++ sources of the shim to compile.
func (s *Set) Source(files ...string) *Set {
	s.Sources = add(s.Sources, files...)
	return s
}

// TrackEnv declares environment variables whose change invalidates the
// directives.
func (s *Set) TrackEnv(keys ...string) *Set {
	s.TrackEnvs = add(s.TrackEnvs, keys...)
	return s
}

// TrackFile declares files whose change invalidates the directives.
func (s *Set) TrackFile(paths ...string) *Set {
	s.TrackFiles = add(s.TrackFiles, paths...)
	return s
}

// CPPFlags returns the -I and -D arguments.
func (s *Set) CPPFlags() []string {
	var flags []string
	for _, dir := range s.IncludeDirs {
		flags = append(flags, "-I"+dir)
	}
	for _, def := range s.Defines {
		flags = append(flags, def.flag())
	}
	return flags
}

// CFlags returns the raw compiler flags followed by CPPFlags.
func (s *Set) CFlags() []string {
	return append(slices.Clone(s.CompileFlags), s.CPPFlags()...)
}

// LDFlags returns the linker arguments: -L, raw arguments, then -l.
func (s *Set) LDFlags() []string {
	return s.ldFlags(s.LinkArgs)
}

func (s *Set) ldFlags(linkArgs []string) []string {
	var flags []string
	for _, dir := range s.LibDirs {
		flags = append(flags, "-L"+dir)
	}
	flags = append(flags, linkArgs...)
	for _, lib := range s.Libs {
		flags = append(flags, "-l"+lib)
	}
	return flags
}

// quoteFunc quotes a single argument for a given consumer.
type quoteFunc func(arg string) string

// cgoQuote quotes for #cgo directive lines, where backslash is an escape
// character even inside quotes.
func cgoQuote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\"'\\") {
		return arg
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(arg) + `"`
}

// goQuote quotes for CGO_* variables, which Go splits honoring quotes but
// no escapes. An argument holding both kinds of quote has no such form.
func goQuote(arg string) (string, error) {
	switch {
	case arg != "" && !strings.ContainsAny(arg, " \t\n\"'"):
		return arg, nil
	case !strings.Contains(arg, "'"):
		return "'" + arg + "'", nil
	case !strings.Contains(arg, `"`):
		return `"` + arg + `"`, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnquotable, arg)
}

// shellQuote quotes a whole word for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// wordEscape backslash-escapes spaces the way pkg-config prints paths.
func wordEscape(arg string) string {
	return strings.ReplaceAll(arg, " ", `\ `)
}

func joinGo(args []string) (string, error) {
	quoted := make([]string, len(args))
	for i, arg := range args {
		q, err := goQuote(arg)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}

func join(args []string, quote quoteFunc) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = quote(arg)
	}
	return strings.Join(quoted, " ")
}
