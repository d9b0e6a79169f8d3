package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CgoOptions controls the Go source file written by WriteCgo.
type CgoOptions struct {
	Package   string // package clause, required
	GOOS      string // build constraint; none if empty
	Generator string // tool name in the "Code generated" header

	// AllowLinkArgs keeps linker arguments the go command rejects in
	// #cgo LDFLAGS; the header then names the CGO_LDFLAGS_ALLOW value the
	// build needs. Otherwise such arguments are left out and the header
	// names the CGO_LDFLAGS value that carries them.
	AllowLinkArgs bool
}

// cgoLinkArgs lists the raw linker arguments the go command accepts in
// #cgo LDFLAGS (see cmd/go/internal/work/security.go). -L and -l are
// always accepted and not listed.
var cgoLinkArgs = []*regexp.Regexp{
	exact(`-pthread`),
	exact(`-rdynamic`),
	exact(`-F([^@\-].*)`),
	exact(`-Wl,--(no-)?as-needed`),
	exact(`-Wl,--(no-)?gc-sections`),
	exact(`-Wl,--(push|pop)-state`),
	exact(`-Wl,-rpath(-link)?[=,]([^,@\-][^,]+)`),
	exact(`-Wl,-z,(no)?(relro|now|origin)`),
	exact(`-Wl,-framework,[^,@\-][^,]+`),
}

func exact(expr string) *regexp.Regexp {
	return regexp.MustCompile("^" + expr + "$")
}

func cgoAllowed(arg string) bool {
	for _, re := range cgoLinkArgs {
		if re.MatchString(arg) {
			return true
		}
	}
	return false
}

// WriteCgo writes a Go source file whose #cgo directives carry s. Compiling
// the file into a package makes cgo build the package's C++ sources against
// the SDK. Raw compile flags are C++ only.
func (s *Set) WriteCgo(w io.Writer, opts CgoOptions) error {
	if opts.Package == "" {
		return fmt.Errorf("directive: package name is required")
	}
	generator := opts.Generator
	if generator == "" {
		generator = "pylonconf"
	}

	var linkArgs, rejected []string
	for _, arg := range s.LinkArgs {
		switch {
		case cgoAllowed(arg):
			linkArgs = append(linkArgs, arg)
		case opts.AllowLinkArgs:
			linkArgs = append(linkArgs, arg)
			rejected = append(rejected, arg)
		default:
			rejected = append(rejected, arg)
		}
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by %s; DO NOT EDIT.\n", generator)
	if len(s.TrackEnvs) > 0 || len(s.TrackFiles) > 0 {
		b.WriteString("//\n// Regenerate when any of these change:\n")
		for _, key := range s.TrackEnvs {
			fmt.Fprintf(&b, "//\tenv %s\n", key)
		}
		for _, file := range s.TrackFiles {
			fmt.Fprintf(&b, "//\tfile %s\n", file)
		}
	}
	if len(rejected) > 0 {
		if opts.AllowLinkArgs {
			allow := make([]string, len(rejected))
			for i, arg := range rejected {
				allow[i] = regexp.QuoteMeta(arg)
			}
			b.WriteString("//\n// go build rejects some of the linker flags below unless run with:\n")
			fmt.Fprintf(&b, "//\tCGO_LDFLAGS_ALLOW=%s\n", shellQuote(strings.Join(allow, "|")))
		} else {
			val, err := joinGo(rejected)
			if err != nil {
				return fmt.Errorf("directive: %w", err)
			}
			b.WriteString("//\n// Linker flags not allowed in #cgo directives; build with:\n")
			fmt.Fprintf(&b, "//\tCGO_LDFLAGS=%s\n", shellQuote(val))
		}
	}
	b.WriteString("\n")
	if opts.GOOS != "" {
		fmt.Fprintf(&b, "//go:build %s\n\n", opts.GOOS)
	}
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)

	b.WriteString("/*\n")
	if flags := s.CPPFlags(); len(flags) > 0 {
		fmt.Fprintf(&b, "#cgo CPPFLAGS: %s\n", join(flags, cgoQuote))
	}
	if len(s.CompileFlags) > 0 {
		fmt.Fprintf(&b, "#cgo CXXFLAGS: %s\n", join(s.CompileFlags, cgoQuote))
	}
	if flags := s.ldFlags(linkArgs); len(flags) > 0 {
		fmt.Fprintf(&b, "#cgo LDFLAGS: %s\n", join(flags, cgoQuote))
	}
	b.WriteString("*/\nimport \"C\"\n")

	src, err := format.Source(b.Bytes())
	if err != nil {
		return fmt.Errorf("directive: format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// WriteFlags writes the compiler flags, the linker flags or both on a single
// line, as pkg-config does.
func (s *Set) WriteFlags(w io.Writer, cflags, libs bool) error {
	var args []string
	if cflags {
		args = append(args, s.CFlags()...)
	}
	if libs {
		args = append(args, s.LDFlags()...)
	}
	_, err := fmt.Fprintln(w, join(args, wordEscape))
	return err
}

// WriteEnv writes shell export statements for <prefix>CPPFLAGS,
// <prefix>CXXFLAGS and <prefix>LDFLAGS. With prefix "CGO_" the output can be
// sourced before "go build".
func (s *Set) WriteEnv(w io.Writer, prefix string) error {
	vars := []struct {
		name  string
		flags []string
	}{
		{"CPPFLAGS", s.CPPFlags()},
		{"CXXFLAGS", s.CompileFlags},
		{"LDFLAGS", s.LDFlags()},
	}
	var b strings.Builder
	for _, v := range vars {
		if len(v.flags) == 0 {
			continue
		}
		val, err := joinGo(v.flags)
		if err != nil {
			return fmt.Errorf("directive: %s%s: %w", prefix, v.name, err)
		}
		fmt.Fprintf(&b, "export %s%s=%s\n", prefix, v.name, shellQuote(val))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML writes s as a YAML document.
func (s *Set) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON writes s as indented JSON.
func (s *Set) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
