package scan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/goplus/pylonconf/internal/resolve"
	"github.com/goplus/pylonconf/pkgs/libver"
	"github.com/qiniu/x/log"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestVersions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"libGenApi_gcc_v3_1_Basler_pylon.so",
		"libGenApi_gcc_v3_1_Basler_pylon_v1_2.so",
		"libGenApi_gcc_v3_0_Basler_pylon_v5_0.so",
		"libGenApi_gcc_vX_1_Basler_pylon.so",
		"libGCBase_gcc_v3_1_Basler_pylon.so",
		"libpylonbase.so",
		"README.txt",
	)
	if err := os.Mkdir(filepath.Join(dir, "libGenApi_gcc_v9_9_Basler_pylon.so"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := New(dir).Versions("GenApi")
	libver.Sort(got)
	want := []libver.Version{
		{Major: 3, Minor: 1, Suffix: "v1_2"},
		{Major: 3, Minor: 1},
		{Major: 3, Minor: 0, Suffix: "v5_0"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Versions(GenApi) = %v, want %v", got, want)
	}
}

func TestVersionsMissingDir(t *testing.T) {
	var buf bytes.Buffer
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	s.Log = log.New(&buf, "", 0)
	if got := s.Versions("GenApi"); len(got) != 0 {
		t.Errorf("Versions() = %v, want none", got)
	}
	if !strings.Contains(buf.String(), "scan: ") || !strings.Contains(buf.String(), "does-not-exist") {
		t.Errorf("log output = %q, want the read error", buf.String())
	}
}

func TestVersionsFileAsDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "lib")
	if got := New(filepath.Join(dir, "lib")).Versions("GenApi"); len(got) != 0 {
		t.Errorf("Versions() = %v, want none", got)
	}
}

func TestVersionsUnrelatedOnly(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "README.txt", "libLog.so", "libLog_gcc_v3_1.so")
	if got := New(dir).Versions("Log"); len(got) != 0 {
		t.Errorf("Versions(Log) = %v, want none", got)
	}
}

func TestScannerAsSource(t *testing.T) {
	dir := t.TempDir()
	libs := []string{"GenApi", "GCBase", "Log"}
	touch(t, dir,
		"libGenApi_gcc_v3_1_Basler_pylon.so",
		"libGenApi_gcc_v3_1_Basler_pylon_v7_4_0.so",
		"libGCBase_gcc_v3_1_Basler_pylon.so",
		"libGCBase_gcc_v3_1_Basler_pylon_v7_4_0.so",
		"libLog_gcc_v3_1_Basler_pylon.so",
		"README.txt",
	)

	s := New(dir)
	res, err := resolve.Common(s, libs)
	if err != nil {
		t.Fatalf("Common() error = %v", err)
	}
	if got, want := res.String(), "gcc_v3_1_Basler_pylon"; got != want {
		t.Errorf("Common() = %q, want %q", got, want)
	}

	touch(t, dir, "libLog_gcc_v3_1_Basler_pylon_v7_4_0.so")
	res, err = resolve.Common(s, libs)
	if err != nil {
		t.Fatalf("Common() error = %v", err)
	}
	if got, want := res.String(), "gcc_v3_1_Basler_pylon_v7_4_0"; got != want {
		t.Errorf("Common() = %q, want %q", got, want)
	}

	_, err = resolve.Common(s, append(libs, "MathParser"))
	var mle *resolve.MissingLibraryError
	if !errors.As(err, &mle) || mle.Library != "MathParser" || mle.Source != dir {
		t.Errorf("Common() error = %v, want missing MathParser in %s", err, dir)
	}
}

func TestInventory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libGenApi_gcc_v3_1_Basler_pylon.so")
	inv := New(dir).Inventory([]string{"GenApi", "Log"})
	if len(inv) != 2 {
		t.Fatalf("Inventory() has %d entries, want 2", len(inv))
	}
	if inv[0].Library != "GenApi" || len(inv[0].Versions) != 1 {
		t.Errorf("inv[0] = %v", inv[0])
	}
	if inv[1].Library != "Log" || len(inv[1].Versions) != 0 {
		t.Errorf("inv[1] = %v", inv[1])
	}
}
