package libver

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		lib    string
		want   Version
		wantOK bool
	}{
		{"suffixed", "libGenApi_gcc_v3_1_Basler_pylon_v1_2.so", "GenApi", Version{3, 1, "v1_2"}, true},
		{"base release", "libGenApi_gcc_v3_1_Basler_pylon.so", "GenApi", Version{3, 1, ""}, true},
		{"bare number suffix", "libGCBase_gcc_v3_1_Basler_pylon_2.so", "GCBase", Version{3, 1, "2"}, true},
		{"legacy 5.0", "libGenApi_gcc_v3_0_Basler_pylon_v5_0.so", "GenApi", Version{3, 0, "v5_0"}, true},
		{"largest toolchain", "libLog_gcc_v255_0_Basler_pylon.so", "Log", Version{255, 0, ""}, true},

		{"unrelated file", "README.txt", "GenApi", Version{}, false},
		{"other library", "libGCBase_gcc_v3_1_Basler_pylon.so", "GenApi", Version{}, false},
		{"versioned soname", "libGenApi_gcc_v3_1_Basler_pylon.so.1", "GenApi", Version{}, false},
		{"wrong vendor", "libGenApi_gcc_v3_1_Acme.so", "GenApi", Version{}, false},
		{"non-numeric major", "libGenApi_gcc_vX_1_Basler_pylon.so", "GenApi", Version{}, false},
		{"single component", "libGenApi_gcc_v3_Basler_pylon.so", "GenApi", Version{}, false},
		{"out of range", "libGenApi_gcc_v300_1_Basler_pylon.so", "GenApi", Version{}, false},
		{"prefix collision", "libGenApiX_gcc_v3_1_Basler_pylon.so", "GenApi", Version{}, false},
		{"static archive", "libGenApi_gcc_v3_1_Basler_pylon.a", "GenApi", Version{}, false},
		{"dotted toolchain", "libLog_gcc_v3.1_Basler_pylon.so", "Log", Version{}, false},
		{"extra toolchain component", "libLog_gcc_v3_1_0_Basler_pylon.so", "Log", Version{}, false},
		{"leading zero", "libLog_gcc_v03_1_Basler_pylon.so", "Log", Version{}, false},
		{"vendor run-on", "libLog_gcc_v3_1_Basler_pylonX.so", "Log", Version{}, false},
		{"dotted suffix", "libLog_gcc_v3_1_Basler_pylon.v1.so", "Log", Version{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LinuxGrammar.Parse(tt.file, tt.lib)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q, %q) ok = %v, want %v", tt.file, tt.lib, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q, %q) = %#v, want %#v", tt.file, tt.lib, got, tt.want)
			}
		})
	}
}

func TestParseRenderRoundTrip(t *testing.T) {
	files := []struct{ file, lib string }{
		{"libGenApi_gcc_v3_1_Basler_pylon_v1_2.so", "GenApi"},
		{"libGenApi_gcc_v3_1_Basler_pylon.so", "GenApi"},
		{"libNodeMapData_gcc_v3_0_Basler_pylon_v5_0.so", "NodeMapData"},
		{"libXmlParser_gcc_v3_1_Basler_pylon_v7_4_0.so", "XmlParser"},
		{"libMathParser_gcc_v12_0_Basler_pylon_2.so", "MathParser"},
	}
	for _, f := range files {
		v, ok := LinuxGrammar.Parse(f.file, f.lib)
		if !ok {
			t.Fatalf("Parse(%q) failed", f.file)
		}
		versionPart := strings.TrimSuffix(strings.TrimPrefix(f.file, "lib"+f.lib+"_"), ".so")
		if got := v.String(); got != versionPart {
			t.Errorf("render(%q) = %q, want %q", f.file, got, versionPart)
		}
		if got := LinuxGrammar.FileName(f.lib, v); got != f.file {
			t.Errorf("FileName = %q, want %q", got, f.file)
		}
	}
}
