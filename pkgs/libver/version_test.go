package libver

import (
	"slices"
	"testing"
)

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestCompareSuffix(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"v1_2", "v1_2", 0},

		// Empty is the base release
		{"", "v5_1", -1},
		{"v5_1", "", 1},
		{"", "0", -1},

		// Numeric, not lexicographic
		{"v5_1", "v5_2", -1},
		{"v5_10", "v5_9", 1},
		{"v10", "v9", 1},
		{"2", "10", -1},

		// Marker is optional
		{"v1_2", "1_2", 0},
		{"v7_4", "7_3", 1},

		// Missing trailing components count as zero
		{"v1", "v1_0", 0},
		{"v1", "v1_0_0", 0},
		{"v1", "v1_0_1", -1},
		{"v1_2_1", "v1_2", 1},

		// Dot delimiter
		{"v1.2", "v1_2", 0},
		{"v1.3", "v1_2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := sign(CompareSuffix(tt.a, tt.b)); got != tt.want {
				t.Errorf("CompareSuffix(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

var suffixes = []string{"", "0", "v1", "v1_0", "v1_2", "v1_10", "v2", "v5_1", "v5_2", "v10_0_1", "v7_4_0"}

func TestCompareSuffixOrdering(t *testing.T) {
	for _, a := range suffixes {
		if got := CompareSuffix(a, a); got != 0 {
			t.Errorf("CompareSuffix(%q, %q) = %d, want 0", a, a, got)
		}
		if a != "" && CompareSuffix("", a) >= 0 {
			t.Errorf("empty suffix is not below %q", a)
		}
		for _, b := range suffixes {
			ab, ba := sign(CompareSuffix(a, b)), sign(CompareSuffix(b, a))
			if ab != -ba {
				t.Errorf("antisymmetry violated: CompareSuffix(%q, %q)=%d, CompareSuffix(%q, %q)=%d", a, b, ab, b, a, ba)
			}
			for _, c := range suffixes {
				if CompareSuffix(a, b) <= 0 && CompareSuffix(b, c) <= 0 && CompareSuffix(a, c) > 0 {
					t.Errorf("transitivity violated: %q <= %q <= %q but %q > %q", a, b, c, a, c)
				}
			}
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Version
		want int
	}{
		{"major wins", Version{4, 0, ""}, Version{3, 9, "v9"}, 1},
		{"minor wins", Version{3, 0, "v9"}, Version{3, 1, ""}, -1},
		{"suffix decides", Version{3, 1, "v5_1"}, Version{3, 1, "v5_2"}, -1},
		{"qualified beats base", Version{3, 1, "2"}, Version{3, 1, ""}, 1},
		{"equal", Version{3, 1, "v1_2"}, Version{3, 1, "v1_2"}, 0},
		{"padding tie broken by text", Version{3, 1, "v1"}, Version{3, 1, "v1_0"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sign(Compare(tt.a, tt.b)); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareTotal(t *testing.T) {
	var vs []Version
	for _, major := range []uint8{0, 3, 255} {
		for _, minor := range []uint8{0, 1} {
			for _, s := range suffixes {
				vs = append(vs, Version{major, minor, s})
			}
		}
	}
	for _, a := range vs {
		for _, b := range vs {
			c := Compare(a, b)
			if (c == 0) != (a == b) {
				t.Errorf("Compare(%v, %v) = %d, equality is %v", a, b, c, a == b)
			}
			if sign(c) != -sign(Compare(b, a)) {
				t.Errorf("Compare not antisymmetric for %v, %v", a, b)
			}
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{3, 1, ""}, "gcc_v3_1_Basler_pylon"},
		{Version{3, 1, "v1_2"}, "gcc_v3_1_Basler_pylon_v1_2"},
		{Version{3, 0, "v5_0"}, "gcc_v3_0_Basler_pylon_v5_0"},
		{Version{3, 1, "2"}, "gcc_v3_1_Basler_pylon_2"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
	if got := (Version{3, 1, "v7_4"}).LinkName("GenApi"); got != "GenApi_gcc_v3_1_Basler_pylon_v7_4" {
		t.Errorf("LinkName = %q", got)
	}
}

func TestMaxAndSort(t *testing.T) {
	if _, ok := Max(nil); ok {
		t.Fatal("Max(nil) reported a version")
	}
	vs := []Version{{3, 1, ""}, {3, 0, "v9"}, {3, 1, "v1_2"}, {3, 1, "2"}}
	got, ok := Max(vs)
	if !ok || got != (Version{3, 1, "2"}) {
		t.Errorf("Max = %v, %v", got, ok)
	}

	Sort(vs)
	want := []Version{{3, 1, "2"}, {3, 1, "v1_2"}, {3, 1, ""}, {3, 0, "v9"}}
	if !slices.Equal(vs, want) {
		t.Errorf("Sort = %v, want %v", vs, want)
	}
}
