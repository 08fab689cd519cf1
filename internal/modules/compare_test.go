package modules

import (
	"fmt"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/conn-castle/nixos-needsreboot/internal/testutil"
)

func TestNewer(t *testing.T) {
	cases := []struct {
		name     string
		old, new string
		want     bool
	}{
		{"equal", "6.1.2", "6.1.2", false},
		{"patch bump", "5.10.2", "5.10.3", true},
		{"patch downgrade", "5.10.3", "5.10.2", false},
		{"numeric not lexical", "6.9", "6.10", true},
		{"major bump", "255.4", "256", true},
		{"rc on old only", "250-rc1", "251", true},
		{"rc on new only", "250", "251-rc1", true},
		{"final after rc", "251-rc3", "251", false},
		{"rc on both same length", "250-rc1", "250-rc2", true},
		{"rc on both different length", "250-rc9", "250-rc10", true},
		{"extra trailing segment ignored", "5.10", "5.10.1", false},
		{"later segment wins after a smaller one", "2.9", "1.10", true},
		{"non numeric segments compare as text", "255.4-minimal", "255.4-nonminimal", true},
		{"segments wider than uint64", "99999999999999999999", "100000000000000000000", true},
		{"wide segment downgrade", "100000000000000000000", "99999999999999999999", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Newer(tc.old, tc.new))
		})
	}
}

func TestNormalizePrerelease(t *testing.T) {
	cases := []struct {
		old, new         string
		wantOld, wantNew string
	}{
		{"250-rc1", "251", "250.1", "251.0"},
		{"251", "252-rc1", "251.0", "252.1"},
		{"250-rc9", "250-rc10", "250.9", "250.10"},
		{"5.10", "5.10.1", "5.10", "5.10.1"},
		{"250-rc1", "250-rc2", "250-rc1", "250-rc2"},
	}
	for _, tc := range cases {
		gotOld, gotNew := normalizePrerelease(tc.old, tc.new)
		require.Equal(t, tc.wantOld, gotOld, "%s vs %s", tc.old, tc.new)
		require.Equal(t, tc.wantNew, gotNew, "%s vs %s", tc.old, tc.new)
	}
}

func TestCompareSegment(t *testing.T) {
	require.Equal(t, -1, compareSegment("9", "10"))
	require.Equal(t, 1, compareSegment("10", "9"))
	require.Equal(t, 0, compareSegment("007", "7"))
	require.Equal(t, -1, compareSegment("10", "9a"))
	require.Equal(t, 0, compareSegment("rc", "rc"))
	require.Equal(t, 0, compareSegment("0", "000"))
	require.Equal(t, -1, compareSegment("18446744073709551616", "018446744073709551617"))
	require.Equal(t, 1, compareSegment("123456789012345678901234", "99999999999999999999"))
}

func versionGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		segments := rapid.SliceOfN(rapid.IntRange(0, 400), 1, 4).Draw(t, "segments")
		parts := make([]string, len(segments))
		for i, s := range segments {
			parts[i] = strconv.Itoa(s)
		}
		version := strings.Join(parts, ".")
		if rapid.Bool().Draw(t, "rc") {
			version += fmt.Sprintf("-rc%d", rapid.IntRange(1, 12).Draw(t, "rcNumber"))
		}
		return version
	})
}

func TestPropertyNewerIrreflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := versionGen().Draw(t, "version")
		if Newer(v, v) {
			t.Fatalf("%q reported newer than itself", v)
		}
	})
}

func TestPropertyBumpedSegmentIsNewer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segments := rapid.SliceOfN(rapid.IntRange(0, 400), 1, 4).Draw(t, "segments")
		idx := rapid.IntRange(0, len(segments)-1).Draw(t, "idx")
		bumped := make([]int, len(segments))
		copy(bumped, segments)
		bumped[idx]++

		oldVersion := joinInts(segments)
		newVersion := joinInts(bumped)
		if !Newer(oldVersion, newVersion) {
			t.Fatalf("expected %q to be newer than %q", newVersion, oldVersion)
		}
	})
}

func TestPropertySingleSegmentTotalOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 10000).Draw(t, "a")
		b := rapid.IntRange(0, 10000).Draw(t, "b")
		forward := Newer(strconv.Itoa(a), strconv.Itoa(b))
		backward := Newer(strconv.Itoa(b), strconv.Itoa(a))
		if forward != (b > a) || backward != (a > b) {
			t.Fatalf("a=%d b=%d forward=%v backward=%v", a, b, forward, backward)
		}
	})
}

func TestPropertyDigitSegmentsCompareAsIntegers(t *testing.T) {
	digits := rapid.StringMatching(`[0-9]{1,40}`)
	rapid.Check(t, func(t *rapid.T) {
		a := digits.Draw(t, "a")
		b := digits.Draw(t, "b")
		aInt, _ := new(big.Int).SetString(a, 10)
		bInt, _ := new(big.Int).SetString(b, 10)
		if got, want := compareSegment(a, b), aInt.Cmp(bInt); got != want {
			t.Fatalf("compareSegment(%q, %q) = %d, want %d", a, b, got, want)
		}
	})
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

func writeSystems(t *testing.T, old, new testutil.SystemLayout) RealSystem {
	t.Helper()
	prefix := t.TempDir()
	testutil.WriteSystem(t, prefix, "/run/booted-system", old)
	testutil.WriteSystem(t, prefix, "/nix/var/nix/profiles/system", new)
	return RealSystem{Prefix: prefix}
}

func TestUpgradesAvailable(t *testing.T) {
	cases := []struct {
		name     string
		old, new testutil.SystemLayout
		want     bool
	}{
		{
			name: "nothing changed",
			old:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			new:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			want: false,
		},
		{
			name: "kernel upgrade",
			old:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			new:  testutil.SystemLayout{Kernel: "6.1.3", Systemd: "255.4"},
			want: true,
		},
		{
			name: "systemd upgrade",
			old:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			new:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "256-rc1"},
			want: true,
		},
		{
			name: "smaller minor but larger patch",
			old:  testutil.SystemLayout{Kernel: "6.6.1", Systemd: "255.4"},
			new:  testutil.SystemLayout{Kernel: "6.1.70", Systemd: "255.4"},
			want: true,
		},
		{
			name: "kernel rollback",
			old:  testutil.SystemLayout{Kernel: "6.1.3", Systemd: "255.4"},
			new:  testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys := writeSystems(t, tc.old, tc.new)
			got, err := UpgradesAvailable(sys, "/run/booted-system", "/nix/var/nix/profiles/system")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestUpgradesAvailableLinkedRoots(t *testing.T) {
	cases := []struct {
		name           string
		booted, staged testutil.SystemLayout
		want           bool
	}{
		{
			name:   "kernel upgrade",
			booted: testutil.SystemLayout{ID: "24.05.1", Kernel: "6.1.2", Systemd: "255.4"},
			staged: testutil.SystemLayout{ID: "24.05.2", Kernel: "6.1.3", Systemd: "255.4"},
			want:   true,
		},
		{
			name:   "same components",
			booted: testutil.SystemLayout{ID: "24.05.1", Kernel: "6.1.2", Systemd: "255.4"},
			staged: testutil.SystemLayout{ID: "24.05.2", Kernel: "6.1.2", Systemd: "255.4"},
			want:   false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prefix := t.TempDir()
			testutil.WriteLinkedSystem(t, prefix, "/run/booted-system", tc.booted)
			testutil.WriteProfile(t, prefix, "/nix/var/nix/profiles/system", 2, tc.staged)

			got, err := UpgradesAvailable(RealSystem{Prefix: prefix}, "/run/booted-system", "/nix/var/nix/profiles/system")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestUpgradesAvailableShortCircuits(t *testing.T) {
	// the staged system has no systemd link; a newer kernel must end the scan first
	sys := writeSystems(t,
		testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
		testutil.SystemLayout{Kernel: "6.1.3"},
	)
	got, err := UpgradesAvailable(sys, "/run/booted-system", "/nix/var/nix/profiles/system")
	require.NoError(t, err)
	require.True(t, got)
}

func TestUpgradesAvailableShortCircuitSkipsReads(t *testing.T) {
	sys := &fakeSystem{
		links: map[string]string{
			"/old/kernel": "/nix/store/a-linux-6.1.2/bzImage",
			"/new/kernel": "/nix/store/b-linux-6.1.3/bzImage",
		},
		dirs: map[string][]string{
			"/nix/store/a-linux-6.1.2/lib/modules": {"6.1.2"},
			"/nix/store/b-linux-6.1.3/lib/modules": {"6.1.3"},
		},
	}
	got, err := UpgradesAvailable(sys, "/old", "/new")
	require.NoError(t, err)
	require.True(t, got)
	for _, read := range sys.reads {
		require.NotContains(t, read, "systemd")
	}
}

func TestUpgradesAvailableErrors(t *testing.T) {
	t.Run("missing systemd after unchanged kernel", func(t *testing.T) {
		sys := writeSystems(t,
			testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			testutil.SystemLayout{Kernel: "6.1.2"},
		)
		_, err := UpgradesAvailable(sys, "/run/booted-system", "/nix/var/nix/profiles/system")
		require.True(t, IsPathResolutionError(err))
		require.Contains(t, err.Error(), "/nix/var/nix/profiles/system/systemd")
	})
	t.Run("missing booted kernel", func(t *testing.T) {
		sys := writeSystems(t,
			testutil.SystemLayout{Systemd: "255.4"},
			testutil.SystemLayout{Kernel: "6.1.3", Systemd: "256"},
		)
		_, err := UpgradesAvailable(sys, "/run/booted-system", "/nix/var/nix/profiles/system")
		require.True(t, IsPathResolutionError(err))
	})
	t.Run("empty modules directory", func(t *testing.T) {
		sys := writeSystems(t,
			testutil.SystemLayout{Kernel: "6.1.2", Systemd: "255.4"},
			testutil.SystemLayout{Systemd: "255.4"},
		)
		storePath := "/nix/store/broken-linux-6.1.3"
		testutil.MkdirAll(t, filepath.Join(sys.Prefix, storePath, "lib", "modules"))
		testutil.Symlink(t, storePath+"/bzImage", filepath.Join(sys.Prefix, "nix/var/nix/profiles/system", "kernel"))

		_, err := UpgradesAvailable(sys, "/run/booted-system", "/nix/var/nix/profiles/system")
		require.True(t, IsVersionParseError(err))
	})
}
