package modules

import "strings"

const prereleaseMarker = "-rc"

// UpgradesAvailable reports whether any tracked component in the system at
// newRoot is newer than in the system at oldRoot. Components are checked in
// Components() order and the first newer one ends the scan, so later
// components are not read at all. Any resolution or parse error aborts the scan.
func UpgradesAvailable(sys System, oldRoot string, newRoot string) (bool, error) {
	for _, component := range Components() {
		oldVersion, newVersion, err := component.Versions(sys, oldRoot, newRoot)
		if err != nil {
			return false, err
		}
		if Newer(oldVersion, newVersion) {
			return true, nil
		}
	}
	return false, nil
}

// Newer reports whether newVersion is ahead of oldVersion.
//
// Versions are split on "." after release-candidate normalization and compared
// position by position over the shorter length. The first position where the
// new segment is greater wins; a smaller new segment does not end the scan.
func Newer(oldVersion string, newVersion string) bool {
	if oldVersion == newVersion {
		return false
	}
	oldVersion, newVersion = normalizePrerelease(oldVersion, newVersion)
	oldSegments := strings.Split(oldVersion, ".")
	newSegments := strings.Split(newVersion, ".")
	for i := 0; i < len(oldSegments) && i < len(newSegments); i++ {
		if compareSegment(oldSegments[i], newSegments[i]) < 0 {
			return true
		}
	}
	return false
}

// normalizePrerelease rewrites "-rc" into a plain dot segment when the two
// versions differ in length, padding the side without a marker with ".0" so
// 250-rc1 vs 251 compares as 250.1 vs 251.0.
func normalizePrerelease(oldVersion string, newVersion string) (string, string) {
	if len(oldVersion) == len(newVersion) {
		return oldVersion, newVersion
	}
	oldRC := strings.Contains(oldVersion, prereleaseMarker)
	newRC := strings.Contains(newVersion, prereleaseMarker)
	switch {
	case oldRC && !newRC:
		return strings.ReplaceAll(oldVersion, prereleaseMarker, "."), newVersion + ".0"
	case newRC && !oldRC:
		return oldVersion + ".0", strings.ReplaceAll(newVersion, prereleaseMarker, ".")
	case oldRC && newRC:
		return strings.ReplaceAll(oldVersion, prereleaseMarker, "."), strings.ReplaceAll(newVersion, prereleaseMarker, ".")
	default:
		return oldVersion, newVersion
	}
}

// compareSegment compares two version segments numerically when both are
// made of digits only, at any length, and as plain strings otherwise.
// It returns -1 if a < b, 0 if a == b, and 1 if a > b.
func compareSegment(a string, b string) int {
	if !isDigits(a) || !isDigits(b) {
		return strings.Compare(a, b)
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
