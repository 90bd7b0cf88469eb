// Package rpmver implements RPM label comparison for epoch-version-release
// triples. It is a native port of librpm's rpmvercmp so that version
// ordering needs no cgo and can be tested in isolation.
package rpmver

import (
	"strings"

	"github.com/resf/repoview/internal/models"
)

// Compare orders two version keys: epoch first, then version, then release.
// Arch is ignored. Returns -1, 0 or 1.
func Compare(a, b models.VersionKey) int {
	if c := compareEpoch(a.Epoch, b.Epoch); c != 0 {
		return c
	}
	if c := Vercmp(a.Version, b.Version); c != 0 {
		return c
	}
	return Vercmp(a.Release, b.Release)
}

// compareEpoch compares epochs as numeric strings. A missing epoch counts
// as "0".
func compareEpoch(a, b string) int {
	if a == "" {
		a = "0"
	}
	if b == "" {
		b = "0"
	}
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) > len(b) {
			return 1
		}
		return -1
	}
	return strings.Compare(a, b)
}

// Vercmp compares two version or release strings with RPM label semantics:
// alternating digit/alpha segments, separators carrying no weight, numeric
// segments beating alpha segments, tilde sorting before everything and
// caret sorting after an absent segment.
func Vercmp(a, b string) int {
	if a == b {
		return 0
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		for i < len(a) && !isAlnum(a[i]) && a[i] != '~' && a[i] != '^' {
			i++
		}
		for j < len(b) && !isAlnum(b[j]) && b[j] != '~' && b[j] != '^' {
			j++
		}

		// tilde sorts before everything, including the end of the string
		aTilde := i < len(a) && a[i] == '~'
		bTilde := j < len(b) && b[j] == '~'
		if aTilde || bTilde {
			if !aTilde {
				return 1
			}
			if !bTilde {
				return -1
			}
			i++
			j++
			continue
		}

		// caret works like tilde, except that an ended string counts as
		// the lower (base) version
		aCaret := i < len(a) && a[i] == '^'
		bCaret := j < len(b) && b[j] == '^'
		if aCaret || bCaret {
			if i >= len(a) {
				return -1
			}
			if j >= len(b) {
				return 1
			}
			if !aCaret {
				return 1
			}
			if !bCaret {
				return -1
			}
			i++
			j++
			continue
		}

		if i >= len(a) || j >= len(b) {
			break
		}

		// grab the next completely numeric or completely alpha segment
		// from both strings
		si, sj := i, j
		isnum := isDigit(a[i])
		if isnum {
			for si < len(a) && isDigit(a[si]) {
				si++
			}
			for sj < len(b) && isDigit(b[sj]) {
				sj++
			}
		} else {
			for si < len(a) && isAlpha(a[si]) {
				si++
			}
			for sj < len(b) && isAlpha(b[sj]) {
				sj++
			}
		}

		seg1 := a[i:si]
		seg2 := b[j:sj]

		// segments of different types: numeric segments are always newer
		if seg2 == "" {
			if isnum {
				return 1
			}
			return -1
		}

		if isnum {
			seg1 = strings.TrimLeft(seg1, "0")
			seg2 = strings.TrimLeft(seg2, "0")
			// whichever number has more digits wins
			if len(seg1) > len(seg2) {
				return 1
			}
			if len(seg2) > len(seg1) {
				return -1
			}
		}

		if c := strings.Compare(seg1, seg2); c != 0 {
			return c
		}

		i, j = si, sj
	}

	if i >= len(a) && j >= len(b) {
		return 0
	}
	// whichever string still has characters left over wins
	if i >= len(a) {
		return -1
	}
	return 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}
