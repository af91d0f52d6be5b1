package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// version is a parsed "major.minor[.patch][-prerelease]" string.
type version struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseVersion parses a semantic version string such as "3.0.1" or "3.1.0-rc1".
// The patch component is optional and defaults to 0.
func parseVersion(s string) (*version, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	nums := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > math.MaxInt32 {
			return nil, fmt.Errorf("invalid version component %d: %q", i, part)
		}
		nums[i] = n
	}

	return &version{
		major:      nums[0],
		minor:      nums[1],
		patch:      nums[2],
		prerelease: prerelease,
	}, nil
}

// atLeast reports whether v is major.minor or any later release line.
func (v *version) atLeast(major, minor int) bool {
	if v.major != major {
		return v.major > major
	}
	return v.minor >= minor
}

// lessThan returns true if v < other.
// A pre-release sorts before its release; pre-release tags compare lexically.
func (v *version) lessThan(other *version) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	if v.patch != other.patch {
		return v.patch < other.patch
	}
	if v.prerelease == "" || other.prerelease == "" {
		return v.prerelease != "" && other.prerelease == ""
	}
	return v.prerelease < other.prerelease
}
