package parser

// OASVersion represents each canonical 3.x version of the OpenAPI Specification that may be found at:
// https://github.com/OAI/OpenAPI-Specification/releases
type OASVersion int

const (
	// Unknown represents an unknown or unsupported OAS version
	Unknown OASVersion = iota
	// OASVersion300 OpenAPI Specification Version 3.0.0
	OASVersion300
	// OASVersion301 OpenAPI Specification Version 3.0.1
	OASVersion301
	// OASVersion302 OpenAPI Specification Version 3.0.2
	OASVersion302
	// OASVersion303 OpenAPI Specification Version 3.0.3
	OASVersion303
	// OASVersion304 OpenAPI Specification Version 3.0.4
	OASVersion304
	// OASVersion310 OpenAPI Specification Version 3.1.0
	OASVersion310
	// OASVersion311 OpenAPI Specification Version 3.1.1
	OASVersion311
	// OASVersion312 OpenAPI Specification Version 3.1.2
	OASVersion312
	// OASVersion320 OpenAPI Specification Version 3.2.0
	OASVersion320
)

// releases lists every known release, grouped by minor line, in ascending order.
var releases = []struct {
	minor   int
	patches []OASVersion
}{
	{0, []OASVersion{OASVersion300, OASVersion301, OASVersion302, OASVersion303, OASVersion304}},
	{1, []OASVersion{OASVersion310, OASVersion311, OASVersion312}},
	{2, []OASVersion{OASVersion320}},
}

var versionToString = map[OASVersion]string{
	OASVersion300: "3.0.0",
	OASVersion301: "3.0.1",
	OASVersion302: "3.0.2",
	OASVersion303: "3.0.3",
	OASVersion304: "3.0.4",
	OASVersion310: "3.1.0",
	OASVersion311: "3.1.1",
	OASVersion312: "3.1.2",
	OASVersion320: "3.2.0",
}

func (v OASVersion) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a known version.
func (v OASVersion) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// Is31OrLater reports whether v uses JSON Schema 2020-12 semantics (type
// lists, examples arrays, webhooks).
func (v OASVersion) Is31OrLater() bool {
	return v >= OASVersion310
}

// ParseVersion maps s onto the closest known OASVersion, returning false if s
// is not a 3.x version string.
//
// Exact releases map to themselves. Unreleased patches map to the highest
// known patch of their minor line that does not exceed them ("3.0.9" maps to
// 3.0.4), and pre-releases map to their base release ("3.1.0-rc1" maps to 3.1.0).
// Minor lines that are not known yet are rejected.
func ParseVersion(s string) (OASVersion, bool) {
	v, err := parseVersion(s)
	if err != nil || v.major != 3 {
		return Unknown, false
	}
	for _, line := range releases {
		if line.minor != v.minor {
			continue
		}
		if v.patch >= len(line.patches) {
			return line.patches[len(line.patches)-1], true
		}
		return line.patches[v.patch], true
	}
	return Unknown, false
}
