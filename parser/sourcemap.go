package parser

import (
	"fmt"
	"sort"
	"strings"
)

// SourceLocation represents a position in a source document.
// Line and Column are 1-based (matching editor conventions).
// A zero Line value indicates the location is unknown.
type SourceLocation struct {
	// Line is the 1-based line number (0 if unknown)
	Line int `json:"line" yaml:"line"`
	// Column is the 1-based column number (0 if unknown)
	Column int `json:"column" yaml:"column"`
	// File is the source name (empty when reading from bytes or a reader)
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// IsKnown returns true if this location has valid line information.
func (s SourceLocation) IsKnown() bool {
	return s.Line > 0
}

// String returns a human-readable location string.
// Format: "file:line:column" or "line:column" if no file, or "<unknown>" if not known.
func (s SourceLocation) String() string {
	if !s.IsKnown() {
		if s.File != "" {
			return s.File
		}
		return "<unknown>"
	}
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// SourceMap maps JSON pointers (e.g. "/paths/~1users/get") to the position
// of the node they address in the source document. It is built while the
// document tree is read and is always present on a ParseResult.
type SourceMap struct {
	// locations maps pointers to value positions
	locations map[string]SourceLocation
	// keyLocations maps pointers to the position of the mapping key naming
	// them, useful for diagnostics about the key itself (e.g. "unknown field")
	keyLocations map[string]SourceLocation
}

// NewSourceMap creates an empty SourceMap.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		locations:    make(map[string]SourceLocation),
		keyLocations: make(map[string]SourceLocation),
	}
}

// Get returns the source location for a JSON pointer.
// Returns a zero SourceLocation if the pointer is not found.
func (sm *SourceMap) Get(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.locations[ptr]
}

// GetKey returns the source location of the mapping key naming ptr.
// Returns a zero SourceLocation if the pointer is not found.
func (sm *SourceMap) GetKey(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	return sm.keyLocations[ptr]
}

// Has returns true if the pointer exists in the source map.
func (sm *SourceMap) Has(ptr string) bool {
	if sm == nil {
		return false
	}
	_, ok := sm.locations[ptr]
	return ok
}

// Len returns the number of pointers in the source map.
func (sm *SourceMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.locations)
}

// Pointers returns all JSON pointers in the source map, sorted.
// Returns nil if the receiver is nil.
func (sm *SourceMap) Pointers() []string {
	if sm == nil {
		return nil
	}
	ptrs := make([]string, 0, len(sm.locations))
	for ptr := range sm.locations {
		ptrs = append(ptrs, ptr)
	}
	sort.Strings(ptrs)
	return ptrs
}

// nearest returns the location of ptr, or of its closest ancestor present in
// the map. Pointers produced during conversion (e.g. "/example/age" for a
// value that came from an alias) may not be in the map themselves.
func (sm *SourceMap) nearest(ptr string) SourceLocation {
	if sm == nil {
		return SourceLocation{}
	}
	for {
		if loc, ok := sm.locations[ptr]; ok {
			return loc
		}
		i := strings.LastIndexByte(ptr, '/')
		if i < 0 {
			return SourceLocation{}
		}
		ptr = ptr[:i]
	}
}

// set adds a location to the source map.
func (sm *SourceMap) set(ptr string, loc SourceLocation) {
	if sm == nil {
		return
	}
	sm.locations[ptr] = loc
}

// setKey adds a key location to the source map.
func (sm *SourceMap) setKey(ptr string, loc SourceLocation) {
	if sm == nil {
		return
	}
	sm.keyLocations[ptr] = loc
}
