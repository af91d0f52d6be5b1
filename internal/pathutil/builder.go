package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides efficient incremental JSON pointer construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated escaped length for String() allocation
}

// Push adds an unescaped reference token to the path.
func (p *PathBuilder) Push(segment string) {
	p.segments = append(p.segments, segment)
	p.length += 1 + escapedLen(segment)
}

// PushIndex adds an array index token: "/0", "/1", etc.
func (p *PathBuilder) PushIndex(i int) {
	p.Push(strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= 1 + escapedLen(last)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// Len returns the number of segments currently pushed.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// String materializes the JSON pointer. The root location is "".
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		writeEscaped(&b, seg)
	}
	return b.String()
}

// Snapshot returns a copy of the current segments.
func (p *PathBuilder) Snapshot() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Restore replaces the current segments with a previously taken snapshot.
// The snapshot is copied, so later pushes do not alias it.
func (p *PathBuilder) Restore(snapshot []string) {
	p.Reset()
	for _, seg := range snapshot {
		p.Push(seg)
	}
}

// Escape escapes a single reference token ("~" to "~0", "/" to "~1").
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	var b strings.Builder
	b.Grow(escapedLen(token))
	writeEscaped(&b, token)
	return b.String()
}

// Unescape reverses Escape.
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

// Join appends an unescaped token to an existing pointer.
func Join(pointer, token string) string {
	return pointer + "/" + Escape(token)
}

// Split breaks a pointer into unescaped tokens. A leading "#" is ignored.
func Split(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" || pointer == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, part := range parts {
		parts[i] = Unescape(part)
	}
	return parts
}

func escapedLen(s string) int {
	return len(s) + strings.Count(s, "~") + strings.Count(s, "/")
}

func writeEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			b.WriteString("~0")
		case '/':
			b.WriteString("~1")
		default:
			b.WriteByte(s[i])
		}
	}
}
