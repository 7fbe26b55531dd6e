package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides efficient incremental JSON Pointer construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a mapping key segment to the path. The segment is escaped as a
// JSON Pointer reference token.
func (p *PathBuilder) Push(segment string) {
	seg := EscapeToken(segment)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1 // For slash separator
}

// PushIndex adds a sequence index segment: "/0", "/1", etc.
func (p *PathBuilder) PushIndex(i int) {
	seg := strconv.Itoa(i)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// String materializes the JSON Pointer. The empty pointer denotes the
// document root. Only call when the path is needed.
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}

// Ref materializes the path as a local reference ("#/...").
func (p *PathBuilder) Ref() string {
	return "#" + p.String()
}
