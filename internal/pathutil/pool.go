package pathutil

import "sync"

// Builders deeper than maxPooledDepth are left to the garbage collector so
// one pathological document does not pin large buffers in the pool.
const (
	initialDepth   = 8
	maxPooledDepth = 64
)

var builders = sync.Pool{
	New: func() any { return &PathBuilder{segments: make([]string, 0, initialDepth)} },
}

// Get returns an empty PathBuilder from the pool. Pair every Get with a Put
// once the builder and every String it produced are no longer needed.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool. A nil builder is ignored.
func Put(p *PathBuilder) {
	if p != nil && cap(p.segments) <= maxPooledDepth {
		builders.Put(p)
	}
}
