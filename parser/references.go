package parser

import (
	"github.com/erraggy/oasgraph/rawdoc"
)

// WalkReferences calls fn for every "$ref" in the document, in depth-first
// pre-order following document order, with the JSON pointer of the mapping
// holding it. Every location is visited, including examples and vendor
// extensions. Returning false from fn stops the walk.
//
// References are not resolved.
func (doc *Document) WalkReferences(fn func(pointer string, ref *Reference) bool) {
	walkReferences(doc.dialect, doc.raw, fn)
}

// GetAllReferences returns every reference of the document in the order
// WalkReferences visits them. A reference written several times appears
// once per occurrence.
func (doc *Document) GetAllReferences() []*Reference {
	var refs []*Reference
	doc.WalkReferences(func(_ string, ref *Reference) bool {
		refs = append(refs, ref)
		return true
	})
	return refs
}

// CollectReferences returns the references written inside n, in pre-order,
// using the document's dialect to read them. References are not resolved.
func (doc *Document) CollectReferences(n Node) []*Reference {
	if n == nil {
		return nil
	}
	var refs []*Reference
	walkReferences(doc.dialect, n.ToRaw(), func(_ string, ref *Reference) bool {
		refs = append(refs, ref)
		return true
	})
	return refs
}

func walkReferences(dialect Dialect, root any, fn func(string, *Reference) bool) {
	if root == nil {
		return
	}
	d := newDecoder(dialect)
	defer d.release()
	w := &refWalker{d: d, fn: fn}
	w.walk(root)
}

type refWalker struct {
	d       *decoder
	fn      func(string, *Reference) bool
	stopped bool
}

func (w *refWalker) walk(v any) {
	if w.stopped {
		return
	}
	switch node := v.(type) {
	case *rawdoc.Map:
		if node == nil {
			return
		}
		if isReference(node) {
			// Skipped when summary or description is not a string.
			if ref, err := w.d.reference(node); err == nil {
				if !w.fn(w.d.path.String(), ref) {
					w.stopped = true
					return
				}
			}
		}
		for k, item := range node.FromOldest() {
			if k == "$ref" {
				continue
			}
			w.d.path.Push(k)
			w.walk(item)
			w.d.path.Pop()
		}
	case []any:
		for i, item := range node {
			w.d.path.PushIndex(i)
			w.walk(item)
			w.d.path.Pop()
		}
	}
}

// RefCount is the number of occurrences of one reference target.
type RefCount struct {
	Ref   string
	Count int
}

// CountReferences groups the document's references by "$ref" value, in order
// of first occurrence.
func (doc *Document) CountReferences() []RefCount {
	var counts []RefCount
	index := make(map[string]int)
	for _, ref := range doc.GetAllReferences() {
		if i, ok := index[ref.Ref]; ok {
			counts[i].Count++
			continue
		}
		index[ref.Ref] = len(counts)
		counts = append(counts, RefCount{Ref: ref.Ref, Count: 1})
	}
	return counts
}
