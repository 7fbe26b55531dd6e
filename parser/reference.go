package parser

import (
	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/rawdoc"
)

// Reference is a "$ref" standing in for another object of the document.
//
// Summary and Description are declared attributes only in the OAS 3.1+
// dialect; in older dialects they are ordinary siblings and stay in Extra
// with every other key found next to "$ref".
type Reference struct {
	Ref         string
	Summary     string // OAS 3.1+
	Description string // OAS 3.1+
	// Extra captures every other key found next to "$ref"
	Extra map[string]any
}

func (d *decoder) reference(raw any) (*Reference, error) {
	o, err := d.object(KindReference, raw)
	if err != nil {
		return nil, err
	}
	v, _ := o.lookup("$ref")
	ref, ok := v.(string)
	if !ok {
		o.wrongType("$ref", "string", v)
		return nil, o.err
	}
	o.consume("$ref")
	r := &Reference{Ref: ref}
	if d.dialect.KeepsRefSiblings() {
		r.Summary = o.str("summary")
		r.Description = o.str("description")
	}
	r.Extra = o.extra()
	if o.err != nil {
		return nil, o.err
	}
	return r, nil
}

// Kind implements Node.
func (r *Reference) Kind() Kind { return KindReference }

// Extensions implements Node.
func (r *Reference) Extensions() map[string]any {
	if r == nil {
		return nil
	}
	return r.Extra
}

// ToRaw implements Node. The siblings kept in Extra are emitted too, so a
// reference written with extra keys survives a round trip. In OAS 2.0 and 3.0
// documents those siblings are round-tripped only; resolution ignores them.
func (r *Reference) ToRaw() any {
	if r == nil {
		return nil
	}
	e := newEmitter()
	e.m.Set("$ref", r.Ref)
	e.str("summary", r.Summary)
	e.str("description", r.Description)
	e.extra(r.Extra)
	return e.result()
}

// IsLocal reports whether the reference points into the same document.
func (r *Reference) IsLocal() bool {
	return r.Document() == ""
}

// Document returns the part of the reference before "#", naming another
// document. It is empty for local references.
func (r *Reference) Document() string {
	doc, _ := pathutil.SplitRef(r.Ref)
	return doc
}

// Pointer returns the JSON Pointer part of the reference (after "#").
func (r *Reference) Pointer() string {
	_, ptr := pathutil.SplitRef(r.Ref)
	return ptr
}

// PointerParts returns the unescaped tokens of the pointer. A malformed
// pointer yields nil.
func (r *Reference) PointerParts() []string {
	parts, err := pathutil.ParsePointer(r.Pointer())
	if err != nil {
		return nil
	}
	return parts
}

// Name returns the last pointer token, which for component references is
// the component name (e.g. "Pet" for "#/components/schemas/Pet").
func (r *Reference) Name() string {
	parts := r.PointerParts()
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// siblings returns the keys written next to "$ref" as a raw mapping, or nil
// when the reference stands alone.
func (r *Reference) siblings() *rawdoc.Map {
	raw, _ := r.ToRaw().(*rawdoc.Map)
	raw.Delete("$ref")
	if raw.Len() == 0 {
		return nil
	}
	return raw
}
