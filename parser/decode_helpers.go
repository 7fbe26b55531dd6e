package parser

import (
	"fmt"
	"slices"

	orderedmap "github.com/pb33f/ordered-map/v2"

	"github.com/erraggy/oasgraph/internal/pathutil"
	"github.com/erraggy/oasgraph/oaserrors"
	"github.com/erraggy/oasgraph/rawdoc"
)

// decoder carries the state shared by every construct call of one build:
// the dialect of the owning document and the JSON pointer of the value
// currently being built, used for error reporting.
type decoder struct {
	dialect Dialect
	path    *pathutil.PathBuilder
}

// newDecoder returns a decoder positioned at the given pointer tokens.
// Callers must call release when done.
func newDecoder(dialect Dialect, at ...string) *decoder {
	d := &decoder{dialect: dialect, path: pathutil.Get()}
	for _, tok := range at {
		d.path.Push(tok)
	}
	return d
}

func (d *decoder) release() {
	pathutil.Put(d.path)
	d.path = nil
}

func (d *decoder) malformed(kind Kind, format string, args ...any) error {
	return &oaserrors.MalformedDocumentError{
		Path:    d.path.String(),
		Kind:    kind.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

// buildFunc constructs one node from a raw value.
type buildFunc[T any] func(d *decoder, raw any) (T, error)

// object tracks consumption of the keys of one raw mapping while its
// declared attributes are read. The first error sticks; later reads become
// no-ops so constructors can read every field and check err once.
type object struct {
	d    *decoder
	kind Kind
	m    *rawdoc.Map
	used map[string]struct{}
	err  error
}

func (d *decoder) object(kind Kind, raw any) (*object, error) {
	m, ok := raw.(*rawdoc.Map)
	if !ok || m == nil {
		if plain, isPlain := raw.(map[string]any); isPlain {
			m, _ = rawdoc.Normalize(plain).(*rawdoc.Map)
		} else {
			return nil, d.malformed(kind, "expected mapping, got %s", rawdoc.TypeName(raw))
		}
	}
	return &object{d: d, kind: kind, m: m, used: make(map[string]struct{}, m.Len())}, nil
}

// lookup returns the value stored under key. Explicit nulls are reported
// as absent and are left for the extension bag.
func (o *object) lookup(key string) (any, bool) {
	if o.err != nil {
		return nil, false
	}
	v, ok := o.m.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o *object) consume(key string) {
	o.used[key] = struct{}{}
}

func (o *object) fail(key, format string, args ...any) {
	if o.err != nil {
		return
	}
	o.d.path.Push(key)
	o.err = o.d.malformed(o.kind, format, args...)
	o.d.path.Pop()
}

func (o *object) wrongType(key, want string, got any) {
	o.fail(key, "%q must be a %s, got %s", key, want, rawdoc.TypeName(got))
}

// str reads a string attribute. An empty string cannot be told apart from
// an absent attribute, so it is left in the extension bag.
func (o *object) str(key string) string {
	v, ok := o.lookup(key)
	if !ok {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		o.wrongType(key, "string", v)
		return ""
	}
	if s == "" {
		return ""
	}
	o.consume(key)
	return s
}

func (o *object) boolean(key string) *bool {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	b, isBool := v.(bool)
	if !isBool {
		o.wrongType(key, "boolean", v)
		return nil
	}
	o.consume(key)
	return &b
}

// value reads an attribute of any shape, such as an example value.
func (o *object) value(key string) any {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	o.consume(key)
	return v
}

func (o *object) strList(key string) []string {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	seq, isSeq := v.([]any)
	if !isSeq {
		o.wrongType(key, "sequence", v)
		return nil
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, isStr := item.(string)
		if !isStr {
			o.fail(key, "%q[%d] must be a string, got %s", key, i, rawdoc.TypeName(item))
			return nil
		}
		out = append(out, s)
	}
	o.consume(key)
	return out
}

func (o *object) strMap(key string) map[string]string {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	m, isMap := v.(*rawdoc.Map)
	if !isMap {
		o.wrongType(key, "mapping", v)
		return nil
	}
	out := make(map[string]string, m.Len())
	for k, item := range m.FromOldest() {
		s, isStr := item.(string)
		if !isStr {
			o.fail(key, "%q.%s must be a string, got %s", key, k, rawdoc.TypeName(item))
			return nil
		}
		out[k] = s
	}
	o.consume(key)
	return out
}

// rawMap reads a mapping whose values are kept in raw form.
func (o *object) rawMap(key string) map[string]any {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	m, isMap := v.(*rawdoc.Map)
	if !isMap {
		o.wrongType(key, "mapping", v)
		return nil
	}
	out := make(map[string]any, m.Len())
	for k, item := range m.FromOldest() {
		out[k] = item
	}
	o.consume(key)
	return out
}

// reference returns the Reference for a mapping holding "$ref", or nil.
func (o *object) reference() (*Reference, error) {
	if _, ok := o.lookup("$ref"); !ok {
		return nil, nil
	}
	return o.d.reference(o.m)
}

// extra returns the keys not consumed so far, or nil when there are none.
func (o *object) extra() map[string]any {
	var out map[string]any
	for k, v := range o.m.FromOldest() {
		if _, ok := o.used[k]; ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = v
	}
	return out
}

func child[T any](o *object, key string, build buildFunc[T]) T {
	var zero T
	v, ok := o.lookup(key)
	if !ok {
		return zero
	}
	o.d.path.Push(key)
	n, err := build(o.d, v)
	o.d.path.Pop()
	if err != nil {
		o.err = err
		return zero
	}
	o.consume(key)
	return n
}

func childList[T any](o *object, key string, build buildFunc[T]) []T {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	seq, isSeq := v.([]any)
	if !isSeq {
		o.wrongType(key, "sequence", v)
		return nil
	}
	out, err := buildList(o.d, key, seq, build)
	if err != nil {
		o.err = err
		return nil
	}
	o.consume(key)
	return out
}

func buildList[T any](d *decoder, key string, seq []any, build buildFunc[T]) ([]T, error) {
	d.path.Push(key)
	defer d.path.Pop()
	out := make([]T, 0, len(seq))
	for i, item := range seq {
		d.path.PushIndex(i)
		n, err := build(d, item)
		d.path.Pop()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func childMap[T any](o *object, key string, build buildFunc[T]) map[string]T {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	m, isMap := v.(*rawdoc.Map)
	if !isMap {
		o.wrongType(key, "mapping", v)
		return nil
	}
	o.d.path.Push(key)
	defer o.d.path.Pop()
	out := make(map[string]T, m.Len())
	for k, item := range m.FromOldest() {
		o.d.path.Push(k)
		n, err := build(o.d, item)
		o.d.path.Pop()
		if err != nil {
			o.err = err
			return nil
		}
		out[k] = n
	}
	o.consume(key)
	return out
}

func childOrdered[T any](o *object, key string, build buildFunc[T]) *orderedmap.OrderedMap[string, T] {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	o.d.path.Push(key)
	out, err := buildOrdered(o.d, o.kind, v, nil, build)
	o.d.path.Pop()
	if err != nil {
		o.err = err
		return nil
	}
	o.consume(key)
	return out
}

// buildOrdered constructs every entry of a raw mapping in source order.
// Entries whose key satisfies skip are left out; callers collect them
// separately.
func buildOrdered[T any](d *decoder, kind Kind, raw any, skip func(string) bool, build buildFunc[T]) (*orderedmap.OrderedMap[string, T], error) {
	m, isMap := raw.(*rawdoc.Map)
	if !isMap {
		return nil, d.malformed(kind, "expected mapping, got %s", rawdoc.TypeName(raw))
	}
	out := orderedmap.New[string, T](orderedmap.WithCapacity[string, T](m.Len()))
	for k, item := range m.FromOldest() {
		if skip != nil && skip(k) {
			continue
		}
		d.path.Push(k)
		n, err := build(d, item)
		d.path.Pop()
		if err != nil {
			return nil, err
		}
		out.Set(k, n)
	}
	return out, nil
}

// emitter assembles the raw mapping for a node: declared attributes first,
// in wire order, then the extension bag in sorted key order.
type emitter struct {
	m *rawdoc.Map
}

func newEmitter() *emitter {
	return &emitter{m: rawdoc.NewMap()}
}

func (e *emitter) str(key, v string) {
	if v != "" {
		e.m.Set(key, v)
	}
}

func (e *emitter) boolean(key string, v *bool) {
	if v != nil {
		e.m.Set(key, *v)
	}
}

func (e *emitter) value(key string, v any) {
	if v != nil {
		e.m.Set(key, rawdoc.Normalize(v))
	}
}

func (e *emitter) strList(key string, v []string) {
	if v == nil {
		return
	}
	out := make([]any, len(v))
	for i, s := range v {
		out[i] = s
	}
	e.m.Set(key, out)
}

func (e *emitter) strMap(key string, v map[string]string) {
	if v == nil {
		return
	}
	out := rawdoc.NewMap()
	for _, k := range sortedKeys(v) {
		out.Set(k, v[k])
	}
	e.m.Set(key, out)
}

func (e *emitter) rawMap(key string, v map[string]any) {
	if v == nil {
		return
	}
	out := rawdoc.NewMap()
	for _, k := range sortedKeys(v) {
		out.Set(k, rawdoc.Normalize(v[k]))
	}
	e.m.Set(key, out)
}

// node emits n under key. Nodes report absence by returning nil from ToRaw.
func (e *emitter) node(key string, n Node) {
	if n == nil {
		return
	}
	if raw := n.ToRaw(); raw != nil {
		e.m.Set(key, raw)
	}
}

// extra merges the extension bag without overwriting declared keys.
func (e *emitter) extra(extra map[string]any) {
	for _, k := range sortedKeys(extra) {
		if _, exists := e.m.Get(k); exists {
			continue
		}
		e.m.Set(k, rawdoc.Normalize(extra[k]))
	}
}

func (e *emitter) result() *rawdoc.Map {
	return e.m
}

func emitList[T Node](e *emitter, key string, list []T) {
	if list == nil {
		return
	}
	out := make([]any, len(list))
	for i, n := range list {
		out[i] = n.ToRaw()
	}
	e.m.Set(key, out)
}

func emitMap[T Node](e *emitter, key string, m map[string]T) {
	if m == nil {
		return
	}
	out := rawdoc.NewMap()
	for _, k := range sortedKeys(m) {
		out.Set(k, m[k].ToRaw())
	}
	e.m.Set(key, out)
}

func emitOrdered[T Node](e *emitter, key string, m *orderedmap.OrderedMap[string, T]) {
	if m == nil {
		return
	}
	e.m.Set(key, orderedToRaw(m))
}

func orderedToRaw[T Node](m *orderedmap.OrderedMap[string, T]) *rawdoc.Map {
	out := rawdoc.NewMap()
	for k, n := range m.FromOldest() {
		out.Set(k, n.ToRaw())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func boolPtr(b bool) *bool {
	return &b
}
