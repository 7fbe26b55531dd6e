package rawdoc

import (
	"fmt"
	"reflect"
	"slices"

	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Map is an insertion-ordered mapping from string keys to raw values.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty ordered mapping.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// Normalize returns a deep copy of v in which every mapping is a *Map and
// every sequence is a []any. Plain Go maps are copied in sorted key order;
// ordered maps keep their order. Scalars are returned unchanged. The input is
// never modified.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return val
	case *Map:
		if val == nil {
			return nil
		}
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](val.Len()))
		for k, item := range val.FromOldest() {
			out.Set(k, Normalize(item))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(val)))
		for _, k := range keys {
			out.Set(k, Normalize(val[k]))
		}
		return out
	case map[any]any:
		keys := make([]string, 0, len(val))
		byString := make(map[string]any, len(val))
		for k, item := range val {
			ks := fmt.Sprint(k)
			keys = append(keys, ks)
			byString[ks] = item
		}
		slices.Sort(keys)
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(val)))
		for _, k := range keys {
			out.Set(k, Normalize(byString[k]))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	}
	return normalizeReflect(v)
}

// normalizeReflect handles typed slices and maps (e.g. []map[string]any)
// that do not match one of the fast-path cases in Normalize.
func normalizeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		plain := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			plain[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return Normalize(plain)
	default:
		return v
	}
}

// Plain converts a raw tree into nested map[string]any and []any values,
// dropping mapping order. It is mostly useful for comparisons and for
// handing a tree to code that does not know about ordered maps.
func Plain(v any) any {
	switch val := v.(type) {
	case *Map:
		if val == nil {
			return nil
		}
		out := make(map[string]any, val.Len())
		for k, item := range val.FromOldest() {
			out[k] = Plain(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Plain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports whether two raw trees are structurally equal. Mapping key
// order is ignored; sequence order is significant.
func Equal(a, b any) bool {
	return reflect.DeepEqual(Plain(Normalize(a)), Plain(Normalize(b)))
}

// AsMap returns v as an ordered mapping, accepting both *Map and
// map[string]any. The second result is false for any other value.
func AsMap(v any) (*Map, bool) {
	switch val := v.(type) {
	case *Map:
		return val, val != nil
	case map[string]any:
		m, _ := Normalize(val).(*Map)
		return m, true
	default:
		return nil, false
	}
}

// Keys returns the keys of m in order.
func Keys(m *Map) []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for k := range m.KeysFromOldest() {
		keys = append(keys, k)
	}
	return keys
}

// TypeName describes the raw kind of v for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Map, map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
