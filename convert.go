package mash

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"sort"
)

// Pair is a single key/value entry of an ordered source.
type Pair struct {
	Key   any
	Value any
}

// Pairs is an ordered key/value source. Decoders that preserve document
// order produce Pairs for every mapping they encounter.
type Pairs []Pair

// New creates a Mash from source. A nil source yields an empty Mash.
//
// Accepted sources are *Mash, Pairs, iter.Seq2[string, any],
// iter.Seq2[any, any] and any Go map. Go maps are read in ascending key order.
// Every value is converted recursively, so nested mappings become *Mash
// wherever they appear, including inside slices. Each entry is installed
// through [Mash.Set], so a configured setter observes all of them.
func New(source any, opts ...func(*Options)) (*Mash, error) {
	m := newMash(newOptions(opts...))
	if source == nil {
		return m, nil
	}

	entries, err := pairsOf(source)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		v, err := m.adopt(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to convert key %q: %w", Normalize(e.Key), err)
		}
		m.Set(e.Key, v)
	}

	return m, nil
}

// MustNew is like [New] but panics if source cannot be converted.
func MustNew(source any, opts ...func(*Options)) *Mash {
	m, err := New(source, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// FromMap converts a generic mapping into a Mash. If source implements
// [Defaulter], the result returns the same defaults for missing keys.
func FromMap(source any, opts ...func(*Options)) (*Mash, error) {
	if d, ok := source.(Defaulter); ok && !isNilPointer(source) {
		opts = append(slices.Clip(opts), WithDefault(d.DefaultValue))
	}
	return New(source, opts...)
}

// adopt converts v into the shape stored by a mash built from a source.
func (m *Mash) adopt(v any) (any, error) {
	if isMapping(v) {
		nested, err := New(v, func(o *Options) { *o = m.opts.nested() })
		if err != nil {
			return nil, err
		}
		return nested, nil
	}

	rv := reflect.ValueOf(v)
	if !isSequence(rv) {
		return v, nil
	}

	out := make([]any, rv.Len())
	for i := range out {
		item, err := m.adopt(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("failed to convert index %d: %w", i, err)
		}
		out[i] = item
	}
	return out, nil
}

func isMapping(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case *Mash:
		return val != nil
	case Pairs, iter.Seq2[string, any], iter.Seq2[any, any]:
		return true
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}

// isSequence reports whether rv is a slice or array whose elements may hold
// mappings. Slices of scalars, including []byte, are kept as they are.
func isSequence(rv reflect.Value) bool {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	switch rv.Type().Elem().Kind() {
	case reflect.Interface, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
		return true
	default:
		return false
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// sortKey orders Go map keys by normalized form. Distinct keys sharing a
// normalized form are ordered by type and then by Go syntax, so the last one
// installed is the same on every run.
func sortKey(key any) string {
	return Normalize(key) + "\x00" + fmt.Sprintf("%T\x00%#v", key, key)
}

// pairsOf flattens source into its entries in iteration order.
func pairsOf(source any) (Pairs, error) {
	switch src := source.(type) {
	case *Mash:
		if src == nil {
			return nil, nil
		}
		out := make(Pairs, 0, src.Len())
		for k, v := range src.All() {
			out = append(out, Pair{Key: k, Value: v})
		}
		return out, nil
	case Pairs:
		return src, nil
	case iter.Seq2[string, any]:
		var out Pairs
		for k, v := range src {
			out = append(out, Pair{Key: k, Value: v})
		}
		return out, nil
	case iter.Seq2[any, any]:
		var out Pairs
		for k, v := range src {
			out = append(out, Pair{Key: k, Value: v})
		}
		return out, nil
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() != reflect.Map {
		return nil, &SourceError{Type: fmt.Sprintf("%T", source)}
	}

	out := make(Pairs, 0, rv.Len())
	entries := rv.MapRange()
	for entries.Next() {
		out = append(out, Pair{Key: entries.Key().Interface(), Value: entries.Value().Interface()})
	}
	sort.Slice(out, func(i, j int) bool {
		return sortKey(out[i].Key) < sortKey(out[j].Key)
	})
	return out, nil
}
