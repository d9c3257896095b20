package mash

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// debugConfig renders values that have no dedicated representation. Pointer
// addresses are omitted so the output is stable between runs.
var debugConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Inspect returns an object-like rendering of m: the type name followed by
// each key and its inspected value, with keys in ascending order.
//
//	<Mash a=1 b="two" c=<Mash d=[1, 2]>>
func (m *Mash) Inspect() string {
	var b strings.Builder
	m.writeTo(&b, make(map[*Mash]bool))
	return b.String()
}

// String returns the same text as [Mash.Inspect].
func (m *Mash) String() string {
	return m.Inspect()
}

// GoString returns the same text as [Mash.Inspect], so %#v agrees with %v.
func (m *Mash) GoString() string {
	return m.Inspect()
}

// writeTo renders m into b. seen holds the mashes currently being rendered;
// a repeat renders as <Name ...>.
func (m *Mash) writeTo(b *strings.Builder, seen map[*Mash]bool) {
	if seen[m] {
		b.WriteString("<" + m.opts.TypeName + " ...>")
		return
	}
	seen[m] = true
	defer delete(seen, m)

	keys := m.Keys()
	sort.Strings(keys)

	b.WriteString("<")
	b.WriteString(m.opts.TypeName)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		inspect(b, m.values[k], seen)
	}
	b.WriteString(">")
}

func inspect(b *strings.Builder, v any, seen map[*Mash]bool) {
	switch val := v.(type) {
	case nil:
		b.WriteString("nil")
		return
	case *Mash:
		if val == nil {
			b.WriteString("nil")
			return
		}
		val.writeTo(b, seen)
		return
	case string:
		b.WriteString(strconv.Quote(val))
		return
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		fmt.Fprint(b, val)
		return
	case []byte:
		b.WriteString(strconv.Quote(string(val)))
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		b.WriteString("[")
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			inspect(b, rv.Index(i).Interface(), seen)
		}
		b.WriteString("]")
	case reflect.Map:
		inspectMap(b, rv, seen)
	default:
		b.WriteString(debugConfig.Sprintf("%#v", v))
	}
}

// inspectMap renders a raw map that was assigned after construction.
func inspectMap(b *strings.Builder, rv reflect.Value, seen map[*Mash]bool) {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return Normalize(keys[i].Interface()) < Normalize(keys[j].Interface())
	})

	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		inspect(b, k.Interface(), seen)
		b.WriteString("=>")
		inspect(b, rv.MapIndex(k).Interface(), seen)
	}
	b.WriteString("}")
}
