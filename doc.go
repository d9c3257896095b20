// Package mash provides dynamic attribute maps: mutable string-keyed maps
// whose entries can also be reached through attribute-style accessor names.
//
// A Mash lets callers consume loosely structured data, such as a decoded API
// response, as a pseudo-object without declaring a schema.
//
// # Key Concepts
//
// Keys are normalized to strings on every write and lookup, so Get("x"),
// Get([]byte("x")) and Get(key) for a fmt.Stringer returning "x" all refer to
// the same entry.
//
// Construction from a source converts nested mappings into *Mash values at
// every depth, including mappings held inside slices. Conversion happens once,
// at construction; a raw map assigned later with Set is stored as given.
//
// # Basic Usage
//
//	m, _ := mash.New(nil)
//	m.Call("name?")         // false, nil
//	m.Call("name=", "Bob")  // "Bob", nil
//	m.Call("name")          // "Bob", nil
//	m.Call("name?")         // true, nil
//
// # Conversion
//
//	source := map[string]any{
//	    "a": map[string]any{"b": 23, "d": map[string]any{"e": "abc"}},
//	    "f": []any{map[string]any{"g": 44, "h": 29}, 12},
//	}
//	m, err := mash.New(source)
//	m.Send("a.d.e") // "abc", nil
//
// # Accessor Dispatch
//
// [Mash.Call] classifies an accessor name and its argument count:
//   - "name=" with one argument sets the value
//   - "name?" with no arguments reports whether the key exists
//   - "name!" with no arguments returns the value, creating an empty Mash first if needed
//   - a name stored verbatim as a key returns its value
//   - any other lowercase identifier with no arguments returns nil
//
// Everything else fails with an [*AccessorError]. [Mash.Send] chains accessors
// separated by dots, which makes deep construction a single call:
//
//	m.Send("author!.name=", "X")
//
// # Customizing Writes
//
// Every entry installed during construction goes through [Mash.Set], which
// delegates to the configured [SetFunc]:
//
//	m, err := mash.New(source, mash.WithSetter(func(m *mash.Mash, key string, v any) {
//	    m.Store(strings.ToLower(key), v)
//	}))
package mash
