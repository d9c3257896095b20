package mash

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
)

var (
	// ErrNoSuchAccessor is returned when an accessor name cannot be classified.
	ErrNoSuchAccessor = errors.New("no such accessor")
	// ErrMalformedSource is returned when a construction source is not a key/value mapping.
	ErrMalformedSource = errors.New("malformed source")
)

// AccessorError describes an accessor name that matched no dispatch rule.
type AccessorError struct {
	Name string // The attempted accessor name
	Args int    // The number of arguments supplied
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("%s: %q with %d argument(s)", ErrNoSuchAccessor, e.Name, e.Args)
}

func (e *AccessorError) Unwrap() error { return ErrNoSuchAccessor }

// SourceError describes a construction source that could not be iterated as
// key/value pairs.
type SourceError struct {
	Type string // The Go type of the rejected source
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: cannot iterate %s as key/value pairs", ErrMalformedSource, e.Type)
}

func (e *SourceError) Unwrap() error { return ErrMalformedSource }

// SetFunc is the write path used by [Mash.Set]. Implementations that want the
// value stored should call [Mash.Store].
type SetFunc func(m *Mash, key string, value any)

// Defaulter is implemented by mappings that supply a value for missing keys.
type Defaulter interface {
	DefaultValue(key string) any
}

// Options contains configuration for constructing a Mash.
type Options struct {
	Setter   SetFunc              // Write path for Set; defaults to Store
	Default  func(key string) any // Value returned by Get for missing keys; nil means absent
	TypeName string               // Name printed by Inspect. Default is "Mash".
	Logger   *slog.Logger         // Debug logger; defaults to a discarding logger
}

func (o *Options) apply(opts []func(*Options)) {
	for _, opt := range opts {
		opt(o)
	}
}

// nested returns the options handed to mashes created beneath this one.
// The default policy belongs to the top-level mash only.
func (o Options) nested() Options {
	o.Default = nil
	return o
}

func newOptions(opts ...func(*Options)) Options {
	options := Options{
		TypeName: "Mash",
	}
	options.apply(opts)
	if options.TypeName == "" {
		options.TypeName = "Mash"
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	return options
}

// WithSetter configures the write path used by Set, including every entry
// installed during construction.
func WithSetter(fn SetFunc) func(*Options) {
	return func(o *Options) { o.Setter = fn }
}

// WithDefault configures the value returned by Get for missing keys.
func WithDefault(fn func(key string) any) func(*Options) {
	return func(o *Options) { o.Default = fn }
}

// WithTypeName configures the name printed by Inspect.
func WithTypeName(name string) func(*Options) {
	return func(o *Options) { o.TypeName = name }
}

// WithLogger configures the logger used for debug records.
func WithLogger(logger *slog.Logger) func(*Options) {
	return func(o *Options) { o.Logger = logger }
}

// Mash is a mutable, insertion-ordered map from normalized string keys to
// arbitrary values. The zero value is not usable; create one with [New].
type Mash struct {
	keys   []string
	values map[string]any
	opts   Options
}

func newMash(opts Options) *Mash {
	return &Mash{
		values: make(map[string]any),
		opts:   opts,
	}
}

// Normalize converts a key to the canonical string form used for storage and
// lookup.
func Normalize(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case []byte:
		return string(k)
	case fmt.Stringer:
		if isNilPointer(k) {
			return fmt.Sprint(k)
		}
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// Get returns the value stored under key. Missing keys yield the configured
// default, or nil when there is none.
func (m *Mash) Get(key any) any {
	k := Normalize(key)
	if v, ok := m.values[k]; ok {
		return v
	}
	return m.DefaultValue(k)
}

// Lookup returns the value stored under key and whether it was present.
// Defaults are not consulted.
func (m *Mash) Lookup(key any) (any, bool) {
	v, ok := m.values[Normalize(key)]
	return v, ok
}

// DefaultValue implements [Defaulter].
func (m *Mash) DefaultValue(key string) any {
	if m.opts.Default == nil {
		return nil
	}
	return m.opts.Default(key)
}

// Set writes value under key through the configured setter. The value is
// stored as given; nested maps are not converted. A mash that ends up
// containing itself renders as <Name ...> at the repeat in Inspect, and
// ToMap does not terminate on it.
func (m *Mash) Set(key any, value any) {
	k := Normalize(key)
	if m.opts.Setter != nil {
		m.opts.Setter(m, k, value)
		return
	}
	m.Store(k, value)
}

// Store writes value under key, bypassing the configured setter.
// Overwriting a key keeps its original position.
func (m *Mash) Store(key any, value any) {
	k := Normalize(key)
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = value
}

// Has reports whether a value is stored under key.
func (m *Mash) Has(key any) bool {
	_, ok := m.values[Normalize(key)]
	return ok
}

// Touch returns the value stored under key. If there is none, an empty Mash
// is stored under key and returned. The branch is written with [Mash.Store],
// so a setter that rewrites keys cannot move it away from key.
func (m *Mash) Touch(key any) any {
	k := Normalize(key)
	if v, ok := m.values[k]; ok {
		return v
	}
	branch := newMash(m.opts.nested())
	m.Store(k, branch)
	m.opts.Logger.Debug("mash: touch created branch", slog.String("key", k))
	return branch
}

// Delete removes key and returns the value that was stored under it.
func (m *Mash) Delete(key any) (any, bool) {
	k := Normalize(key)
	v, ok := m.values[k]
	if !ok {
		return nil, false
	}
	delete(m.values, k)
	for i, existing := range m.keys {
		if existing == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the stored keys in insertion order.
func (m *Mash) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of stored entries.
func (m *Mash) Len() int {
	return len(m.keys)
}

// All iterates over the stored entries in insertion order.
func (m *Mash) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// ToMap returns a deep copy of m as plain Go values: nested mashes become
// map[string]any and sequences become []any. m must not contain itself.
func (m *Mash) ToMap() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch val := v.(type) {
	case *Mash:
		if val == nil {
			return nil
		}
		return val.ToMap()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
