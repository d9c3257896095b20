package mashtest

import "fmt"

// SourceOption is a functional option for configuring sources during building.
type SourceOption func(*SourceBuilder)

// SourceBuilder builds nested map[string]any sources through functional
// options only.
type SourceBuilder struct {
	data map[string]any
}

// NewSource creates a new source builder with the given options applied.
func NewSource(opts ...SourceOption) *SourceBuilder {
	builder := &SourceBuilder{data: make(map[string]any)}
	for _, opt := range opts {
		opt(builder)
	}
	return builder
}

// Build returns the source built so far.
func (b *SourceBuilder) Build() map[string]any {
	return b.data
}

// WithEntry sets key to value.
func WithEntry(key string, value any) SourceOption {
	return func(b *SourceBuilder) {
		b.data[key] = value
	}
}

// WithNested sets key to a nested source built from opts.
func WithNested(key string, opts ...SourceOption) SourceOption {
	return func(b *SourceBuilder) {
		b.data[key] = NewSource(opts...).Build()
	}
}

// WithList sets key to a list of items. Items that are SourceBuilders are
// built into nested sources.
func WithList(key string, items ...any) SourceOption {
	return func(b *SourceBuilder) {
		list := make([]any, len(items))
		for i, item := range items {
			if nested, ok := item.(*SourceBuilder); ok {
				list[i] = nested.Build()
				continue
			}
			list[i] = item
		}
		b.data[key] = list
	}
}

// Deep returns a source nested depth levels deep. Each level holds a scalar,
// a nested map under "child" and a list mixing a map, a nested list and a
// scalar, so mappings appear both directly and inside sequences.
func Deep(depth int) map[string]any {
	level := map[string]any{"leaf": depth}
	for d := 1; d <= depth; d++ {
		level = map[string]any{
			"value": fmt.Sprintf("level-%d", d),
			"child": level,
			"items": []any{
				map[string]any{"index": d},
				[]any{map[string]any{"inner": d}, d},
				d,
			},
		}
	}
	return level
}
