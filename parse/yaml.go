package parse

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nisimpson/mash"
)

// YAML decodes a YAML document whose root is a mapping into a Mash. Scalars
// are resolved with the usual YAML tags, so integers decode as int, floats as
// float64 and so on. Aliases are expanded in place.
func YAML(data []byte, opts ...func(*mash.Options)) (*mash.Mash, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to read YAML document: %w: %w", mash.ErrMalformedSource, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to read YAML document: %w: root is not a mapping", mash.ErrMalformedSource)
	}

	pairs, err := decodeMapping(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML document: %w: %w", mash.ErrMalformedSource, err)
	}

	return mash.New(pairs, opts...)
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// decodeMapping walks a mapping node. Content alternates keys and values.
// Merge keys (<<) splice in the entries of the referenced mappings at their
// position. Explicit keys of the mapping win over merged ones, and earlier
// merge sources win over later ones.
func decodeMapping(node *yaml.Node) (mash.Pairs, error) {
	keys := make([]any, len(node.Content)/2)
	explicit := make(map[string]bool, len(keys))
	for i := 0; i+1 < len(node.Content); i += 2 {
		if isMerge(node.Content[i]) {
			continue
		}
		key, err := decodeNode(node.Content[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode key at line %d: %w", node.Content[i].Line, err)
		}
		keys[i/2] = key
		explicit[mash.Normalize(key)] = true
	}

	pairs := make(mash.Pairs, 0, len(keys))
	merged := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if isMerge(node.Content[i]) {
			sources, err := mergeSources(node.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("failed to merge at line %d: %w", node.Content[i].Line, err)
			}
			for _, p := range sources {
				k := mash.Normalize(p.Key)
				if explicit[k] || merged[k] {
					continue
				}
				merged[k] = true
				pairs = append(pairs, p)
			}
			continue
		}

		key := keys[i/2]
		value, err := decodeNode(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", mash.Normalize(key), err)
		}
		pairs = append(pairs, mash.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

func isMerge(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Value == "<<" && node.ShortTag() == "!!merge"
}

// mergeSources decodes the value of a merge key: a mapping or a sequence of
// mappings, each possibly an alias.
func mergeSources(node *yaml.Node) (mash.Pairs, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		var pairs mash.Pairs
		for _, child := range node.Content {
			child = resolveAlias(child)
			if child.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("merge sequence holds a non-mapping at line %d", child.Line)
			}
			entries, err := decodeMapping(child)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, entries...)
		}
		return pairs, nil
	default:
		return nil, fmt.Errorf("merge value at line %d is not a mapping", node.Line)
	}
}

func decodeNode(node *yaml.Node) (any, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		return decodeMapping(node)
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for i, child := range node.Content {
			item, err := decodeNode(child)
			if err != nil {
				return nil, fmt.Errorf("failed to decode index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}
