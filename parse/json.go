// Package parse decodes JSON and YAML documents into mashes, preserving the
// order in which mapping keys appear in the document.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nisimpson/mash"
)

// JSON decodes a JSON object into a Mash. Integral numbers decode as int64
// and all other numbers as float64.
func JSON(data []byte, opts ...func(*mash.Options)) (*mash.Mash, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON document: %w: %w", mash.ErrMalformedSource, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("failed to read JSON document: %w: top level is not an object", mash.ErrMalformedSource)
	}

	pairs, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON document: %w: %w", mash.ErrMalformedSource, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read JSON document: %w: trailing data", mash.ErrMalformedSource)
	}

	return mash.New(pairs, opts...)
}

// decodeObject reads object members after the opening brace has been consumed.
func decodeObject(dec *json.Decoder) (mash.Pairs, error) {
	pairs := mash.Pairs{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %q: %w", key, err)
		}
		pairs = append(pairs, mash.Pair{Key: key, Value: value})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	items := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode index %d: %w", len(items), err)
		}
		items = append(items, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", v)
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		// string, bool or nil
		return v, nil
	}
}
