// Package mashtest provides fluent assertions and source fixtures for testing
// code that builds or consumes mashes.
//
// # Usage
//
//	m, _ := mash.New(mashtest.NewSource(
//		mashtest.WithEntry("name", "Bob"),
//		mashtest.WithNested("address", mashtest.WithEntry("city", "Oslo")),
//	).Build())
//
//	mashtest.That(t, m).
//		HasKey("name").
//		HasValue("name", "Bob").
//		IsDeeplyConverted().
//		Nested("address").
//		HasValue("city", "Oslo")
package mashtest

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/nisimpson/mash"
)

// MashAssertion provides fluent assertions for a Mash.
type MashAssertion struct {
	t    testing.TB
	m    *mash.Mash
	path string
}

// That creates a new MashAssertion for m.
func That(t testing.TB, m *mash.Mash) *MashAssertion {
	t.Helper()
	if m == nil {
		t.Fatal("expected a mash, got nil")
	}
	return &MashAssertion{t: t, m: m, path: "mash"}
}

// HasKey asserts that key is stored.
func (a *MashAssertion) HasKey(key any) *MashAssertion {
	a.t.Helper()
	if !a.m.Has(key) {
		a.t.Errorf("expected %s to have key %q; keys are %v", a.path, mash.Normalize(key), a.m.Keys())
	}
	return a
}

// LacksKey asserts that key is not stored.
func (a *MashAssertion) LacksKey(key any) *MashAssertion {
	a.t.Helper()
	if a.m.Has(key) {
		a.t.Errorf("expected %s to lack key %q", a.path, mash.Normalize(key))
	}
	return a
}

// HasKeys asserts that the stored keys are exactly keys, in insertion order.
func (a *MashAssertion) HasKeys(keys ...string) *MashAssertion {
	a.t.Helper()
	if got := a.m.Keys(); !slices.Equal(got, keys) {
		a.t.Errorf("expected %s keys %v, got %v", a.path, keys, got)
	}
	return a
}

// HasValue asserts that the value stored under key deeply equals want.
func (a *MashAssertion) HasValue(key any, want any) *MashAssertion {
	a.t.Helper()
	got, ok := a.m.Lookup(key)
	if !ok {
		a.t.Errorf("expected %s to have key %q", a.path, mash.Normalize(key))
		return a
	}
	if !reflect.DeepEqual(got, want) {
		a.t.Errorf("expected %s.%s to be %#v (%T), got %#v (%T)", a.path, mash.Normalize(key), want, want, got, got)
	}
	return a
}

// Nested asserts that key holds a Mash and returns an assertion for it.
// On failure the returned assertion wraps an empty Mash, so chained calls
// report their own failures instead of panicking.
func (a *MashAssertion) Nested(key any) *MashAssertion {
	a.t.Helper()
	path := a.path + "." + mash.Normalize(key)
	nested, ok := a.m.Get(key).(*mash.Mash)
	if !ok || nested == nil {
		a.t.Errorf("expected %s to be a mash, got %T", path, a.m.Get(key))
		return &MashAssertion{t: a.t, m: mash.MustNew(nil), path: path}
	}
	return &MashAssertion{t: a.t, m: nested, path: path}
}

// Describes asserts that Inspect and String both return want.
func (a *MashAssertion) Describes(want string) *MashAssertion {
	a.t.Helper()
	if got := a.m.Inspect(); got != want {
		a.t.Errorf("expected %s to inspect as %s, got %s", a.path, want, got)
	}
	if got := a.m.String(); got != want {
		a.t.Errorf("expected %s to stringify as %s, got %s", a.path, want, got)
	}
	return a
}

// IsDeeplyConverted asserts that no raw Go map remains anywhere beneath the
// mash, including inside slices.
func (a *MashAssertion) IsDeeplyConverted() *MashAssertion {
	a.t.Helper()
	for _, path := range rawMaps(a.m, a.path) {
		a.t.Errorf("expected %s to be a mash, found a raw map", path)
	}
	return a
}

func rawMaps(v any, path string) []string {
	switch val := v.(type) {
	case *mash.Mash:
		var found []string
		for k, child := range val.All() {
			found = append(found, rawMaps(child, path+"."+k)...)
		}
		return found
	case []any:
		var found []string
		for i, child := range val {
			found = append(found, rawMaps(child, fmt.Sprintf("%s[%d]", path, i))...)
		}
		return found
	}

	if v != nil && reflect.TypeOf(v).Kind() == reflect.Map {
		return []string{path}
	}
	return nil
}
