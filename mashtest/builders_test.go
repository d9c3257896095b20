package mashtest

import (
	"reflect"
	"testing"

	"github.com/nisimpson/mash"
)

func TestNewSource(t *testing.T) {
	got := NewSource(
		WithEntry("id", 1),
		WithNested("owner", WithEntry("name", "Bob")),
		WithList("items", 1, NewSource(WithEntry("sku", "P1"))),
	).Build()

	want := map[string]any{
		"id":    1,
		"owner": map[string]any{"name": "Bob"},
		"items": []any{1, map[string]any{"sku": "P1"}},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %#v, got %#v", want, got)
	}
}

func TestDeep(t *testing.T) {
	t.Run("depth zero is a leaf", func(t *testing.T) {
		got := Deep(0)
		if !reflect.DeepEqual(got, map[string]any{"leaf": 0}) {
			t.Errorf("Expected a single leaf, got %#v", got)
		}
	})

	t.Run("levels", func(t *testing.T) {
		source := Deep(3)
		for level := 3; level >= 1; level-- {
			items, ok := source["items"].([]any)
			if !ok || len(items) != 3 {
				t.Fatalf("level %d: expected three items, got %#v", level, source["items"])
			}
			source = source["child"].(map[string]any)
		}
		if source["leaf"] != 3 {
			t.Errorf("Expected leaf 3, got %v", source["leaf"])
		}
	})

	t.Run("converted sources have mashes in sequences", func(t *testing.T) {
		m := mash.MustNew(Deep(2))
		That(t, m).IsDeeplyConverted()

		items := m.Get("items").([]any)
		if _, ok := items[0].(*mash.Mash); !ok {
			t.Errorf("Expected items[0] to be a mash, got %T", items[0])
		}
		inner := items[1].([]any)
		if _, ok := inner[0].(*mash.Mash); !ok {
			t.Errorf("Expected items[1][0] to be a mash, got %T", inner[0])
		}
	})
}
