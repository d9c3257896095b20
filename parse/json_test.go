package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nisimpson/mash"
	"github.com/nisimpson/mash/mashtest"
)

func TestJSON(t *testing.T) {
	t.Run("keeps member order", func(t *testing.T) {
		m, err := JSON([]byte(`{"zeta": 1, "alpha": {"y": true, "b": null}, "mid": "x"}`))
		require.NoError(t, err)

		mashtest.That(t, m).
			HasKeys("zeta", "alpha", "mid").
			Nested("alpha").HasKeys("y", "b")
	})

	t.Run("converts nested objects in arrays", func(t *testing.T) {
		m, err := JSON([]byte(`{"a": {"b": 23, "d": {"e": "abc"}}, "f": [{"g": 44, "h": 29}, 12]}`))
		require.NoError(t, err)

		mashtest.That(t, m).IsDeeplyConverted()

		b, err := m.Send("a.b")
		require.NoError(t, err)
		assert.Equal(t, int64(23), b)

		e, err := m.Send("a.d.e")
		require.NoError(t, err)
		assert.Equal(t, "abc", e)

		f, ok := m.Get("f").([]any)
		require.True(t, ok)
		require.Len(t, f, 2)
		require.IsType(t, &mash.Mash{}, f[0])
		assert.Equal(t, int64(44), f[0].(*mash.Mash).Get("g"))
		assert.Equal(t, int64(12), f[1])
	})

	t.Run("numbers", func(t *testing.T) {
		m, err := JSON([]byte(`{"int": -7, "float": 2.5, "exp": 1e3}`))
		require.NoError(t, err)

		assert.Equal(t, int64(-7), m.Get("int"))
		assert.Equal(t, 2.5, m.Get("float"))
		assert.Equal(t, float64(1000), m.Get("exp"))
	})

	t.Run("empty containers", func(t *testing.T) {
		m, err := JSON([]byte(`{"obj": {}, "list": []}`))
		require.NoError(t, err)

		mashtest.That(t, m).Nested("obj").HasKeys()
		assert.Equal(t, []any{}, m.Get("list"))
	})

	t.Run("options are applied", func(t *testing.T) {
		m, err := JSON([]byte(`{"a": {"b": 1}}`), mash.WithTypeName("Doc"))
		require.NoError(t, err)
		assert.Equal(t, "<Doc a=<Doc b=1>>", m.Inspect())
	})
}

func TestJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ``},
		{name: "array root", data: `[1, 2]`},
		{name: "scalar root", data: `"text"`},
		{name: "truncated", data: `{"a": [1, 2`},
		{name: "trailing data", data: `{"a": 1} {"b": 2}`},
		{name: "syntax", data: `{"a": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := JSON([]byte(tt.data))
			assert.Nil(t, m)
			assert.ErrorIs(t, err, mash.ErrMalformedSource)
		})
	}
}
