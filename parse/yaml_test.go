package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nisimpson/mash"
	"github.com/nisimpson/mash/mashtest"
)

const profileYAML = `
name: Bob
address:
  street: Main
  city: Oslo
tags:
  - admin
  - role: owner
    since: 2020
  - [nested, {deep: true}]
ratio: 0.5
missing: ~
`

func TestYAML(t *testing.T) {
	t.Run("keeps mapping order", func(t *testing.T) {
		m, err := YAML([]byte(profileYAML))
		require.NoError(t, err)

		mashtest.That(t, m).
			HasKeys("name", "address", "tags", "ratio", "missing").
			HasValue("name", "Bob").
			HasValue("ratio", 0.5).
			HasValue("missing", nil).
			IsDeeplyConverted().
			Nested("address").
			HasKeys("street", "city").
			HasValue("city", "Oslo")
	})

	t.Run("converts mappings inside sequences", func(t *testing.T) {
		m, err := YAML([]byte(profileYAML))
		require.NoError(t, err)

		tags, ok := m.Get("tags").([]any)
		require.True(t, ok)
		require.Len(t, tags, 3)

		assert.Equal(t, "admin", tags[0])

		role, ok := tags[1].(*mash.Mash)
		require.True(t, ok)
		assert.Equal(t, "owner", role.Get("role"))
		assert.Equal(t, 2020, role.Get("since"))

		inner, ok := tags[2].([]any)
		require.True(t, ok)
		require.Len(t, inner, 2)
		deep, ok := inner[1].(*mash.Mash)
		require.True(t, ok)
		assert.Equal(t, true, deep.Get("deep"))
	})

	t.Run("non-string keys are normalized", func(t *testing.T) {
		m, err := YAML([]byte("1: one\ntrue: yes\n"))
		require.NoError(t, err)

		mashtest.That(t, m).
			HasKeys("1", "true").
			HasValue("1", "one").
			HasValue("true", "yes")
	})

	t.Run("aliases are expanded", func(t *testing.T) {
		m, err := YAML([]byte("base: &base {port: 80}\nsite: *base\n"))
		require.NoError(t, err)

		port, err := m.Send("site.port")
		require.NoError(t, err)
		assert.Equal(t, 80, port)
		assert.NotSame(t, m.Get("base"), m.Get("site"))
	})

	t.Run("merge keys splice the referenced mapping", func(t *testing.T) {
		m, err := YAML([]byte("base: &b {x: 1}\nchild: {<<: *b, y: 2}\n"))
		require.NoError(t, err)

		mashtest.That(t, m).
			Nested("child").
			HasKeys("x", "y").
			HasValue("x", 1).
			HasValue("y", 2).
			LacksKey("<<")
	})

	t.Run("explicit keys win over merged ones", func(t *testing.T) {
		m, err := YAML([]byte("base: &b {x: 1, z: 3}\nchild:\n  x: 9\n  <<: *b\n"))
		require.NoError(t, err)

		mashtest.That(t, m).
			Nested("child").
			HasKeys("x", "z").
			HasValue("x", 9).
			HasValue("z", 3)
	})

	t.Run("merge sequences favour earlier mappings", func(t *testing.T) {
		doc := "a: &a {x: 1}\nb: &b {x: 2, y: 2}\nchild:\n  <<: [*a, *b]\n"
		m, err := YAML([]byte(doc))
		require.NoError(t, err)

		mashtest.That(t, m).
			Nested("child").
			HasKeys("x", "y").
			HasValue("x", 1).
			HasValue("y", 2)
	})

	t.Run("merging a scalar is malformed", func(t *testing.T) {
		m, err := YAML([]byte("child: {<<: 1}\n"))
		assert.Nil(t, m)
		assert.ErrorIs(t, err, mash.ErrMalformedSource)
	})
}

func TestYAMLMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ``},
		{name: "sequence root", data: "- a\n- b\n"},
		{name: "scalar root", data: "text"},
		{name: "syntax", data: "a: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := YAML([]byte(tt.data))
			assert.Nil(t, m)
			assert.ErrorIs(t, err, mash.ErrMalformedSource)
		})
	}
}
