package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	t.Run("no key passes through", func(t *testing.T) {
		box, err := New("")
		require.NoError(t, err)
		assert.False(t, box.Enabled())

		sealed, err := box.Seal("ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", sealed)
	})

	t.Run("sealed values open with the same key", func(t *testing.T) {
		key, err := GenerateKey()
		require.NoError(t, err)
		box, err := New(key)
		require.NoError(t, err)

		sealed, err := box.Seal("+54 11 5555-0000")
		require.NoError(t, err)
		assert.NotEqual(t, "+54 11 5555-0000", sealed)

		plain, err := box.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "+54 11 5555-0000", plain)
	})

	t.Run("another key cannot open", func(t *testing.T) {
		k1, _ := GenerateKey()
		k2, _ := GenerateKey()
		b1, _ := New(k1)
		b2, _ := New(k2)

		sealed, err := b1.Seal("secret")
		require.NoError(t, err)
		_, err = b2.Open(sealed)
		assert.ErrorIs(t, err, ErrCannotOpen)
	})

	t.Run("empty stays empty", func(t *testing.T) {
		key, _ := GenerateKey()
		box, _ := New(key)
		sealed, err := box.Seal("")
		require.NoError(t, err)
		assert.Empty(t, sealed)
	})

	t.Run("bad key", func(t *testing.T) {
		_, err := New("not-a-key")
		assert.Error(t, err)
	})
}
