package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCSRFSecret(t *testing.T) {
	t.Run("decodes hex", func(t *testing.T) {
		secret, err := resolveCSRFSecret("00ff10")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xff, 0x10}, secret)
	})

	t.Run("keeps raw values", func(t *testing.T) {
		secret, err := resolveCSRFSecret("not-hex-at-all")
		require.NoError(t, err)
		assert.Equal(t, []byte("not-hex-at-all"), secret)
	})

	t.Run("generates a random secret", func(t *testing.T) {
		first, err := resolveCSRFSecret("")
		require.NoError(t, err)
		second, err := resolveCSRFSecret("")
		require.NoError(t, err)

		assert.Len(t, first, csrfSecretLength)
		assert.NotEqual(t, first, second)
	})
}
