package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	a := New()

	encoded, err := a.Hash("correct-horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := a.Verify("correct-horse", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Verify("wrong-horse", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a := New()

	first, err := a.Hash("same password")
	require.NoError(t, err)
	second, err := a.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyUsesEncodedParameters(t *testing.T) {
	// A hash made with one config must verify under another
	strong := New()
	weak := &ArgonHash{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	encoded, err := weak.Hash("portable")
	require.NoError(t, err)

	ok, err := strong.Verify("portable", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	a := New()

	_, err := a.Verify("anything", "not-a-phc-string")
	assert.Error(t, err)
}
