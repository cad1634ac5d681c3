package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithCost_RoundTrip(t *testing.T) {
	hash, err := HashWithCost("adminpass", MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "adminpass", hash)
	assert.True(t, IsHash(hash))
	assert.True(t, Verify("adminpass", hash))
	assert.False(t, Verify("wrong", hash))
}

func TestHashWithCost_Rejects(t *testing.T) {
	_, err := HashWithCost("", MinCost)
	assert.Error(t, err)

	_, err = HashWithCost("secret", MinCost-1)
	assert.Error(t, err)

	_, err = HashWithCost("secret", MaxCost+1)
	assert.Error(t, err)
}

func TestHash_IsSalted(t *testing.T) {
	a, err := HashWithCost("userpass", MinCost)
	require.NoError(t, err)
	b, err := HashWithCost("userpass", MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestIsHash(t *testing.T) {
	assert.False(t, IsHash("adminpass"))
	assert.False(t, IsHash("$2a$garbage"))
	assert.False(t, IsHash(""))
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashWithCost("userpass", MinCost)
	require.NoError(t, err)

	needs, err := NeedsRehash(hash, DefaultCost)
	require.NoError(t, err)
	assert.True(t, needs)

	needs, err = NeedsRehash(hash, MinCost)
	require.NoError(t, err)
	assert.False(t, needs)

	_, err = NeedsRehash("not-a-hash", DefaultCost)
	assert.Error(t, err)
}
