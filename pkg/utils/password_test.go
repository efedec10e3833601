package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, ComparePassword(hash, "s3cret-pass"))
	assert.False(t, ComparePassword(hash, "wrong-pass"))
}
