package utils_test

import (
	"testing"

	"fakestore_back_end/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("motdepasse")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse", hash)

	assert.True(t, utils.CheckPassword(hash, "motdepasse"))
	assert.False(t, utils.CheckPassword(hash, "autre"))
	assert.False(t, utils.CheckPassword("", "motdepasse"))
}
