package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/valutatrade-hub/internal/utils"
)

func TestHashPassword_Deterministic(t *testing.T) {
	hash1 := utils.HashPassword("7890", "aabbccdd11223344")
	hash2 := utils.HashPassword("7890", "aabbccdd11223344")

	assert.Equal(t, hash1, hash2)
	assert.Len(t, hash1, 64)
}

func TestHashPassword_SaltChangesHash(t *testing.T) {
	hash1 := utils.HashPassword("7890", "aabbccdd11223344")
	hash2 := utils.HashPassword("7890", "ffeeddcc99887766")

	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPasswordHash(t *testing.T) {
	salt, err := utils.GenerateSecureRandomString(8)
	require.NoError(t, err)
	hash := utils.HashPassword("7890", salt)

	assert.True(t, utils.CheckPasswordHash("7890", salt, hash))
	assert.False(t, utils.CheckPasswordHash("wrong", salt, hash))
	assert.False(t, utils.CheckPasswordHash("7890", "othersalt", hash))
}

func TestGenerateSecureRandomString(t *testing.T) {
	salt, err := utils.GenerateSecureRandomString(8)
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	other, err := utils.GenerateSecureRandomString(8)
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}
