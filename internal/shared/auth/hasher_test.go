package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)
	password := "mysecretpassword"

	// 1. Хеширование
	digest, err := hasher.Hash(password)
	require.NoError(t, err, "Hash should not return an error")
	require.NotEmpty(t, digest)
	assert.NotEqual(t, password, digest, "digest must not equal the plaintext")

	// 2. Проверка - успех
	assert.True(t, hasher.Verify(password, digest), "Verify should accept the correct password")

	// 3. Неверный пароль
	assert.False(t, hasher.Verify("wrongpassword", digest), "Verify should reject an incorrect password")

	// 4. Невалидный хеш
	assert.False(t, hasher.Verify(password, "not-a-bcrypt-hash"), "Verify should reject an invalid digest")

	// 5. Пустой пароль хешируется и проверяется
	emptyDigest, err := hasher.Hash("")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("", emptyDigest))
	assert.False(t, hasher.Verify("nonempty", emptyDigest))
}

func TestNewHasherClampsCost(t *testing.T) {
	// Нулевая и отрицательная стоимость дают рабочий хешер со стоимостью по умолчанию
	for _, cost := range []int{0, -5} {
		digest, err := NewHasher(cost).Hash("pw")
		require.NoError(t, err, "cost %d should be clamped into the valid range", cost)
		require.NotEmpty(t, digest)
		assert.True(t, NewHasher(cost).Verify("pw", digest))
	}
}
