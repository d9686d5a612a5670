package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, pw := range []string{"secret", "p@ss w0rd", "пароль", ""} {
		digest, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, digest, "digest must not equal plaintext")
		assert.True(t, h.Verify(pw, digest), "password %q must verify", pw)
		assert.False(t, h.Verify(pw+"x", digest))
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	// одинаковый пароль даёт разные дайджесты за счёт соли
	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestPasswordHasher_VerifyOtherPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	other, err := h.Hash("other")
	require.NoError(t, err)
	assert.False(t, h.Verify("password", other))
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("secret", ""))
	assert.False(t, h.Verify("secret", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("secret", "$2a$04$short"))
}

func TestNewPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewPasswordHasher(1000)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
	h = NewPasswordHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
