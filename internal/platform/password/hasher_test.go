package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"basic password", "pw1234567"},
		{"long password", strings.Repeat("correct horse battery staple ", 4)},
		{"unicode password", "パスワード123"},
		{"empty password", ""},
	}

	h := NewHasher()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(encoded, "$argon2id$"), "unexpected credential format: %s", encoded)

			assert.True(t, h.Verify(tt.password, encoded), "password should verify against its own hash")
			assert.False(t, h.Verify(tt.password+"x", encoded), "different password should not verify")
		})
	}
}

func TestHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	first, err := h.Hash("pw1234567")
	require.NoError(t, err)
	second, err := h.Hash("pw1234567")
	require.NoError(t, err)

	// Random salt means the same password never hashes to the same credential.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("pw1234567", first))
	assert.True(t, h.Verify("pw1234567", second))
}

func TestHasher_VerifyMalformedCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty string", ""},
		{"not a hash", "plaintext-password"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=3,p=2"},
		{"bad version", "$argon2id$v=abc$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"bad parameters", "$argon2id$v=19$m=abc,t=3,p=2$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!!"},
	}

	h := NewHasher()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Malformed credentials must verify as false, never panic.
			assert.False(t, h.Verify("pw1234567", tt.encoded))
		})
	}
}

func TestHasher_VerifyEmbeddedParameters(t *testing.T) {
	t.Parallel()

	// Verification reads parameters from the credential itself, so a hash
	// produced under different cost settings still verifies.
	weak := &argon2Hasher{
		memory:      8 * 1024,
		iterations:  1,
		parallelism: 1,
		saltLength:  16,
		keyLength:   32,
	}
	encoded, err := weak.Hash("pw1234567")
	require.NoError(t, err)

	assert.True(t, NewHasher().Verify("pw1234567", encoded))
}
