// Package password provides one-way password hashing and verification.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash derives a one-way credential from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password hashes to the given credential.
	Verify(password, encoded string) bool
}

// argon2Hasher implements Hasher using argon2id.
// The encoded form embeds the algorithm parameters and salt, so
// verification needs no external state.
type argon2Hasher struct {
	memory      uint32 // memory cost in KiB
	iterations  uint32 // time cost
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewHasher creates a Hasher with OWASP-recommended argon2id parameters.
func NewHasher() Hasher {
	return &argon2Hasher{
		memory:      64 * 1024, // 64 MiB
		iterations:  3,
		parallelism: 2,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash derives an argon2id credential in the standard encoded form:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func (a *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, a.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, a.iterations, a.memory, a.parallelism, a.keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.memory,
		a.iterations,
		a.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Verify recomputes the hash under the credential's embedded parameters and
// compares in constant time. A malformed credential verifies as false; it
// never returns an error to the caller.
func (a *argon2Hasher) Verify(password, encoded string) bool {
	params, salt, hash, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, params.iterations, params.memory, params.parallelism, params.keyLength)

	return subtle.ConstantTimeCompare(hash, computed) == 1
}

// decodeHash parses an encoded argon2id credential into its parameters,
// salt and raw hash.
func decodeHash(encoded string) (*argon2Hasher, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, errors.New("unsupported algorithm")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, errors.New("incompatible argon2 version")
	}

	params := &argon2Hasher{}
	var p int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &p); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	params.parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	params.keyLength = uint32(len(hash))

	return params, salt, hash, nil
}
