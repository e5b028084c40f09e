package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// passwordIterations is the PBKDF2 work factor. Stored hashes depend on
// it, so changing it invalidates existing credentials.
const passwordIterations = 10_000

// HashPassword derives a hex-encoded PBKDF2-SHA256 hash of password
// under the given hex salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), passwordIterations, 32, sha256.New)
	return hex.EncodeToString(key)
}

// CheckPasswordHash compares a plaintext password against a stored
// salt/hash pair in constant time.
func CheckPasswordHash(password, salt, hash string) bool {
	derived := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}
