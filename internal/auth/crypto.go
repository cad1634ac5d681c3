package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Pre-computed dummy hash for constant-time operations
const dummyAPIKeyHash = "0000000000000000000000000000000000000000000000000000000000000000"

// HashKey hashes a key using SHA256
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// ConstantTimeCompareHashes compares two hex-encoded hash strings in constant time.
func ConstantTimeCompareHashes(a, b string) bool {
	aBytes := []byte(a)
	bBytes := []byte(b)

	// If lengths differ, still do comparison to maintain constant time
	if len(aBytes) != len(bBytes) {
		if len(aBytes) < len(bBytes) {
			aBytes = make([]byte, len(bBytes))
		} else {
			bBytes = make([]byte, len(aBytes))
		}
		subtle.ConstantTimeCompare(aBytes, bBytes)
		return false
	}

	return subtle.ConstantTimeCompare(aBytes, bBytes) == 1
}

// BurnHashTime performs a dummy hash and compare to equalize timing when
// there is nothing to compare against.
func BurnHashTime(input string) {
	ConstantTimeCompareHashes(HashKey(input), dummyAPIKeyHash)
}
