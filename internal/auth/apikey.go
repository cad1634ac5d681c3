package auth

import (
	"fmt"
	"strings"
)

// APIKeyValidator checks presented keys against a fixed set. Only SHA-256
// digests of the keys are retained.
type APIKeyValidator struct {
	digests []string
}

func NewAPIKeyValidator(keys []string) (*APIKeyValidator, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf(errAPIKeySetEmpty)
	}

	digests := make([]string, 0, len(keys))
	for i, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf(errAPIKeyEmptyFmt, i)
		}
		digests = append(digests, HashKey(key))
	}

	return &APIKeyValidator{digests: digests}, nil
}

// IsValid compares the key against every stored digest without stopping at
// the first match.
func (v *APIKeyValidator) IsValid(key string) bool {
	if key == "" {
		BurnHashTime(key)
		return false
	}

	presented := HashKey(key)
	match := false
	for _, digest := range v.digests {
		if ConstantTimeCompareHashes(presented, digest) {
			match = true
		}
	}
	return match
}
