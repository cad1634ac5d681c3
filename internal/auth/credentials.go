package auth

import (
	"errors"
	"fmt"

	"examplar-api/internal/rbac"
	"examplar-api/pkg/password"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Account is a username with its secret and roles. Secret may be plaintext
// or a bcrypt hash.
type Account struct {
	Username string
	Secret   string
	Roles    []rbac.Role
}

// Credential is a stored account with its bcrypt hash
type Credential struct {
	Username     string
	PasswordHash string
	Roles        rbac.RoleSet
}

// CredentialStore verifies username/password pairs against a fixed set of
// accounts. It is immutable after construction.
type CredentialStore struct {
	credentials map[string]Credential
	dummyHash   string
	weak        []string
}

func NewCredentialStore(accounts []Account, cost int) (*CredentialStore, error) {
	dummy, err := password.HashWithCost("dummy-password", cost)
	if err != nil {
		return nil, err
	}

	store := &CredentialStore{
		credentials: make(map[string]Credential, len(accounts)),
		dummyHash:   dummy,
	}

	for _, acc := range accounts {
		if acc.Username == "" {
			return nil, fmt.Errorf(errAccountUsernameEmpty)
		}
		if _, dup := store.credentials[acc.Username]; dup {
			return nil, fmt.Errorf(errAccountDuplicateFmt, acc.Username)
		}
		if len(acc.Roles) == 0 {
			return nil, fmt.Errorf(errAccountNoRolesFmt, acc.Username)
		}
		if acc.Secret == "" {
			return nil, fmt.Errorf(errAccountSecretEmptyFmt, acc.Username)
		}

		hash := acc.Secret
		if password.IsHash(hash) {
			if needs, _ := password.NeedsRehash(hash, cost); needs {
				store.weak = append(store.weak, acc.Username)
			}
		} else {
			hash, err = password.HashWithCost(acc.Secret, cost)
			if err != nil {
				return nil, fmt.Errorf(errAccountHashFmt, acc.Username, err)
			}
		}

		store.credentials[acc.Username] = Credential{
			Username:     acc.Username,
			PasswordHash: hash,
			Roles:        rbac.NewRoleSet(acc.Roles...),
		}
	}

	return store, nil
}

// Verify returns the roles of username when password matches. Unknown users
// still pay for one bcrypt comparison.
func (s *CredentialStore) Verify(username, pass string) (rbac.RoleSet, error) {
	cred, ok := s.credentials[username]
	if !ok {
		password.Verify(pass, s.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(pass, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return cred.Roles.Clone(), nil
}

// WeakHashes lists accounts whose configured bcrypt hash is below the
// configured cost, in configuration order
func (s *CredentialStore) WeakHashes() []string {
	out := make([]string, len(s.weak))
	copy(out, s.weak)
	return out
}

// Len returns the number of stored accounts
func (s *CredentialStore) Len() int {
	return len(s.credentials)
}
