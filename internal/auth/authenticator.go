package auth

import (
	"net/http"
	"strings"

	"examplar-api/internal/rbac"
	apperrors "examplar-api/pkg/errors"
)

// Authenticator resolves the principal of a request
type Authenticator interface {
	Scheme(r *http.Request) Scheme
	Authenticate(r *http.Request) (*rbac.Principal, error)
}

type CredentialVerifier interface {
	Verify(username, password string) (rbac.RoleSet, error)
}

type KeyValidator interface {
	IsValid(key string) bool
}

// RequestAuthenticator routes exactly one method and path to API key
// authentication; every other request uses HTTP Basic.
type RequestAuthenticator struct {
	credentials  CredentialVerifier
	keys         KeyValidator
	apiKeyMethod string
	apiKeyPath   string
}

func NewRequestAuthenticator(credentials CredentialVerifier, keys KeyValidator, apiKeyMethod, apiKeyPath string) *RequestAuthenticator {
	return &RequestAuthenticator{
		credentials:  credentials,
		keys:         keys,
		apiKeyMethod: strings.ToUpper(apiKeyMethod),
		apiKeyPath:   apiKeyPath,
	}
}

func (a *RequestAuthenticator) Scheme(r *http.Request) Scheme {
	if r.Method == a.apiKeyMethod && r.URL.Path == a.apiKeyPath {
		return SchemeAPIKey
	}
	return SchemeBasic
}

func (a *RequestAuthenticator) Authenticate(r *http.Request) (*rbac.Principal, error) {
	if a.Scheme(r) == SchemeAPIKey {
		return a.authenticateAPIKey(r)
	}
	return a.authenticateBasic(r)
}

func (a *RequestAuthenticator) authenticateAPIKey(r *http.Request) (*rbac.Principal, error) {
	key := extractAPIKey(r)
	if key == "" {
		return nil, apperrors.Unauthorized(msgMissingAPIKey)
	}
	if !a.keys.IsValid(key) {
		return nil, apperrors.Unauthorized(msgInvalidAPIKey)
	}

	return &rbac.Principal{
		Type:  rbac.AuthTypeAPIKey,
		Name:  key,
		Roles: rbac.NewRoleSet(),
	}, nil
}

func (a *RequestAuthenticator) authenticateBasic(r *http.Request) (*rbac.Principal, error) {
	username, pass, ok := r.BasicAuth()
	if !ok {
		return nil, apperrors.Unauthorized(msgMissingCredentials)
	}

	roles, err := a.credentials.Verify(username, pass)
	if err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}

	return &rbac.Principal{
		Type:  rbac.AuthTypeBasic,
		Name:  username,
		Roles: roles,
	}, nil
}

func extractAPIKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerAPIKey))
}
