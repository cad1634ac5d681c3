package auth

const (
	ContextKeyPrincipal = "principal"

	headerAPIKey          = "X-API-Key"
	headerWWWAuthenticate = "WWW-Authenticate"
	basicChallengeFmt     = `Basic realm="%s"`
)

const (
	msgMissingAPIKey         = "missing API key"
	msgInvalidAPIKey         = "invalid API key"
	msgMissingCredentials    = "missing credentials"
	msgInvalidCredentials    = "invalid credentials"
	msgAccessDenied          = "access denied"
	msgPrincipalMissing      = "principal not found in context"
	errAPIKeySetEmpty        = "api key set must not be empty"
	errAPIKeyEmptyFmt        = "api key %d is empty"
	errAccountUsernameEmpty  = "account username must not be empty"
	errAccountDuplicateFmt   = "duplicate account %q"
	errAccountNoRolesFmt     = "account %q has no roles"
	errAccountHashFmt        = "hash password for %q: %w"
	errAccountSecretEmptyFmt = "account %q has an empty password"
)

// Scheme identifies which authentication branch a request is routed to
type Scheme string

const (
	SchemeBasic  Scheme = "basic"
	SchemeAPIKey Scheme = "api_key"
)
