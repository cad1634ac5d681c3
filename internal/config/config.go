package config

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	accountFieldSeparator = ":"
	accountRoleSeparator  = "|"
	minPort               = 1
	maxPort               = 65535
	minBcryptCost         = 4
	maxBcryptCost         = 31

	LogFormatJSON = "json"
	LogFormatText = "text"

	errInvalidConfigurationFmt = "invalid configuration: %w"
	errReadEnvironmentFmt      = "read environment configuration: %w"
	errPortInvalidFmt          = "SERVER_PORT must be a number between %d and %d, got %q"
	errTimeoutInvalidFmt       = "%s must be positive, got %s"
	errBodyLimitRequired       = "SERVER_BODY_LIMIT must be set"
	errUsersRequired           = "AUTH_USERS must contain at least one account"
	errAPIKeysRequired         = "AUTH_API_KEYS must contain at least one key"
	errAPIKeyEmptyFmt          = "AUTH_API_KEYS entry %d is empty"
	errAPIKeyMethodInvalidFmt  = "AUTH_API_KEY_METHOD %q is not a known HTTP method"
	errAPIKeyPathInvalidFmt    = "AUTH_API_KEY_PATH must start with '/', got %q"
	errRealmRequired           = "AUTH_REALM must be set"
	errBcryptCostFmt           = "AUTH_BCRYPT_COST must be between %d and %d, got %d"
	errRateLimitFmt            = "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive, got %v and %d"
	errLogFormatFmt            = "LOG_FORMAT must be %q or %q, got %q"
	errAccountFormatFmt        = "account entry %d: expected username:password:ROLE[|ROLE]"
	errAccountFieldEmptyFmt    = "account entry %d: %s must not be empty"
	errAccountDuplicateFmt     = "account entry %d: duplicate username %q"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Auth      AuthConfig      `envconfig:"AUTH"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
	Log       LogConfig       `envconfig:"LOG"`
	Metrics   MetricsConfig   `envconfig:"METRICS"`
}

// ServerConfig fields are read from SERVER_* only. PORT is the single
// unprefixed fallback.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `split_words:"true" default:"10s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	BodyLimit       string        `split_words:"true" default:"1M"`
}

// AuthConfig holds the fixed credential material loaded once at startup.
// Users entries have the form username:password:ROLE[|ROLE]. The password is
// everything between the first and the last ':' and may be a bcrypt hash.
type AuthConfig struct {
	Users        []string `split_words:"true" default:"admin:adminpass:ADMIN,user:userpass:USER"`
	APIKeys      []string `split_words:"true" default:"key1,key2"`
	APIKeyMethod string   `split_words:"true" default:"GET"`
	APIKeyPath   string   `split_words:"true" default:"/api/products"`
	Realm        string   `split_words:"true" default:"examplar"`
	BcryptCost   int      `split_words:"true" default:"10"`
}

type RateLimitConfig struct {
	Enabled bool    `split_words:"true" default:"true"`
	RPS     float64 `split_words:"true" default:"100"`
	Burst   int     `split_words:"true" default:"200"`
}

type LogConfig struct {
	Level  string `split_words:"true" default:"info"`
	Format string `split_words:"true" default:"json"`
}

type MetricsConfig struct {
	Enabled bool `split_words:"true" default:"false"`
}

// Account is one parsed AUTH_USERS entry
type Account struct {
	Username string
	Secret   string
	Roles    []string
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf(errReadEnvironmentFmt, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < minPort || port > maxPort {
		return fmt.Errorf(errPortInvalidFmt, minPort, maxPort, c.Server.Port)
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", c.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf(errTimeoutInvalidFmt, t.name, t.value)
		}
	}

	if c.Server.BodyLimit == "" {
		return fmt.Errorf(errBodyLimitRequired)
	}

	if err := c.Auth.validate(); err != nil {
		return err
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf(errRateLimitFmt, c.RateLimit.RPS, c.RateLimit.Burst)
	}

	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatText {
		return fmt.Errorf(errLogFormatFmt, LogFormatJSON, LogFormatText, c.Log.Format)
	}

	return nil
}

func (a *AuthConfig) validate() error {
	if len(a.Users) == 0 {
		return fmt.Errorf(errUsersRequired)
	}
	if _, err := ParseAccounts(a.Users); err != nil {
		return err
	}

	if len(a.APIKeys) == 0 {
		return fmt.Errorf(errAPIKeysRequired)
	}
	for i, key := range a.APIKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf(errAPIKeyEmptyFmt, i)
		}
	}

	if !knownMethods[strings.ToUpper(a.APIKeyMethod)] {
		return fmt.Errorf(errAPIKeyMethodInvalidFmt, a.APIKeyMethod)
	}
	if !strings.HasPrefix(a.APIKeyPath, "/") {
		return fmt.Errorf(errAPIKeyPathInvalidFmt, a.APIKeyPath)
	}
	if a.Realm == "" {
		return fmt.Errorf(errRealmRequired)
	}
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		return fmt.Errorf(errBcryptCostFmt, minBcryptCost, maxBcryptCost, a.BcryptCost)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// ParseAccounts parses AUTH_USERS entries. Role names are not checked
// against the role catalogue here.
func ParseAccounts(entries []string) ([]Account, error) {
	accounts := make([]Account, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		first := strings.Index(entry, accountFieldSeparator)
		last := strings.LastIndex(entry, accountFieldSeparator)
		if first < 0 || first == last {
			return nil, fmt.Errorf(errAccountFormatFmt, i)
		}

		username, secret, roleField := entry[:first], entry[first+1:last], entry[last+1:]
		if username == "" {
			return nil, fmt.Errorf(errAccountFieldEmptyFmt, i, "username")
		}
		if secret == "" {
			return nil, fmt.Errorf(errAccountFieldEmptyFmt, i, "password")
		}
		if seen[username] {
			return nil, fmt.Errorf(errAccountDuplicateFmt, i, username)
		}
		seen[username] = true

		var roles []string
		for _, r := range strings.Split(roleField, accountRoleSeparator) {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		if len(roles) == 0 {
			return nil, fmt.Errorf(errAccountFieldEmptyFmt, i, "roles")
		}

		accounts = append(accounts, Account{Username: username, Secret: secret, Roles: roles})
	}

	return accounts, nil
}
