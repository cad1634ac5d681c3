package app

import (
	"fmt"

	"examplar-api/internal/audit"
	"examplar-api/internal/auth"
	"examplar-api/internal/config"
	"examplar-api/internal/domain/product"
	"examplar-api/internal/domain/user"
	"examplar-api/internal/http"
	"examplar-api/internal/rbac"
	"examplar-api/internal/rbac/presets"
	"examplar-api/internal/repository/memory"
	"examplar-api/pkg/metrics"

	log "github.com/sirupsen/logrus"
)

// Initialize wires up all dependencies and returns a configured Service
func Initialize(cfg *config.Config, logger log.FieldLogger) (*Service, error) {
	checker := rbac.MustNew(presets.Catalog())

	accounts, err := buildAccounts(cfg.Auth.Users, checker)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	credentials, err := auth.NewCredentialStore(accounts, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential store: %w", err)
	}

	for _, username := range credentials.WeakHashes() {
		logger.WithFields(log.Fields{
			"username":    username,
			"bcrypt_cost": cfg.Auth.BcryptCost,
		}).Warn("configured password hash is weaker than AUTH_BCRYPT_COST")
	}

	keys, err := auth.NewAPIKeyValidator(cfg.Auth.APIKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to build API key validator: %w", err)
	}

	authenticator := auth.NewRequestAuthenticator(credentials, keys, cfg.Auth.APIKeyMethod, cfg.Auth.APIKeyPath)

	auditLogger := audit.NewLogger(logger.WithField("component", "audit"))

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		auditLogger.WithCounter(m)
	}

	authMiddleware := auth.NewMiddleware(authenticator, checker, checker, auditLogger, cfg.Auth.Realm)

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		Logger:         logger,
		UserRepo:       memory.NewUserRepository(user.Seed()),
		ProductRepo:    memory.NewProductRepository(product.Seed()),
		AuthMiddleware: authMiddleware,
		Metrics:        m,
	})

	logger.WithFields(log.Fields{
		"accounts": credentials.Len(),
		"api_keys": len(cfg.Auth.APIKeys),
		"routes":   len(checker.Routes()),
		"metrics":  cfg.Metrics.Enabled,
	}).Info("service initialized")

	return &Service{
		config: cfg,
		logger: logger,
		server: server,
	}, nil
}

// buildAccounts parses the configured accounts and resolves every role
// against the catalogue so a typo fails at startup.
func buildAccounts(entries []string, checker *rbac.Checker) ([]auth.Account, error) {
	parsed, err := config.ParseAccounts(entries)
	if err != nil {
		return nil, err
	}

	accounts := make([]auth.Account, 0, len(parsed))
	for _, a := range parsed {
		roles := make([]rbac.Role, 0, len(a.Roles))
		for _, name := range a.Roles {
			role, err := checker.ValidateRole(name)
			if err != nil {
				return nil, fmt.Errorf("account %q: %w", a.Username, err)
			}
			roles = append(roles, role)
		}
		accounts = append(accounts, auth.Account{
			Username: a.Username,
			Secret:   a.Secret,
			Roles:    roles,
		})
	}

	return accounts, nil
}
