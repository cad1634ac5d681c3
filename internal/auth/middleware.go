package auth

import (
	"fmt"

	"examplar-api/internal/audit"
	"examplar-api/internal/rbac"
	apperrors "examplar-api/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Authorizer interface {
	Authorize(principal *rbac.Principal, policy rbac.Policy) error
}

type PolicyResolver interface {
	PolicyFor(method, path string) rbac.Policy
}

type AuditLogger interface {
	LogFromContext(c echo.Context, action audit.Action, status audit.Status, scheme string, principal *rbac.Principal, reason error)
}

type Middleware struct {
	authenticator Authenticator
	authorizer    Authorizer
	policies      PolicyResolver
	auditLogger   AuditLogger
	challenge     string
}

func NewMiddleware(authenticator Authenticator, authorizer Authorizer, policies PolicyResolver, auditLogger AuditLogger, realm string) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		authorizer:    authorizer,
		policies:      policies,
		auditLogger:   auditLogger,
		challenge:     fmt.Sprintf(basicChallengeFmt, realm),
	}
}

// Gate resolves the route policy, authenticates the request unless the
// route is public, and authorizes the principal. Authentication failures
// surface as 401 and authorization failures as 403.
func (m *Middleware) Gate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			policy := m.policies.PolicyFor(c.Request().Method, c.Path())
			if policy.IsPublic() {
				return next(c)
			}

			scheme := m.authenticator.Scheme(c.Request())
			principal, err := m.authenticator.Authenticate(c.Request())
			if err != nil {
				m.audit(c, audit.ActionAuthenticate, audit.StatusFailure, scheme, nil, err)
				if scheme == SchemeBasic {
					c.Response().Header().Set(headerWWWAuthenticate, m.challenge)
				}
				return err
			}

			c.Set(ContextKeyPrincipal, principal)
			m.audit(c, audit.ActionAuthenticate, audit.StatusSuccess, scheme, principal, nil)

			if err := m.authorizer.Authorize(principal, policy); err != nil {
				m.audit(c, audit.ActionAuthorize, audit.StatusDenied, scheme, principal, err)
				return apperrors.Forbidden(msgAccessDenied)
			}

			return next(c)
		}
	}
}

func (m *Middleware) audit(c echo.Context, action audit.Action, status audit.Status, scheme Scheme, principal *rbac.Principal, reason error) {
	if m.auditLogger == nil {
		return
	}
	m.auditLogger.LogFromContext(c, action, status, string(scheme), principal, reason)
}

func GetPrincipal(c echo.Context) (*rbac.Principal, error) {
	principal, ok := c.Get(ContextKeyPrincipal).(*rbac.Principal)
	if !ok || principal == nil {
		return nil, apperrors.Unauthorized(msgPrincipalMissing)
	}
	return principal, nil
}
