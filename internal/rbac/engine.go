package rbac

import (
	"fmt"
)

// Checker provides authorization checking based on a validated Config
type Checker struct {
	config     Config
	validRoles map[Role]bool
	policies   map[string]Policy
}

// New creates a Checker from a validated Config
func New(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := &Checker{config: cfg}
	rc.buildLookups()
	return rc, nil
}

// MustNew creates a Checker and panics on invalid config
func MustNew(cfg Config) *Checker {
	rc, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf(errMustNewPanicFmt, err))
	}
	return rc
}

func (rc *Checker) buildLookups() {
	cfg := rc.config

	rc.validRoles = make(map[Role]bool, len(cfg.Roles))
	for _, r := range cfg.Roles {
		rc.validRoles[r] = true
	}

	rc.policies = make(map[string]Policy, len(cfg.Routes))
	for _, rule := range cfg.Routes {
		rc.policies[routeKey(rule.Method, rule.Path)] = rule.Policy
	}
}

// PolicyFor resolves the policy of a route template. Routes without a rule
// get the default policy.
func (rc *Checker) PolicyFor(method, path string) Policy {
	if p, ok := rc.policies[routeKey(method, path)]; ok {
		return p
	}
	return rc.config.DefaultPolicy
}

// Routes returns the configured route rules in declaration order
func (rc *Checker) Routes() []RouteRule {
	out := make([]RouteRule, len(rc.config.Routes))
	copy(out, rc.config.Routes)
	return out
}

// Authorize checks whether principal satisfies policy
func (rc *Checker) Authorize(principal *Principal, policy Policy) error {
	if policy.Kind == PolicyPublic {
		return nil
	}
	if principal == nil {
		return fmt.Errorf(errDeniedNilSubjectFmt, ErrDenied, ErrNilSubject)
	}

	switch policy.Kind {
	case PolicyAuthenticated:
		return nil
	case PolicyAnyRole:
		if !principal.Roles.HasAny(policy.Roles) {
			return fmt.Errorf(errDeniedMissingRoleFmt, ErrDenied, policy.Roles, principal.Name, principal.Roles.Slice())
		}
		return nil
	default:
		return fmt.Errorf(errDeniedUnknownPolicyKindFmt, ErrDenied, policy.Kind)
	}
}

// ValidateRole validates a role string against configured roles
func (rc *Checker) ValidateRole(role string) (Role, error) {
	r := Role(role)
	if rc.validRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf(errInvalidRoleFmt, ErrInvalidRole, role)
}
