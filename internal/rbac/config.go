package rbac

import (
	"fmt"
	"strings"
)

// Config holds the role catalogue and the route policy table
type Config struct {
	Roles         []Role
	Routes        []RouteRule
	DefaultPolicy Policy
}

// Validate checks internal consistency of the Config
func (c *Config) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf(errConfigRolesEmpty)
	}

	roleNames := make(map[Role]bool, len(c.Roles))
	for _, r := range c.Roles {
		if r == "" {
			return fmt.Errorf(errConfigRoleNameEmpty)
		}
		if roleNames[r] {
			return fmt.Errorf(errConfigDuplicateRoleNameFmt, r)
		}
		roleNames[r] = true
	}

	seen := make(map[string]bool, len(c.Routes))
	for _, rule := range c.Routes {
		if rule.Method == "" {
			return fmt.Errorf(errConfigRouteMethodEmpty)
		}
		if rule.Path == "" {
			return fmt.Errorf(errConfigRoutePathEmptyFmt, rule.Method)
		}
		key := routeKey(rule.Method, rule.Path)
		if seen[key] {
			return fmt.Errorf(errConfigDuplicateRouteFmt, rule.Method, rule.Path)
		}
		seen[key] = true

		if err := validatePolicy(rule.Policy, roleNames); err != nil {
			return fmt.Errorf(errConfigRoutePolicyFmt, rule.Method, rule.Path, err)
		}
	}

	if err := validatePolicy(c.DefaultPolicy, roleNames); err != nil {
		return fmt.Errorf(errConfigDefaultPolicyFmt, err)
	}

	return nil
}

func validatePolicy(p Policy, roles map[Role]bool) error {
	switch p.Kind {
	case PolicyPublic, PolicyAuthenticated:
		return nil
	case PolicyAnyRole:
		if len(p.Roles) == 0 {
			return fmt.Errorf(errConfigAnyRoleEmpty)
		}
		for _, r := range p.Roles {
			if !roles[r] {
				return fmt.Errorf(errConfigPolicyUnknownRoleFmt, r)
			}
		}
		return nil
	default:
		return fmt.Errorf(errConfigUnknownPolicyKindFmt, p.Kind)
	}
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
