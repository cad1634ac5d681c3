package rbac

import "sort"

// AuthType represents the authentication method that produced a principal
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"
	AuthTypeAPIKey AuthType = "api_key"
)

// Role is an opaque authorization tag such as ADMIN or USER
type Role string

// RoleSet is an unordered set of roles
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		rs[r] = struct{}{}
	}
	return rs
}

func (rs RoleSet) Has(role Role) bool {
	_, ok := rs[role]
	return ok
}

// HasAny reports whether rs shares at least one role with roles
func (rs RoleSet) HasAny(roles []Role) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Slice returns the roles in sorted order
func (rs RoleSet) Slice() []Role {
	out := make([]Role, 0, len(rs))
	for r := range rs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (rs RoleSet) Clone() RoleSet {
	out := make(RoleSet, len(rs))
	for r := range rs {
		out[r] = struct{}{}
	}
	return out
}

// Principal is the identity attached to a request after authentication.
// Principals from the API key branch never carry roles.
type Principal struct {
	Type  AuthType
	Name  string
	Roles RoleSet
}

// PolicyKind selects how a policy is evaluated
type PolicyKind string

const (
	PolicyPublic        PolicyKind = "public"
	PolicyAuthenticated PolicyKind = "authenticated"
	PolicyAnyRole       PolicyKind = "any_role"
)

// Policy is the access predicate attached to a route
type Policy struct {
	Kind  PolicyKind
	Roles []Role
}

func Public() Policy {
	return Policy{Kind: PolicyPublic}
}

func Authenticated() Policy {
	return Policy{Kind: PolicyAuthenticated}
}

func AnyRole(roles ...Role) Policy {
	return Policy{Kind: PolicyAnyRole, Roles: roles}
}

// RequireRole admits principals holding exactly this role
func RequireRole(role Role) Policy {
	return AnyRole(role)
}

func (p Policy) IsPublic() bool {
	return p.Kind == PolicyPublic
}

func (p Policy) String() string {
	if p.Kind != PolicyAnyRole {
		return string(p.Kind)
	}
	s := string(p.Kind) + "("
	for i, r := range p.Roles {
		if i > 0 {
			s += ","
		}
		s += string(r)
	}
	return s + ")"
}

// RouteRule binds a policy to an HTTP method and route template
type RouteRule struct {
	Method string
	Path   string
	Policy Policy
}
