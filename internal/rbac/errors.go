package rbac

import "errors"

var (
	ErrDenied      = errors.New("authorization denied")
	ErrNilSubject  = errors.New("subject is nil")
	ErrInvalidRole = errors.New("invalid role")
)

const (
	errConfigRolesEmpty           = "rbac config: roles must not be empty"
	errConfigRoleNameEmpty        = "rbac config: role name must not be empty"
	errConfigDuplicateRoleNameFmt = "rbac config: duplicate role name: %s"
	errConfigRouteMethodEmpty     = "rbac config: route method must not be empty"
	errConfigRoutePathEmptyFmt    = "rbac config: route path must not be empty (method %s)"
	errConfigDuplicateRouteFmt    = "rbac config: duplicate route: %s %s"
	errConfigRoutePolicyFmt       = "rbac config: route %s %s: %w"
	errConfigDefaultPolicyFmt     = "rbac config: default policy: %w"
	errConfigUnknownPolicyKindFmt = "unknown policy kind: %q"
	errConfigAnyRoleEmpty         = "any_role policy requires at least one role"
	errConfigPolicyUnknownRoleFmt = "policy references unknown role: %s"
	errMustNewPanicFmt            = "rbac.MustNew: %v"
	errDeniedNilSubjectFmt        = "%w: %w"
	errDeniedUnknownPolicyKindFmt = "%w: unknown policy kind: %s"
	errDeniedMissingRoleFmt       = "%w: requires one of roles %v, principal %q has %v"
	errInvalidRoleFmt             = "%w: %s"
)
