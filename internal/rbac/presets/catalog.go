package presets

import (
	"net/http"

	"examplar-api/internal/rbac"
)

const (
	RoleAdmin rbac.Role = "ADMIN"
	RoleUser  rbac.Role = "USER"
)

// Route templates as registered on the router
const (
	PathHealth      = "/health"
	PathMetrics     = "/metrics"
	PathProducts    = "/api/products"
	PathProductByID = "/api/products/:id"
	PathUsers       = "/api/users"
	PathUserByID    = "/api/users/:id"
)

// Catalog returns the route policy table for the product and user API.
// GET /api/products is reached through the API key branch, whose principals
// carry no roles, so it only requires authentication.
func Catalog() rbac.Config {
	return rbac.Config{
		Roles: []rbac.Role{RoleAdmin, RoleUser},
		Routes: []rbac.RouteRule{
			{Method: http.MethodGet, Path: PathHealth, Policy: rbac.Public()},
			{Method: http.MethodGet, Path: PathMetrics, Policy: rbac.Public()},

			{Method: http.MethodGet, Path: PathProducts, Policy: rbac.Authenticated()},
			{Method: http.MethodGet, Path: PathProductByID, Policy: rbac.Public()},
			{Method: http.MethodPost, Path: PathProducts, Policy: rbac.RequireRole(RoleAdmin)},

			{Method: http.MethodGet, Path: PathUsers, Policy: rbac.RequireRole(RoleAdmin)},
			{Method: http.MethodGet, Path: PathUserByID, Policy: rbac.AnyRole(RoleAdmin, RoleUser)},
			{Method: http.MethodPost, Path: PathUsers, Policy: rbac.RequireRole(RoleAdmin)},
		},
		DefaultPolicy: rbac.Authenticated(),
	}
}
