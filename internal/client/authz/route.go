package authz

import (
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/identity"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	// FallbackPath is the public entry point: where insufficient roles and
	// invalidated sessions are sent.
	FallbackPath = "/"

	CatalogPath       = "/products"
	ProductDetailPath = "/products/:id"

	ProductsAdminPath = "/products-admin"
	UsersAdminPath    = "/users"
	CategoriesPath    = "/categories"
	OrdersAdminPath   = "/orders"
)

// Route is one navigable view. Pattern segments starting with ':' capture
// a parameter. Guarded routes need an identity, and RequiredRole, when set,
// narrows them to one role.
type Route struct {
	Name         string
	Pattern      string
	Guarded      bool
	RequiredRole identity.Role
}

// DefaultRoutes is the storefront's route table.
var DefaultRoutes = []Route{
	{Name: "login", Pattern: LoginPath},
	{Name: "register", Pattern: RegisterPath},
	{Name: "landing", Pattern: FallbackPath},
	{Name: "catalog", Pattern: CatalogPath},
	{Name: "product", Pattern: ProductDetailPath},
	{Name: "products-admin", Pattern: ProductsAdminPath, Guarded: true, RequiredRole: identity.RoleAdmin},
	{Name: "users", Pattern: UsersAdminPath, Guarded: true, RequiredRole: identity.RoleAdmin},
	{Name: "categories", Pattern: CategoriesPath, Guarded: true, RequiredRole: identity.RoleAdmin},
	{Name: "orders", Pattern: OrdersAdminPath, Guarded: true, RequiredRole: identity.RoleAdmin},
}

// Match reports whether path fits the route pattern and returns the
// captured parameters.
func (r Route) Match(path string) (map[string]string, bool) {
	want := splitPath(r.Pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
