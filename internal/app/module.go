package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// Reads open to visitors go on public; everything else goes on admin, which
// is already guarded by token auth.
type Module interface {
	RegisterRoutes(public, admin *gin.RouterGroup)
}

// UncachedRoutes is implemented by modules with public GET routes whose
// handlers must run on every request, such as a read that bumps a counter.
// Routes are relative to the API base path.
type UncachedRoutes interface {
	UncachedRoutes() []string
}

// uncachedRoutes collects the full route patterns modules exclude from the
// response cache.
func uncachedRoutes(modules []Module) []string {
	var routes []string
	for _, m := range modules {
		if u, ok := m.(UncachedRoutes); ok {
			for _, r := range u.UncachedRoutes() {
				routes = append(routes, apiBasePath+r)
			}
		}
	}
	return routes
}
