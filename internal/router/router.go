package router // package router defines how HTTP routes are registered for the portal

import (
	"github.com/labstack/echo/v4" // Echo web framework used to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-admin-portal/internal/config"
	"github.com/iliyamo/user-admin-portal/internal/handler"
	"github.com/iliyamo/user-admin-portal/internal/middleware"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Login and
// register are throttled by the Redis token bucket so credential
// guessing stays expensive; the session endpoint runs the restore
// flow and is left unthrottled since it makes no provider call.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.NewTokenBucket(rl, rdb))
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)
	g.POST("/logout", a.Logout)

	e.GET("/v1/session", a.Session)
}

// RegisterLocalAPI registers bearer-token routes that only make
// sense with the built-in credential backend, where the portal holds
// the signing secret and can verify tokens itself.
func RegisterLocalAPI(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("/me", a.Me)
}

// RegisterUsers registers the dashboard routes. Every route needs an
// authenticated session; edits additionally require the admin role,
// since the dashboard's user management is an administrative surface.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, store *session.Store) {
	g := e.Group("/v1/users")
	g.Use(middleware.RequireSession(store))
	g.GET("", u.List)
	g.PUT("/:id", u.Update, middleware.RequireRole("admin"))
}
