package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-admin-portal/internal/session"
)

// RequireSession guards routes that need an authenticated session.
// When the store holds no user, the request is rejected with 401 and
// a login redirect hint instead of ever reaching the directory. On
// success the session user's id and role are stored in the context
// for downstream middleware.
func RequireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := store.User()
			if u == nil || u.Token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":    "authentication required",
					"redirect": "/login",
				})
			}
			c.Set("user_id", u.ID)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}
