package middleware

// identity.go defines helper functions shared across middleware
// files: extracting the caller's user id for rate-limit keys, either
// from the values JWTAuth stored or from the session.

import (
	"github.com/labstack/echo/v4"
)

// currentUserID returns the user id a previous middleware stored in
// the context, or "anon" for unauthenticated callers.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if v := c.Get("userID"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
