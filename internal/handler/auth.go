package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-admin-portal/internal/flow"
	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/provider"
	"github.com/iliyamo/user-admin-portal/internal/repository"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Flows *flow.Flows
}

func NewAuthHandler(f *flow.Flows) *AuthHandler { return &AuthHandler{Flows: f} }

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type registerReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}
type sessionResp struct {
	User    *model.UserProfile `json:"user"`
	Loading bool               `json:"loading"`
	Error   string             `json:"error,omitempty"`
}

// Login: validate the credentials with the provider and open a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Flows.Login(ctx, req.Email, req.Password)
	if err != nil {
		return authError(c, err, "login failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// Register: create the account and sign it in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/displayName required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Flows.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return authError(c, err, "registration failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u})
}

// Logout: revoke the credential and drop the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Flows.Logout(ctx); err != nil {
		// The session is gone regardless; report but do not fail hard.
		return c.JSON(http.StatusOK, echo.Map{"warning": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// Session: restore the session from durable storage and report its
// state. Called by the front end on every page load; with no stored
// token the client is told to route to the login screen.
func (h *AuthHandler) Session(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Flows.Restore(ctx)
	if errors.Is(err, flow.ErrNoSession) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "no active session",
			"redirect": "/login",
		})
	}
	if err != nil {
		return authError(c, err, "session restore failed")
	}
	st := h.Flows.Session.Snapshot()
	return c.JSON(http.StatusOK, sessionResp{User: st.User, Loading: st.Loading, Error: st.Err})
}

// Me: simple bearer-protected endpoint, available when the portal
// itself signs the identity tokens.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

// authError maps flow errors onto HTTP responses: bad credentials to
// 401, duplicate submissions to 409, everything else to 500 with the
// fallback message.
func authError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, provider.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, echo.Map{"error": "another operation is in progress"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}
