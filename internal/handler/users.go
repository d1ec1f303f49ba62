package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/flow"
	"github.com/iliyamo/user-admin-portal/internal/model"
	q "github.com/iliyamo/user-admin-portal/internal/queue"
	queue_publisher "github.com/iliyamo/user-admin-portal/internal/service"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

// UserHandler bundles dependencies for the dashboard endpoints.
type UserHandler struct {
	Flows *flow.Flows
}

func NewUserHandler(f *flow.Flows) *UserHandler { return &UserHandler{Flows: f} }

type usersResp struct {
	Users []model.UserProfile `json:"users"`
}
type updateResp struct {
	User  model.UserProfile   `json:"user"`
	Users []model.UserProfile `json:"users,omitempty"`
}

// List: return every directory record for the dashboard table.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Flows.List(ctx)
	if err != nil {
		return userError(c, err, "could not load users")
	}
	return c.JSON(http.StatusOK, usersResp{Users: users})
}

// Update: apply a dashboard edit and return the updated record plus
// the resynchronized list.
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req model.UpdateUserInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, users, err := h.Flows.Update(ctx, id, req)
	if err != nil {
		return userError(c, err, "could not update user")
	}

	// Fan the accepted edit out to the broker for downstream
	// consumers; a delivery failure never fails the request.
	go func(ev q.UserUpdatedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishUserUpdated(pubCtx, ev); err != nil {
			log.Printf("user-updated event not published: %v", err)
		}
	}(q.UserUpdatedEvent{
		UserID:      updated.ID,
		Email:       updated.Email,
		DisplayName: updated.DisplayName,
		Role:        updated.Role,
		IsActive:    updated.IsActive,
		UpdatedBy:   currentUser(c),
		UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, updateResp{User: updated, Users: users})
}

// userError maps flow errors onto HTTP responses.
func userError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, flow.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": flow.ErrValidation.Error()})
	case errors.Is(err, flow.ErrNoSession):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/login"})
	case errors.Is(err, session.ErrBusy):
		return c.JSON(http.StatusConflict, echo.Map{"error": "another operation is in progress"})
	case errors.Is(err, directory.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}

// currentUser returns the id RequireSession stored in the context.
func currentUser(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}
