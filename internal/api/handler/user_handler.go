package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankline/auth-service/internal/core/domain"
	"github.com/bankline/auth-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user lookup, enumeration and the
// rollback deletion path.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns all users, most recently created first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Router       /auth/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, users)
}

// GetByID returns a single user's public view.
//
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.PublicUser
// @Failure      404  {object}  map[string]string
// @Router       /auth/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.authService.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user by id. This is the compensating action invoked when
// profile creation in the downstream service fails after registration
// succeeded here. It is deliberately reachable without a token; only internal
// callers should be routed to it.
//
// @Summary      Delete user (registration rollback)
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /auth/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.authService.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
