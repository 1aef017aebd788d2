package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// UserHandler serves the administrator's user directory.
type UserHandler struct {
	directory ports.UserDirectory
}

func NewUserHandler(directory ports.UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

// List returns the accounts matching the optional search and role filter.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search on name, email or phone"
// @Param        role  query     string  false  "Role filter"
// @Success      200   {object}  usersResponse
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := ports.UserFilter{Search: c.QueryParam("q")}

	if raw := c.QueryParam("role"); raw != "" && raw != "all" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			verr := domain.NewValidationError()
			verr.Add("role", "role must be one of: admin, doctor, nurse, receptionist, patient")
			return verr
		}
		filter.Role = role
	}

	users, err := h.directory.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUsersResponse(users))
}
