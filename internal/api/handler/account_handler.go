package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// AccountHandler serves the self-service endpoints of the logged-in user.
// Every route sits behind the Auth middleware.
type AccountHandler struct {
	sessions ports.SessionManager
	images   ports.ProfileImageService
}

func NewAccountHandler(sessions ports.SessionManager, images ports.ProfileImageService) *AccountHandler {
	return &AccountHandler{sessions: sessions, images: images}
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /api/account/profile [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.sessions.UpdateProfile(c.Request().Context(), toProfileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword replaces the password after checking the current one.
//
// @Summary      Change password
// @Tags         account
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  passwordRequest  true  "Current and new password"
// @Success      204
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /api/account/password [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var req passwordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.sessions.ChangePassword(c.Request().Context(), ports.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the account and ends the session.
//
// @Summary      Delete account
// @Tags         account
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/account [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.sessions.DeleteAccount(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAvatar returns the profile image as a data URL.
//
// @Summary      Get profile image
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  avatarResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/account/avatar [get]
func (h *AccountHandler) GetAvatar(c echo.Context) error {
	img, err := h.images.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatarResponse{Image: img})
}

// PutAvatar stores a new profile image.
//
// @Summary      Upload profile image
// @Tags         account
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  avatarRequest  true  "data:image/...;base64,... (max 2 MiB)"
// @Success      204
// @Failure      422  {object}  map[string]any
// @Router       /api/account/avatar [put]
func (h *AccountHandler) PutAvatar(c echo.Context) error {
	var req avatarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.images.Upload(c.Request().Context(), req.Image); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAvatar removes the profile image.
//
// @Summary      Remove profile image
// @Tags         account
// @Security     BearerAuth
// @Success      204
// @Router       /api/account/avatar [delete]
func (h *AccountHandler) DeleteAvatar(c echo.Context) error {
	if err := h.images.Remove(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
