package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/ports"
	"github.com/medicocare/hospital-portal/internal/core/service"
)

type AuthHandler struct {
	sessions ports.SessionManager
	tokens   ports.TokenIssuer
}

func NewAuthHandler(sessions ports.SessionManager, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens}
}

// Register creates an account and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      503   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.sessions.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{
		Token:    token,
		User:     toUserResponse(user),
		Redirect: user.Role().LandingPath(),
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		User:     toUserResponse(user),
		Redirect: service.ReturnPath(req.From, user.Role()),
	})
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports who is logged in together with their menu.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Current()))
}

// Reset wipes every account except the seed administrator and logs out.
//
// @Summary      Reset all users
// @Tags         auth
// @Success      204
// @Failure      500  {object}  map[string]string
// @Router       /auth/reset [post]
func (h *AuthHandler) Reset(c echo.Context) error {
	if err := h.sessions.ResetAllUsers(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
