package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// ViewHandler renders screens as JSON descriptors: the view name, the user
// it is rendered for and that user's sidebar. Access control happens in the
// Guard middleware in front of it.
type ViewHandler struct {
	sessions ports.SessionManager
}

func NewViewHandler(sessions ports.SessionManager) *ViewHandler {
	return &ViewHandler{sessions: sessions}
}

// Index sends the visitor to where they belong.
//
// @Summary      Entry redirect
// @Tags         views
// @Success      302
// @Failure      503  {object}  map[string]string
// @Router       / [get]
func (h *ViewHandler) Index(c echo.Context) error {
	s := h.sessions.Current()
	switch {
	case s.Loading():
		return waitForSession(c)
	case s.Authenticated():
		return c.Redirect(http.StatusFound, s.User.Role().LandingPath())
	default:
		return c.Redirect(http.StatusFound, domain.LoginPath)
	}
}

// Login renders the login screen, echoing the path the user was headed to.
//
// @Summary      Login screen
// @Tags         views
// @Produce      json
// @Param        from  query     string  false  "Path to return to after login"
// @Success      200   {object}  viewResponse
// @Router       /login [get]
func (h *ViewHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: "login", From: c.QueryParam("from")})
}

// Register
//
// @Summary      Registration screen
// @Tags         views
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /register [get]
func (h *ViewHandler) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: "register"})
}

// Screen returns a handler rendering the named view for the current user.
func (h *ViewHandler) Screen(view string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := viewResponse{View: view}
		if s := h.sessions.Current(); s.Authenticated() {
			resp.User = toUserResponse(s.User)
			resp.Menu = domain.MenuFor(s.User.Role())
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// waitForSession answers while the session is still bootstrapping.
func waitForSession(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
}
