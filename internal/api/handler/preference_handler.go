package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

type PreferenceHandler struct {
	prefs ports.PreferenceService
}

func NewPreferenceHandler(prefs ports.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// GetLanguage
//
// @Summary      Get UI language
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  languageResponse
// @Router       /api/preferences/language [get]
func (h *PreferenceHandler) GetLanguage(c echo.Context) error {
	locale, err := h.prefs.Language(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse{Language: string(locale)})
}

// SetLanguage
//
// @Summary      Set UI language
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      languageRequest  true  "en, hi or mr"
// @Success      200   {object}  languageResponse
// @Failure      422   {object}  map[string]any
// @Router       /api/preferences/language [put]
func (h *PreferenceHandler) SetLanguage(c echo.Context) error {
	var req languageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.prefs.SetLanguage(c.Request().Context(), domain.Locale(req.Language)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languageResponse(req))
}
