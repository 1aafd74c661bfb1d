package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// SettingsHandler stores per-staff UI preferences.
type SettingsHandler struct {
	Settings *repository.SettingsRepo
}

func NewSettingsHandler(s *repository.SettingsRepo) *SettingsHandler {
	return &SettingsHandler{Settings: s}
}

type settingsBody struct {
	DarkMode   bool   `json:"dark_mode"`
	Resolution string `json:"resolution"`
}

// Get returns the caller's settings, defaults included.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Settings.Get(ctx, middleware.StaffID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load settings failed"})
	}
	return c.JSON(http.StatusOK, settingsBody{DarkMode: s.DarkMode, Resolution: s.Resolution})
}

// Put saves the caller's settings.
func (h *SettingsHandler) Put(c echo.Context) error {
	var req settingsBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Resolution = strings.TrimSpace(req.Resolution)
	if req.Resolution == "" {
		req.Resolution = model.DefaultSettings(0).Resolution
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := model.Settings{
		StaffID:    middleware.StaffID(c),
		DarkMode:   req.DarkMode,
		Resolution: req.Resolution,
	}
	if err := h.Settings.Upsert(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save settings failed"})
	}
	return c.JSON(http.StatusOK, settingsBody{DarkMode: s.DarkMode, Resolution: s.Resolution})
}
