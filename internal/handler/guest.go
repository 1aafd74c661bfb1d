package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// GuestHandler serves the guest directory endpoints.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

func NewGuestHandler(g *repository.GuestRepo) *GuestHandler { return &GuestHandler{Guests: g} }

type guestReq struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	MiddleName    string  `json:"middle_name"`
	ContactNumber string  `json:"contact_number"`
	Email         *string `json:"email"`
}

type guestResp struct {
	ID            uint64    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	MiddleName    string    `json:"middle_name,omitempty"`
	FullName      string    `json:"full_name"`
	ContactNumber string    `json:"contact_number"`
	Email         *string   `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toGuestResp(g model.Guest) guestResp {
	return guestResp{
		ID:            g.ID,
		FirstName:     g.FirstName,
		LastName:      g.LastName,
		MiddleName:    g.MiddleName,
		FullName:      g.FullName(),
		ContactNumber: g.ContactNumber,
		Email:         g.Email,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func guestsResp(gs []model.Guest) []guestResp {
	out := make([]guestResp, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGuestResp(g))
	}
	return out
}

func (req *guestReq) validate() string {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.MiddleName = strings.TrimSpace(req.MiddleName)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	if req.FirstName == "" || req.LastName == "" || req.ContactNumber == "" {
		return "first_name, last_name and contact_number required"
	}
	return ""
}

// List returns all guests; with ?q= it searches names and contact number.
func (h *GuestHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	q := strings.TrimSpace(c.QueryParam("q"))
	var (
		guests []model.Guest
		err    error
	)
	if q != "" {
		guests, err = h.Guests.Search(ctx, q)
	} else {
		guests, err = h.Guests.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list guests failed"})
	}
	return c.JSON(http.StatusOK, guestsResp(guests))
}

// Get returns one guest by ID.
func (h *GuestHandler) Get(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	return c.JSON(http.StatusOK, toGuestResp(g))
}

// Create registers a new guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := model.Guest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		MiddleName:    req.MiddleName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
	if err := h.Guests.Create(ctx, &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	return c.JSON(http.StatusCreated, toGuestResp(g))
}

// Update rewrites a guest's fields.
func (h *GuestHandler) Update(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := model.Guest{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		MiddleName:    req.MiddleName,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
	}
	if err := h.Guests.Update(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update guest failed"})
	}
	updated, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}
	return c.JSON(http.StatusOK, toGuestResp(updated))
}

// Delete removes a guest. Guests referenced by bookings are protected by
// the foreign key and surface as a conflict.
func (h *GuestHandler) Delete(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Guests.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		// FK violation: the guest has bookings.
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest has bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete guest failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
