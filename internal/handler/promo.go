package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PromoHandler serves promo code management and validation.
type PromoHandler struct {
	Promos *repository.PromoRepo
}

func NewPromoHandler(p *repository.PromoRepo) *PromoHandler { return &PromoHandler{Promos: p} }

type promoReq struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiscountCents uint32 `json:"discount_cents"`
	ValidFrom     string `json:"valid_from"`
	ValidTo       string `json:"valid_to"`
	Active        bool   `json:"active"`
}

type promoResp struct {
	ID            uint64 `json:"id"`
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiscountCents uint32 `json:"discount_cents"`
	ValidFrom     string `json:"valid_from"`
	ValidTo       string `json:"valid_to"`
	Active        bool   `json:"active"`
}

func toPromoResp(p model.Promo) promoResp {
	return promoResp{
		ID:            p.ID,
		Code:          p.Code,
		Description:   p.Description,
		DiscountCents: p.DiscountCents,
		ValidFrom:     p.ValidFrom.Format(dateLayout),
		ValidTo:       p.ValidTo.Format(dateLayout),
		Active:        p.Active,
	}
}

func (req *promoReq) toModel() (model.Promo, string) {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return model.Promo{}, "code required"
	}
	from, err := parseDate(req.ValidFrom)
	if err != nil {
		return model.Promo{}, "valid_from must be YYYY-MM-DD"
	}
	to, err := parseDate(req.ValidTo)
	if err != nil {
		return model.Promo{}, "valid_to must be YYYY-MM-DD"
	}
	if to.Before(from) {
		return model.Promo{}, "valid_to must not precede valid_from"
	}
	return model.Promo{
		Code:          req.Code,
		Description:   req.Description,
		DiscountCents: req.DiscountCents,
		ValidFrom:     from,
		ValidTo:       to,
		Active:        req.Active,
	}, ""
}

// List returns all promos.
func (h *PromoHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	promos, err := h.Promos.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list promos failed"})
	}
	out := make([]promoResp, 0, len(promos))
	for _, p := range promos {
		out = append(out, toPromoResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Validate checks whether a code is usable today and returns its discount.
// GET /promos/validate?code=SUMMER
func (h *PromoHandler) Validate(c echo.Context) error {
	code := strings.TrimSpace(c.QueryParam("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Promos.GetValidByCode(ctx, code, todayUTC())
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"valid": false})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validate promo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "promo": toPromoResp(p)})
}

// Create adds a promo.
func (h *PromoHandler) Create(c echo.Context) error {
	var req promoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Promos.Create(ctx, &p); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "promo code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create promo failed"})
	}
	return c.JSON(http.StatusCreated, toPromoResp(p))
}

// Update rewrites a promo.
func (h *PromoHandler) Update(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid promo id"})
	}
	var req promoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Promos.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update promo failed"})
	}
	return c.JSON(http.StatusOK, toPromoResp(p))
}

type promoActiveReq struct {
	Active bool `json:"active"`
}

// SetActive toggles the manual kill switch without touching the window.
func (h *PromoHandler) SetActive(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid promo id"})
	}
	var req promoActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Promos.SetActive(ctx, id, req.Active); err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update promo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "active": req.Active})
}

// Delete removes a promo.
func (h *PromoHandler) Delete(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid promo id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Promos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete promo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
