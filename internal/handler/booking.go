package handler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-reservation/internal/service"
)

// BookingHandler owns the booking lifecycle. Every state change runs in a
// single transaction that locks the room row first, so two concurrent
// requests for the same room serialize and the loser sees the winner's
// writes before deciding.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Guests   *repository.GuestRepo
	Promos   *repository.PromoRepo
	Logs     *repository.StaffLogRepo
}

func NewBookingHandler(b *repository.BookingRepo, r *repository.RoomRepo, g *repository.GuestRepo, p *repository.PromoRepo, l *repository.StaffLogRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Rooms: r, Guests: g, Promos: p, Logs: l}
}

type createBookingReq struct {
	GuestID   uint64 `json:"guest_id"`
	RoomID    uint64 `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	PromoCode string `json:"promo_code"`
	Notes     string `json:"notes"`
}

type bookingResp struct {
	ID               uint64  `json:"id"`
	GuestID          uint64  `json:"guest_id"`
	RoomID           uint64  `json:"room_id"`
	CheckInDate      string  `json:"check_in_date"`
	CheckOutDate     string  `json:"check_out_date"`
	Status           string  `json:"status"`
	Nights           int     `json:"nights"`
	TotalAmountCents uint32  `json:"total_amount_cents"`
	DiscountCents    uint32  `json:"discount_cents"`
	FinalAmountCents uint32  `json:"final_amount_cents"`
	PromoCode        *string `json:"promo_code,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:               b.ID,
		GuestID:          b.GuestID,
		RoomID:           b.RoomID,
		CheckInDate:      b.CheckInDate.Format(dateLayout),
		CheckOutDate:     b.CheckOutDate.Format(dateLayout),
		Status:           string(b.Status),
		Nights:           b.Nights(),
		TotalAmountCents: b.TotalAmountCents,
		DiscountCents:    b.DiscountCents,
		FinalAmountCents: b.FinalAmountCents(),
		PromoCode:        b.PromoCode,
		Notes:            b.Notes,
	}
}

func publishEvent(kind string, b model.Booking, guestName, roomNumber string, staffID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:             kind,
		BookingID:        b.ID,
		GuestID:          b.GuestID,
		GuestName:        guestName,
		RoomID:           b.RoomID,
		RoomNumber:       roomNumber,
		CheckInDate:      b.CheckInDate.Format(dateLayout),
		CheckOutDate:     b.CheckOutDate.Format(dateLayout),
		TotalAmountCents: b.TotalAmountCents,
		StaffID:          staffID,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	})
}

// Create books a room for a guest over the half-open stay
// [check_in, check_out). The room row is locked before the overlap
// re-check, so of two racing requests exactly one commits; the other gets
// 409. The advisory availability endpoints are never trusted here.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GuestID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id and room_id required"})
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if !model.ValidStayRange(checkIn, checkOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	guest, err := h.Guests.GetByID(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}

	var (
		discount  uint32
		promoCode *string
	)
	if code := strings.TrimSpace(req.PromoCode); code != "" {
		promo, err := h.Promos.GetValidByCode(ctx, code, todayUTC())
		if err != nil {
			if errors.Is(err, repository.ErrPromoNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "promo code is not valid"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
		}
		discount = promo.DiscountCents
		promoCode = &promo.Code
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock first, then re-check. The lock serializes all writers on this
	// room, so the overlap check below sees every committed booking.
	rm, err := h.Rooms.LockByIDTx(ctx, tx, req.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if rm.Status != model.RoomAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available"})
	}
	conflict, err := h.Bookings.HasOverlapTx(ctx, tx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for the requested dates"})
	}

	b := model.Booking{
		GuestID:      req.GuestID,
		RoomID:       req.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.BookingConfirmed,
		PromoCode:    promoCode,
		Notes:        strings.TrimSpace(req.Notes),
	}
	total := uint64(b.Nights()) * uint64(rm.RateCents)
	if total > math.MaxUint32 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stay length times room rate exceeds the supported amount"})
	}
	b.TotalAmountCents = uint32(total)
	if discount > b.TotalAmountCents {
		discount = b.TotalAmountCents
	}
	b.DiscountCents = discount

	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	staffID := middleware.StaffID(c)
	detail := fmt.Sprintf("booking #%d: guest %s, room %s, %s to %s",
		b.ID, guest.FullName(), rm.RoomNumber, req.CheckIn, req.CheckOut)
	if err := h.Logs.AddTx(ctx, tx, staffID, "BOOKING_CREATE", detail); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	committed = true

	go publishEvent(queue.EventBookingCreated, b, guest.FullName(), rm.RoomNumber, staffID)

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// transition moves a booking to the target state and keeps the room status
// consistent in the same transaction. The booking row is locked first so
// concurrent transitions on the same booking serialize; the state machine
// check then runs against the latest committed state.
func (h *BookingHandler) transition(c echo.Context, to model.BookingStatus, action, eventKind string) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.Bookings.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	if !b.Status.CanTransition(to) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": fmt.Sprintf("cannot move booking from %s to %s", b.Status, to),
		})
	}

	rm, err := h.Rooms.LockByIDTx(ctx, tx, b.RoomID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}

	// Room status moves with the booking, in the same commit.
	switch to {
	case model.BookingCheckedIn:
		if rm.Status == model.RoomOccupied {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is occupied"})
		}
		if rm.Status == model.RoomMaintenance {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is under maintenance"})
		}
		if err := h.Rooms.UpdateStatusTx(ctx, tx, rm.ID, model.RoomOccupied); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
		}
	case model.BookingCheckedOut:
		if err := h.Rooms.UpdateStatusTx(ctx, tx, rm.ID, model.RoomAvailable); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
		}
	case model.BookingCancelled:
		// A cancelled in-house stay frees the room; cancelling a future
		// booking leaves the room untouched.
		if b.Status == model.BookingCheckedIn {
			if err := h.Rooms.UpdateStatusTx(ctx, tx, rm.ID, model.RoomAvailable); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
			}
		}
	}

	if err := h.Bookings.UpdateStatusTx(ctx, tx, id, to); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	staffID := middleware.StaffID(c)
	detail := fmt.Sprintf("booking #%d: %s -> %s (room %s)", id, b.Status, to, rm.RoomNumber)
	if err := h.Logs.AddTx(ctx, tx, staffID, action, detail); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	committed = true

	b.Status = to
	go func() {
		gctx, gcancel := context.WithTimeout(context.Background(), dbTimeout)
		defer gcancel()
		guestName := ""
		if g, err := h.Guests.GetByID(gctx, b.GuestID); err == nil {
			guestName = g.FullName()
		}
		publishEvent(eventKind, b, guestName, rm.RoomNumber, staffID)
	}()

	return c.JSON(http.StatusOK, toBookingResp(b))
}

// CheckIn moves a CONFIRMED booking to CHECKED_IN and the room to OCCUPIED.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.transition(c, model.BookingCheckedIn, "BOOKING_CHECKIN", queue.EventBookingCheckedIn)
}

// CheckOut moves a CHECKED_IN booking to CHECKED_OUT and frees the room.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.transition(c, model.BookingCheckedOut, "BOOKING_CHECKOUT", queue.EventBookingCheckedOut)
}

// Cancel moves a CONFIRMED or CHECKED_IN booking to CANCELLED.
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, model.BookingCancelled, "BOOKING_CANCEL", queue.EventBookingCancelled)
}

// Get returns one booking.
func (h *BookingHandler) Get(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// List returns every booking with guest and room context joined in.
func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// Search filters bookings by free text, status and/or a date matching
// either stay boundary.
// GET /bookings/search?q=smith&status=CONFIRMED&date=2026-09-01
func (h *BookingHandler) Search(c echo.Context) error {
	var status *model.BookingStatus
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		s, ok := model.ParseBookingStatus(strings.ToUpper(raw))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		status = &s
	}
	var date *time.Time
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = &d
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	details, err := h.Bookings.Search(ctx, strings.TrimSpace(c.QueryParam("q")), status, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// ListForGuest returns a guest's booking history.
func (h *BookingHandler) ListForGuest(c echo.Context) error {
	guestID := paramID(c, "id")
	if guestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Guests.GetByID(ctx, guestID); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	details, err := h.Bookings.ListForGuest(ctx, guestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}

// Stats returns the dashboard counters. "Today" is the current UTC date,
// computed here rather than in SQL so the database session timezone can
// never skew it.
func (h *BookingHandler) Stats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	stats, err := h.Bookings.Stats(ctx, todayUTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stats failed"})
	}
	return c.JSON(http.StatusOK, stats)
}
