package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RoomHandler serves the room inventory endpoints.
type RoomHandler struct {
	Rooms *repository.RoomRepo
	Logs  *repository.StaffLogRepo
}

func NewRoomHandler(r *repository.RoomRepo, l *repository.StaffLogRepo) *RoomHandler {
	return &RoomHandler{Rooms: r, Logs: l}
}

type roomReq struct {
	RoomNumber  string `json:"room_number"`
	Type        string `json:"type"`
	RateCents   uint32 `json:"rate_cents"`
	Capacity    uint16 `json:"capacity"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
	Amenities   string `json:"amenities"`
}

type roomResp struct {
	ID          uint64    `json:"id"`
	RoomNumber  string    `json:"room_number"`
	Type        string    `json:"type"`
	RateCents   uint32    `json:"rate_cents"`
	Capacity    uint16    `json:"capacity"`
	Status      string    `json:"status"`
	Floor       int       `json:"floor"`
	Description string    `json:"description"`
	Amenities   string    `json:"amenities"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRoomResp(rm model.Room) roomResp {
	return roomResp{
		ID:          rm.ID,
		RoomNumber:  rm.RoomNumber,
		Type:        rm.Type,
		RateCents:   rm.RateCents,
		Capacity:    rm.Capacity,
		Status:      string(rm.Status),
		Floor:       rm.Floor,
		Description: rm.Description,
		Amenities:   rm.Amenities,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}

// List returns the full room inventory; ?number= looks up a single room by
// its display number.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if number := strings.TrimSpace(c.QueryParam("number")); number != "" {
		rm, err := h.Rooms.GetByNumber(ctx, number)
		if err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
		}
		return c.JSON(http.StatusOK, []roomResp{toRoomResp(rm)})
	}

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomResp(rm))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one room by ID.
func (h *RoomHandler) Get(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(rm))
}

// Create adds a room to the inventory. New rooms start AVAILABLE.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" || req.Type == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number, type and capacity required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Rooms.GetByNumber(ctx, req.RoomNumber); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
	} else if !errors.Is(err, repository.ErrRoomNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}

	rm := model.Room{
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		RateCents:   req.RateCents,
		Capacity:    req.Capacity,
		Status:      model.RoomAvailable,
		Floor:       req.Floor,
		Description: req.Description,
		Amenities:   req.Amenities,
	}
	if err := h.Rooms.Create(ctx, &rm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	_ = h.Logs.Add(ctx, middleware.StaffID(c), "ROOM_CREATE", "created room "+rm.RoomNumber)
	return c.JSON(http.StatusCreated, toRoomResp(rm))
}

// Update rewrites a room's descriptive fields. Status is not part of this
// endpoint; it moves only through SetStatus and the booking lifecycle.
func (h *RoomHandler) Update(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" || req.Type == "" || req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number, type and capacity required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rm := model.Room{
		ID:          id,
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		RateCents:   req.RateCents,
		Capacity:    req.Capacity,
		Floor:       req.Floor,
		Description: req.Description,
		Amenities:   req.Amenities,
	}
	if err := h.Rooms.Update(ctx, &rm); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	_ = h.Logs.Add(ctx, middleware.StaffID(c), "ROOM_UPDATE", "updated room "+rm.RoomNumber)

	updated, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(updated))
}

type roomStatusReq struct {
	Status string `json:"status"`
}

// SetStatus flips a room between AVAILABLE and MAINTENANCE. OCCUPIED is
// owned by the booking lifecycle and cannot be set here, and a room with a
// checked-in guest cannot go to maintenance.
func (h *RoomHandler) SetStatus(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, ok := model.ParseRoomStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !ok || status == model.RoomOccupied {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be AVAILABLE or MAINTENANCE"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tx, err := h.Rooms.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rm, err := h.Rooms.LockByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if rm.Status == model.RoomOccupied {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is occupied"})
	}
	if status == model.RoomMaintenance {
		occupied, err := h.Rooms.HasActiveStayTx(ctx, tx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
		}
		if occupied {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has a checked-in guest"})
		}
	}
	if err := h.Rooms.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := h.Logs.AddTx(ctx, tx, middleware.StaffID(c), "ROOM_STATUS", "room "+rm.RoomNumber+" set to "+string(status)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": string(status)})
}
