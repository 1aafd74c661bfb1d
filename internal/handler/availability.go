package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// AvailabilityHandler answers room availability queries. Results are
// advisory; booking creation re-validates under a row lock.
type AvailabilityHandler struct {
	Rooms *repository.RoomRepo
}

func NewAvailabilityHandler(r *repository.RoomRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Rooms: r}
}

// FindRooms returns every room free for the requested stay.
// GET /availability?check_in=2026-09-01&check_out=2026-09-04
func (h *AvailabilityHandler) FindRooms(c echo.Context) error {
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if !model.ValidStayRange(checkIn, checkOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rooms, err := h.Rooms.FindAvailable(ctx, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomResp(rm))
	}
	return c.JSON(http.StatusOK, out)
}

// CheckRoom reports whether one room can take the requested stay.
// GET /rooms/:id/availability?check_in=...&check_out=...
func (h *AvailabilityHandler) CheckRoom(c echo.Context) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if !model.ValidStayRange(checkIn, checkOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	available, err := h.Rooms.IsAvailable(ctx, id, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   id,
		"check_in":  checkIn.Format(dateLayout),
		"check_out": checkOut.Format(dateLayout),
		"available": available,
	})
}
