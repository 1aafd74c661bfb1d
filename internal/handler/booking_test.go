package handler

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/repository"
)

func newBookingHandlerForTest(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := NewBookingHandler(
		repository.NewBookingRepo(db),
		repository.NewRoomRepo(db),
		repository.NewGuestRepo(db),
		repository.NewPromoRepo(db),
		repository.NewStaffLogRepo(db),
	)
	return h, mock, func() { db.Close() }
}

func guestRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "middle_name", "contact_number", "email", "created_at", "updated_at",
	}).AddRow(1, "Ada", "Smith", "", "555-0101", nil, now, now)
}

func roomRow(now time.Time, rate uint32) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "room_number", "type", "rate_cents", "capacity", "status", "floor", "description", "amenities", "created_at", "updated_at",
	}).AddRow(3, "101", "STANDARD", rate, 2, "AVAILABLE", 1, "", "", now, now)
}

func confirmedBookingRow(now time.Time) *sqlmock.Rows {
	checkIn := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "guest_id", "room_id", "check_in_date", "check_out_date", "status",
		"total_amount_cents", "discount_cents", "promo_code", "notes", "created_at", "updated_at",
	}).AddRow(9, 1, 3, checkIn, checkOut, "CONFIRMED", 20000, 0, nil, "", now, now)
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// A second writer holding a conflicting booking must lose the locked
// re-check: the insert never runs and the transaction rolls back.
func TestCreateBookingConflictRollsBack(t *testing.T) {
	h, mock, done := newBookingHandlerForTest(t)
	defer done()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM guests WHERE id = \?`).WithArgs(1).WillReturnRows(guestRow(now))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WithArgs(3).WillReturnRows(roomRow(now, 10000))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"conflict"}).AddRow(1))
	mock.ExpectRollback()

	e := echo.New()
	c, rec := postJSON(e, "/v1/bookings",
		`{"guest_id":1,"room_id":3,"check_in":"2026-03-04","check_out":"2026-03-06"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusConflict, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// When the room-status write fails mid check-in, the booking-status write
// must never happen and the transaction must roll back, leaving booking and
// room consistent.
func TestCheckInRoomWriteFailureRollsBack(t *testing.T) {
	h, mock, done := newBookingHandlerForTest(t)
	defer done()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE id = \? FOR UPDATE`).WithArgs(9).WillReturnRows(confirmedBookingRow(now))
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WithArgs(3).WillReturnRows(roomRow(now, 10000))
	mock.ExpectExec(`UPDATE rooms SET status = \?`).
		WithArgs("OCCUPIED", 3).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	e := echo.New()
	c, rec := postJSON(e, "/v1/bookings/9/check-in", "")
	c.SetPath("/v1/bookings/:id/check-in")
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusInternalServerError, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A transition the state machine forbids is refused under the booking row
// lock, before any status write.
func TestCheckOutFromConfirmedRefused(t *testing.T) {
	h, mock, done := newBookingHandlerForTest(t)
	defer done()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE id = \? FOR UPDATE`).WithArgs(9).WillReturnRows(confirmedBookingRow(now))
	mock.ExpectRollback()

	e := echo.New()
	c, rec := postJSON(e, "/v1/bookings/9/check-out", "")
	c.SetPath("/v1/bookings/:id/check-out")
	c.SetParamNames("id")
	c.SetParamValues("9")
	if err := h.CheckOut(c); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusConflict, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// A stay so long that nights times the rate no longer fits the amount
// column is rejected instead of wrapping around.
func TestCreateBookingRejectsAmountOverflow(t *testing.T) {
	h, mock, done := newBookingHandlerForTest(t)
	defer done()
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM guests WHERE id = \?`).WithArgs(1).WillReturnRows(guestRow(now))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WithArgs(3).WillReturnRows(roomRow(now, math.MaxUint32))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"conflict"}).AddRow(0))
	mock.ExpectRollback()

	e := echo.New()
	c, rec := postJSON(e, "/v1/bookings",
		`{"guest_id":1,"room_id":3,"check_in":"2026-03-04","check_out":"2026-03-06"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
