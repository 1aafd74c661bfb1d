package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings. Writes that take part
// in a lifecycle transition are exposed as *Tx methods and must run inside
// the transaction the handler opened, together with the corresponding room
// status write. All dates are UTC calendar dates.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction orchestration.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, guest_id, room_id, check_in_date, check_out_date, status, total_amount_cents, discount_cents, promo_code, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var b model.Booking
	var status string
	var promo sql.NullString
	err := row.Scan(&b.ID, &b.GuestID, &b.RoomID, &b.CheckInDate, &b.CheckOutDate,
		&status, &b.TotalAmountCents, &b.DiscountCents, &promo, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	st, ok := model.ParseBookingStatus(status)
	if !ok {
		return model.Booking{}, errors.New("unknown booking status in database: " + status)
	}
	b.Status = st
	if promo.Valid {
		code := promo.String
		b.PromoCode = &code
	}
	return b, nil
}

// HasOverlapTx reports whether any active booking for the room overlaps the
// half-open range [checkIn, checkOut). It must be called after the room row
// has been locked with RoomRepo.LockByIDTx; the lock serializes concurrent
// creators so the answer cannot go stale before commit.
func (r *BookingRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	var conflict bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM bookings b
		     WHERE b.room_id = ? AND `+activeOverlapCond+`
		 )`,
		roomID, checkOut, checkIn).Scan(&conflict)
	return conflict, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID plus DB-side defaults on the
// provided record. The caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	var promo interface{}
	if b.PromoCode != nil {
		promo = *b.PromoCode
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (guest_id, room_id, check_in_date, check_out_date, status, total_amount_cents, discount_cents, promo_code, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.GuestID, b.RoomID, b.CheckInDate, b.CheckOutDate, string(b.Status),
		b.TotalAmountCents, b.DiscountCents, promo, b.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	got, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, b.ID))
	if err != nil {
		return err
	}
	*b = got
	return nil
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// GetByIDForUpdateTx loads a booking with a row lock so that concurrent
// transitions on the same booking serialize. Returns ErrBookingNotFound
// when the booking does not exist.
func (r *BookingRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// UpdateStatusTx sets a booking's status inside an existing transaction.
// The caller is responsible for having validated the transition.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.BookingStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingDetail is a booking joined with the guest's display name and the
// room number, as shown in the reservations list. It is returned directly
// by the browse endpoints, hence the json tags.
type BookingDetail struct {
	ID               uint64    `json:"id"`
	GuestID          uint64    `json:"guest_id"`
	RoomID           uint64    `json:"room_id"`
	CheckInDate      time.Time `json:"check_in_date"`
	CheckOutDate     time.Time `json:"check_out_date"`
	Status           string    `json:"status"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	DiscountCents    uint32    `json:"discount_cents"`
	PromoCode        *string   `json:"promo_code,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	GuestName        string    `json:"guest_name"`
	RoomNumber       string    `json:"room_number"`
}

const bookingDetailQuery = `SELECT b.id, b.guest_id, b.room_id, b.check_in_date, b.check_out_date, b.status,
	       b.total_amount_cents, b.discount_cents, b.promo_code, b.notes, b.created_at, b.updated_at,
	       CONCAT(g.first_name, ' ', g.last_name), r.room_number
	FROM bookings b
	JOIN guests g ON g.id = b.guest_id
	JOIN rooms r ON r.id = b.room_id`

func scanBookingDetail(rows *sql.Rows) (BookingDetail, error) {
	var d BookingDetail
	var promo sql.NullString
	err := rows.Scan(&d.ID, &d.GuestID, &d.RoomID, &d.CheckInDate, &d.CheckOutDate, &d.Status,
		&d.TotalAmountCents, &d.DiscountCents, &promo, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
		&d.GuestName, &d.RoomNumber)
	if err != nil {
		return BookingDetail{}, err
	}
	if _, ok := model.ParseBookingStatus(d.Status); !ok {
		return BookingDetail{}, errors.New("unknown booking status in database: " + d.Status)
	}
	if promo.Valid {
		code := promo.String
		d.PromoCode = &code
	}
	return d, nil
}

// ListAll returns every booking with guest and room details, newest stays
// first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, bookingDetailQuery+` ORDER BY b.check_in_date DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// Search filters bookings by free text (guest name or booking ID), status
// and a date that matches either boundary of the stay. Empty criteria are
// skipped; the WHERE clause is assembled from placeholders only.
func (r *BookingRepo) Search(ctx context.Context, text string, status *model.BookingStatus, date *time.Time) ([]BookingDetail, error) {
	query := bookingDetailQuery + ` WHERE 1=1`
	args := make([]interface{}, 0, 5)
	if text = strings.TrimSpace(text); text != "" {
		query += ` AND (LOWER(CONCAT(g.first_name, ' ', g.last_name)) LIKE ? OR CAST(b.id AS CHAR) LIKE ?)`
		pattern := "%" + strings.ToLower(text) + "%"
		args = append(args, pattern, pattern)
	}
	if status != nil {
		query += ` AND b.status = ?`
		args = append(args, string(*status))
	}
	if date != nil {
		query += ` AND (b.check_in_date = ? OR b.check_out_date = ?)`
		args = append(args, *date, *date)
	}
	query += ` ORDER BY b.check_in_date DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListForGuest returns the bookings of one guest, newest first.
func (r *BookingRepo) ListForGuest(ctx context.Context, guestID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailQuery+` WHERE b.guest_id = ? ORDER BY b.check_in_date DESC, b.id DESC`, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// Stats aggregates booking counts. The "today" boundary is the UTC
// calendar date supplied by the caller; CURRENT_DATE at the store is
// deliberately not used so the result does not depend on the database
// server's timezone.
func (r *BookingRepo) Stats(ctx context.Context, today time.Time) (model.BookingStats, error) {
	var s model.BookingStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM bookings),
		     (SELECT COUNT(*) FROM bookings WHERE status IN ('CONFIRMED', 'CHECKED_IN')),
		     (SELECT COUNT(*) FROM bookings WHERE check_in_date = ?)`,
		today).Scan(&s.Total, &s.Active, &s.TodayCheckIns)
	return s, err
}
