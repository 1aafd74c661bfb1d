package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo provides persistence for the rooms table, including the
// availability query used by the reservation flow. All date arguments are
// UTC calendar dates; the stay interval is half-open, so a booking that
// checks out on a given day never blocks one that checks in the same day.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span rooms and bookings.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = `id, room_number, type, rate_cents, capacity, status, floor, description, amenities, created_at, updated_at`

func scanRoom(row interface{ Scan(...interface{}) error }) (model.Room, error) {
	var rm model.Room
	var status string
	err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.Type, &rm.RateCents, &rm.Capacity,
		&status, &rm.Floor, &rm.Description, &rm.Amenities, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return model.Room{}, err
	}
	st, ok := model.ParseRoomStatus(status)
	if !ok {
		return model.Room{}, errors.New("unknown room status in database: " + status)
	}
	rm.Status = st
	return rm, nil
}

// List returns all rooms ordered by room number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetByID returns a single room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// GetByNumber returns the room with the given display number or
// ErrRoomNotFound.
func (r *RoomRepo) GetByNumber(ctx context.Context, number string) (model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE room_number = ?`, number))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// Create inserts a new room and populates the generated ID.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (room_number, type, rate_cents, capacity, status, floor, description, amenities)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rm.RoomNumber, rm.Type, rm.RateCents, rm.Capacity, string(rm.Status), rm.Floor, rm.Description, rm.Amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// Update rewrites the descriptive fields of a room. Status is deliberately
// not part of this statement; status changes go through UpdateStatusTx so
// the lifecycle guards cannot be bypassed.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_number = ?, type = ?, rate_cents = ?, capacity = ?, floor = ?, description = ?, amenities = ?
		 WHERE id = ?`,
		rm.RoomNumber, rm.Type, rm.RateCents, rm.Capacity, rm.Floor, rm.Description, rm.Amenities, rm.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// activeOverlapCond matches bookings that block a room for the half-open
// range [in, out): the booking is CONFIRMED or CHECKED_IN and
// check_in_date < out AND in < check_out_date. Bind order: out, in.
const activeOverlapCond = `b.status IN ('CONFIRMED', 'CHECKED_IN')
	 AND b.check_in_date < ?
	 AND b.check_out_date > ?`

// FindAvailable returns all rooms that are AVAILABLE and have no active
// booking overlapping [checkIn, checkOut), ordered by room number. The
// query is read-only; creation re-validates under a row lock.
func (r *RoomRepo) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms r
		 WHERE r.status = 'AVAILABLE'
		   AND NOT EXISTS (
		       SELECT 1 FROM bookings b
		       WHERE b.room_id = r.id AND `+activeOverlapCond+`
		   )
		 ORDER BY r.room_number`,
		checkOut, checkIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// IsAvailable reports whether a single room can take [checkIn, checkOut).
// It returns ErrRoomNotFound when the room does not exist. This is the
// advisory read used by the availability endpoint; the booking transaction
// performs its own locked re-check.
func (r *RoomRepo) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error) {
	rm, err := r.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	if rm.Status != model.RoomAvailable {
		return false, nil
	}
	var conflict bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM bookings b
		     WHERE b.room_id = ? AND `+activeOverlapCond+`
		 )`,
		roomID, checkOut, checkIn).Scan(&conflict)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// LockByIDTx loads a room inside the given transaction with a row lock
// (SELECT ... FOR UPDATE). Concurrent booking writers for the same room
// serialize on this lock, which is what makes the later overlap re-check
// trustworthy. Returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	rm, err := scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// UpdateStatusTx sets a room's status inside an existing transaction. The
// caller must hold the row lock and is responsible for commit/rollback.
func (r *RoomRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.RoomStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE rooms SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// HasActiveStayTx reports whether the room currently has a CHECKED_IN
// booking. The inventory endpoint uses it to refuse maintenance flips on a
// room somebody is sleeping in.
func (r *RoomRepo) HasActiveStayTx(ctx context.Context, tx *sql.Tx, roomID uint64) (bool, error) {
	var occupied bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE room_id = ? AND status = 'CHECKED_IN')`,
		roomID).Scan(&occupied)
	return occupied, err
}
