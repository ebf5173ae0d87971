package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo is the interval store: it provides access to the
// bookings table, the single source of truth for room occupancy.
// Every availability question reduces to a half-open overlap query
// against this table (starts_on < to AND ends_on > from), and every
// write that could violate the per-room no-overlap invariant runs
// inside a transaction owned by the service layer.  All dates are
// stored as DATE columns and treated as UTC midnights.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, room_id, guest_name, starts_on, ends_on, cancelled, block_id, created_at, updated_at`

// ListOverlapping returns every non-cancelled booking whose range
// intersects [from, to), across all rooms, in one query.  This is the
// snapshot fetch: the horizon scanner calls it exactly once and then
// answers every per-day question in memory, never re-querying per
// candidate day.
func (r *BookingRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + `
               FROM bookings
               WHERE cancelled = 0 AND starts_on < ? AND ends_on > ?
               ORDER BY room_id, starts_on`
    rows, err := r.db.QueryContext(ctx, q, to, from)
    if err != nil {
        return nil, err
    }
    return scanBookings(rows)
}

// ListOverlappingTx is ListOverlapping inside an existing transaction.
// The block commit path uses it after locking the room rows so the
// snapshot it allocates from cannot change under its feet.
func (r *BookingRepo) ListOverlappingTx(ctx context.Context, tx *sql.Tx, from, to time.Time) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + `
               FROM bookings
               WHERE cancelled = 0 AND starts_on < ? AND ends_on > ?
               ORDER BY room_id, starts_on`
    rows, err := tx.QueryContext(ctx, q, to, from)
    if err != nil {
        return nil, err
    }
    return scanBookings(rows)
}

// ListOverlappingForRoomTx returns the non-cancelled bookings of one
// room intersecting [from, to), inside a transaction.  The individual
// booking path uses it for its overlap check after locking the room
// row.
func (r *BookingRepo) ListOverlappingForRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64, from, to time.Time) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + `
               FROM bookings
               WHERE room_id = ? AND cancelled = 0 AND starts_on < ? AND ends_on > ?
               ORDER BY starts_on`
    rows, err := tx.QueryContext(ctx, q, roomID, to, from)
    if err != nil {
        return nil, err
    }
    return scanBookings(rows)
}

// CreateTx inserts a single booking within the provided transaction
// and populates the generated ID.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings (room_id, guest_name, starts_on, ends_on, block_id) VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, b.RoomID, b.GuestName, dateArg(b.StartsOn), dateArg(b.EndsOn), b.BlockID)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// CreateBulkTx inserts multiple bookings in a single statement within
// the provided transaction.  The block commit path uses it to persist
// one booking per allocated room atomically.  Passing an empty slice
// has no effect and returns nil.
func (r *BookingRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, bookings []model.Booking) error {
    if len(bookings) == 0 {
        return nil
    }
    query := `INSERT INTO bookings (room_id, guest_name, starts_on, ends_on, block_id) VALUES `
    args := make([]interface{}, 0, len(bookings)*5)
    for i, b := range bookings {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?, ?)"
        args = append(args, b.RoomID, b.GuestName, dateArg(b.StartsOn), dateArg(b.EndsOn), b.BlockID)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// CancelTx marks one booking cancelled and returns its room id.  The
// row is kept for audit; cancelled bookings never count against
// availability.  Cancelling an already-cancelled booking returns
// ErrBookingNotFound so callers cannot double-release a room.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint64, error) {
    var roomID uint64
    const sel = `SELECT room_id FROM bookings WHERE id = ? AND cancelled = 0 FOR UPDATE`
    if err := tx.QueryRowContext(ctx, sel, bookingID).Scan(&roomID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrBookingNotFound
        }
        return 0, err
    }
    if _, err := tx.ExecContext(ctx, `UPDATE bookings SET cancelled = 1 WHERE id = ?`, bookingID); err != nil {
        return 0, err
    }
    return roomID, nil
}

// CancelByBlockTx marks every booking owned by a block as cancelled
// and returns the room ids that were released.  Used by block release
// to restore the whole range in one transaction.
func (r *BookingRepo) CancelByBlockTx(ctx context.Context, tx *sql.Tx, blockID uint64) ([]uint64, error) {
    rows, err := tx.QueryContext(ctx,
        `SELECT room_id FROM bookings WHERE block_id = ? AND cancelled = 0`, blockID)
    if err != nil {
        return nil, err
    }
    var roomIDs []uint64
    for rows.Next() {
        var rid uint64
        if scanErr := rows.Scan(&rid); scanErr != nil {
            rows.Close()
            return nil, scanErr
        }
        roomIDs = append(roomIDs, rid)
    }
    if err = rows.Close(); err != nil {
        return nil, err
    }
    if len(roomIDs) == 0 {
        return []uint64{}, nil
    }
    if _, err = tx.ExecContext(ctx,
        `UPDATE bookings SET cancelled = 1 WHERE block_id = ? AND cancelled = 0`, blockID); err != nil {
        return nil, err
    }
    return roomIDs, nil
}

// GetByID retrieves a single booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    var b model.Booking
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.RoomID, &b.GuestName, &b.StartsOn, &b.EndsOn, &b.Cancelled, &b.BlockID, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// ListByRoom returns all bookings of a room, newest first, including
// cancelled ones so the audit trail stays visible.
func (r *BookingRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + `
               FROM bookings WHERE room_id = ?
               ORDER BY starts_on DESC`
    rows, err := r.db.QueryContext(ctx, q, roomID)
    if err != nil {
        return nil, err
    }
    return scanBookings(rows)
}

// dateArg renders a date value the way the DATE columns expect.
func dateArg(t time.Time) string {
    return t.UTC().Format("2006-01-02")
}

// scanBookings drains a booking result set, closing it when done.
func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
    defer rows.Close()
    var result []model.Booking
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(
            &b.ID, &b.RoomID, &b.GuestName, &b.StartsOn, &b.EndsOn,
            &b.Cancelled, &b.BlockID, &b.CreatedAt, &b.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        result = append(result, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}
